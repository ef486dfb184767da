package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// CostItemHandler はカタログのコストアイテム検索・管理の HTTP ハンドラ
type CostItemHandler struct {
	catalogService service.CatalogService
}

// NewCostItemHandler は CostItemHandler を生成する
func NewCostItemHandler(catalogService service.CatalogService) *CostItemHandler {
	return &CostItemHandler{catalogService: catalogService}
}

// Search は GET /api/catalog/items を処理する（認証必須）。
// カタログ区分は呼び出しユーザーの属性で決まり、クエリでは指定できない。
func (h *CostItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := r.URL.Query()
	filter := model.CostItemFilter{SearchTerm: q.Get("search")}
	if v := q.Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := q.Get("sub_element_id"); v != "" {
		filter.SubElementID = &v
	}
	if v := q.Get("unit_id"); v != "" {
		filter.UnitID = &v
	}
	if v := q.Get("region"); v != "" {
		filter.Region = &v
	}
	if v := q.Get("is_contractor_required"); v != "" {
		b := v == "true"
		filter.IsContractorRequired = &b
	}

	items, err := h.catalogService.SearchCostItems(r.Context(), actor, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*model.CostItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get は GET /api/catalog/items/{id} を処理する（認証必須）
func (h *CostItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	item, err := h.catalogService.GetCostItem(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create は POST /api/catalog/items を処理する（管理者のみ）
func (h *CostItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item model.CostItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.catalogService.CreateCostItem(r.Context(), actor, &item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &item)
}

// Update は PUT /api/catalog/items/{id} を処理する（管理者のみ）
func (h *CostItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var item model.CostItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	item.ID = r.PathValue("id")

	if err := h.catalogService.UpdateCostItem(r.Context(), actor, &item); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &item)
}

// Delete は DELETE /api/catalog/items/{id} を処理する（管理者のみ）
func (h *CostItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.catalogService.DeleteCostItem(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Import は POST /api/catalog/items/import を処理する（管理者のみ）。
// 行ごとの検証エラーはレスポンスの errors にまとめて返す。
func (h *CostItemHandler) Import(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Items []*model.CostItem `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "items_required")
		return
	}

	result, err := h.catalogService.ImportCostItems(r.Context(), actor, req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
