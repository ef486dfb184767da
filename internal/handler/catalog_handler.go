package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// CatalogHandler はカタログ階層（カテゴリ・サブ要素・単位）の HTTP ハンドラ。
// コストアイテム本体は CostItemHandler が扱う。
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler は CatalogHandler を生成する
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories は GET /api/catalog/categories を処理する
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []*model.CostCategory{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory は POST /api/catalog/categories を処理する（管理者のみ）
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var category model.CostCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.catalogService.CreateCategory(r.Context(), actor, &category); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &category)
}

// UpdateCategory は PUT /api/catalog/categories/{id} を処理する（管理者のみ）
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var category model.CostCategory
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	category.ID = r.PathValue("id")

	if err := h.catalogService.UpdateCategory(r.Context(), actor, &category); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &category)
}

// DeleteCategory は DELETE /api/catalog/categories/{id} を処理する（管理者のみ）
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListSubElements は GET /api/catalog/sub-elements を処理する。
// ?category_id= でカテゴリ絞り込みができる。
func (h *CatalogHandler) ListSubElements(w http.ResponseWriter, r *http.Request) {
	var categoryID *string
	if v := r.URL.Query().Get("category_id"); v != "" {
		categoryID = &v
	}

	subs, err := h.catalogService.ListSubElements(r.Context(), categoryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if subs == nil {
		subs = []*model.CostSubElement{}
	}
	writeJSON(w, http.StatusOK, subs)
}

// CreateSubElement は POST /api/catalog/sub-elements を処理する（管理者のみ）
func (h *CatalogHandler) CreateSubElement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var sub model.CostSubElement
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.catalogService.CreateSubElement(r.Context(), actor, &sub); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &sub)
}

// UpdateSubElement は PUT /api/catalog/sub-elements/{id} を処理する（管理者のみ）
func (h *CatalogHandler) UpdateSubElement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var sub model.CostSubElement
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	sub.ID = r.PathValue("id")

	if err := h.catalogService.UpdateSubElement(r.Context(), actor, &sub); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &sub)
}

// DeleteSubElement は DELETE /api/catalog/sub-elements/{id} を処理する（管理者のみ）
func (h *CatalogHandler) DeleteSubElement(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.catalogService.DeleteSubElement(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListUnits は GET /api/catalog/units を処理する
func (h *CatalogHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.catalogService.ListUnits(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if units == nil {
		units = []*model.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}
