package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// ContractorHandler は施工業者 CRUD の HTTP ハンドラ
type ContractorHandler struct {
	contractorService service.ContractorService
}

// NewContractorHandler は ContractorHandler を生成する
func NewContractorHandler(contractorService service.ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

// List は GET /api/contractors を処理する（認証必須）
func (h *ContractorHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	opts := model.ContractorListOptions{
		SearchTerm: r.URL.Query().Get("search"),
		Trade:      r.URL.Query().Get("trade"),
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		v := active == "true"
		opts.IsActive = &v
	}

	contractors, err := h.contractorService.List(r.Context(), actor, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if contractors == nil {
		contractors = []*model.Contractor{}
	}
	writeJSON(w, http.StatusOK, contractors)
}

// Get は GET /api/contractors/{id} を処理する（認証必須）
func (h *ContractorHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	contractor, err := h.contractorService.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractor)
}

// Create は POST /api/contractors を処理する（認証必須）
func (h *ContractorHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var contractor model.Contractor
	if err := json.NewDecoder(r.Body).Decode(&contractor); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.contractorService.Create(r.Context(), actor, &contractor); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &contractor)
}

// Update は PUT /api/contractors/{id} を処理する（認証必須）
func (h *ContractorHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch model.ContractorPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	contractor, err := h.contractorService.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractor)
}

// Delete は DELETE /api/contractors/{id} を処理する（認証必須）
func (h *ContractorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.contractorService.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
