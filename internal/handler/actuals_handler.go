package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// ActualsHandler は実費記録と予実比較レポートの HTTP ハンドラ
type ActualsHandler struct {
	actualsService service.ActualsService
}

// NewActualsHandler は ActualsHandler を生成する
func NewActualsHandler(actualsService service.ActualsService) *ActualsHandler {
	return &ActualsHandler{actualsService: actualsService}
}

// List は GET /api/projects/{id}/actuals を処理する（認証必須）
func (h *ActualsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.actualsService.List(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if records == nil {
		records = []*model.ActualCostRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Create は POST /api/projects/{id}/actuals を処理する（認証必須）
func (h *ActualsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var record model.ActualCostRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	record.ProjectID = r.PathValue("id")

	if err := h.actualsService.Create(r.Context(), actor, &record); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &record)
}

// Update は PUT /api/actuals/{id} を処理する（認証必須）
func (h *ActualsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch model.ActualCostRecordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	record, err := h.actualsService.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Delete は DELETE /api/actuals/{id} を処理する（認証必須）
func (h *ActualsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.actualsService.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// VarianceReport は GET /api/projects/{id}/variance-report を処理する（認証必須）
func (h *ActualsHandler) VarianceReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	report, err := h.actualsService.VarianceReport(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
