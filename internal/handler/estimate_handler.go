package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// EstimateHandler は見積明細と見積サマリの HTTP ハンドラ
type EstimateHandler struct {
	estimateService service.EstimateService
}

// NewEstimateHandler は EstimateHandler を生成する
func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// ListLines は GET /api/projects/{id}/lines を処理する（認証必須）
func (h *EstimateHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	lines, err := h.estimateService.ListLines(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if lines == nil {
		lines = []*model.EstimateLineItem{}
	}
	writeJSON(w, http.StatusOK, lines)
}

// AddLine は POST /api/projects/{id}/lines を処理する（認証必須）
func (h *EstimateHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var line model.EstimateLineItem
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	line.ProjectID = r.PathValue("id")

	if err := h.estimateService.AddLine(r.Context(), actor, &line); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &line)
}

// UpdateLine は PUT /api/lines/{id} を処理する（認証必須）。
// unit_cost_override は null を明示すると上書き解除、省略すると変更なし。
func (h *EstimateHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	var patch model.EstimateLineItemPatch
	if b, ok := raw["quantity"]; ok {
		var v decimal.Decimal
		if err := json.Unmarshal(b, &v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_quantity")
			return
		}
		patch.Quantity = &v
	}
	if b, ok := raw["unit_cost_override"]; ok {
		var v *decimal.Decimal
		if err := json.Unmarshal(b, &v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_unit_cost_override")
			return
		}
		patch.UnitCostOverride = &v
	}
	if b, ok := raw["notes"]; ok {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_notes")
			return
		}
		patch.Notes = &v
	}

	line, err := h.estimateService.UpdateLine(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

// DeleteLine は DELETE /api/lines/{id} を処理する（認証必須）
func (h *EstimateHandler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.estimateService.DeleteLine(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Summary は GET /api/projects/{id}/summary を処理する（認証必須）。
// 保存済み明細と現在のカタログから毎回再計算する。
func (h *EstimateHandler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.estimateService.Summary(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
