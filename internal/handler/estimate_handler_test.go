package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

func TestEstimateHandler_AddLine_TakesProjectIDFromPath(t *testing.T) {
	var created *model.EstimateLineItem
	svc := &mockEstimateService{
		addLineFunc: func(ctx context.Context, actor service.Actor, line *model.EstimateLineItem) error {
			line.ID = "line-1"
			created = line
			return nil
		},
	}
	h := NewEstimateHandler(svc)

	// ボディの project_id はパスの値で上書きされる
	req := authedRequest(t, http.MethodPost, "/api/projects/project-1/lines",
		`{"project_id":"spoofed","cost_item_id":"item-1","quantity":"2"}`, estimatorClaims())
	req.SetPathValue("id", "project-1")
	rec := httptest.NewRecorder()
	h.AddLine(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if created.ProjectID != "project-1" {
		t.Errorf("expected path project id, got %q", created.ProjectID)
	}
}

func TestEstimateHandler_UpdateLine_OverridePatchStates(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantOuter bool // UnitCostOverride が指定されたか
		wantInner bool // 指定された場合、値があるか
	}{
		{"set override", `{"unit_cost_override":"99.99"}`, true, true},
		{"clear override", `{"unit_cost_override":null}`, true, false},
		{"absent override", `{"quantity":"5"}`, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured model.EstimateLineItemPatch
			svc := &mockEstimateService{
				updateLineFunc: func(ctx context.Context, actor service.Actor, lineID string, patch model.EstimateLineItemPatch) (*model.EstimateLineItem, error) {
					captured = patch
					return &model.EstimateLineItem{ID: lineID}, nil
				},
			}
			h := NewEstimateHandler(svc)

			req := authedRequest(t, http.MethodPut, "/api/lines/line-1", tc.body, estimatorClaims())
			req.SetPathValue("id", "line-1")
			rec := httptest.NewRecorder()
			h.UpdateLine(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := captured.UnitCostOverride != nil; got != tc.wantOuter {
				t.Fatalf("outer pointer presence = %v, want %v", got, tc.wantOuter)
			}
			if tc.wantOuter {
				if got := *captured.UnitCostOverride != nil; got != tc.wantInner {
					t.Errorf("inner value presence = %v, want %v", got, tc.wantInner)
				}
			}
		})
	}
}

func TestEstimateHandler_UpdateLine_BadOverrideValue(t *testing.T) {
	h := NewEstimateHandler(&mockEstimateService{})

	req := authedRequest(t, http.MethodPut, "/api/lines/line-1",
		`{"unit_cost_override":{"bad":"type"}}`, estimatorClaims())
	req.SetPathValue("id", "line-1")
	rec := httptest.NewRecorder()
	h.UpdateLine(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestEstimateHandler_Summary_ReturnsPayload(t *testing.T) {
	svc := &mockEstimateService{
		summaryFunc: func(ctx context.Context, actor service.Actor, projectID string) (*service.EstimateSummary, error) {
			return &service.EstimateSummary{ProjectID: projectID, EstimateStatus: model.EstimateStatusDraft}, nil
		},
	}
	h := NewEstimateHandler(svc)

	req := authedRequest(t, http.MethodGet, "/api/projects/project-1/summary", "", estimatorClaims())
	req.SetPathValue("id", "project-1")
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp service.EstimateSummary
	decodeBody(t, rec, &resp)
	if resp.ProjectID != "project-1" || resp.EstimateStatus != model.EstimateStatusDraft {
		t.Errorf("unexpected summary payload: %+v", resp)
	}
}

func TestEstimateHandler_ListLines_Unauthorized(t *testing.T) {
	h := NewEstimateHandler(&mockEstimateService{})

	req := authedRequest(t, http.MethodGet, "/api/projects/project-1/lines", "", nil)
	rec := httptest.NewRecorder()
	h.ListLines(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
