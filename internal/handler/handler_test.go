package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
	"github.com/buildtally/backend/internal/service"
	"github.com/buildtally/backend/pkg/auth"
)

// クレーム付きリクエストを組み立てる（認証ミドルウェア通過後の状態を再現）
func authedRequest(t *testing.T, method, target string, body string, claims *auth.Claims) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if claims != nil {
		req = req.WithContext(auth.WithClaims(req.Context(), claims))
	}
	return req
}

func estimatorClaims() *auth.Claims {
	return &auth.Claims{UserID: "user-1", Role: model.RoleEstimator}
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: "admin-1", Role: model.RoleAdmin}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ---------------------------------------------------------------------------
// mockAuthService — service.AuthService のモック
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc func(ctx context.Context, email, name, password string) (*model.User, error)
	loginFunc    func(ctx context.Context, email, password string) (*model.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, email, name, password)
	}
	return nil, repository.ErrNotFound
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, service.ErrInvalidCredentials
}

// ---------------------------------------------------------------------------
// mockProjectService — service.ProjectService のモック
// ---------------------------------------------------------------------------

type mockProjectService struct {
	listFunc    func(ctx context.Context, actor service.Actor, status string) ([]*model.Project, error)
	getByIDFunc func(ctx context.Context, actor service.Actor, id string) (*model.Project, error)
	createFunc  func(ctx context.Context, actor service.Actor, project *model.Project) error
	updateFunc  func(ctx context.Context, actor service.Actor, id string, patch model.ProjectPatch) (*model.Project, error)
	deleteFunc  func(ctx context.Context, actor service.Actor, id string) error
	submitFunc  func(ctx context.Context, actor service.Actor, id string) (*model.Project, error)
	approveFunc func(ctx context.Context, actor service.Actor, id, notes string) (*model.Project, error)
	rejectFunc  func(ctx context.Context, actor service.Actor, id, notes string) (*model.Project, error)
}

func (m *mockProjectService) List(ctx context.Context, actor service.Actor, status string) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, actor, status)
	}
	return nil, nil
}

func (m *mockProjectService) GetByID(ctx context.Context, actor service.Actor, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, actor, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectService) Create(ctx context.Context, actor service.Actor, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, actor, project)
	}
	return nil
}

func (m *mockProjectService) Update(ctx context.Context, actor service.Actor, id string, patch model.ProjectPatch) (*model.Project, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actor, id, patch)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectService) Delete(ctx context.Context, actor service.Actor, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *mockProjectService) SubmitEstimate(ctx context.Context, actor service.Actor, id string) (*model.Project, error) {
	if m.submitFunc != nil {
		return m.submitFunc(ctx, actor, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectService) ApproveEstimate(ctx context.Context, actor service.Actor, id, notes string) (*model.Project, error) {
	if m.approveFunc != nil {
		return m.approveFunc(ctx, actor, id, notes)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectService) RejectEstimate(ctx context.Context, actor service.Actor, id, notes string) (*model.Project, error) {
	if m.rejectFunc != nil {
		return m.rejectFunc(ctx, actor, id, notes)
	}
	return nil, repository.ErrNotFound
}

// ---------------------------------------------------------------------------
// mockEstimateService — service.EstimateService のモック
// ---------------------------------------------------------------------------

type mockEstimateService struct {
	listLinesFunc  func(ctx context.Context, actor service.Actor, projectID string) ([]*model.EstimateLineItem, error)
	addLineFunc    func(ctx context.Context, actor service.Actor, line *model.EstimateLineItem) error
	updateLineFunc func(ctx context.Context, actor service.Actor, lineID string, patch model.EstimateLineItemPatch) (*model.EstimateLineItem, error)
	deleteLineFunc func(ctx context.Context, actor service.Actor, lineID string) error
	summaryFunc    func(ctx context.Context, actor service.Actor, projectID string) (*service.EstimateSummary, error)
}

func (m *mockEstimateService) ListLines(ctx context.Context, actor service.Actor, projectID string) ([]*model.EstimateLineItem, error) {
	if m.listLinesFunc != nil {
		return m.listLinesFunc(ctx, actor, projectID)
	}
	return nil, nil
}

func (m *mockEstimateService) AddLine(ctx context.Context, actor service.Actor, line *model.EstimateLineItem) error {
	if m.addLineFunc != nil {
		return m.addLineFunc(ctx, actor, line)
	}
	return nil
}

func (m *mockEstimateService) UpdateLine(ctx context.Context, actor service.Actor, lineID string, patch model.EstimateLineItemPatch) (*model.EstimateLineItem, error) {
	if m.updateLineFunc != nil {
		return m.updateLineFunc(ctx, actor, lineID, patch)
	}
	return nil, repository.ErrNotFound
}

func (m *mockEstimateService) DeleteLine(ctx context.Context, actor service.Actor, lineID string) error {
	if m.deleteLineFunc != nil {
		return m.deleteLineFunc(ctx, actor, lineID)
	}
	return nil
}

func (m *mockEstimateService) Summary(ctx context.Context, actor service.Actor, projectID string) (*service.EstimateSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx, actor, projectID)
	}
	return nil, repository.ErrNotFound
}

// ---------------------------------------------------------------------------
// mockUserRepo — repository.UserRepository のモック（Me エンドポイント用）
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	getByIDFunc func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error { return nil }

func (m *mockUserRepo) UpdateRole(ctx context.Context, id, role string) error { return nil }

func (m *mockUserRepo) SetSuspended(ctx context.Context, id string, suspended bool) error {
	return nil
}
