package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// ProjectHandler はプロジェクト CRUD と承認ワークフローの HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List は GET /api/projects を処理する（認証必須）
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projects, err := h.projectService.List(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get は GET /api/projects/{id} を処理する（認証必須）
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Create は POST /api/projects を処理する（認証必須）
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.projectService.Create(r.Context(), actor, &project); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &project)
}

// Update は PUT /api/projects/{id} を処理する（認証必須）
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch model.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	project, err := h.projectService.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// Delete は DELETE /api/projects/{id} を処理する（認証必須）
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.projectService.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Submit は POST /api/projects/{id}/submit を処理する（認証必須）
func (h *ProjectHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	project, err := h.projectService.SubmitEstimate(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type reviewRequest struct {
	Notes string `json:"notes"`
}

// Approve は POST /api/projects/{id}/approve を処理する（管理者のみ）
func (h *ProjectHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.projectService.ApproveEstimate)
}

// Reject は POST /api/projects/{id}/reject を処理する（管理者のみ）
func (h *ProjectHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.projectService.RejectEstimate)
}

func (h *ProjectHandler) review(
	w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, actor service.Actor, id, notes string) (*model.Project, error),
) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req reviewRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	project, err := fn(r.Context(), actor, r.PathValue("id"), req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}
