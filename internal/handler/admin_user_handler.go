package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// AdminUserHandler handles admin-only user management endpoints.
type AdminUserHandler struct {
	adminUserService service.AdminUserService
}

// NewAdminUserHandler creates an AdminUserHandler.
func NewAdminUserHandler(adminUserService service.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{adminUserService: adminUserService}
}

// List は GET /api/admin/users を処理する
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.adminUserService.ListUsers(r.Context(), actor, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Get は GET /api/admin/users/{id} を処理する
func (h *AdminUserHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.adminUserService.GetUser(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateRole は PATCH /api/admin/users/{id}/role を処理する
func (h *AdminUserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.adminUserService.UpdateRole(r.Context(), actor, r.PathValue("id"), req.Role); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Suspend は PATCH /api/admin/users/{id}/suspend を処理する
func (h *AdminUserHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Suspend bool `json:"suspend"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.adminUserService.SuspendUser(r.Context(), actor, r.PathValue("id"), req.Suspend); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
