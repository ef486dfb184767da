package handler

import (
	"encoding/json"
	"net/http"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/service"
)

// ClientHandler は顧客 CRUD の HTTP ハンドラ
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler は ClientHandler を生成する
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List は GET /api/clients を処理する（認証必須）
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	opts := model.ClientListOptions{SearchTerm: r.URL.Query().Get("search")}
	if active := r.URL.Query().Get("is_active"); active != "" {
		v := active == "true"
		opts.IsActive = &v
	}

	clients, err := h.clientService.List(r.Context(), actor, opts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if clients == nil {
		clients = []*model.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get は GET /api/clients/{id} を処理する（認証必須）
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	client, err := h.clientService.GetByID(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Create は POST /api/clients を処理する（認証必須）
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var client model.Client
	if err := json.NewDecoder(r.Body).Decode(&client); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if err := h.clientService.Create(r.Context(), actor, &client); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &client)
}

// Update は PUT /api/clients/{id} を処理する（認証必須）
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var patch model.ClientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	client, err := h.clientService.Update(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// Delete は DELETE /api/clients/{id} を処理する（認証必須）
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.clientService.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
