package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/buildtally/backend/internal/repository"
	"github.com/buildtally/backend/internal/service"
	"github.com/buildtally/backend/pkg/auth"
)

type Handler struct {
	pool        *pgxpool.Pool
	frontendURL string
}

func New(pool *pgxpool.Pool, frontendURL string) *Handler {
	return &Handler{pool: pool, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// actorFromContext はトークンのクレームからサービス層の Actor を復元する
func actorFromContext(r *http.Request) (service.Actor, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID:    claims.UserID,
		Role:      claims.Role,
		IsWitness: claims.IsWitness,
	}, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError はサービス層の番兵エラーを HTTP ステータスに変換する
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "validation_failed", "detail": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, service.ErrAccountSuspended):
		writeError(w, http.StatusForbidden, "account_suspended")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
