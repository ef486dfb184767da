package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
	"github.com/buildtally/backend/internal/service"
	"github.com/buildtally/backend/pkg/auth"
)

// AuthHandler は登録・ログイン・自ユーザー取得の HTTP ハンドラ
type AuthHandler struct {
	authService service.AuthService
	userRepo    repository.UserRepository
	secret      []byte
	tokenTTL    time.Duration
}

// NewAuthHandler は AuthHandler を生成する
func NewAuthHandler(authService service.AuthService, userRepo repository.UserRepository, secret []byte) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userRepo:    userRepo,
		secret:      secret,
		tokenTTL:    auth.DefaultTokenTTL,
	}
}

type tokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, status int, user *model.User) {
	token, err := auth.CreateToken(user.ID, user.Role, user.IsWitness, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, status, tokenResponse{Token: token, User: user})
}

// Register は POST /api/auth/register を処理する
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.issueToken(w, http.StatusCreated, user)
}

// Login は POST /api/auth/login を処理する
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.issueToken(w, http.StatusOK, user)
}

// Me は GET /api/auth/me を処理する（認証必須）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
