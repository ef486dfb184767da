package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

// ---------------------------------------------------------------------------
// Tests: AuthService.Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_CreatesEstimator(t *testing.T) {
	var created *model.User
	mock := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user-1"
			created = user
			return nil
		},
	}

	svc := NewAuthService(mock)
	user, err := svc.Register(context.Background(), "Alice@Example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register returned unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %q", user.Email)
	}
	if user.Role != model.RoleEstimator {
		t.Errorf("expected role estimator, got %q", user.Role)
	}
	if created.PasswordHash == "" || created.PasswordHash == "password123" {
		t.Error("password must be stored hashed")
	}
}

func TestAuthService_Register_RejectsDuplicateEmail(t *testing.T) {
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email}, nil
		},
	}

	svc := NewAuthService(mock)
	_, err := svc.Register(context.Background(), "alice@example.com", "Alice", "password123")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_ValidatesInput(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{})

	cases := []struct {
		name     string
		email    string
		userName string
		password string
	}{
		{"missing email", "", "Alice", "password123"},
		{"malformed email", "not-an-email", "Alice", "password123"},
		{"missing name", "alice@example.com", "", "password123"},
		{"short password", "alice@example.com", "Alice", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, tc.userName, tc.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tests: AuthService.Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Succeeds(t *testing.T) {
	hash := hashPassword(t, "password123")
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email, PasswordHash: hash, Role: model.RoleEstimator}, nil
		},
	}

	svc := NewAuthService(mock)
	user, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Login returned unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %q", user.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash := hashPassword(t, "password123")
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", PasswordHash: hash}, nil
		},
	}

	svc := NewAuthService(mock)
	_, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewAuthService(mock)
	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SuspendedAccount(t *testing.T) {
	hash := hashPassword(t, "password123")
	suspendedAt := time.Now()
	mock := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", PasswordHash: hash, SuspendedAt: &suspendedAt}, nil
		},
	}

	svc := NewAuthService(mock)
	_, err := svc.Login(context.Background(), "alice@example.com", "password123")
	if !errors.Is(err, ErrAccountSuspended) {
		t.Errorf("expected ErrAccountSuspended, got %v", err)
	}
}
