package model

import "time"

// ユーザーのロール
const (
	RoleAdmin     = "admin"
	RoleEstimator = "estimator"
	RoleViewer    = "viewer"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsWitness    bool       `json:"is_witness"`
	SuspendedAt  *time.Time `json:"suspended_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsSuspended returns true if the user account is currently suspended.
func (u *User) IsSuspended() bool {
	return u.SuspendedAt != nil
}

// ValidRole はロール文字列が定義済みのものか判定する
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEstimator, RoleViewer:
		return true
	}
	return false
}

// DatabaseType はユーザーが参照するコストカタログの区分を返す。
// witness ユーザーは witness カタログ、それ以外は標準 UK カタログ。
func (u *User) DatabaseType() string {
	if u.IsWitness {
		return DatabaseTypeWitness
	}
	return DatabaseTypeStandardUK
}
