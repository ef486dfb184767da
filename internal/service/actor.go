package service

import "github.com/buildtally/backend/internal/model"

// Actor は認証済みリクエストの呼び出し主体。
// トークンのクレームから復元され、サービス層のアクセス判定に使う。
type Actor struct {
	UserID    string
	Role      string
	IsWitness bool
}

// IsAdmin は管理者ロールか判定する
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// CanEdit は見積・プロジェクトの編集権限があるか判定する。
// viewer は閲覧専用。
func (a Actor) CanEdit() bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleEstimator
}

// DatabaseType は呼び出し主体が参照できるコストカタログの区分を返す
func (a Actor) DatabaseType() string {
	if a.IsWitness {
		return model.DatabaseTypeWitness
	}
	return model.DatabaseTypeStandardUK
}
