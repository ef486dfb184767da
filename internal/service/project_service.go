package service

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// ProjectService はプロジェクトに関するビジネスロジックのインターフェース。
// 管理者以外は自分が作成したプロジェクトだけを参照できる。
type ProjectService interface {
	List(ctx context.Context, actor Actor, status string) ([]*model.Project, error)
	GetByID(ctx context.Context, actor Actor, id string) (*model.Project, error)
	Create(ctx context.Context, actor Actor, project *model.Project) error
	Update(ctx context.Context, actor Actor, id string, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, actor Actor, id string) error

	// 見積承認ワークフロー。Submit は作成者、Approve / Reject は管理者のみ。
	SubmitEstimate(ctx context.Context, actor Actor, id string) (*model.Project, error)
	ApproveEstimate(ctx context.Context, actor Actor, id, notes string) (*model.Project, error)
	RejectEstimate(ctx context.Context, actor Actor, id, notes string) (*model.Project, error)
}

// アクセス可否: 管理者は全件、それ以外は作成者本人のみ
func canAccessProject(actor Actor, project *model.Project) bool {
	return actor.IsAdmin() || project.CreatedBy == actor.UserID
}
