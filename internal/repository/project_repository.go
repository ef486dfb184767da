package repository

import (
	"context"
	"time"

	"github.com/buildtally/backend/internal/model"
)

// ProjectListOptions carries filter parameters for listing projects.
type ProjectListOptions struct {
	// CreatedBy limits results to projects created by the given user (viewer scope).
	CreatedBy *string
	// Status filters by project status when non-empty.
	Status string
}

// ProjectRepository はプロジェクト永続化のインターフェース
type ProjectRepository interface {
	List(ctx context.Context, opts ProjectListOptions) ([]*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
	// UpdateEstimateStatus は承認ワークフローの状態遷移を保存する。
	// approvedBy / approvedAt は approved のときのみ設定される。
	UpdateEstimateStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time, notes string) error
}
