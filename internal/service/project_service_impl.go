package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
}

// NewProjectService は ProjectServiceImpl を生成する（DI: 各リポジトリを注入）
func NewProjectService(projectRepo repository.ProjectRepository, clientRepo repository.ClientRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo, clientRepo: clientRepo}
}

// List はプロジェクト一覧を取得する。管理者は全件、それ以外は自分の作成分のみ。
func (s *ProjectServiceImpl) List(ctx context.Context, actor Actor, status string) ([]*model.Project, error) {
	opts := repository.ProjectListOptions{Status: status}
	if !actor.IsAdmin() {
		opts.CreatedBy = &actor.UserID
	}
	return s.projectRepo.List(ctx, opts)
}

// GetByID は ID でプロジェクトを取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, actor Actor, id string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccessProject(actor, project) {
		return nil, ErrForbidden
	}
	return project, nil
}

// Create はプロジェクトを作成する
func (s *ProjectServiceImpl) Create(ctx context.Context, actor Actor, project *model.Project) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	if project.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if project.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrValidation)
	}
	if project.ContingencyPercentage.Sign() < 0 {
		return fmt.Errorf("%w: contingency_percentage cannot be negative", ErrValidation)
	}
	// クライアントは呼び出し主体の所有物であること
	if _, err := s.clientRepo.GetByID(ctx, project.ClientID, actor.UserID); err != nil {
		return fmt.Errorf("%w: unknown client", ErrValidation)
	}

	project.CreatedBy = actor.UserID
	if project.Status == "" {
		project.Status = model.ProjectStatusDraft
	}
	if !model.ValidProjectStatus(project.Status) {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, project.Status)
	}
	project.EstimateStatus = model.EstimateStatusDraft
	if project.StartDate.IsZero() {
		project.StartDate = time.Now()
	}
	return s.projectRepo.Create(ctx, project)
}

// Update はプロジェクトを更新する
func (s *ProjectServiceImpl) Update(ctx context.Context, actor Actor, id string, patch model.ProjectPatch) (*model.Project, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	project, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		project.Name = *patch.Name
	}
	if patch.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *patch.ClientID, actor.UserID); err != nil {
			return nil, fmt.Errorf("%w: unknown client", ErrValidation)
		}
		project.ClientID = *patch.ClientID
	}
	if patch.ContractorID != nil {
		if *patch.ContractorID == "" {
			project.ContractorID = nil
		} else {
			project.ContractorID = patch.ContractorID
		}
	}
	if patch.BudgetCost != nil {
		project.BudgetCost = patch.BudgetCost
	}
	if patch.FloorAreaM2 != nil {
		project.FloorAreaM2 = patch.FloorAreaM2
	}
	if patch.ContingencyPercentage != nil {
		if patch.ContingencyPercentage.Sign() < 0 {
			return nil, fmt.Errorf("%w: contingency_percentage cannot be negative", ErrValidation)
		}
		project.ContingencyPercentage = *patch.ContingencyPercentage
	}
	if patch.StartDate != nil {
		project.StartDate = *patch.StartDate
	}
	if patch.ProjectAddress != nil {
		project.ProjectAddress = *patch.ProjectAddress
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Notes != nil {
		project.Notes = *patch.Notes
	}
	if patch.Status != nil {
		if !model.ValidProjectStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *patch.Status)
		}
		project.Status = *patch.Status
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	if _, err := s.GetByID(ctx, actor, id); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// SubmitEstimate は見積を承認待ちにする。draft / rejected からのみ遷移できる。
func (s *ProjectServiceImpl) SubmitEstimate(ctx context.Context, actor Actor, id string) (*model.Project, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	project, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if project.EstimateStatus != model.EstimateStatusDraft && project.EstimateStatus != model.EstimateStatusRejected {
		return nil, fmt.Errorf("%w: estimate is %s, cannot submit", ErrValidation, project.EstimateStatus)
	}

	if err := s.projectRepo.UpdateEstimateStatus(ctx, id, model.EstimateStatusSubmitted, nil, nil, ""); err != nil {
		return nil, err
	}
	slog.Info("estimate submitted", "project_id", id, "user_id", actor.UserID)
	return s.projectRepo.GetByID(ctx, id)
}

// ApproveEstimate は提出済みの見積を承認する。管理者のみ。
func (s *ProjectServiceImpl) ApproveEstimate(ctx context.Context, actor Actor, id, notes string) (*model.Project, error) {
	return s.reviewEstimate(ctx, actor, id, model.EstimateStatusApproved, notes)
}

// RejectEstimate は提出済みの見積を差し戻す。管理者のみ。
func (s *ProjectServiceImpl) RejectEstimate(ctx context.Context, actor Actor, id, notes string) (*model.Project, error) {
	return s.reviewEstimate(ctx, actor, id, model.EstimateStatusRejected, notes)
}

func (s *ProjectServiceImpl) reviewEstimate(ctx context.Context, actor Actor, id, status, notes string) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.EstimateStatus != model.EstimateStatusSubmitted {
		return nil, fmt.Errorf("%w: estimate is %s, expected submitted", ErrValidation, project.EstimateStatus)
	}

	var approvedBy *string
	var approvedAt *time.Time
	if status == model.EstimateStatusApproved {
		now := time.Now()
		approvedBy = &actor.UserID
		approvedAt = &now
	}
	if err := s.projectRepo.UpdateEstimateStatus(ctx, id, status, approvedBy, approvedAt, notes); err != nil {
		return nil, err
	}
	slog.Info("estimate reviewed", "project_id", id, "status", status, "reviewer", actor.UserID)
	return s.projectRepo.GetByID(ctx, id)
}
