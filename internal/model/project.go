package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// プロジェクトのステータス
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)

// 見積のステータス
const (
	EstimateStatusDraft     = "draft"
	EstimateStatusSubmitted = "submitted"
	EstimateStatusApproved  = "approved"
	EstimateStatusRejected  = "rejected"
)

// Project は1案件。クライアントと（任意で）施工業者に紐づく。
type Project struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	ClientID              string           `json:"client_id"`
	ContractorID          *string          `json:"contractor_id,omitempty"`
	BudgetCost            *decimal.Decimal `json:"budget_cost,omitempty"`
	FloorAreaM2           *decimal.Decimal `json:"floor_area_m2,omitempty"`
	ContingencyPercentage decimal.Decimal  `json:"contingency_percentage"`
	StartDate             time.Time        `json:"start_date"`
	ProjectAddress        string           `json:"project_address,omitempty"`
	Description           string           `json:"description,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
	CreatedBy             string           `json:"created_by"`
	Status                string           `json:"status"`
	EstimateStatus        string           `json:"estimate_status"`
	ApprovedBy            *string          `json:"approved_by,omitempty"`
	ApprovedAt            *time.Time       `json:"approved_at,omitempty"`
	ApprovalNotes         string           `json:"approval_notes,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// ValidProjectStatus はプロジェクトステータスが定義済みのものか判定する
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// ProjectPatch holds fields that can be updated on a project.
type ProjectPatch struct {
	Name                  *string          `json:"name"`
	ClientID              *string          `json:"client_id"`
	ContractorID          *string          `json:"contractor_id"`
	BudgetCost            *decimal.Decimal `json:"budget_cost"`
	FloorAreaM2           *decimal.Decimal `json:"floor_area_m2"`
	ContingencyPercentage *decimal.Decimal `json:"contingency_percentage"`
	StartDate             *time.Time       `json:"start_date"`
	ProjectAddress        *string          `json:"project_address"`
	Description           *string          `json:"description"`
	Notes                 *string          `json:"notes"`
	Status                *string          `json:"status"`
}
