package service

import (
	"context"
	"errors"
	"testing"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
)

func actualsLineRepo() *mockEstimateRepository {
	return &mockEstimateRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.EstimateLineItem, error) {
			return &model.EstimateLineItem{ID: id, ProjectID: "project-1", Quantity: dec("2")}, nil
		},
		listByProjectIDFunc: func(ctx context.Context, projectID string) ([]*model.EstimateLineItem, error) {
			return []*model.EstimateLineItem{
				{ID: "line-1", ProjectID: projectID, CostItemID: "item-1", Quantity: dec("2")},
			}, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Tests: ActualsService.Create
// ---------------------------------------------------------------------------

func TestActualsService_Create_SetsCreatedBy(t *testing.T) {
	var created *model.ActualCostRecord
	actualRepo := &mockActualRepository{
		createFunc: func(ctx context.Context, record *model.ActualCostRecord) error {
			created = record
			return nil
		},
	}

	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusDraft), actualsLineRepo(), actualRepo, &mockCatalogRepository{})
	err := svc.Create(context.Background(), estimatorActor(), &model.ActualCostRecord{
		ProjectID:          "project-1",
		EstimateLineItemID: "line-1",
		ActualQuantity:     dec("2"),
		ActualCost:         dec("44"),
	})
	if err != nil {
		t.Fatalf("Create returned unexpected error: %v", err)
	}
	if created.CreatedBy != "user-1" {
		t.Errorf("expected created_by user-1, got %q", created.CreatedBy)
	}
}

func TestActualsService_Create_RejectsCrossProjectLine(t *testing.T) {
	estimateRepo := &mockEstimateRepository{
		getByIDFunc: func(ctx context.Context, id string) (*model.EstimateLineItem, error) {
			return &model.EstimateLineItem{ID: id, ProjectID: "project-other"}, nil
		},
	}

	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusDraft), estimateRepo, &mockActualRepository{}, &mockCatalogRepository{})
	err := svc.Create(context.Background(), estimatorActor(), &model.ActualCostRecord{
		ProjectID:          "project-1",
		EstimateLineItemID: "line-1",
		ActualCost:         dec("10"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for cross-project line, got %v", err)
	}
}

func TestActualsService_Create_RejectsNegativeCost(t *testing.T) {
	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusDraft), actualsLineRepo(), &mockActualRepository{}, &mockCatalogRepository{})
	err := svc.Create(context.Background(), estimatorActor(), &model.ActualCostRecord{
		ProjectID:          "project-1",
		EstimateLineItemID: "line-1",
		ActualCost:         dec("-1"),
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestActualsService_Create_ForbiddenForViewer(t *testing.T) {
	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusDraft), actualsLineRepo(), &mockActualRepository{}, &mockCatalogRepository{})
	err := svc.Create(context.Background(), viewerActor(), &model.ActualCostRecord{ProjectID: "project-1"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tests: variance report
// ---------------------------------------------------------------------------

func varianceCatalogRepo() *mockCatalogRepository {
	return summaryCatalogRepo(&model.CostItem{
		ID:                   "item-1",
		SubElementID:         "sub-1",
		UnitID:               "unit-1",
		Description:          "Concrete strip foundation",
		DatabaseType:         model.DatabaseTypeStandardUK,
		MaterialCost:         dec("10"),
		ManagementCost:       dec("3"),
		ContractorCost:       dec("5"),
		IsContractorRequired: true,
		WasteFactor:          dec("1.05"),
	})
}

func TestActualsService_VarianceReport_OverBudget(t *testing.T) {
	actualRepo := &mockActualRepository{
		listByProjectIDFunc: func(ctx context.Context, projectID string) ([]*model.ActualCostRecord, error) {
			return []*model.ActualCostRecord{
				{ID: "act-1", ProjectID: projectID, EstimateLineItemID: "line-1", ActualQuantity: dec("2"), ActualCost: dec("24")},
				{ID: "act-2", ProjectID: projectID, EstimateLineItemID: "line-1", ActualQuantity: dec("1"), ActualCost: dec("20")},
			}, nil
		},
	}

	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusApproved), actualsLineRepo(), actualRepo, varianceCatalogRepo())
	report, err := svc.VarianceReport(context.Background(), estimatorActor(), "project-1")
	if err != nil {
		t.Fatalf("VarianceReport returned unexpected error: %v", err)
	}

	// 見積: 材料 10×2×1.05=21, 管理 6, 外注 10 → 小計 37, 予備費 3.70, 総額 40.70
	if !report.EstimatedTotals.GrandTotal.Equal(dec("40.70")) {
		t.Errorf("expected estimated grand total 40.70, got %s", report.EstimatedTotals.GrandTotal)
	}
	// 実費: 24+20=44 → 予備費 4.40, 総額 48.40
	if !report.ActualTotals.GrandTotal.Equal(dec("48.40")) {
		t.Errorf("expected actual grand total 48.40, got %s", report.ActualTotals.GrandTotal)
	}
	if !report.Variance.Equal(dec("7.70")) {
		t.Errorf("expected variance 7.70, got %s", report.Variance)
	}
	if report.VariancePercent == nil || !report.VariancePercent.Equal(dec("18.92")) {
		t.Errorf("expected variance percent 18.92, got %v", report.VariancePercent)
	}
	if report.Status != estimation.StatusOver {
		t.Errorf("expected status over, got %q", report.Status)
	}

	// 明細レベル: 複数実費は合算して比較する
	if len(report.Lines) != 1 {
		t.Fatalf("expected 1 line comparison, got %d", len(report.Lines))
	}
	line := report.Lines[0]
	if line.Actual == nil || !line.Actual.Equal(dec("44")) {
		t.Errorf("expected summed actual 44, got %v", line.Actual)
	}
	if line.Variance == nil || !line.Variance.Equal(dec("7")) {
		t.Errorf("expected line variance 7, got %v", line.Variance)
	}
	if line.Status != estimation.StatusOver {
		t.Errorf("expected line status over, got %q", line.Status)
	}
}

func TestActualsService_VarianceReport_NoDataLine(t *testing.T) {
	svc := NewActualsService(ownedProjectRepo(model.EstimateStatusApproved), actualsLineRepo(), &mockActualRepository{}, varianceCatalogRepo())
	report, err := svc.VarianceReport(context.Background(), estimatorActor(), "project-1")
	if err != nil {
		t.Fatalf("VarianceReport returned unexpected error: %v", err)
	}

	if len(report.Lines) != 1 {
		t.Fatalf("expected 1 line comparison, got %d", len(report.Lines))
	}
	line := report.Lines[0]
	// 実費未記録は nil で返す。ゼロと混同しない。
	if line.Actual != nil || line.Variance != nil || line.VariancePercent != nil {
		t.Errorf("expected nil actual/variance for no-data line, got %+v", line)
	}
	if line.Status != estimation.StatusNoData {
		t.Errorf("expected status no-data, got %q", line.Status)
	}
	if !report.ActualTotals.Subtotal.IsZero() {
		t.Errorf("expected zero actual subtotal, got %s", report.ActualTotals.Subtotal)
	}
}
