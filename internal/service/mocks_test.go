package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func adminActor() Actor     { return Actor{UserID: "admin-1", Role: model.RoleAdmin} }
func estimatorActor() Actor { return Actor{UserID: "user-1", Role: model.RoleEstimator} }
func viewerActor() Actor    { return Actor{UserID: "viewer-1", Role: model.RoleViewer} }

// ---------------------------------------------------------------------------
// mockUserRepository — UserRepository のモック
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	getByIDFunc      func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc  func(ctx context.Context, email string) (*model.User, error)
	listFunc         func(ctx context.Context, limit, offset int) ([]*model.User, error)
	createFunc       func(ctx context.Context, user *model.User) error
	updateRoleFunc   func(ctx context.Context, id, role string) error
	setSuspendedFunc func(ctx context.Context, id string, suspended bool) error
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	if m.updateRoleFunc != nil {
		return m.updateRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepository) SetSuspended(ctx context.Context, id string, suspended bool) error {
	if m.setSuspendedFunc != nil {
		return m.setSuspendedFunc(ctx, id, suspended)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockClientRepository — ClientRepository のモック
// ---------------------------------------------------------------------------

type mockClientRepository struct {
	listFunc       func(ctx context.Context, userID string, opts model.ClientListOptions) ([]*model.Client, error)
	getByIDFunc    func(ctx context.Context, id, userID string) (*model.Client, error)
	findByNameFunc func(ctx context.Context, name, userID string) (*model.Client, error)
	createFunc     func(ctx context.Context, client *model.Client) error
	updateFunc     func(ctx context.Context, client *model.Client) error
	deleteFunc     func(ctx context.Context, id, userID string) error
}

func (m *mockClientRepository) List(ctx context.Context, userID string, opts model.ClientListOptions) ([]*model.Client, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, id, userID string) (*model.Client, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockClientRepository) FindByName(ctx context.Context, name, userID string) (*model.Client, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockClientRepository) Create(ctx context.Context, client *model.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, client)
	}
	return nil
}

func (m *mockClientRepository) Update(ctx context.Context, client *model.Client) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, client)
	}
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockContractorRepository — ContractorRepository のモック
// ---------------------------------------------------------------------------

type mockContractorRepository struct {
	listFunc    func(ctx context.Context, userID string, opts model.ContractorListOptions) ([]*model.Contractor, error)
	getByIDFunc func(ctx context.Context, id, userID string) (*model.Contractor, error)
	createFunc  func(ctx context.Context, contractor *model.Contractor) error
	updateFunc  func(ctx context.Context, contractor *model.Contractor) error
	deleteFunc  func(ctx context.Context, id, userID string) error
}

func (m *mockContractorRepository) List(ctx context.Context, userID string, opts model.ContractorListOptions) ([]*model.Contractor, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, opts)
	}
	return nil, nil
}

func (m *mockContractorRepository) GetByID(ctx context.Context, id, userID string) (*model.Contractor, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContractorRepository) Create(ctx context.Context, contractor *model.Contractor) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, contractor)
	}
	return nil
}

func (m *mockContractorRepository) Update(ctx context.Context, contractor *model.Contractor) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, contractor)
	}
	return nil
}

func (m *mockContractorRepository) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockProjectRepository — ProjectRepository のモック
// ---------------------------------------------------------------------------

type mockProjectRepository struct {
	listFunc                 func(ctx context.Context, opts repository.ProjectListOptions) ([]*model.Project, error)
	getByIDFunc              func(ctx context.Context, id string) (*model.Project, error)
	createFunc               func(ctx context.Context, project *model.Project) error
	updateFunc               func(ctx context.Context, project *model.Project) error
	deleteFunc               func(ctx context.Context, id string) error
	updateEstimateStatusFunc func(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time, notes string) error
}

func (m *mockProjectRepository) List(ctx context.Context, opts repository.ProjectListOptions) ([]*model.Project, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockProjectRepository) UpdateEstimateStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time, notes string) error {
	if m.updateEstimateStatusFunc != nil {
		return m.updateEstimateStatusFunc(ctx, id, status, approvedBy, approvedAt, notes)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockCatalogRepository — CatalogRepository のモック
// ---------------------------------------------------------------------------

type mockCatalogRepository struct {
	listCategoriesFunc  func(ctx context.Context) ([]*model.CostCategory, error)
	getCategoryFunc     func(ctx context.Context, id string) (*model.CostCategory, error)
	createCategoryFunc  func(ctx context.Context, category *model.CostCategory) error
	updateCategoryFunc  func(ctx context.Context, category *model.CostCategory) error
	deleteCategoryFunc  func(ctx context.Context, id string) error
	listSubElementsFunc func(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error)
	getSubElementFunc   func(ctx context.Context, id string) (*model.CostSubElement, error)
	createSubElemFunc   func(ctx context.Context, sub *model.CostSubElement) error
	updateSubElemFunc   func(ctx context.Context, sub *model.CostSubElement) error
	deleteSubElemFunc   func(ctx context.Context, id string) error
	listUnitsFunc       func(ctx context.Context) ([]*model.Unit, error)
	getUnitFunc         func(ctx context.Context, id string) (*model.Unit, error)
	listCostItemsFunc   func(ctx context.Context, filter model.CostItemFilter) ([]*model.CostItem, error)
	getCostItemFunc     func(ctx context.Context, id string) (*model.CostItem, error)
	createCostItemFunc  func(ctx context.Context, item *model.CostItem) error
	updateCostItemFunc  func(ctx context.Context, item *model.CostItem) error
	deleteCostItemFunc  func(ctx context.Context, id string) error
}

func (m *mockCatalogRepository) ListCategories(ctx context.Context) ([]*model.CostCategory, error) {
	if m.listCategoriesFunc != nil {
		return m.listCategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetCategory(ctx context.Context, id string) (*model.CostCategory, error) {
	if m.getCategoryFunc != nil {
		return m.getCategoryFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCatalogRepository) CreateCategory(ctx context.Context, category *model.CostCategory) error {
	if m.createCategoryFunc != nil {
		return m.createCategoryFunc(ctx, category)
	}
	return nil
}

func (m *mockCatalogRepository) UpdateCategory(ctx context.Context, category *model.CostCategory) error {
	if m.updateCategoryFunc != nil {
		return m.updateCategoryFunc(ctx, category)
	}
	return nil
}

func (m *mockCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, id)
	}
	return nil
}

func (m *mockCatalogRepository) ListSubElements(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error) {
	if m.listSubElementsFunc != nil {
		return m.listSubElementsFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetSubElement(ctx context.Context, id string) (*model.CostSubElement, error) {
	if m.getSubElementFunc != nil {
		return m.getSubElementFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCatalogRepository) CreateSubElement(ctx context.Context, sub *model.CostSubElement) error {
	if m.createSubElemFunc != nil {
		return m.createSubElemFunc(ctx, sub)
	}
	return nil
}

func (m *mockCatalogRepository) UpdateSubElement(ctx context.Context, sub *model.CostSubElement) error {
	if m.updateSubElemFunc != nil {
		return m.updateSubElemFunc(ctx, sub)
	}
	return nil
}

func (m *mockCatalogRepository) DeleteSubElement(ctx context.Context, id string) error {
	if m.deleteSubElemFunc != nil {
		return m.deleteSubElemFunc(ctx, id)
	}
	return nil
}

func (m *mockCatalogRepository) ListUnits(ctx context.Context) ([]*model.Unit, error) {
	if m.listUnitsFunc != nil {
		return m.listUnitsFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetUnit(ctx context.Context, id string) (*model.Unit, error) {
	if m.getUnitFunc != nil {
		return m.getUnitFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCatalogRepository) ListCostItems(ctx context.Context, filter model.CostItemFilter) ([]*model.CostItem, error) {
	if m.listCostItemsFunc != nil {
		return m.listCostItemsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockCatalogRepository) GetCostItem(ctx context.Context, id string) (*model.CostItem, error) {
	if m.getCostItemFunc != nil {
		return m.getCostItemFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockCatalogRepository) CreateCostItem(ctx context.Context, item *model.CostItem) error {
	if m.createCostItemFunc != nil {
		return m.createCostItemFunc(ctx, item)
	}
	return nil
}

func (m *mockCatalogRepository) UpdateCostItem(ctx context.Context, item *model.CostItem) error {
	if m.updateCostItemFunc != nil {
		return m.updateCostItemFunc(ctx, item)
	}
	return nil
}

func (m *mockCatalogRepository) DeleteCostItem(ctx context.Context, id string) error {
	if m.deleteCostItemFunc != nil {
		return m.deleteCostItemFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockEstimateRepository — EstimateRepository のモック
// ---------------------------------------------------------------------------

type mockEstimateRepository struct {
	listByProjectIDFunc func(ctx context.Context, projectID string) ([]*model.EstimateLineItem, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.EstimateLineItem, error)
	createFunc          func(ctx context.Context, line *model.EstimateLineItem) error
	updateFunc          func(ctx context.Context, line *model.EstimateLineItem) error
	deleteFunc          func(ctx context.Context, id string) error
}

func (m *mockEstimateRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.EstimateLineItem, error) {
	if m.listByProjectIDFunc != nil {
		return m.listByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockEstimateRepository) GetByID(ctx context.Context, id string) (*model.EstimateLineItem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockEstimateRepository) Create(ctx context.Context, line *model.EstimateLineItem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, line)
	}
	return nil
}

func (m *mockEstimateRepository) Update(ctx context.Context, line *model.EstimateLineItem) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, line)
	}
	return nil
}

func (m *mockEstimateRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockActualRepository — ActualRepository のモック
// ---------------------------------------------------------------------------

type mockActualRepository struct {
	listByProjectIDFunc func(ctx context.Context, projectID string) ([]*model.ActualCostRecord, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.ActualCostRecord, error)
	createFunc          func(ctx context.Context, record *model.ActualCostRecord) error
	updateFunc          func(ctx context.Context, record *model.ActualCostRecord) error
	deleteFunc          func(ctx context.Context, id string) error
}

func (m *mockActualRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.ActualCostRecord, error) {
	if m.listByProjectIDFunc != nil {
		return m.listByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockActualRepository) GetByID(ctx context.Context, id string) (*model.ActualCostRecord, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockActualRepository) Create(ctx context.Context, record *model.ActualCostRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	return nil
}

func (m *mockActualRepository) Update(ctx context.Context, record *model.ActualCostRecord) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, record)
	}
	return nil
}

func (m *mockActualRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
