package service

import (
	"context"
	"fmt"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// ContractorService は施工業者管理のビジネスロジックのインターフェース
type ContractorService interface {
	List(ctx context.Context, actor Actor, opts model.ContractorListOptions) ([]*model.Contractor, error)
	GetByID(ctx context.Context, actor Actor, id string) (*model.Contractor, error)
	Create(ctx context.Context, actor Actor, contractor *model.Contractor) error
	Update(ctx context.Context, actor Actor, id string, patch model.ContractorPatch) (*model.Contractor, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type contractorService struct {
	contractorRepo repository.ContractorRepository
}

// NewContractorService は ContractorService を生成する
func NewContractorService(contractorRepo repository.ContractorRepository) ContractorService {
	return &contractorService{contractorRepo: contractorRepo}
}

func (s *contractorService) List(ctx context.Context, actor Actor, opts model.ContractorListOptions) ([]*model.Contractor, error) {
	return s.contractorRepo.List(ctx, actor.UserID, opts)
}

func (s *contractorService) GetByID(ctx context.Context, actor Actor, id string) (*model.Contractor, error) {
	return s.contractorRepo.GetByID(ctx, id, actor.UserID)
}

func (s *contractorService) Create(ctx context.Context, actor Actor, contractor *model.Contractor) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	if contractor.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	contractor.UserID = actor.UserID
	if contractor.Country == "" {
		contractor.Country = "United Kingdom"
	}
	contractor.IsActive = true
	return s.contractorRepo.Create(ctx, contractor)
}

func (s *contractorService) Update(ctx context.Context, actor Actor, id string, patch model.ContractorPatch) (*model.Contractor, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	contractor, err := s.contractorRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		contractor.Name = *patch.Name
	}
	if patch.Trade != nil {
		contractor.Trade = *patch.Trade
	}
	if patch.Email != nil {
		contractor.Email = *patch.Email
	}
	if patch.Phone != nil {
		contractor.Phone = *patch.Phone
	}
	if patch.Address != nil {
		contractor.Address = *patch.Address
	}
	if patch.City != nil {
		contractor.City = *patch.City
	}
	if patch.Postcode != nil {
		contractor.Postcode = *patch.Postcode
	}
	if patch.Country != nil {
		contractor.Country = *patch.Country
	}
	if patch.IsActive != nil {
		contractor.IsActive = *patch.IsActive
	}
	if patch.Notes != nil {
		contractor.Notes = *patch.Notes
	}

	if err := s.contractorRepo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *contractorService) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	return s.contractorRepo.Delete(ctx, id, actor.UserID)
}
