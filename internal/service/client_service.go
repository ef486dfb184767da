package service

import (
	"context"
	"fmt"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// ClientService は顧客管理のビジネスロジックのインターフェース。
// 顧客は所有ユーザーにのみ見える。
type ClientService interface {
	List(ctx context.Context, actor Actor, opts model.ClientListOptions) ([]*model.Client, error)
	GetByID(ctx context.Context, actor Actor, id string) (*model.Client, error)
	Create(ctx context.Context, actor Actor, client *model.Client) error
	Update(ctx context.Context, actor Actor, id string, patch model.ClientPatch) (*model.Client, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService は ClientService を生成する
func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) List(ctx context.Context, actor Actor, opts model.ClientListOptions) ([]*model.Client, error) {
	return s.clientRepo.List(ctx, actor.UserID, opts)
}

func (s *clientService) GetByID(ctx context.Context, actor Actor, id string) (*model.Client, error) {
	return s.clientRepo.GetByID(ctx, id, actor.UserID)
}

func (s *clientService) Create(ctx context.Context, actor Actor, client *model.Client) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	if client.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	client.UserID = actor.UserID
	if client.Country == "" {
		client.Country = "United Kingdom"
	}
	client.IsActive = true
	return s.clientRepo.Create(ctx, client)
}

func (s *clientService) Update(ctx context.Context, actor Actor, id string, patch model.ClientPatch) (*model.Client, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	client, err := s.clientRepo.GetByID(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		client.Name = *patch.Name
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	if patch.City != nil {
		client.City = *patch.City
	}
	if patch.Postcode != nil {
		client.Postcode = *patch.Postcode
	}
	if patch.Country != nil {
		client.Country = *patch.Country
	}
	if patch.Website != nil {
		client.Website = *patch.Website
	}
	if patch.IsActive != nil {
		client.IsActive = *patch.IsActive
	}
	if patch.Notes != nil {
		client.Notes = *patch.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	return s.clientRepo.Delete(ctx, id, actor.UserID)
}
