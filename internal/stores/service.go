package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/db"
	"github.com/rkartside/quoter-backend/pkg/db/models"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
)

type storeRepository interface {
	FindAll(ctx context.Context) ([]models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Store, error)
}

// Service exposes store operations.
type Service interface {
	List(ctx context.Context) ([]StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*StoreDTO, error)
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	stores, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return FromModels(stores), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found for user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store by owner")
	}
	return FromModel(store), nil
}
