package rates

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/db"
	"github.com/rkartside/quoter-backend/pkg/db/models"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes rate calculation against persisted store configuration.
type Service interface {
	CalculateForStore(ctx context.Context, storeID uuid.UUID, input CalculateInput) (int64, error)
}

type service struct {
	stores storeRepository
}

// NewService builds a rate service backed by the store repository.
func NewService(stores storeRepository) (Service, error) {
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{stores: stores}, nil
}

func (s *service) CalculateForStore(ctx context.Context, storeID uuid.UUID, input CalculateInput) (int64, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	return Calculate(PricingConfig{
		RateFactor:         store.RateFactor,
		RequiresSaleAmount: store.RequiresSaleAmount,
	}, input)
}
