package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/db"
	"github.com/rkartside/quoter-backend/pkg/db/models"
	"github.com/rkartside/quoter-backend/pkg/enums"
	pkgerrors "github.com/rkartside/quoter-backend/pkg/errors"
	"github.com/rkartside/quoter-backend/pkg/pagination"
	"go.uber.org/multierr"
)

type quoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	FindByID(ctx context.Context, id int64) (*models.Quote, error)
	SetConfirmed(ctx context.Context, id int64) error
	List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Quote, int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	UpdateStatusByIDs(ctx context.Context, ids []int64, status enums.QuoteStatus) (int64, error)
}

// Actor identifies the caller for store scoping decisions.
type Actor struct {
	UserID        uuid.UUID
	Role          enums.MemberRole
	ActiveStoreID *uuid.UUID
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.MemberRoleAdmin
}

// ListInput wraps filters, scope intent, and pagination for a list call.
type ListInput struct {
	Filters   ListFilters
	AllStores bool
	Page      pagination.Params
}

// Service exposes the quote lifecycle.
type Service interface {
	Create(ctx context.Context, actor Actor, input CreateQuoteDTO, rateAmount int64) (*QuoteDTO, error)
	Confirm(ctx context.Context, id int64) (*QuoteDTO, error)
	List(ctx context.Context, actor Actor, input ListInput) (*QuoteListDTO, error)
	DeleteBulk(ctx context.Context, ids []int64) (int64, error)
	UpdateStatusBulk(ctx context.Context, ids []int64, status enums.QuoteStatus) (int64, error)
}

type service struct {
	repo quoteRepository
}

// NewService builds a quote service with the provided repository.
func NewService(repo quoteRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, actor Actor, input CreateQuoteDTO, rateAmount int64) (*QuoteDTO, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client name is required")
	}
	if input.NumberOfSpaces < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "number of spaces must be at least 1")
	}
	if input.StoreID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !actor.IsAdmin() {
		if actor.ActiveStoreID == nil || *actor.ActiveStoreID != input.StoreID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot create quotes for another store")
		}
	}

	quote, err := s.repo.Create(ctx, input.ToModel(rateAmount, actor.UserID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create quote")
	}
	return FromModel(quote), nil
}

func (s *service) Confirm(ctx context.Context, id int64) (*QuoteDTO, error) {
	quote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}

	// Second confirm is a no-op success.
	if quote.IsConfirmed {
		return FromModel(quote), nil
	}

	if err := s.repo.SetConfirmed(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm quote")
	}
	quote.IsConfirmed = true
	return FromModel(quote), nil
}

func (s *service) List(ctx context.Context, actor Actor, input ListInput) (*QuoteListDTO, error) {
	filters := input.Filters

	// Non-admins are always pinned to their active store. Admins widen the
	// scope only by asking for all stores explicitly.
	if !actor.IsAdmin() || !input.AllStores {
		if actor.ActiveStoreID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "no active store selected")
		}
		filters.StoreID = actor.ActiveStoreID
	}

	quotes, total, err := s.repo.List(ctx, filters, input.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	return buildListDTO(FromModels(quotes), total, input.Page), nil
}

func (s *service) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	if err := validateIDs(ids); err != nil {
		return 0, err
	}
	affected, err := s.repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete quotes")
	}
	return affected, nil
}

func (s *service) UpdateStatusBulk(ctx context.Context, ids []int64, status enums.QuoteStatus) (int64, error) {
	if !status.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid quote status %q", status))
	}
	if err := validateIDs(ids); err != nil {
		return 0, err
	}
	affected, err := s.repo.UpdateStatusByIDs(ctx, ids, status)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	return affected, nil
}

func validateIDs(ids []int64) error {
	if len(ids) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one quote id is required")
	}
	var invalid error
	for _, id := range ids {
		if id <= 0 {
			invalid = multierr.Append(invalid, fmt.Errorf("invalid quote id %d", id))
		}
	}
	if invalid != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, invalid, "invalid quote ids")
	}
	return nil
}
