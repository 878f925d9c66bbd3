package quotes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rkartside/quoter-backend/pkg/db/models"
	"github.com/rkartside/quoter-backend/pkg/enums"
	"github.com/rkartside/quoter-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository handles quote persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to quote operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new quote row.
func (r *Repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindByID loads a quote by its numeric id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Quote, error) {
	var quote models.Quote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// SetConfirmed marks the quote accepted. Rate and sale amounts are untouched.
func (r *Repository) SetConfirmed(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Update("is_confirmed", true).Error
}

// List returns the filtered quote page plus the total count of matches.
func (r *Repository) List(ctx context.Context, filters ListFilters, page pagination.Params) ([]models.Quote, int64, error) {
	filters = filters.normalized()

	query := r.db.WithContext(ctx).Model(&models.Quote{})

	if filters.StoreID != nil {
		query = query.Where("store_id = ?", *filters.StoreID)
	}
	if name := strings.TrimSpace(filters.ClientName); name != "" {
		query = query.Where("LOWER(client_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at < ?", endOfDayExclusive(*filters.DateTo))
	}
	if filters.IsConfirmed != nil {
		query = query.Where("is_confirmed = ?", *filters.IsConfirmed)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []models.Quote
	order := fmt.Sprintf("%s %s", filters.Sort, strings.ToUpper(filters.Direction.String()))
	if err := query.
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&quotes).Error; err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

// DeleteByIDs removes the quotes in the id set and reports rows affected.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Quote{})
	return result.RowsAffected, result.Error
}

// UpdateStatusByIDs bulk-sets the workflow status and reports rows affected.
func (r *Repository) UpdateStatusByIDs(ctx context.Context, ids []int64, status enums.QuoteStatus) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("id IN ?", ids).
		Update("status", status)
	return result.RowsAffected, result.Error
}
