package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/enums"
	"github.com/rkartside/quoter-backend/pkg/pagination"
)

// ListFilters narrows the quote list query. StoreID nil means all stores,
// which the service only allows for admins.
type ListFilters struct {
	StoreID     *uuid.UUID
	ClientName  string
	DateFrom    *time.Time
	DateTo      *time.Time
	IsConfirmed *bool
	Sort        enums.QuoteSortKey
	Direction   enums.SortDirection
}

// normalized fills sort defaults: created_at descending.
func (f ListFilters) normalized() ListFilters {
	if !f.Sort.IsValid() {
		f.Sort = enums.QuoteSortCreatedAt
	}
	if !f.Direction.IsValid() {
		f.Direction = enums.SortDescending
	}
	return f
}

// QuoteListDTO is the paginated list payload.
type QuoteListDTO struct {
	Quotes   []QuoteDTO `json:"quotes"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	NextPage *int       `json:"next_page,omitempty"`
}

// endOfDayExclusive returns the instant just past the calendar day holding t,
// so created_at < bound keeps everything stamped on that day.
func endOfDayExclusive(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).Add(24 * time.Hour)
}

func buildListDTO(quotes []QuoteDTO, total int64, page pagination.Params) *QuoteListDTO {
	return &QuoteListDTO{
		Quotes:   quotes,
		Total:    total,
		Page:     pagination.NormalizePage(page.Page),
		PageSize: pagination.NormalizePageSize(page.PageSize),
		NextPage: pagination.NextPage(page, len(quotes), total),
	}
}
