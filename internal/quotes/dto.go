package quotes

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/db/models"
	"github.com/rkartside/quoter-backend/pkg/enums"
)

// QuoteDTO exposes quote data in API responses. Status always carries the
// effective value, never null.
type QuoteDTO struct {
	ID             int64             `json:"id"`
	StoreID        uuid.UUID         `json:"store_id"`
	ClientName     string            `json:"client_name"`
	NumberOfSpaces int               `json:"number_of_spaces"`
	SaleAmount     int64             `json:"sale_amount"`
	RateAmount     *int64            `json:"rate_amount"`
	IsConfirmed    bool              `json:"is_confirmed"`
	Status         enums.QuoteStatus `json:"status"`
	CreatedBy      uuid.UUID         `json:"created_by"`
	CreatedAt      time.Time         `json:"created_at"`
}

// CreateQuoteDTO holds creation-time data for a new quote.
type CreateQuoteDTO struct {
	StoreID        uuid.UUID
	ClientName     string
	NumberOfSpaces int
	SaleAmount     int64
}

// ToModel prepares the GORM model. New quotes always start unconfirmed and
// the client name is title-cased before persisting.
func (c CreateQuoteDTO) ToModel(rateAmount int64, createdBy uuid.UUID) *models.Quote {
	return &models.Quote{
		StoreID:        c.StoreID,
		ClientName:     titleCase(c.ClientName),
		NumberOfSpaces: c.NumberOfSpaces,
		SaleAmount:     c.SaleAmount,
		RateAmount:     &rateAmount,
		IsConfirmed:    false,
		CreatedBy:      createdBy,
	}
}

// FromModel maps the persisted quote into a DTO.
func FromModel(m *models.Quote) *QuoteDTO {
	if m == nil {
		return nil
	}
	dto := &QuoteDTO{
		ID:             m.ID,
		StoreID:        m.StoreID,
		ClientName:     m.ClientName,
		NumberOfSpaces: m.NumberOfSpaces,
		SaleAmount:     m.SaleAmount,
		IsConfirmed:    m.IsConfirmed,
		Status:         m.EffectiveStatus(),
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
	if m.RateAmount != nil {
		cpy := *m.RateAmount
		dto.RateAmount = &cpy
	}
	return dto
}

// FromModels maps a slice of persisted quotes.
func FromModels(ms []models.Quote) []QuoteDTO {
	out := make([]QuoteDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

// titleCase uppercases the first letter of each space-separated word and
// lowercases the rest, collapsing surrounding whitespace.
func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
