package stores

import (
	"time"

	"github.com/google/uuid"
	"github.com/rkartside/quoter-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	RateFactor           float64   `json:"rate_factor"`
	RequiresSaleAmount   bool      `json:"requires_sale_amount"`
	ImageURL             *string   `json:"image_url,omitempty"`
	CustomClientNameText *string   `json:"custom_client_name_text,omitempty"`
	OwnerID              uuid.UUID `json:"owner_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:                   m.ID,
		Name:                 m.Name,
		RateFactor:           m.RateFactor,
		RequiresSaleAmount:   m.RequiresSaleAmount,
		ImageURL:             cloneStringPtr(m.ImageURL),
		CustomClientNameText: cloneStringPtr(m.CustomClientNameText),
		OwnerID:              m.OwnerID,
		CreatedAt:            m.CreatedAt,
	}
}

// FromModels maps a slice of persisted stores.
func FromModels(ms []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
