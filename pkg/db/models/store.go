package models

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a tenant with its own pricing configuration.
type Store struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string    `gorm:"column:name;not null"`
	RateFactor           float64   `gorm:"column:rate_factor;not null;default:0;check:rate_factor >= 0"`
	RequiresSaleAmount   bool      `gorm:"column:requires_sale_amount;not null;default:false"`
	ImageURL             *string   `gorm:"column:image_url"`
	CustomClientNameText *string   `gorm:"column:custom_client_name_text"`
	OwnerID              uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
}
