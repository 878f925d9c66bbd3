package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rkartside/quoter-backend/pkg/enums"
)

// Quote is a priced service quotation for a client. The rate amount is fixed
// at creation; confirmation and status changes never recompute it.
type Quote struct {
	ID             int64              `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID        uuid.UUID          `gorm:"column:store_id;type:uuid;not null;index"`
	ClientName     string             `gorm:"column:client_name;not null"`
	NumberOfSpaces int                `gorm:"column:number_of_spaces;not null"`
	SaleAmount     int64              `gorm:"column:sale_amount;not null;default:0"`
	RateAmount     *int64             `gorm:"column:rate_amount"`
	IsConfirmed    bool               `gorm:"column:is_confirmed;not null;default:false"`
	Status         *enums.QuoteStatus `gorm:"column:status;type:text"`
	CreatedBy      uuid.UUID          `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
}

// EffectiveStatus reads the workflow status, treating NULL as pending.
func (q Quote) EffectiveStatus() enums.QuoteStatus {
	if q.Status == nil {
		return enums.QuoteStatusPending
	}
	return *q.Status
}
