package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DurationAllDay is the duration code of a service that takes the whole day.
const DurationAllDay = -1

// CatalogItem is a service the business sells.
type CatalogItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	Type         string          `gorm:"not null" json:"type"` // category name
	Name         string          `gorm:"not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	DurationCode int             `json:"duration"`
	Price        decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"price"`
	Color        string          `json:"color"`

	PayableOnline         bool `json:"payableOnline"`
	BookableOnline        bool `json:"bookableOnline"`
	PayableInInstallments bool `json:"payableInInstallments"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ci *CatalogItem) BeforeCreate(tx *gorm.DB) (err error) {
	ci.ID = uuid.New()
	return
}
