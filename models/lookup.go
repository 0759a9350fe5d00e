package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LookupKind separates the owner-defined pick lists stored in lookups.
type LookupKind string

const (
	LookupCategory        LookupKind = "category"
	LookupCustomerSource  LookupKind = "customer_source"
	LookupRejectionReason LookupKind = "rejection_reason"
)

// Lookup is a named entry of one of the owner's pick lists (catalog
// categories, customer sources, rejection reasons).
type Lookup struct {
	ID      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID  `gorm:"type:uuid;index:idx_lookup_owner_kind,priority:1;not null" json:"-"`
	Kind    LookupKind `gorm:"type:varchar(32);index:idx_lookup_owner_kind,priority:2;not null" json:"kind"`
	Name    string     `gorm:"not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Lookup) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}
