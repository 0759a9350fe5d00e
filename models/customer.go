package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`

	Firstname   string `gorm:"not null" json:"firstname"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Phone       string `gorm:"index" json:"phone"`
	Address     string `json:"address"`
	Note        string `gorm:"type:text" json:"note"`
	Company     string `json:"company"`
	Source      string `json:"source"`
	SourceOther string `json:"sourceOther"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}

func (c *Customer) FullName() string {
	if c.Lastname == "" {
		return c.Firstname
	}
	return c.Firstname + " " + c.Lastname
}
