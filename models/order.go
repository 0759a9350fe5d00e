// models/order.go
package models

import (
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/payments"
	"ezpresta-backend/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order is a booking of a catalog service for a customer on a date. The
// catalog type, name and base price are copied at creation so later catalog
// edits do not rewrite existing orders.
type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID       uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`
	OrderNumber   string    `gorm:"uniqueIndex;not null" json:"orderNumber"`
	CatalogItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"catalogItemId"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	CatalogType   string `json:"catalogType"`
	CatalogName   string `json:"catalogName"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	SelectedDate time.Time `gorm:"index;not null" json:"selectedDate"`

	BasePrice   decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"basePrice"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"totalPrice"`
	PaymentPlan string          `gorm:"type:varchar(10);not null;default:'none'" json:"paymentPlan"`

	Status          string     `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	ConfirmedAt     *time.Time `json:"confirmedAt"`
	CanceledAt      *time.Time `json:"rejectionDate"`
	RejectionReason *string    `json:"rejectionReason"`
	FullyPaidAt     *time.Time `json:"fullyPaidDate"`

	WorkflowName string                    `json:"workflowName"`
	Tasks        datatypes.JSONSlice[Task] `json:"tasks"`

	// Version guards against concurrent overwrites; see repository.ErrVersionConflict.
	Version int `gorm:"not null;default:1" json:"version"`

	Locations    []OrderLocation    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"locations"`
	Fees         []OrderFee         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"fees"`
	Discounts    []OrderDiscount    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"discounts"`
	Installments []OrderInstallment `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"paymentDetails"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type OrderLocation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Position    int       `json:"-"`
	EventName   string    `json:"eventName"`
	EventDate   time.Time `json:"eventDate"`
	PlaceID     string    `json:"placeId"`
	Description string    `json:"description"`
	IsDefault   bool      `json:"isDefault"`
}

type OrderFee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	Position     int             `json:"-"`
	Name         string          `gorm:"not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"amount"`
	IsPercentage bool            `json:"isPercentage"`
}

type OrderDiscount struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	Position     int             `json:"-"`
	Name         string          `gorm:"not null" json:"name"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"amount"`
	IsPercentage bool            `json:"isPercentage"`
}

type OrderInstallment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	PaymentNumber int             `gorm:"not null" json:"paymentNumber"`
	Percentage    decimal.Decimal `gorm:"type:numeric(9,4);not null" json:"percentage"`
	Value         decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"value"`
	IsPaid        bool            `gorm:"default:false" json:"isPaid"`
	PaymentDate   *time.Time      `json:"paymentDate"`
	PaymentMode   *string         `gorm:"type:varchar(20)" json:"paymentMode"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

func (l *OrderLocation) BeforeCreate(tx *gorm.DB) (err error) {
	l.ID = uuid.New()
	return
}

func (f *OrderFee) BeforeCreate(tx *gorm.DB) (err error) {
	f.ID = uuid.New()
	return
}

func (d *OrderDiscount) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = uuid.New()
	return
}

func (i *OrderInstallment) BeforeCreate(tx *gorm.DB) (err error) {
	i.ID = uuid.New()
	return
}

func (o *Order) CurrentStatus() booking.Status {
	if o.Status == "" {
		return booking.StatusPending
	}
	return booking.Status(o.Status)
}

func (o *Order) Plan() payments.Plan {
	plan, err := payments.ParsePlan(o.PaymentPlan)
	if err != nil {
		return payments.PlanNone
	}
	return plan
}

func (o *Order) PricingFees() []pricing.Fee {
	fees := make([]pricing.Fee, len(o.Fees))
	for i, f := range o.Fees {
		fees[i] = pricing.Fee{Name: f.Name, Amount: f.Amount, IsPercentage: f.IsPercentage}
	}
	return fees
}

func (o *Order) SetFees(fees []pricing.Fee) {
	o.Fees = make([]OrderFee, len(fees))
	for i, f := range fees {
		o.Fees[i] = OrderFee{OrderID: o.ID, Position: i, Name: f.Name, Amount: f.Amount, IsPercentage: f.IsPercentage}
	}
}

func (o *Order) PricingDiscounts() []pricing.Discount {
	discounts := make([]pricing.Discount, len(o.Discounts))
	for i, d := range o.Discounts {
		discounts[i] = pricing.Discount{Name: d.Name, Amount: d.Amount, IsPercentage: d.IsPercentage}
	}
	return discounts
}

func (o *Order) SetDiscounts(discounts []pricing.Discount) {
	o.Discounts = make([]OrderDiscount, len(discounts))
	for i, d := range discounts {
		o.Discounts[i] = OrderDiscount{OrderID: o.ID, Position: i, Name: d.Name, Amount: d.Amount, IsPercentage: d.IsPercentage}
	}
}

func (o *Order) PaymentInstallments() []payments.Installment {
	out := make([]payments.Installment, len(o.Installments))
	for i, inst := range o.Installments {
		out[i] = payments.Installment{
			Number:      inst.PaymentNumber,
			Percentage:  inst.Percentage,
			Value:       inst.Value,
			IsPaid:      inst.IsPaid,
			PaymentDate: inst.PaymentDate,
		}
		if inst.PaymentMode != nil {
			mode := payments.Mode(*inst.PaymentMode)
			out[i].PaymentMode = &mode
		}
	}
	return out
}

func (o *Order) SetInstallments(installments []payments.Installment) {
	o.Installments = make([]OrderInstallment, len(installments))
	for i, inst := range installments {
		o.Installments[i] = OrderInstallment{
			OrderID:       o.ID,
			PaymentNumber: inst.Number,
			Percentage:    inst.Percentage,
			Value:         inst.Value,
			IsPaid:        inst.IsPaid,
			PaymentDate:   inst.PaymentDate,
		}
		if inst.PaymentMode != nil {
			mode := string(*inst.PaymentMode)
			o.Installments[i].PaymentMode = &mode
		}
	}
}

// MainLocation is the default location, or the first one when none is flagged.
func (o *Order) MainLocation() *OrderLocation {
	for i := range o.Locations {
		if o.Locations[i].IsDefault {
			return &o.Locations[i]
		}
	}
	if len(o.Locations) > 0 {
		return &o.Locations[0]
	}
	return nil
}

func (o *Order) PendingTasks() int {
	return PendingTasks(o.Tasks)
}
