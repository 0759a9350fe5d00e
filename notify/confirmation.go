package notify

import (
	"fmt"
	"strings"
	"time"

	"ezpresta-backend/models"

	"github.com/shopspring/decimal"
)

// ConfirmationPayload is what the customer is told when an order is
// confirmed. PriceToPay is the computed order total, fees and discounts
// included.
type ConfirmationPayload struct {
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	CatalogType string          `json:"catalogType"`
	Client      string          `json:"client"`
	Where       string          `json:"where"`
	PlaceID     string          `json:"placeId"`
	PriceToPay  decimal.Decimal `json:"priceToPay"`
	Date        time.Time       `json:"date"`
}

func NewConfirmationPayload(order *models.Order, owner *models.User) ConfirmationPayload {
	p := ConfirmationPayload{
		Email:       order.CustomerEmail,
		CatalogType: order.CatalogType,
		Client:      order.CustomerName,
		PriceToPay:  order.TotalPrice,
		Date:        order.SelectedDate,
	}
	if owner != nil {
		p.Username = owner.CompanyName
		if p.Username == "" {
			p.Username = owner.Name
		}
	}
	if loc := order.MainLocation(); loc != nil {
		p.Where = loc.Description
		p.PlaceID = loc.PlaceID
	}
	return p
}

func (p ConfirmationPayload) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s, your %s booking with %s on %s is confirmed.",
		p.Client, p.CatalogType, p.Username, p.Date.Format("02/01/2006"))
	if p.Where != "" {
		fmt.Fprintf(&b, " Where: %s.", p.Where)
	}
	fmt.Fprintf(&b, " Amount due: %s.", p.PriceToPay.StringFixed(2))
	return b.String()
}
