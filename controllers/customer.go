package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"ezpresta-backend/models"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Firstname   string `json:"firstname" binding:"required"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	Address     string `json:"address"`
	Note        string `json:"note"`
	Company     string `json:"company"`
	Source      string `json:"source"`
	SourceOther string `json:"sourceOther"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Firstname   *string `json:"firstname" binding:"omitempty,min=1"`
	Lastname    *string `json:"lastname"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,phone"`
	Address     *string `json:"address"`
	Note        *string `json:"note"`
	Company     *string `json:"company"`
	Source      *string `json:"source"`
	SourceOther *string `json:"sourceOther"`
}

// StatsInvalidator drops cached dashboard figures of an owner.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID)
}

type CustomerController struct {
	Customers repository.Store[models.Customer]
	Stats     StatsInvalidator
}

func (cc *CustomerController) invalidate(c *gin.Context, ownerID uuid.UUID) {
	if cc.Stats != nil {
		cc.Stats.Invalidate(c.Request.Context(), ownerID)
	}
}

// phoneTaken reports whether another customer of the owner uses phone.
func (cc *CustomerController) phoneTaken(c *gin.Context, ownerID uuid.UUID, phone string, self uuid.UUID) (bool, error) {
	if phone == "" {
		return false, nil
	}
	matches, err := cc.Customers.Find(c.Request.Context(), ownerID, map[string]any{"phone": phone})
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if m.ID != self {
			return true, nil
		}
	}
	return false, nil
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	phone := utils.NormalizePhone(input.Phone)
	taken, err := cc.phoneTaken(c, ownerID, phone, uuid.Nil)
	if err != nil {
		respondError(c, err)
		return
	}
	if taken {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	}

	customer := models.Customer{
		OwnerID:     ownerID,
		Firstname:   strings.TrimSpace(input.Firstname),
		Lastname:    strings.TrimSpace(input.Lastname),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:       phone,
		Address:     input.Address,
		Note:        input.Note,
		Company:     input.Company,
		Source:      input.Source,
		SourceOther: input.SourceOther,
	}
	if err := cc.Customers.Create(c.Request.Context(), &customer); err != nil {
		respondError(c, err)
		return
	}

	cc.invalidate(c, ownerID)
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists the owner's customers, optionally narrowed by ?source=.
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	filter := map[string]any{}
	if source := c.Query("source"); source != "" {
		filter["source"] = source
	}
	customers, err := cc.Customers.Find(c.Request.Context(), ownerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (cc *CustomerController) GetCustomer(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := cc.Customers.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	customer, err := cc.Customers.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if input.Phone != nil {
		phone := utils.NormalizePhone(*input.Phone)
		taken, err := cc.phoneTaken(c, ownerID, phone, customer.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		if taken {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		}
		customer.Phone = phone
	}
	if input.Firstname != nil {
		customer.Firstname = strings.TrimSpace(*input.Firstname)
	}
	if input.Lastname != nil {
		customer.Lastname = strings.TrimSpace(*input.Lastname)
	}
	if input.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Note != nil {
		customer.Note = *input.Note
	}
	if input.Company != nil {
		customer.Company = *input.Company
	}
	if input.Source != nil {
		customer.Source = *input.Source
	}
	if input.SourceOther != nil {
		customer.SourceOther = *input.SourceOther
	}

	if err := cc.Customers.Save(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}

	cc.invalidate(c, ownerID)
	c.JSON(http.StatusOK, customer)
}

func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := cc.Customers.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
			return
		}
		respondError(c, err)
		return
	}

	cc.invalidate(c, ownerID)
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
