package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"
	"ezpresta-backend/payments"
	"ezpresta-backend/pricing"
	"ezpresta-backend/repository"
	"ezpresta-backend/services"
	"ezpresta-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService is what the order handlers need from services.OrderService.
type OrderService interface {
	Quote(ctx context.Context, ownerID uuid.UUID, d services.OrderDraft) (services.Quote, error)
	Create(ctx context.Context, ownerID uuid.UUID, d services.OrderDraft) (*models.Order, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, ownerID uuid.UUID, filter repository.OrderFilter) ([]models.Order, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, version int, d services.OrderDraft) (*models.Order, error)
	RecalculateInstallments(ctx context.Context, ownerID, id uuid.UUID, version int, percentages []decimal.Decimal) (*models.Order, error)
	MarkInstallmentPaid(ctx context.Context, ownerID, id uuid.UUID, number int, mode payments.Mode, date time.Time) (*models.Order, error)
	Confirm(ctx context.Context, ownerID, id uuid.UUID) (services.ConfirmResult, error)
	Cancel(ctx context.Context, ownerID, id, reasonID uuid.UUID, reason string) (*models.Order, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	AttachWorkflow(ctx context.Context, ownerID, id, workflowID uuid.UUID) (*models.Order, error)
	SetTaskDone(ctx context.Context, ownerID, id uuid.UUID, taskID string, done bool) (*models.Order, error)
}

type LocationInput struct {
	EventName   string `json:"eventName"`
	EventDate   string `json:"eventDate"`
	PlaceID     string `json:"placeId"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
}

// OrderInput is the body of quote, create and update. totalPrice is never
// read from the client.
type OrderInput struct {
	CatalogItemID string             `json:"catalogItemId"`
	CustomerID    string             `json:"customerId"`
	SelectedDate  string             `json:"selectedDate"`
	PaymentPlan   string             `json:"paymentPlan" binding:"omitempty,paymentplan"`
	Fees          []pricing.Fee      `json:"fees"`
	Discounts     []pricing.Discount `json:"discounts"`
	Locations     []LocationInput    `json:"locations"`
	Version       int                `json:"version"`
}

func (in OrderInput) draft() (services.OrderDraft, error) {
	var d services.OrderDraft
	var err error
	if d.CatalogItemID, err = optionalID(in.CatalogItemID); err != nil {
		return d, err
	}
	if d.CustomerID, err = optionalID(in.CustomerID); err != nil {
		return d, err
	}
	if in.SelectedDate != "" {
		if d.SelectedDate, err = utils.ParseDate(in.SelectedDate); err != nil {
			return d, err
		}
	}
	d.Plan = payments.PlanNone
	if in.PaymentPlan != "" {
		if d.Plan, err = payments.ParsePlan(in.PaymentPlan); err != nil {
			return d, err
		}
	}
	d.Fees = in.Fees
	d.Discounts = in.Discounts

	d.Locations = make([]models.OrderLocation, len(in.Locations))
	for i, l := range in.Locations {
		loc := models.OrderLocation{
			EventName:   l.EventName,
			PlaceID:     l.PlaceID,
			Description: l.Description,
			IsDefault:   l.IsDefault,
		}
		if l.EventDate != "" {
			if loc.EventDate, err = utils.ParseDate(l.EventDate); err != nil {
				return d, err
			}
		}
		d.Locations[i] = loc
	}
	return d, nil
}

type RecalculateInput struct {
	Version     int               `json:"version"`
	Percentages []decimal.Decimal `json:"percentages" binding:"required"`
}

type PayInput struct {
	Mode string `json:"mode" binding:"required,paymentmode"`
	Date string `json:"date"`
}

type CancelInput struct {
	ReasonID string `json:"reasonId"`
	Reason   string `json:"reason"`
}

type TaskDoneInput struct {
	IsDone *bool `json:"isDone" binding:"required"`
}

type AttachWorkflowInput struct {
	WorkflowID string `json:"workflowId" binding:"required,uuid"`
}

// orderResponse adds the derived payment figures the booking screens show.
type orderResponse struct {
	*models.Order
	DisplayPercentages []decimal.Decimal `json:"displayPercentages"`
	PaidValue          decimal.Decimal   `json:"paidValue"`
	PendingTasks       int               `json:"pendingTasks"`
}

func orderView(o *models.Order) orderResponse {
	insts := o.PaymentInstallments()
	return orderResponse{
		Order:              o,
		DisplayPercentages: payments.DisplayPercentages(insts, o.TotalPrice),
		PaidValue:          payments.PaidValue(insts),
		PendingTasks:       o.PendingTasks(),
	}
}

type OrderController struct {
	Orders OrderService
}

// bindDraft reads an OrderInput and converts it, answering 400 on failure.
func bindDraft(c *gin.Context) (services.OrderDraft, int, bool) {
	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return services.OrderDraft{}, 0, false
	}
	d, err := input.draft()
	if err != nil {
		respondBindError(c, err)
		return services.OrderDraft{}, 0, false
	}
	return d, input.Version, true
}

// QuoteOrder prices a draft without saving it.
func (oc *OrderController) QuoteOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	d, _, ok := bindDraft(c)
	if !ok {
		return
	}

	q, err := oc.Orders.Quote(c.Request.Context(), ownerID, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	d, _, ok := bindDraft(c)
	if !ok {
		return
	}

	order, err := oc.Orders.Create(c.Request.Context(), ownerID, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderView(order))
}

// GetOrders lists orders, filtered by ?year=, ?status= and ?customerId=.
func (oc *OrderController) GetOrders(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}

	var filter repository.OrderFilter
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
		filter.Year = year
	}
	if s := c.Query("status"); s != "" {
		status, err := booking.ParseStatus(s)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.Status = status
	}
	customerID, err := optionalID(c.Query("customerId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customerId format")
		return
	}
	filter.CustomerID = customerID

	orders, err := oc.Orders.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i := range orders {
		out[i] = orderView(&orders[i])
	}
	c.JSON(http.StatusOK, out)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, version, ok := bindDraft(c)
	if !ok {
		return
	}
	if version < 1 {
		respondError(c, services.ErrVersionRequired)
		return
	}

	order, err := oc.Orders.Update(c.Request.Context(), ownerID, id, version, d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (oc *OrderController) RecalculateInstallments(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input RecalculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	if input.Version < 1 {
		respondError(c, services.ErrVersionRequired)
		return
	}

	order, err := oc.Orders.RecalculateInstallments(c.Request.Context(), ownerID, id, input.Version, input.Percentages)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (oc *OrderController) PayInstallment(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid installment number")
		return
	}

	var input PayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	mode, err := payments.ParseMode(input.Mode)
	if err != nil {
		respondError(c, err)
		return
	}
	var date time.Time
	if input.Date != "" {
		if date, err = utils.ParseDate(input.Date); err != nil {
			respondBindError(c, err)
			return
		}
	}

	order, err := oc.Orders.MarkInstallmentPaid(c.Request.Context(), ownerID, id, number, mode, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

// ConfirmOrder answers 200 even when the customer could not be notified;
// notified tells the client.
func (oc *OrderController) ConfirmOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	res, err := oc.Orders.Confirm(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": orderView(res.Order), "notified": res.Notified})
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input CancelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	reasonID, err := optionalID(input.ReasonID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reasonId format")
		return
	}

	order, err := oc.Orders.Cancel(c.Request.Context(), ownerID, id, reasonID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := oc.Orders.Delete(c.Request.Context(), ownerID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (oc *OrderController) AttachWorkflow(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input AttachWorkflowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.Orders.AttachWorkflow(c.Request.Context(), ownerID, id, uuid.MustParse(input.WorkflowID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}

func (oc *OrderController) SetTaskDone(c *gin.Context) {
	ownerID, ok := utils.OwnerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input TaskDoneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := oc.Orders.SetTaskDone(c.Request.Context(), ownerID, id, c.Param("taskId"), *input.IsDone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderView(order))
}
