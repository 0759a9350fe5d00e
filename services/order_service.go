package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/cache"
	"ezpresta-backend/models"
	"ezpresta-backend/notify"
	"ezpresta-backend/payments"
	"ezpresta-backend/pricing"
	"ezpresta-backend/repository"
	"ezpresta-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	orders    repository.OrderRepository
	catalog   repository.Store[models.CatalogItem]
	customers repository.Store[models.Customer]
	workflows repository.Store[models.Workflow]
	lookups   repository.Store[models.Lookup]
	users     repository.UserRepository
	notifier  notify.Notifier
	cache     cache.StatsCache
	now       func() time.Time
}

type OrderDeps struct {
	Orders    repository.OrderRepository
	Catalog   repository.Store[models.CatalogItem]
	Customers repository.Store[models.Customer]
	Workflows repository.Store[models.Workflow]
	Lookups   repository.Store[models.Lookup]
	Users     repository.UserRepository
	Notifier  notify.Notifier
	Cache     cache.StatsCache
	Now       func() time.Time
}

func NewOrderService(d OrderDeps) *OrderService {
	s := &OrderService{
		orders:    d.Orders,
		catalog:   d.Catalog,
		customers: d.Customers,
		workflows: d.Workflows,
		lookups:   d.Lookups,
		users:     d.Users,
		notifier:  d.Notifier,
		cache:     d.Cache,
		now:       d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.notifier == nil {
		s.notifier = notify.LogNotifier{}
	}
	return s
}

// OrderDraft is the editable content of an order.
type OrderDraft struct {
	CatalogItemID uuid.UUID
	CustomerID    uuid.UUID
	SelectedDate  time.Time
	Plan          payments.Plan
	Fees          []pricing.Fee
	Discounts     []pricing.Discount
	Locations     []models.OrderLocation
}

type Quote struct {
	Breakdown          pricing.Breakdown      `json:"breakdown"`
	Installments       []payments.Installment `json:"paymentDetails"`
	DisplayPercentages []decimal.Decimal      `json:"displayPercentages"`
}

type ConfirmResult struct {
	Order    *models.Order `json:"order"`
	Notified bool          `json:"notified"`
}

func (s *OrderService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Printf("[CACHE] invalidate stats for %s: %v", ownerID, err)
	}
}

func (s *OrderService) catalogItem(ctx context.Context, ownerID, id uuid.UUID, plan payments.Plan) (*models.CatalogItem, error) {
	item, err := s.catalog.Get(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("catalog item %s: %w", id, err)
	}
	if plan != payments.PlanNone && !item.PayableInInstallments {
		return nil, ErrInstallmentsNotAllowed
	}
	return item, nil
}

// Quote prices a draft without storing anything.
func (s *OrderService) Quote(ctx context.Context, ownerID uuid.UUID, d OrderDraft) (Quote, error) {
	if d.CatalogItemID == uuid.Nil {
		return Quote{}, ErrMissingSelection
	}
	item, err := s.catalogItem(ctx, ownerID, d.CatalogItemID, d.Plan)
	if err != nil {
		return Quote{}, err
	}
	if err := pricing.Validate(item.Price, d.Fees, d.Discounts); err != nil {
		return Quote{}, err
	}

	b := pricing.Compute(item.Price, d.Fees, d.Discounts)
	insts, err := payments.PlanInstallments(b.Total, d.Plan)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Breakdown:          b,
		Installments:       insts,
		DisplayPercentages: payments.DisplayPercentages(insts, b.Total),
	}, nil
}

func (s *OrderService) Create(ctx context.Context, ownerID uuid.UUID, d OrderDraft) (*models.Order, error) {
	if d.CatalogItemID == uuid.Nil || d.CustomerID == uuid.Nil || d.SelectedDate.IsZero() {
		return nil, ErrMissingSelection
	}
	item, err := s.catalogItem(ctx, ownerID, d.CatalogItemID, d.Plan)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.Get(ctx, ownerID, d.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", d.CustomerID, err)
	}
	if err := pricing.Validate(item.Price, d.Fees, d.Discounts); err != nil {
		return nil, err
	}

	total := pricing.ComputeTotal(item.Price, d.Fees, d.Discounts)
	insts, err := payments.PlanInstallments(total, d.Plan)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		OrderNumber:  utils.GenerateOrderNumber(s.now()),
		SelectedDate: d.SelectedDate,
		BasePrice:    item.Price,
		TotalPrice:   total,
		PaymentPlan:  string(d.Plan),
		Status:       string(booking.StatusPending),
		Version:      1,
	}
	snapshotCatalog(order, item)
	snapshotCustomer(order, customer)
	order.SetFees(d.Fees)
	order.SetDiscounts(d.Discounts)
	order.SetInstallments(insts)
	order.Locations = locations(order.ID, d.Locations)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.invalidate(ctx, ownerID)
	return order, nil
}

func snapshotCatalog(o *models.Order, item *models.CatalogItem) {
	o.CatalogItemID = item.ID
	o.CatalogType = item.Type
	o.CatalogName = item.Name
	o.BasePrice = item.Price
}

func snapshotCustomer(o *models.Order, c *models.Customer) {
	o.CustomerID = c.ID
	o.CustomerName = c.FullName()
	o.CustomerEmail = c.Email
	o.CustomerPhone = c.Phone
}

func locations(orderID uuid.UUID, in []models.OrderLocation) []models.OrderLocation {
	out := make([]models.OrderLocation, len(in))
	for i, l := range in {
		l.ID = uuid.Nil
		l.OrderID = orderID
		l.Position = i
		out[i] = l
	}
	return out
}

func (s *OrderService) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error) {
	return s.orders.Get(ctx, ownerID, id)
}

func (s *OrderService) List(ctx context.Context, ownerID uuid.UUID, filter repository.OrderFilter) ([]models.Order, error) {
	return s.orders.List(ctx, ownerID, filter)
}

// load fetches the order and checks the version the caller edited.
func (s *OrderService) load(ctx context.Context, ownerID, id uuid.UUID, version int) (*models.Order, error) {
	if version < 1 {
		return nil, ErrVersionRequired
	}
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if version != order.Version {
		return nil, repository.ErrVersionConflict
	}
	return order, nil
}

func (s *OrderService) save(ctx context.Context, order *models.Order) error {
	if err := s.orders.Update(ctx, order); err != nil {
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}
	s.invalidate(ctx, order.OwnerID)
	return nil
}

// Update applies an edit. A fully paid order still accepts a new date,
// locations or customer; anything that would change the amount due is
// refused with booking.ErrOrderLocked.
func (s *OrderService) Update(ctx context.Context, ownerID, id uuid.UUID, version int, d OrderDraft) (*models.Order, error) {
	if d.CatalogItemID == uuid.Nil || d.CustomerID == uuid.Nil || d.SelectedDate.IsZero() {
		return nil, ErrMissingSelection
	}
	order, err := s.load(ctx, ownerID, id, version)
	if err != nil {
		return nil, err
	}

	if monetaryChange(order, d) {
		if err := order.CurrentStatus().EnsureEditable(); err != nil {
			return nil, err
		}
		if err := s.reprice(ctx, order, d); err != nil {
			return nil, err
		}
	}

	if d.CustomerID != order.CustomerID {
		customer, err := s.customers.Get(ctx, ownerID, d.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", d.CustomerID, err)
		}
		snapshotCustomer(order, customer)
	}
	order.SelectedDate = d.SelectedDate
	order.Locations = locations(order.ID, d.Locations)

	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func monetaryChange(o *models.Order, d OrderDraft) bool {
	return d.CatalogItemID != o.CatalogItemID ||
		d.Plan != o.Plan() ||
		!slices.EqualFunc(o.PricingFees(), d.Fees, func(a, b pricing.Fee) bool {
			return a.Name == b.Name && a.IsPercentage == b.IsPercentage && a.Amount.Equal(b.Amount)
		}) ||
		!slices.EqualFunc(o.PricingDiscounts(), d.Discounts, func(a, b pricing.Discount) bool {
			return a.Name == b.Name && a.IsPercentage == b.IsPercentage && a.Amount.Equal(b.Amount)
		})
}

// reprice recomputes the total and carries the installments over to it.
// Without any payment the values are re-derived from the stored
// percentages; once something is paid the difference goes onto the last
// unpaid installment, which only works when there is exactly one.
func (s *OrderService) reprice(ctx context.Context, order *models.Order, d OrderDraft) error {
	base := order.BasePrice
	var item *models.CatalogItem
	if d.CatalogItemID != order.CatalogItemID || d.Plan != order.Plan() {
		var err error
		if item, err = s.catalogItem(ctx, order.OwnerID, d.CatalogItemID, d.Plan); err != nil {
			return err
		}
		if d.CatalogItemID != order.CatalogItemID {
			base = item.Price
		}
	}
	if err := pricing.Validate(base, d.Fees, d.Discounts); err != nil {
		return err
	}

	oldTotal := order.TotalPrice
	newTotal := pricing.ComputeTotal(base, d.Fees, d.Discounts)
	insts := order.PaymentInstallments()

	var err error
	switch {
	case d.Plan != order.Plan():
		if payments.AnyPaid(insts) {
			return ErrPlanLocked
		}
		insts, err = payments.PlanInstallments(newTotal, d.Plan)
	case !payments.AnyPaid(insts):
		insts, err = payments.Recalculate(insts, newTotal)
	default:
		insts, err = payments.AdjustRemainder(insts, oldTotal, newTotal)
	}
	if err != nil {
		return err
	}

	if item != nil && d.CatalogItemID != order.CatalogItemID {
		snapshotCatalog(order, item)
	}
	order.BasePrice = base
	order.TotalPrice = newTotal
	order.PaymentPlan = string(d.Plan)
	order.SetFees(d.Fees)
	order.SetDiscounts(d.Discounts)
	order.SetInstallments(insts)
	return nil
}

// RecalculateInstallments applies manual percentages, one per installment
// in order, and re-derives the unpaid values. Paid installments must be
// given their current percentage.
func (s *OrderService) RecalculateInstallments(ctx context.Context, ownerID, id uuid.UUID, version int, percentages []decimal.Decimal) (*models.Order, error) {
	order, err := s.load(ctx, ownerID, id, version)
	if err != nil {
		return nil, err
	}
	if err := order.CurrentStatus().EnsureEditable(); err != nil {
		return nil, err
	}

	insts := order.PaymentInstallments()
	if len(percentages) != len(insts) {
		return nil, ErrPercentageCount
	}
	for i, pct := range percentages {
		if pct.Equal(insts[i].Percentage) {
			continue
		}
		number := insts[i].Number
		if insts, err = payments.SetPercentage(insts, i, pct); err != nil {
			return nil, fmt.Errorf("installment %d: %w", number, err)
		}
	}
	insts, err = payments.Recalculate(insts, order.TotalPrice)
	if err != nil {
		return nil, err
	}

	order.SetInstallments(insts)
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkInstallmentPaid records the payment of installment number, dated
// today when date is zero. The order becomes fully paid with the last one.
func (s *OrderService) MarkInstallmentPaid(ctx context.Context, ownerID, id uuid.UUID, number int, mode payments.Mode, date time.Time) (*models.Order, error) {
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	status := order.CurrentStatus()
	if err := status.EnsurePayable(); err != nil {
		return nil, err
	}

	insts := order.PaymentInstallments()
	index := slices.IndexFunc(insts, func(inst payments.Installment) bool { return inst.Number == number })
	if index < 0 {
		return nil, payments.ErrInstallmentIndex
	}

	now := s.now()
	if date.IsZero() {
		date = now
	}
	update, err := payments.MarkPaid(insts, index, mode, date, now)
	if err != nil {
		return nil, err
	}
	order.SetInstallments(update.Installments)
	if update.FullyPaid {
		next, err := status.Transition(booking.StatusFullyPaid)
		if err != nil {
			return nil, err
		}
		order.Status = string(next)
		order.FullyPaidAt = update.FullyPaidDate
	}

	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm validates the order and tells the customer. A failed notification
// is reported in the result; the confirmation stays saved.
func (s *OrderService) Confirm(ctx context.Context, ownerID, id uuid.UUID) (ConfirmResult, error) {
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return ConfirmResult{}, err
	}
	next, err := order.CurrentStatus().Transition(booking.StatusConfirmed)
	if err != nil {
		return ConfirmResult{}, err
	}

	now := s.now()
	order.Status = string(next)
	order.ConfirmedAt = &now
	order.CanceledAt = nil
	order.RejectionReason = nil
	if err := s.save(ctx, order); err != nil {
		return ConfirmResult{}, err
	}

	return ConfirmResult{Order: order, Notified: s.sendConfirmation(ctx, order)}, nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) bool {
	var owner *models.User
	if s.users != nil {
		var err error
		if owner, err = s.users.GetByID(ctx, order.OwnerID); err != nil {
			log.Printf("[NOTIFY] owner %s for order %s: %v", order.OwnerID, order.OrderNumber, err)
		}
	}
	payload := notify.NewConfirmationPayload(order, owner)
	if _, err := s.notifier.Send(ctx, order.CustomerPhone, payload.Message()); err != nil {
		log.Printf("[NOTIFY] confirmation for order %s not sent: %v", order.OrderNumber, err)
		return false
	}
	return true
}

// Cancel rejects the order with a reason picked from the owner's list
// (reasonID) or typed freely.
func (s *OrderService) Cancel(ctx context.Context, ownerID, id uuid.UUID, reasonID uuid.UUID, reason string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	next, err := order.CurrentStatus().Transition(booking.StatusCanceled)
	if err != nil {
		return nil, err
	}

	if reasonID != uuid.Nil {
		lookup, err := s.lookups.Get(ctx, ownerID, reasonID)
		if err != nil || lookup.Kind != models.LookupRejectionReason {
			return nil, ErrInvalidReason
		}
		reason = lookup.Name
	}

	now := s.now()
	order.Status = string(next)
	order.CanceledAt = &now
	if reason != "" {
		order.RejectionReason = &reason
	} else {
		order.RejectionReason = nil
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// AttachWorkflow replaces the order's checklist with a fresh copy of the
// workflow's tasks.
func (s *OrderService) AttachWorkflow(ctx context.Context, ownerID, id, workflowID uuid.UUID) (*models.Order, error) {
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	wf, err := s.workflows.Get(ctx, ownerID, workflowID)
	if err != nil {
		return nil, fmt.Errorf("workflow %s: %w", workflowID, err)
	}

	tasks := make([]models.Task, len(wf.Tasks))
	for i, t := range wf.Tasks {
		tasks[i] = models.Task{ID: t.ID, Label: t.Label}
	}
	order.WorkflowName = wf.Name
	order.Tasks = tasks

	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) SetTaskDone(ctx context.Context, ownerID, id uuid.UUID, taskID string, done bool) (*models.Order, error) {
	order, err := s.orders.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(order.Tasks, func(t models.Task) bool { return t.ID == taskID })
	if i < 0 {
		return nil, ErrTaskNotFound
	}

	tasks := slices.Clone(order.Tasks)
	tasks[i].IsDone = done
	order.Tasks = tasks

	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
