package controllers

import (
	"context"
	"time"

	"ezpresta-backend/models"
	"ezpresta-backend/payments"
	"ezpresta-backend/repository"
	"ezpresta-backend/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory repository.Store keyed by id.
type memStore[T any] struct {
	items map[uuid.UUID]*T
	key   func(*T) *uuid.UUID
	owner func(*T) uuid.UUID
	match func(*T, map[string]any) bool
}

func (s *memStore[T]) Create(_ context.Context, item *T) error {
	if id := s.key(item); *id == uuid.Nil {
		*id = uuid.New()
	}
	cp := *item
	s.items[*s.key(item)] = &cp
	return nil
}

func (s *memStore[T]) Get(_ context.Context, ownerID, id uuid.UUID) (*T, error) {
	item, ok := s.items[id]
	if !ok || s.owner(item) != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *memStore[T]) Find(_ context.Context, ownerID uuid.UUID, filter map[string]any) ([]T, error) {
	var out []T
	for _, item := range s.items {
		if s.owner(item) != ownerID {
			continue
		}
		if len(filter) > 0 && s.match != nil && !s.match(item, filter) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *memStore[T]) Count(ctx context.Context, ownerID uuid.UUID, filter map[string]any) (int64, error) {
	items, err := s.Find(ctx, ownerID, filter)
	return int64(len(items)), err
}

func (s *memStore[T]) Save(_ context.Context, item *T) error {
	cp := *item
	s.items[*s.key(item)] = &cp
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	item, ok := s.items[id]
	if !ok || s.owner(item) != ownerID {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func newCustomerStore() *memStore[models.Customer] {
	return &memStore[models.Customer]{
		items: map[uuid.UUID]*models.Customer{},
		key:   func(c *models.Customer) *uuid.UUID { return &c.ID },
		owner: func(c *models.Customer) uuid.UUID { return c.OwnerID },
		match: func(c *models.Customer, f map[string]any) bool {
			if phone, ok := f["phone"]; ok && c.Phone != phone {
				return false
			}
			if source, ok := f["source"]; ok && c.Source != source {
				return false
			}
			return true
		},
	}
}

func newCatalogStore() *memStore[models.CatalogItem] {
	return &memStore[models.CatalogItem]{
		items: map[uuid.UUID]*models.CatalogItem{},
		key:   func(c *models.CatalogItem) *uuid.UUID { return &c.ID },
		owner: func(c *models.CatalogItem) uuid.UUID { return c.OwnerID },
	}
}

func newLookupStore() *memStore[models.Lookup] {
	return &memStore[models.Lookup]{
		items: map[uuid.UUID]*models.Lookup{},
		key:   func(l *models.Lookup) *uuid.UUID { return &l.ID },
		owner: func(l *models.Lookup) uuid.UUID { return l.OwnerID },
		match: func(l *models.Lookup, f map[string]any) bool {
			if kind, ok := f["kind"]; ok && string(l.Kind) != kind {
				return false
			}
			if name, ok := f["name"]; ok && l.Name != name {
				return false
			}
			return true
		},
	}
}

func newTemplateStore() *memStore[models.ReminderTemplate] {
	return &memStore[models.ReminderTemplate]{
		items: map[uuid.UUID]*models.ReminderTemplate{},
		key:   func(t *models.ReminderTemplate) *uuid.UUID { return &t.ID },
		owner: func(t *models.ReminderTemplate) uuid.UUID { return t.OwnerID },
	}
}

type recordingStats struct {
	invalidated []uuid.UUID
	dashboard   services.Dashboard
	billing     services.Billing
	gotYear     int
}

func (r *recordingStats) Invalidate(_ context.Context, ownerID uuid.UUID) {
	r.invalidated = append(r.invalidated, ownerID)
}

func (r *recordingStats) Dashboard(_ context.Context, _ uuid.UUID, year int) (services.Dashboard, error) {
	r.gotYear = year
	return r.dashboard, nil
}

func (r *recordingStats) Billing(_ context.Context, _ uuid.UUID, year int) (services.Billing, error) {
	r.gotYear = year
	return r.billing, nil
}

// fakeOrders returns order (or err) from every call and records the inputs.
type fakeOrders struct {
	order *models.Order
	err   error

	draft       services.OrderDraft
	version     int
	number      int
	mode        payments.Mode
	date        time.Time
	percentages []decimal.Decimal
	reasonID    uuid.UUID
	reason      string
	filter      repository.OrderFilter
	notified    bool
}

func (f *fakeOrders) result() (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func (f *fakeOrders) Quote(_ context.Context, _ uuid.UUID, d services.OrderDraft) (services.Quote, error) {
	f.draft = d
	return services.Quote{}, f.err
}

func (f *fakeOrders) Create(_ context.Context, _ uuid.UUID, d services.OrderDraft) (*models.Order, error) {
	f.draft = d
	return f.result()
}

func (f *fakeOrders) Get(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
	return f.result()
}

func (f *fakeOrders) List(_ context.Context, _ uuid.UUID, filter repository.OrderFilter) ([]models.Order, error) {
	f.filter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []models.Order{*f.order}, nil
}

func (f *fakeOrders) Update(_ context.Context, _, _ uuid.UUID, version int, d services.OrderDraft) (*models.Order, error) {
	f.version = version
	f.draft = d
	return f.result()
}

func (f *fakeOrders) RecalculateInstallments(_ context.Context, _, _ uuid.UUID, version int, pcts []decimal.Decimal) (*models.Order, error) {
	f.version = version
	f.percentages = pcts
	return f.result()
}

func (f *fakeOrders) MarkInstallmentPaid(_ context.Context, _, _ uuid.UUID, number int, mode payments.Mode, date time.Time) (*models.Order, error) {
	f.number = number
	f.mode = mode
	f.date = date
	return f.result()
}

func (f *fakeOrders) Confirm(context.Context, uuid.UUID, uuid.UUID) (services.ConfirmResult, error) {
	o, err := f.result()
	return services.ConfirmResult{Order: o, Notified: f.notified}, err
}

func (f *fakeOrders) Cancel(_ context.Context, _, _, reasonID uuid.UUID, reason string) (*models.Order, error) {
	f.reasonID = reasonID
	f.reason = reason
	return f.result()
}

func (f *fakeOrders) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return f.err
}

func (f *fakeOrders) AttachWorkflow(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*models.Order, error) {
	return f.result()
}

func (f *fakeOrders) SetTaskDone(context.Context, uuid.UUID, uuid.UUID, string, bool) (*models.Order, error) {
	return f.result()
}

type fakeUsers struct {
	byID map[uuid.UUID]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	u.ID = uuid.New()
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}
