package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"
	"ezpresta-backend/notify"
	"ezpresta-backend/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory repository.Store.
type memStore[T any] struct {
	items   map[uuid.UUID]T
	ownerOf func(T) uuid.UUID
	idOf    func(T) uuid.UUID
	match   func(T, map[string]any) bool
}

func newMemStore[T any](ownerOf, idOf func(T) uuid.UUID) *memStore[T] {
	return &memStore[T]{items: map[uuid.UUID]T{}, ownerOf: ownerOf, idOf: idOf}
}

func (s *memStore[T]) Create(_ context.Context, item *T) error {
	s.items[s.idOf(*item)] = *item
	return nil
}

func (s *memStore[T]) Get(_ context.Context, ownerID, id uuid.UUID) (*T, error) {
	item, ok := s.items[id]
	if !ok || s.ownerOf(item) != ownerID {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (s *memStore[T]) Find(_ context.Context, ownerID uuid.UUID, filter map[string]any) ([]T, error) {
	var out []T
	for _, item := range s.items {
		if s.ownerOf(item) != ownerID {
			continue
		}
		if s.match != nil && len(filter) > 0 && !s.match(item, filter) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memStore[T]) Count(ctx context.Context, ownerID uuid.UUID, filter map[string]any) (int64, error) {
	items, _ := s.Find(ctx, ownerID, filter)
	return int64(len(items)), nil
}

func (s *memStore[T]) Save(_ context.Context, item *T) error {
	s.items[s.idOf(*item)] = *item
	return nil
}

func (s *memStore[T]) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	item, ok := s.items[id]
	if !ok || s.ownerOf(item) != ownerID {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func newCatalogStore() *memStore[models.CatalogItem] {
	return newMemStore(
		func(c models.CatalogItem) uuid.UUID { return c.OwnerID },
		func(c models.CatalogItem) uuid.UUID { return c.ID })
}

func newCustomerStore() *memStore[models.Customer] {
	return newMemStore(
		func(c models.Customer) uuid.UUID { return c.OwnerID },
		func(c models.Customer) uuid.UUID { return c.ID })
}

func newWorkflowStore() *memStore[models.Workflow] {
	return newMemStore(
		func(w models.Workflow) uuid.UUID { return w.OwnerID },
		func(w models.Workflow) uuid.UUID { return w.ID })
}

func newLookupStore() *memStore[models.Lookup] {
	s := newMemStore(
		func(l models.Lookup) uuid.UUID { return l.OwnerID },
		func(l models.Lookup) uuid.UUID { return l.ID })
	s.match = func(l models.Lookup, filter map[string]any) bool {
		kind, ok := filter["kind"]
		return !ok || kind == string(l.Kind)
	}
	return s
}

// fakeOrders keeps JSON copies of the orders and checks versions like the
// gorm repository.
type fakeOrders struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]models.Order
	updates   int
	updateErr error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[uuid.UUID]models.Order{}}
}

func clone(o models.Order) models.Order {
	data, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}
	var out models.Order
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = clone(*order)
	return nil
}

func (f *fakeOrders) Get(_ context.Context, ownerID, id uuid.UUID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	c := clone(o)
	return &c, nil
}

func (f *fakeOrders) List(_ context.Context, ownerID uuid.UUID, filter repository.OrderFilter) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.OwnerID != ownerID {
			continue
		}
		if filter.Year != 0 && o.SelectedDate.Year() != filter.Year {
			continue
		}
		if filter.Status != "" && o.Status != string(filter.Status) {
			continue
		}
		out = append(out, clone(o))
	}
	return out, nil
}

func (f *fakeOrders) Update(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	stored, ok := f.orders[order.ID]
	if !ok || stored.OwnerID != order.OwnerID {
		return repository.ErrNotFound
	}
	if stored.Version != order.Version {
		return repository.ErrVersionConflict
	}
	order.Version++
	f.orders[order.ID] = clone(*order)
	f.updates++
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || o.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrders) ListByStatusBetween(_ context.Context, status booking.Status, from, to time.Time) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.Status == string(status) && !o.SelectedDate.Before(from) && o.SelectedDate.Before(to) {
			out = append(out, clone(o))
		}
	}
	return out, nil
}

type fakeUsers struct {
	users map[uuid.UUID]models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) Update(_ context.Context, u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

type sentMessage struct {
	Phone, Body string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, phone, body string) (notify.Delivery, error) {
	if f.err != nil {
		return notify.Delivery{}, f.err
	}
	f.sent = append(f.sent, sentMessage{Phone: phone, Body: body})
	return notify.Delivery{Channel: notify.ChannelSMS}, nil
}

// mapCache is a StatsCache kept in memory as JSON, like Redis would.
type mapCache struct {
	entries       map[string][]byte
	invalidations int
	gets          int
	hits          int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, ownerID uuid.UUID, key string, dest any) (bool, error) {
	c.gets++
	data, ok := c.entries[ownerID.String()+":"+key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *mapCache) Set(_ context.Context, ownerID uuid.UUID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[ownerID.String()+":"+key] = data
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, ownerID uuid.UUID) error {
	c.invalidations++
	for k := range c.entries {
		if len(k) > 36 && k[:36] == ownerID.String() {
			delete(c.entries, k)
		}
	}
	return nil
}

type fakeReminders struct {
	template *models.ReminderTemplate
	sent     map[uuid.UUID]bool
	logs     []models.ReminderLog
}

func (f *fakeReminders) ActiveTemplate(_ context.Context, ownerID uuid.UUID) (*models.ReminderTemplate, error) {
	if f.template == nil || f.template.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	t := *f.template
	return &t, nil
}

func (f *fakeReminders) AlreadySent(_ context.Context, orderID uuid.UUID) (bool, error) {
	return f.sent[orderID], nil
}

func (f *fakeReminders) Log(_ context.Context, entry *models.ReminderLog) error {
	f.logs = append(f.logs, *entry)
	return nil
}

var errGateway = errors.New("gateway unavailable")
