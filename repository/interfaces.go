package repository

import (
	"context"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"

	"github.com/google/uuid"
)

// Store is the owner-scoped persistence used by the plain CRUD resources
// (customers, catalog items, lookups, workflows, reminder templates).
type Store[T any] interface {
	Create(ctx context.Context, item *T) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*T, error)
	// Find returns the owner's rows matching every column in filter.
	Find(ctx context.Context, ownerID uuid.UUID, filter map[string]any) ([]T, error)
	Count(ctx context.Context, ownerID uuid.UUID, filter map[string]any) (int64, error)
	Save(ctx context.Context, item *T) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type OrderFilter struct {
	Year       int
	Status     booking.Status
	CustomerID uuid.UUID
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, ownerID uuid.UUID, filter OrderFilter) ([]models.Order, error)
	// Update writes order if its Version still matches the stored row and
	// bumps Version on success.
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// ListByStatusBetween spans every owner; it feeds the reminder job.
	ListByStatusBetween(ctx context.Context, status booking.Status, from, to time.Time) ([]models.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type ReminderRepository interface {
	ActiveTemplate(ctx context.Context, ownerID uuid.UUID) (*models.ReminderTemplate, error)
	AlreadySent(ctx context.Context, orderID uuid.UUID) (bool, error)
	Log(ctx context.Context, entry *models.ReminderLog) error
}
