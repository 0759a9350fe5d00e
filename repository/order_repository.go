package repository

import (
	"context"
	"fmt"
	"time"

	"ezpresta-backend/booking"
	"ezpresta-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Fees", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Discounts", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_number") })
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.OwnerID == uuid.Nil {
		return fmt.Errorf("create order: owner id is required")
	}
	if order.Version == 0 {
		order.Version = 1
	}
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepo) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := withChildren(r.db.WithContext(ctx)).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, ownerID uuid.UUID, filter OrderFilter) ([]models.Order, error) {
	q := withChildren(r.db.WithContext(ctx)).Where("owner_id = ?", ownerID)
	if filter.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM selected_date) = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.CustomerID != uuid.Nil {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}

	var orders []models.Order
	if err := q.Order("selected_date DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	expected := order.Version
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.Version = expected + 1
		res := tx.Model(order).
			Where("owner_id = ? AND version = ?", order.OwnerID, expected).
			Select("*").
			Omit("id", "owner_id", "order_number", "created_at", "deleted_at", clause.Associations).
			Updates(order)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Order{}).
				Where("owner_id = ? AND id = ?", order.OwnerID, order.ID).
				Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrNotFound
			}
			return ErrVersionConflict
		}
		return replaceChildren(tx, order)
	})
	if err != nil {
		order.Version = expected
		return translate(err)
	}
	return nil
}

// replaceChildren rewrites the order's child rows so their order in the
// slices is what gets stored.
func replaceChildren(tx *gorm.DB, order *models.Order) error {
	for _, model := range []any{&models.OrderLocation{}, &models.OrderFee{}, &models.OrderDiscount{}, &models.OrderInstallment{}} {
		if err := tx.Where("order_id = ?", order.ID).Delete(model).Error; err != nil {
			return err
		}
	}

	for i := range order.Locations {
		order.Locations[i].OrderID = order.ID
		order.Locations[i].Position = i
	}
	for i := range order.Fees {
		order.Fees[i].OrderID = order.ID
		order.Fees[i].Position = i
	}
	for i := range order.Discounts {
		order.Discounts[i].OrderID = order.ID
		order.Discounts[i].Position = i
	}
	for i := range order.Installments {
		order.Installments[i].OrderID = order.ID
	}

	if len(order.Locations) > 0 {
		if err := tx.Create(&order.Locations).Error; err != nil {
			return err
		}
	}
	if len(order.Fees) > 0 {
		if err := tx.Create(&order.Fees).Error; err != nil {
			return err
		}
	}
	if len(order.Discounts) > 0 {
		if err := tx.Create(&order.Discounts).Error; err != nil {
			return err
		}
	}
	if len(order.Installments) > 0 {
		if err := tx.Create(&order.Installments).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepo) ListByStatusBetween(ctx context.Context, status booking.Status, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := withChildren(r.db.WithContext(ctx)).
		Where("status = ? AND selected_date >= ? AND selected_date < ?", string(status), from, to).
		Order("selected_date").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders by date: %w", err)
	}
	return orders, nil
}
