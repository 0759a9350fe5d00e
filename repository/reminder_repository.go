package repository

import (
	"context"

	"ezpresta-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reminderRepo struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepo{db: db}
}

func (r *reminderRepo) ActiveTemplate(ctx context.Context, ownerID uuid.UUID) (*models.ReminderTemplate, error) {
	var tmpl models.ReminderTemplate
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_active = true", ownerID).
		First(&tmpl).Error
	if err != nil {
		return nil, translate(err)
	}
	return &tmpl, nil
}

// AlreadySent reports whether a reminder went out for the order, so a
// rerun of the job does not message the customer twice.
func (r *reminderRepo) AlreadySent(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ReminderLog{}).
		Where("order_id = ? AND status = ?", orderID, "sent").
		Count(&n).Error
	return n > 0, err
}

func (r *reminderRepo) Log(ctx context.Context, entry *models.ReminderLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
