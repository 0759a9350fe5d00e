package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore[T any] struct {
	db *gorm.DB
}

func NewStore[T any](db *gorm.DB) Store[T] {
	return &gormStore[T]{db: db}
}

func (s *gormStore[T]) Create(ctx context.Context, item *T) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *gormStore[T]) Get(ctx context.Context, ownerID, id uuid.UUID) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *gormStore[T]) Find(ctx context.Context, ownerID uuid.UUID, filter map[string]any) ([]T, error) {
	var items []T
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *gormStore[T]) Count(ctx context.Context, ownerID uuid.UUID, filter map[string]any) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(new(T)).Where("owner_id = ?", ownerID)
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	err := q.Count(&n).Error
	return n, err
}

func (s *gormStore[T]) Save(ctx context.Context, item *T) error {
	return translate(s.db.WithContext(ctx).Save(item).Error)
}

func (s *gormStore[T]) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
