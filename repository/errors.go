package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate resource")

	// ErrVersionConflict means the row changed since the caller loaded it.
	ErrVersionConflict = errors.New("resource was modified by someone else; reload and try again")
)

// translate maps gorm errors onto the repository sentinels. The connection
// is opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
