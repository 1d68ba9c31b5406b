package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
)

// mapStorageError переводит ошибки хранилища в доменную таксономию.
// Нарушение уникального ограничения — авторитетная защита от гонок
// между одновременными отправками формы — становится Conflict.
func mapStorageError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	}
	return err
}
