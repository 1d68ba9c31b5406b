package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

type InsuranceTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.InsuranceType, error)
	Create(ctx context.Context, t *model.InsuranceType) error
	Update(ctx context.Context, t *model.InsuranceType) error
	// SetActive включает/выключает продукт в каталоге.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// List возвращает каталог: сначала активные, внутри — по имени.
	List(ctx context.Context) ([]model.InsuranceType, error)
	// ListActive возвращает только назначаемые продукты.
	ListActive(ctx context.Context) ([]model.InsuranceType, error)
	// Delete удаляет продукт каскадно вместе с зависимыми договорами
	// и их событиями (административный путь, не обычный поток).
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormInsuranceTypeRepository struct {
	db *gorm.DB
}

func NewGormInsuranceTypeRepository(db *gorm.DB) *GormInsuranceTypeRepository {
	return &GormInsuranceTypeRepository{db: db}
}

func (r *GormInsuranceTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InsuranceType, error) {
	var t model.InsuranceType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormInsuranceTypeRepository) Create(ctx context.Context, t *model.InsuranceType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormInsuranceTypeRepository) Update(ctx context.Context, t *model.InsuranceType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *GormInsuranceTypeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.InsuranceType{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInsuranceTypeRepository) List(ctx context.Context) ([]model.InsuranceType, error) {
	var types []model.InsuranceType
	err := r.db.WithContext(ctx).
		Order("is_active DESC, name ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormInsuranceTypeRepository) ListActive(ctx context.Context) ([]model.InsuranceType, error) {
	var types []model.InsuranceType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *GormInsuranceTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&model.Insurance{}).Select("id").Where("insurance_type_id = ?", id)
		if err := tx.Where("insurance_id IN (?)", sub).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("insurance_type_id = ?", id).Delete(&model.Insurance{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.InsuranceType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
