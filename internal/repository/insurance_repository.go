package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

type InsuranceRepository interface {
	Create(ctx context.Context, ins *model.Insurance) error
	// GetByID подгружает застрахованного и тип страхования.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Insurance, error)
	Update(ctx context.Context, ins *model.Insurance) error
	// Delete удаляет договор вместе с его событиями в одной транзакции.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByPerson возвращает договоры застрахованного с типами.
	ListByPerson(ctx context.Context, personID uuid.UUID) ([]model.Insurance, error)
	// NumberTaken: занят ли номер договора.
	NumberTaken(ctx context.Context, number string) (bool, error)
	// SearchByPersonName — поиск договоров по подстроке имени/фамилии
	// застрахованного (для автодополнения при оформлении события).
	SearchByPersonName(ctx context.Context, query string, limit, offset int) ([]model.Insurance, int64, error)
}

type GormInsuranceRepository struct {
	db *gorm.DB
}

func NewGormInsuranceRepository(db *gorm.DB) *GormInsuranceRepository {
	return &GormInsuranceRepository{db: db}
}

func (r *GormInsuranceRepository) Create(ctx context.Context, ins *model.Insurance) error {
	return r.db.WithContext(ctx).Create(ins).Error
}

func (r *GormInsuranceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Insurance, error) {
	var ins model.Insurance
	err := r.db.WithContext(ctx).
		Preload("InsuredPerson").
		Preload("InsuranceType").
		First(&ins, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (r *GormInsuranceRepository) Update(ctx context.Context, ins *model.Insurance) error {
	// Договор мог быть прочитан с подгруженными связями — их не трогаем.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ins).Error
}

func (r *GormInsuranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("insurance_id = ?", id).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Insurance{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormInsuranceRepository) ListByPerson(ctx context.Context, personID uuid.UUID) ([]model.Insurance, error) {
	var insurances []model.Insurance
	err := r.db.WithContext(ctx).
		Preload("InsuranceType").
		Where("insured_person_id = ?", personID).
		Order("start_date DESC").
		Find(&insurances).Error
	if err != nil {
		return nil, err
	}
	return insurances, nil
}

func (r *GormInsuranceRepository) NumberTaken(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Insurance{}).
		Where("number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInsuranceRepository) SearchByPersonName(ctx context.Context, query string, limit, offset int) ([]model.Insurance, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Insurance{}).
		Joins("JOIN insured_persons ON insured_persons.id = insurances.insured_person_id")

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(insured_persons.name) LIKE ? OR LOWER(insured_persons.surname) LIKE ?", like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var insurances []model.Insurance
	err := q.Preload("InsuredPerson").
		Preload("InsuranceType").
		Order("insurances.start_date DESC").
		Find(&insurances).Error
	if err != nil {
		return nil, 0, err
	}
	return insurances, total, nil
}
