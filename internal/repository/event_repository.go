package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	// GetByID подгружает договор, застрахованного и тип страхования.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	// List — страница событий, новые сверху.
	List(ctx context.Context, limit, offset int) ([]model.Event, int64, error)
	ListByInsurance(ctx context.Context, insuranceID uuid.UUID) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *GormEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	var e model.Event
	err := r.db.WithContext(ctx).
		Preload("Insurance").
		Preload("Insurance.InsuredPerson").
		Preload("Insurance.InsuranceType").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormEventRepository) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *GormEventRepository) List(ctx context.Context, limit, offset int) ([]model.Event, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Event{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var events []model.Event
	err := q.Preload("Insurance").
		Order("event_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *GormEventRepository) ListByInsurance(ctx context.Context, insuranceID uuid.UUID) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("insurance_id = ?", insuranceID).
		Order("event_date DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
