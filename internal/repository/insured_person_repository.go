package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

// InsuredPersonRow — застрахованный вместе с количеством его договоров
// (для списочных страниц).
type InsuredPersonRow struct {
	model.InsuredPerson
	InsuranceCount int64
}

type InsuredPersonRepository interface {
	// GetByID возвращает застрахованного по идентификатору.
	GetByID(ctx context.Context, id uuid.UUID) (*model.InsuredPerson, error)
	// GetWithInsurances дополнительно подгружает договоры с их типами.
	GetWithInsurances(ctx context.Context, id uuid.UUID) (*model.InsuredPerson, error)
	Create(ctx context.Context, p *model.InsuredPerson) error
	Update(ctx context.Context, p *model.InsuredPerson) error
	// Delete удаляет застрахованного каскадно: события его договоров,
	// договоры, затем саму запись — в одной транзакции.
	Delete(ctx context.Context, id uuid.UUID) error
	// List — страница застрахованных с количеством договоров и
	// необязательной фильтрацией по подстроке имени/фамилии.
	List(ctx context.Context, name, surname string, limit, offset int) ([]InsuredPersonRow, int64, error)
	// ListByUserIDs возвращает застрахованных, привязанных к переданным учёткам.
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.InsuredPerson, error)
	// LinkUser привязывает учётную запись к застрахованному.
	LinkUser(ctx context.Context, personID, userID uuid.UUID) error

	// Пробные проверки дубликатов (domain.PersonLookup).
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	IdentityTaken(ctx context.Context, name, surname string, dateOfBirth *datatypes.Date, excludeID uuid.UUID) (bool, error)
}

type GormInsuredPersonRepository struct {
	db *gorm.DB
}

func NewGormInsuredPersonRepository(db *gorm.DB) *GormInsuredPersonRepository {
	return &GormInsuredPersonRepository{db: db}
}

func (r *GormInsuredPersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.InsuredPerson, error) {
	var p model.InsuredPerson
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormInsuredPersonRepository) GetWithInsurances(ctx context.Context, id uuid.UUID) (*model.InsuredPerson, error) {
	var p model.InsuredPerson
	err := r.db.WithContext(ctx).
		Preload("Insurances").
		Preload("Insurances.InsuranceType").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormInsuredPersonRepository) Create(ctx context.Context, p *model.InsuredPerson) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormInsuredPersonRepository) Update(ctx context.Context, p *model.InsuredPerson) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *GormInsuredPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Каскад выполняется явно и в одной транзакции, чтобы не полагаться
	// на включённость внешних ключей в конкретном хранилище.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&model.Insurance{}).Select("id").Where("insured_person_id = ?", id)
		if err := tx.Where("insurance_id IN (?)", sub).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Where("insured_person_id = ?", id).Delete(&model.Insurance{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.InsuredPerson{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormInsuredPersonRepository) List(ctx context.Context, name, surname string, limit, offset int) ([]InsuredPersonRow, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.InsuredPerson{})
	if name = strings.TrimSpace(name); name != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if surname = strings.TrimSpace(surname); surname != "" {
		base = base.Where("LOWER(surname) LIKE ?", "%"+strings.ToLower(surname)+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Select("insured_persons.*, (SELECT COUNT(*) FROM insurances WHERE insurances.insured_person_id = insured_persons.id) AS insurance_count").
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []InsuredPersonRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormInsuredPersonRepository) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]model.InsuredPerson, error) {
	if len(userIDs) == 0 {
		return []model.InsuredPerson{}, nil
	}
	var persons []model.InsuredPerson
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *GormInsuredPersonRepository) LinkUser(ctx context.Context, personID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.InsuredPerson{}).
		Where("id = ?", personID).
		Update("user_id", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormInsuredPersonRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.InsuredPerson{}).
		Where("email = ?", email).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInsuredPersonRepository) IdentityTaken(ctx context.Context, name, surname string, dateOfBirth *datatypes.Date, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&model.InsuredPerson{}).
		Where("name = ? AND surname = ?", name, surname).
		Where("id <> ?", excludeID)
	if dateOfBirth == nil {
		q = q.Where("date_of_birth IS NULL")
	} else {
		q = q.Where("date_of_birth = ?", *dateOfBirth)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
