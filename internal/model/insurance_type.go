package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// insurance_types — каталожная запись страхового продукта.
// Назначать застрахованным можно только активные типы.
type InsuranceType struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name        string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`

	// Новый продукт по умолчанию неактивен, его включает персонал.
	IsActive bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Insurances []Insurance `gorm:"foreignKey:InsuranceTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (InsuranceType) TableName() string { return "insurance_types" }

func (t *InsuranceType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
