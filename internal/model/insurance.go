package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// insurances — договор страхования: связывает одно застрахованное лицо
// с одним типом страхования.
type Insurance struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	InsuredPersonID uuid.UUID `gorm:"type:uuid;not null;index"`
	InsuranceTypeID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Короткий уникальный номер договора, генерируется при создании.
	Number string `gorm:"type:varchar(20);not null;uniqueIndex"`

	// Предмет страхования: автомобиль, дом и т.п.
	Subject string `gorm:"type:varchar(30)"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:100"`

	// Дата начала фиксируется при создании и больше не меняется.
	StartDate datatypes.Date  `gorm:"type:date;not null;index"`
	EndDate   *datatypes.Date `gorm:"type:date"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля.
	InsuredPerson *InsuredPerson `gorm:"foreignKey:InsuredPersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	InsuranceType *InsuranceType `gorm:"foreignKey:InsuranceTypeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Events        []Event        `gorm:"foreignKey:InsuranceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Insurance) TableName() string { return "insurances" }

func (i *Insurance) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
