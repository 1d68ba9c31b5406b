package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// events — страховое событие (заявка на возмещение) по конкретному договору.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	InsuranceID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Момент события фиксируется при создании записи.
	EventDate time.Time `gorm:"not null;index"`

	// Дата уведомления: по умолчанию момент создания, допускается задним числом.
	ReportDate time.Time `gorm:"not null"`

	Description string `gorm:"type:text;not null"`

	// Размер ущерба и выплаченная сумма.
	DamageAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PaymentAmount decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0"`

	IsApproved bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Insurance *Insurance `gorm:"foreignKey:InsuranceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Event) TableName() string { return "events" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
