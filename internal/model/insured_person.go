package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// insured_persons — запись о застрахованном лице (pojištěnec).
// Может быть связана максимум с одной учётной записью (UserID nullable,
// при удалении учётки ссылка обнуляется на уровне БД).
type InsuredPerson struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Name    string `gorm:"type:varchar(100);not null;index:idx_insured_persons_identity,unique"`
	Surname string `gorm:"type:varchar(100);not null;index:idx_insured_persons_identity,unique"`

	Email string `gorm:"type:varchar(255);not null;uniqueIndex"`

	// Чистая дата без времени. Входит в составной уникальный индекс
	// (name, surname, date_of_birth).
	DateOfBirth *datatypes.Date `gorm:"type:date;index:idx_insured_persons_identity,unique"`

	// Rodné číslo — 9 или 10 цифр, уникально, когда заполнено.
	BirthCertificateNumber *string `gorm:"type:varchar(10);uniqueIndex"`

	// IČO для предпринимателей — ровно 8 цифр, уникально, когда заполнено.
	CompanyRegistrationNumber *string `gorm:"type:varchar(8);uniqueIndex"`

	// Телефон в формате +420XXXXXXXXX.
	TelephoneNumber string `gorm:"type:varchar(16)"`

	Address string `gorm:"type:varchar(255)"`

	// Необязательная связь с учётной записью (максимум одна).
	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля.
	User       *User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Insurances []Insurance `gorm:"foreignKey:InsuredPersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (InsuredPerson) TableName() string { return "insured_persons" }

func (p *InsuredPerson) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
