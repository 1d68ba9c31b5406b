package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// users — учётная запись для входа в бэк-офис.
// Для привязанных застрахованных username совпадает с их email.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	Username string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email    string `gorm:"type:varchar(255)"`

	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`

	// Хеш bcrypt; открытый пароль нигде не хранится, в JSON не уходит.
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Роли: персонал (доступ в бэк-офис) и администратор.
	IsStaff     bool `gorm:"not null;default:false;index"`
	IsSuperuser bool `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
