package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей страхового ядра.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&InsuredPerson{},
		&InsuranceType{},
		&Insurance{},
		&Event{},
	)
}
