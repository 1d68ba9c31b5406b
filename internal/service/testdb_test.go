package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

// newTestDB opens an in-memory sqlite with a hand-written schema
// (sqlite-friendly, без постгресовых default-выражений).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT,
			first_name TEXT,
			last_name TEXT,
			password_hash TEXT NOT NULL,
			is_staff INTEGER NOT NULL DEFAULT 0,
			is_superuser INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE insured_persons (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			surname TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			date_of_birth DATE,
			birth_certificate_number TEXT UNIQUE,
			company_registration_number TEXT UNIQUE,
			telephone_number TEXT,
			address TEXT,
			user_id TEXT UNIQUE,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (name, surname, date_of_birth)
		);`,
		`CREATE TABLE insurance_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			is_active INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE insurances (
			id TEXT PRIMARY KEY,
			insured_person_id TEXT NOT NULL,
			insurance_type_id TEXT NOT NULL,
			number TEXT NOT NULL UNIQUE,
			subject TEXT,
			price NUMERIC NOT NULL DEFAULT 100,
			start_date DATE NOT NULL,
			end_date DATE,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY,
			insurance_id TEXT NOT NULL,
			event_date DATETIME NOT NULL,
			report_date DATETIME NOT NULL,
			description TEXT NOT NULL,
			damage_amount NUMERIC NOT NULL DEFAULT 0,
			payment_amount NUMERIC NOT NULL DEFAULT 0,
			is_approved INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func seedPerson(t *testing.T, db *gorm.DB, name, surname, email string) *model.InsuredPerson {
	t.Helper()

	bcn := "rc-" + email // формат тут не важен, важна уникальность

	p := &model.InsuredPerson{
		Name:                   name,
		Surname:                surname,
		Email:                  email,
		BirthCertificateNumber: &bcn,
		TelephoneNumber:        "+420123456789",
		Address:                "Praha 1",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed person %s: %v", email, err)
	}
	return p
}

func seedType(t *testing.T, db *gorm.DB, name string, active bool) *model.InsuranceType {
	t.Helper()

	typ := &model.InsuranceType{Name: name, Description: name, IsActive: active}
	if err := db.Create(typ).Error; err != nil {
		t.Fatalf("seed insurance type %s: %v", name, err)
	}
	return typ
}

func seedInsurance(t *testing.T, db *gorm.DB, p *model.InsuredPerson, typ *model.InsuranceType, number string) *model.Insurance {
	t.Helper()

	ins := &model.Insurance{
		InsuredPersonID: p.ID,
		InsuranceTypeID: typ.ID,
		Number:          number,
		Subject:         "car",
		Price:           decimal.NewFromInt(100),
		StartDate:       datatypes.Date(time.Now().UTC()),
		IsActive:        true,
	}
	if err := db.Create(ins).Error; err != nil {
		t.Fatalf("seed insurance %s: %v", number, err)
	}
	return ins
}

func seedEvent(t *testing.T, db *gorm.DB, ins *model.Insurance, description string) *model.Event {
	t.Helper()

	now := time.Now().UTC()
	e := &model.Event{
		InsuranceID:  ins.ID,
		EventDate:    now,
		ReportDate:   now,
		Description:  description,
		DamageAmount: decimal.NewFromInt(500),
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return e
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func ctx() context.Context { return context.Background() }
