package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

func newClaimService(db *gorm.DB) *ClaimService {
	return NewClaimService(
		repository.NewGormEventRepository(db),
		repository.NewGormInsuranceRepository(db),
	)
}

func TestClaimService_AddEvent_FixesDatesAndStoresDamage(t *testing.T) {
	db := newTestDB(t)
	svc := newClaimService(db)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	typ := seedType(t, db, "car", true)
	ins := seedInsurance(t, db, p, typ, "aaaa0001")

	e, err := svc.AddEvent(ctx(), ins.ID, "rear-end collision", "1200.50", nil)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if !e.EventDate.Equal(fixed) {
		t.Fatalf("event date = %v, want %v", e.EventDate, fixed)
	}
	// Without an explicit report date it defaults to the event date.
	if !e.ReportDate.Equal(fixed) {
		t.Fatalf("report date = %v, want %v", e.ReportDate, fixed)
	}
	if !e.DamageAmount.Equal(decimal.RequireFromString("1200.50")) {
		t.Fatalf("damage = %s, want 1200.50", e.DamageAmount)
	}
	if e.IsApproved {
		t.Fatalf("new event must not be approved")
	}
}

func TestClaimService_AddEvent_BackdatedReport(t *testing.T) {
	db := newTestDB(t)
	svc := newClaimService(db)

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	typ := seedType(t, db, "car", true)
	ins := seedInsurance(t, db, p, typ, "aaaa0001")

	reported := fixed.AddDate(0, 0, -10)
	e, err := svc.AddEvent(ctx(), ins.ID, "storm damage", "800", &reported)
	if err != nil {
		t.Fatalf("add event: %v", err)
	}
	if !e.ReportDate.Equal(reported) {
		t.Fatalf("report date = %v, want %v", e.ReportDate, reported)
	}
	if !e.EventDate.Equal(fixed) {
		t.Fatalf("event date = %v, want %v", e.EventDate, fixed)
	}
}

func TestClaimService_AddEvent_Rejections(t *testing.T) {
	db := newTestDB(t)
	svc := newClaimService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	typ := seedType(t, db, "car", true)
	ins := seedInsurance(t, db, p, typ, "aaaa0001")

	// Unknown contract.
	if _, err := svc.AddEvent(ctx(), uuid.New(), "crash", "100", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown insurance: want not found, got %v", err)
	}
	// Blank description.
	if _, err := svc.AddEvent(ctx(), ins.ID, "   ", "100", nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank description: want invalid input, got %v", err)
	}
	// Malformed and negative damage.
	for _, damage := range []string{"abc", "-1"} {
		if _, err := svc.AddEvent(ctx(), ins.ID, "crash", damage, nil); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("damage %q: want invalid input, got %v", damage, err)
		}
	}
	if n := countRows(t, db, &model.Event{}); n != 0 {
		t.Fatalf("events = %d, want 0 (no partial write)", n)
	}
}

func TestClaimService_Approve(t *testing.T) {
	db := newTestDB(t)
	svc := newClaimService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	typ := seedType(t, db, "car", true)
	ins := seedInsurance(t, db, p, typ, "aaaa0001")
	e := seedEvent(t, db, ins, "crash")

	approved, err := svc.Approve(ctx(), e.ID, "300.25")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !approved.IsApproved {
		t.Fatalf("event not marked approved")
	}
	if !approved.PaymentAmount.Equal(decimal.RequireFromString("300.25")) {
		t.Fatalf("payment = %s, want 300.25", approved.PaymentAmount)
	}

	var stored model.Event
	if err := db.First(&stored, "id = ?", e.ID).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if !stored.IsApproved {
		t.Fatalf("approval not persisted")
	}

	if _, err := svc.Approve(ctx(), e.ID, "-1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative payment: want invalid input, got %v", err)
	}
	if _, err := svc.Approve(ctx(), uuid.New(), "100"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown event: want not found, got %v", err)
	}
}

func TestClaimService_List_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newClaimService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	typ := seedType(t, db, "car", true)
	ins := seedInsurance(t, db, p, typ, "aaaa0001")

	old := &model.Event{
		InsuranceID:  ins.ID,
		EventDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ReportDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Description:  "old",
		DamageAmount: decimal.NewFromInt(100),
	}
	recent := &model.Event{
		InsuranceID:  ins.ID,
		EventDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		ReportDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Description:  "recent",
		DamageAmount: decimal.NewFromInt(100),
	}
	for _, e := range []*model.Event{old, recent} {
		if err := db.Create(e).Error; err != nil {
			t.Fatalf("seed event: %v", err)
		}
	}

	page, err := svc.List(ctx(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", page.Total, len(page.Items))
	}
	if page.Items[0].Description != "recent" {
		t.Fatalf("first item %q, want the newest", page.Items[0].Description)
	}
}
