package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

func newAccountService(db *gorm.DB) *AccountService {
	return NewAccountService(
		repository.NewGormUserRepository(db),
		repository.NewGormInsuredPersonRepository(db),
	)
}

func reloadPerson(t *testing.T, db *gorm.DB, p *model.InsuredPerson) *model.InsuredPerson {
	t.Helper()

	var out model.InsuredPerson
	if err := db.First(&out, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload person: %v", err)
	}
	return &out
}

func TestAccountService_RegisterPersonAccount_CreatesAndLinks(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")

	state, u, err := svc.RegisterPersonAccount(ctx(), p.ID, "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if state != LinkStateCreated {
		t.Fatalf("state = %q, want %q", state, LinkStateCreated)
	}
	if u.Username != "jan@example.com" {
		t.Fatalf("username = %q, want the person's email", u.Username)
	}
	if u.IsStaff || u.IsSuperuser {
		t.Fatalf("linked person account must not get staff roles")
	}

	linked := reloadPerson(t, db, p)
	if linked.UserID == nil || *linked.UserID != u.ID {
		t.Fatalf("person not linked to the new account")
	}

	// The password works for login, plaintext is not stored.
	if u.PasswordHash == "password123" {
		t.Fatalf("password stored in plaintext")
	}
	if _, err := svc.Authenticate(ctx(), "jan@example.com", "password123"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestAccountService_RegisterPersonAccount_LinksExistingByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")

	hash, err := hashPassword("password123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	existing := &model.User{Username: "jan@example.com", Email: "jan@example.com", PasswordHash: hash}
	if err := db.Create(existing).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	state, u, err := svc.RegisterPersonAccount(ctx(), p.ID, "another-password")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if state != LinkStateLinkedExisting {
		t.Fatalf("state = %q, want %q", state, LinkStateLinkedExisting)
	}
	if u.ID != existing.ID {
		t.Fatalf("linked to %s, want the existing account %s", u.ID, existing.ID)
	}
	if n := countRows(t, db, &model.User{}); n != 1 {
		t.Fatalf("users = %d, want 1 (no new account)", n)
	}

	linked := reloadPerson(t, db, p)
	if linked.UserID == nil || *linked.UserID != existing.ID {
		t.Fatalf("person not linked to the existing account")
	}
}

func TestAccountService_RegisterPersonAccount_AlreadyLinkedConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	_, first, err := svc.RegisterPersonAccount(ctx(), p.ID, "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err = svc.RegisterPersonAccount(ctx(), p.ID, "password456")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second register: want conflict, got %v", err)
	}

	// The existing link stays untouched, nothing new is created.
	if n := countRows(t, db, &model.User{}); n != 1 {
		t.Fatalf("users = %d, want 1", n)
	}
	linked := reloadPerson(t, db, p)
	if linked.UserID == nil || *linked.UserID != first.ID {
		t.Fatalf("existing link was modified")
	}
}

func TestAccountService_RegisterPersonAccount_ShortPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")

	_, _, err := svc.RegisterPersonAccount(ctx(), p.ID, "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("short password: want invalid input, got %v", err)
	}
	if n := countRows(t, db, &model.User{}); n != 0 {
		t.Fatalf("users = %d, want 0", n)
	}
	if reloadPerson(t, db, p).UserID != nil {
		t.Fatalf("person must stay unlinked")
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	if _, err := svc.CreateStaff(ctx(), "operator", "op@example.com", "Op", "Erator", "password123"); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	u, err := svc.Authenticate(ctx(), "operator", "password123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !u.IsStaff || u.IsSuperuser {
		t.Fatalf("staff roles: IsStaff=%v IsSuperuser=%v", u.IsStaff, u.IsSuperuser)
	}

	if _, err := svc.Authenticate(ctx(), "operator", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx(), "nobody", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: want invalid credentials, got %v", err)
	}
}

func TestAccountService_ResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	u, err := svc.CreateStaff(ctx(), "operator", "op@example.com", "Op", "Erator", "password123")
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}

	if err := svc.ResetPassword(ctx(), u.ID, "new-password-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := svc.Authenticate(ctx(), "operator", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, err := svc.Authenticate(ctx(), "operator", "new-password-1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := svc.ResetPassword(ctx(), u.ID, "short"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("short password: want invalid input, got %v", err)
	}
}

func TestAccountService_DeleteUser_ClearsPersonLink(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	_, u, err := svc.RegisterPersonAccount(ctx(), p.ID, "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.DeleteUser(ctx(), u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := countRows(t, db, &model.User{}); n != 0 {
		t.Fatalf("users = %d, want 0", n)
	}
	// The person record survives, only the link is cleared.
	if n := countRows(t, db, &model.InsuredPerson{}); n != 1 {
		t.Fatalf("persons = %d, want 1", n)
	}
	if reloadPerson(t, db, p).UserID != nil {
		t.Fatalf("person link not cleared")
	}

	if err := svc.DeleteUser(ctx(), u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want not found, got %v", err)
	}
}

func TestAccountService_ListUsers_PlaceholderForUnlinked(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	if _, _, err := svc.RegisterPersonAccount(ctx(), p.ID, "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.CreateStaff(ctx(), "operator", "op@example.com", "Op", "Erator", "password123"); err != nil {
		t.Fatalf("create staff: %v", err)
	}

	page, err := svc.ListUsers(ctx(), 1)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", page.Total, len(page.Items))
	}

	byUsername := make(map[string]UserRow, len(page.Items))
	for _, row := range page.Items {
		byUsername[row.User.Username] = row
	}
	if row := byUsername["jan@example.com"]; row.Name != "Jan" || row.Surname != "Novák" {
		t.Fatalf("linked row = %q %q, want Jan Novák", row.Name, row.Surname)
	}
	if row := byUsername["operator"]; row.Name != "(not provided)" || row.Surname != "(not provided)" {
		t.Fatalf("unlinked row = %q %q, want placeholders", row.Name, row.Surname)
	}
}

func TestAccountService_ListStaff(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountService(db)

	if _, err := svc.CreateStaff(ctx(), "operator", "op@example.com", "Op", "Erator", "password123"); err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if _, err := svc.CreateSuperuser(ctx(), "admin", "admin@example.com", "Ad", "Min", "password123"); err != nil {
		t.Fatalf("create superuser: %v", err)
	}
	// A linked person account is not staff and must not show up.
	p := seedPerson(t, db, "Jan", "Novák", "jan@example.com")
	if _, _, err := svc.RegisterPersonAccount(ctx(), p.ID, "password123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	page, err := svc.ListStaff(ctx(), 1)
	if err != nil {
		t.Fatalf("list staff: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("total = %d, items = %d, want 2/2", page.Total, len(page.Items))
	}
	for _, u := range page.Items {
		if !u.IsStaff && !u.IsSuperuser {
			t.Fatalf("non-staff account %q in staff list", u.Username)
		}
	}
}
