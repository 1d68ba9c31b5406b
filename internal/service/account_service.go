package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

// Минимальная длина пароля, как в исходной системе.
const minPasswordLength = 8

// ErrInvalidCredentials — неверная пара логин/пароль при входе.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LinkState — исход привязки застрахованного к учётной записи.
type LinkState string

const (
	// LinkStateCreated — создана новая учётка и привязана.
	LinkStateCreated LinkState = "created"
	// LinkStateLinkedExisting — найдена учётка с тем же адресом,
	// привязана без создания новой.
	LinkStateLinkedExisting LinkState = "linked_existing"
)

// UserRow — учётная запись вместе с данными привязанного застрахованного
// для списочной страницы.
type UserRow struct {
	User    model.User
	Name    string
	Surname string
}

// Подстановка для учёток без привязанного застрахованного.
const unlinkedPlaceholder = "(not provided)"

// AccountService — учётные записи: привязка застрахованных, персонал и
// администраторы, вход, сброс пароля.
type AccountService struct {
	users   repository.UserRepository
	persons repository.InsuredPersonRepository
}

func NewAccountService(users repository.UserRepository, persons repository.InsuredPersonRepository) *AccountService {
	return &AccountService{users: users, persons: persons}
}

// RegisterPersonAccount привязывает застрахованного к учётной записи.
// Если учётка с логином, равным email застрахованного, уже существует —
// привязывается она (новая не создаётся); иначе создаётся новая с email
// в роли логина. Повторная привязка — Conflict без каких-либо изменений.
func (s *AccountService) RegisterPersonAccount(ctx context.Context, personID uuid.UUID, password string) (LinkState, *model.User, error) {
	person, err := s.persons.GetByID(ctx, personID)
	if err != nil {
		return "", nil, fmt.Errorf("insured person %s: %w", personID, mapStorageError(err))
	}
	if person.UserID != nil {
		return "", nil, fmt.Errorf("insured person %s already has a linked account: %w", personID, domain.ErrConflict)
	}

	existing, err := s.users.FindByUsername(ctx, person.Email)
	switch {
	case err == nil:
		if err := s.persons.LinkUser(ctx, person.ID, existing.ID); err != nil {
			return "", nil, fmt.Errorf("link existing account: %w", mapStorageError(err))
		}
		return LinkStateLinkedExisting, existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil, fmt.Errorf("find account by username: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", nil, err
	}

	u := &model.User{
		Username:     person.Email,
		Email:        person.Email,
		FirstName:    person.Name,
		LastName:     person.Surname,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", nil, fmt.Errorf("create account: %w", mapStorageError(err))
	}
	if err := s.persons.LinkUser(ctx, person.ID, u.ID); err != nil {
		return "", nil, fmt.Errorf("link new account: %w", mapStorageError(err))
	}
	return LinkStateCreated, u, nil
}

// CreateStaff создаёт учётку оператора (персонал без прав администратора).
func (s *AccountService) CreateStaff(ctx context.Context, username, email, firstName, lastName, password string) (*model.User, error) {
	return s.createAccount(ctx, username, email, firstName, lastName, password, true, false)
}

// CreateSuperuser создаёт учётку администратора.
func (s *AccountService) CreateSuperuser(ctx context.Context, username, email, firstName, lastName, password string) (*model.User, error) {
	return s.createAccount(ctx, username, email, firstName, lastName, password, true, true)
}

func (s *AccountService) createAccount(ctx context.Context, username, email, firstName, lastName, password string, staff, super bool) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		PasswordHash: hash,
		IsStaff:      staff,
		IsSuperuser:  super,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create account: %w", mapStorageError(err))
	}
	return u, nil
}

// Authenticate проверяет пару логин/пароль и возвращает учётку.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ResetPassword устанавливает новый пароль учётной записи.
func (s *AccountService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("reset password for %s: %w", id, mapStorageError(err))
	}
	return nil
}

// DeleteUser удаляет учётку; ссылка привязанного застрахованного
// обнуляется в той же транзакции.
func (s *AccountService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account %s: %w", id, mapStorageError(err))
	}
	return nil
}

// GetUser возвращает учётку по идентификатору.
func (s *AccountService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", id, mapStorageError(err))
	}
	return u, nil
}

// ListUsers — страница всех учёток вместе с именами привязанных
// застрахованных; для непривязанных подставляется заглушка.
func (s *AccountService) ListUsers(ctx context.Context, page int) (domain.Page[UserRow], error) {
	page, size := domain.NormalizePage(page, domain.DefaultPageSize)

	users, total, err := s.users.List(ctx, size, (page-1)*size)
	if err != nil {
		return domain.Page[UserRow]{}, fmt.Errorf("list accounts: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	persons, err := s.persons.ListByUserIDs(ctx, ids)
	if err != nil {
		return domain.Page[UserRow]{}, fmt.Errorf("list linked persons: %w", err)
	}

	byUser := make(map[uuid.UUID]model.InsuredPerson, len(persons))
	for _, p := range persons {
		if p.UserID != nil {
			byUser[*p.UserID] = p
		}
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{User: u, Name: unlinkedPlaceholder, Surname: unlinkedPlaceholder}
		if p, ok := byUser[u.ID]; ok {
			row.Name = p.Name
			row.Surname = p.Surname
		}
		rows = append(rows, row)
	}
	return domain.NewPage(rows, page, size, int(total)), nil
}

// ListStaff — страница персонала и администраторов.
func (s *AccountService) ListStaff(ctx context.Context, page int) (domain.Page[model.User], error) {
	users, err := s.users.ListStaff(ctx)
	if err != nil {
		return domain.Page[model.User]{}, fmt.Errorf("list staff: %w", err)
	}
	return domain.Paginate(users, page, domain.DefaultPageSize), nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
