package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

// PersonService — создание, изменение и удаление застрахованных.
// Вся валидация выполняется до записи; при нарушениях запись не создаётся.
type PersonService struct {
	persons repository.InsuredPersonRepository
}

func NewPersonService(persons repository.InsuredPersonRepository) *PersonService {
	return &PersonService{persons: persons}
}

// Create валидирует данные формы и создаёт застрахованного.
// Возвращает *domain.ValidationError со всеми нарушениями сразу.
func (s *PersonService) Create(ctx context.Context, data domain.PersonData) (*model.InsuredPerson, error) {
	if err := domain.ValidatePerson(ctx, s.persons, data, uuid.Nil); err != nil {
		return nil, err
	}

	p := personFromData(data)
	if err := s.persons.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create insured person: %w", mapStorageError(err))
	}
	return p, nil
}

// Update применяет форму к существующему застрахованному.
// Пробы уникальности исключают редактируемую запись.
func (s *PersonService) Update(ctx context.Context, id uuid.UUID, data domain.PersonData) (*model.InsuredPerson, error) {
	p, err := s.persons.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insured person %s: %w", id, mapStorageError(err))
	}

	if err := domain.ValidatePerson(ctx, s.persons, data, id); err != nil {
		return nil, err
	}

	applyPersonData(p, data)
	if err := s.persons.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update insured person: %w", mapStorageError(err))
	}
	return p, nil
}

// Get возвращает застрахованного вместе с его договорами.
func (s *PersonService) Get(ctx context.Context, id uuid.UUID) (*model.InsuredPerson, error) {
	p, err := s.persons.GetWithInsurances(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insured person %s: %w", id, mapStorageError(err))
	}
	return p, nil
}

// Delete удаляет застрахованного каскадно вместе с договорами и их событиями.
func (s *PersonService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.persons.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete insured person %s: %w", id, mapStorageError(err))
	}
	return nil
}

// List — страница застрахованных с количеством договоров и фильтром
// по подстроке имени/фамилии.
func (s *PersonService) List(ctx context.Context, name, surname string, page int) (domain.Page[repository.InsuredPersonRow], error) {
	page, size := domain.NormalizePage(page, domain.DefaultPageSize)

	rows, total, err := s.persons.List(ctx, name, surname, size, (page-1)*size)
	if err != nil {
		return domain.Page[repository.InsuredPersonRow]{}, fmt.Errorf("list insured persons: %w", err)
	}
	return domain.NewPage(rows, page, size, int(total)), nil
}

func personFromData(data domain.PersonData) *model.InsuredPerson {
	p := &model.InsuredPerson{}
	applyPersonData(p, data)
	return p
}

func applyPersonData(p *model.InsuredPerson, data domain.PersonData) {
	p.Name = strings.TrimSpace(data.Name)
	p.Surname = strings.TrimSpace(data.Surname)
	p.Email = strings.TrimSpace(data.Email)
	p.DateOfBirth = data.DateOfBirth
	p.TelephoneNumber = strings.TrimSpace(data.TelephoneNumber)
	p.Address = strings.TrimSpace(data.Address)
	p.BirthCertificateNumber = optional(data.BirthCertificateNumber)
	p.CompanyRegistrationNumber = optional(data.CompanyRegistrationNumber)
}

// optional превращает пустую строку в NULL, чтобы не ловить ложные
// конфликты уникальности на незаполненных необязательных полях.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
