package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

// Количество попыток подобрать свободный номер договора.
const contractNumberAttempts = 5

// PolicyService — каталог страховых продуктов и договоры:
// назначение страхования застрахованному, правки, удаление.
type PolicyService struct {
	persons    repository.InsuredPersonRepository
	types      repository.InsuranceTypeRepository
	insurances repository.InsuranceRepository
	events     repository.EventRepository

	now func() time.Time
}

func NewPolicyService(
	persons repository.InsuredPersonRepository,
	types repository.InsuranceTypeRepository,
	insurances repository.InsuranceRepository,
	events repository.EventRepository,
) *PolicyService {
	return &PolicyService{
		persons:    persons,
		types:      types,
		insurances: insurances,
		events:     events,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Assign создаёт договор: привязывает активный страховой продукт к
// застрахованному. Неактивный тип не назначается никогда, даже при
// корректном идентификаторе. Цена парсится до любой записи: некорректный
// ввод жёстко блокирует создание, частичных записей не бывает.
func (s *PolicyService) Assign(ctx context.Context, personID, typeID uuid.UUID, subject, priceInput string) (*model.Insurance, error) {
	person, err := s.persons.GetByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("insured person %s: %w", personID, mapStorageError(err))
	}

	t, err := s.types.GetByID(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("insurance type %s: %w", typeID, mapStorageError(err))
	}
	if !t.IsActive {
		return nil, fmt.Errorf("insurance type %s is not active: %w", typeID, domain.ErrNotFound)
	}

	price, err := parseAmount(priceInput)
	if err != nil {
		return nil, fmt.Errorf("insurance price: %w", err)
	}

	number, err := s.generateContractNumber(ctx)
	if err != nil {
		return nil, err
	}

	ins := &model.Insurance{
		InsuredPersonID: person.ID,
		InsuranceTypeID: t.ID,
		Number:          number,
		Subject:         strings.TrimSpace(subject),
		Price:           price,
		StartDate:       datatypes.Date(s.now()),
		IsActive:        true,
	}
	if err := s.insurances.Create(ctx, ins); err != nil {
		return nil, fmt.Errorf("create insurance: %w", mapStorageError(err))
	}
	return ins, nil
}

// generateContractNumber подбирает короткий уникальный номер договора.
// Схема как в исходной системе: первые 8 знаков uuid, с повтором при
// коллизии; уникальность дополнительно гарантирует ограничение в БД.
func (s *PolicyService) generateContractNumber(ctx context.Context) (string, error) {
	for i := 0; i < contractNumberAttempts; i++ {
		number := uuid.NewString()[:8]
		taken, err := s.insurances.NumberTaken(ctx, number)
		if err != nil {
			return "", fmt.Errorf("check contract number: %w", err)
		}
		if !taken {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique contract number in %d attempts", contractNumberAttempts)
}

// UpdateInsuranceParams — необязательные правки договора. Дата начала
// не меняется никогда.
type UpdateInsuranceParams struct {
	Subject  *string
	Price    *string
	IsActive *bool
	EndDate  *datatypes.Date
}

// UpdateInsurance правит предмет, цену, статус и дату окончания договора.
func (s *PolicyService) UpdateInsurance(ctx context.Context, id uuid.UUID, params UpdateInsuranceParams) (*model.Insurance, error) {
	ins, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insurance %s: %w", id, mapStorageError(err))
	}

	if params.Price != nil {
		price, err := parseAmount(*params.Price)
		if err != nil {
			return nil, fmt.Errorf("insurance price: %w", err)
		}
		ins.Price = price
	}
	if params.Subject != nil {
		ins.Subject = strings.TrimSpace(*params.Subject)
	}
	if params.IsActive != nil {
		ins.IsActive = *params.IsActive
	}
	if params.EndDate != nil {
		ins.EndDate = params.EndDate
	}

	if err := s.insurances.Update(ctx, ins); err != nil {
		return nil, fmt.Errorf("update insurance: %w", mapStorageError(err))
	}
	return ins, nil
}

// GetInsurance возвращает договор с застрахованным, типом и событиями.
func (s *PolicyService) GetInsurance(ctx context.Context, id uuid.UUID) (*model.Insurance, []model.Event, error) {
	ins, err := s.insurances.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("insurance %s: %w", id, mapStorageError(err))
	}
	events, err := s.events.ListByInsurance(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list insurance events: %w", err)
	}
	return ins, events, nil
}

// DeleteInsurance удаляет договор вместе с его событиями.
func (s *PolicyService) DeleteInsurance(ctx context.Context, id uuid.UUID) error {
	if err := s.insurances.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete insurance %s: %w", id, mapStorageError(err))
	}
	return nil
}

// SearchInsurances — поиск договоров по имени/фамилии застрахованного.
func (s *PolicyService) SearchInsurances(ctx context.Context, query string, page int) (domain.Page[model.Insurance], error) {
	page, size := domain.NormalizePage(page, domain.DefaultPageSize)

	insurances, total, err := s.insurances.SearchByPersonName(ctx, query, size, (page-1)*size)
	if err != nil {
		return domain.Page[model.Insurance]{}, fmt.Errorf("search insurances: %w", err)
	}
	return domain.NewPage(insurances, page, size, int(total)), nil
}

// CreateType добавляет продукт в каталог.
func (s *PolicyService) CreateType(ctx context.Context, name, description string, active bool) (*model.InsuranceType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("insurance type name is required: %w", domain.ErrInvalidInput)
	}

	t := &model.InsuranceType{
		Name:        name,
		Description: strings.TrimSpace(description),
		IsActive:    active,
	}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create insurance type: %w", mapStorageError(err))
	}
	return t, nil
}

// UpdateType правит имя и описание продукта.
func (s *PolicyService) UpdateType(ctx context.Context, id uuid.UUID, name, description string) (*model.InsuranceType, error) {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("insurance type %s: %w", id, mapStorageError(err))
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("insurance type name is required: %w", domain.ErrInvalidInput)
	}
	t.Name = name
	t.Description = strings.TrimSpace(description)

	if err := s.types.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update insurance type: %w", mapStorageError(err))
	}
	return t, nil
}

// SetTypeActive включает или выключает продукт в каталоге.
func (s *PolicyService) SetTypeActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.types.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set insurance type %s active=%v: %w", id, active, mapStorageError(err))
	}
	return nil
}

// ListTypes возвращает каталог: активные сверху.
func (s *PolicyService) ListTypes(ctx context.Context) ([]model.InsuranceType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list insurance types: %w", err)
	}
	return types, nil
}

// ListActiveTypes возвращает только назначаемые продукты.
func (s *PolicyService) ListActiveTypes(ctx context.Context) ([]model.InsuranceType, error) {
	types, err := s.types.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active insurance types: %w", err)
	}
	return types, nil
}

// parseAmount парсит неотрицательную денежную сумму из строки формы.
func parseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a valid amount: %w", input, domain.ErrInvalidInput)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative: %w", domain.ErrInvalidInput)
	}
	return amount, nil
}
