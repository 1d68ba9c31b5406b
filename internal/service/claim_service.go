package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/repository"
)

// ClaimService — страховые события: заведение по существующему договору
// и последующее одобрение с выплатой.
type ClaimService struct {
	events     repository.EventRepository
	insurances repository.InsuranceRepository

	now func() time.Time
}

func NewClaimService(events repository.EventRepository, insurances repository.InsuranceRepository) *ClaimService {
	return &ClaimService{
		events:     events,
		insurances: insurances,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// AddEvent заводит событие по договору. Дата события фиксируется сейчас;
// дата уведомления по умолчанию тоже сейчас, но может быть задним числом.
func (s *ClaimService) AddEvent(ctx context.Context, insuranceID uuid.UUID, description, damageInput string, reportDate *time.Time) (*model.Event, error) {
	if _, err := s.insurances.GetByID(ctx, insuranceID); err != nil {
		return nil, fmt.Errorf("insurance %s: %w", insuranceID, mapStorageError(err))
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("event description is required: %w", domain.ErrInvalidInput)
	}

	damage, err := parseAmount(damageInput)
	if err != nil {
		return nil, fmt.Errorf("damage amount: %w", err)
	}

	now := s.now()
	reported := now
	if reportDate != nil {
		reported = *reportDate
	}

	e := &model.Event{
		InsuranceID:  insuranceID,
		EventDate:    now,
		ReportDate:   reported,
		Description:  description,
		DamageAmount: damage,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", mapStorageError(err))
	}
	return e, nil
}

// Approve одобряет событие и фиксирует сумму выплаты.
func (s *ClaimService) Approve(ctx context.Context, id uuid.UUID, paymentInput string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, mapStorageError(err))
	}

	payment, err := parseAmount(paymentInput)
	if err != nil {
		return nil, fmt.Errorf("payment amount: %w", err)
	}

	e.IsApproved = true
	e.PaymentAmount = payment
	if err := s.events.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("approve event: %w", mapStorageError(err))
	}
	return e, nil
}

// Get возвращает событие с договором, застрахованным и типом страхования.
func (s *ClaimService) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", id, mapStorageError(err))
	}
	return e, nil
}

// List — страница событий, новые сверху.
func (s *ClaimService) List(ctx context.Context, page int) (domain.Page[model.Event], error) {
	page, size := domain.NormalizePage(page, domain.DefaultPageSize)

	events, total, err := s.events.List(ctx, size, (page-1)*size)
	if err != nil {
		return domain.Page[model.Event]{}, fmt.Errorf("list events: %w", err)
	}
	return domain.NewPage(events, page, size, int(total)), nil
}
