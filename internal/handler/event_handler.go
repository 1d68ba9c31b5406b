package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

// EventHandler — страховые события.
type EventHandler struct {
	claims *service.ClaimService
}

func NewEventHandler(claims *service.ClaimService) *EventHandler {
	return &EventHandler{claims: claims}
}

// List — GET /events?page=
func (h *EventHandler) List(c *fiber.Ctx) error {
	page, err := h.claims.List(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "events", page)
}

// Get — GET /events/:id
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid event id")
	}

	e, err := h.claims.Get(c.UserContext(), id)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "event", e)
}

// Create — POST /events
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req AddEventRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}
	insuranceID, err := uuid.Parse(req.InsuranceID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance id")
	}

	var reportDate *time.Time
	if req.ReportDate != nil && *req.ReportDate != "" {
		t, err := time.Parse(time.RFC3339, *req.ReportDate)
		if err != nil {
			return DomainError(c, fmt.Errorf("report_date %q: %w", *req.ReportDate, domain.ErrInvalidInput))
		}
		reportDate = &t
	}

	e, err := h.claims.AddEvent(c.UserContext(), insuranceID, req.Description, req.DamageAmount, reportDate)
	if err != nil {
		return DomainError(c, err)
	}
	return SuccessWithCode(c, fiber.StatusCreated, "event created", e)
}

// Approve — POST /events/:id/approve
func (h *EventHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid event id")
	}

	var req ApproveEventRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	e, err := h.claims.Approve(c.UserContext(), id, req.PaymentAmount)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "event approved", e)
}
