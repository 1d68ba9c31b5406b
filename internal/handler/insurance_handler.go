package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

// InsuranceHandler — каталог продуктов и договоры.
type InsuranceHandler struct {
	policy *service.PolicyService
}

func NewInsuranceHandler(policy *service.PolicyService) *InsuranceHandler {
	return &InsuranceHandler{policy: policy}
}

// ListTypes — GET /insurance-types
func (h *InsuranceHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.policy.ListTypes(c.UserContext())
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurance types", types)
}

// ListActiveTypes — GET /insurance-types/active
func (h *InsuranceHandler) ListActiveTypes(c *fiber.Ctx) error {
	types, err := h.policy.ListActiveTypes(c.UserContext())
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "active insurance types", types)
}

// CreateType — POST /insurance-types
func (h *InsuranceHandler) CreateType(c *fiber.Ctx) error {
	var req InsuranceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	t, err := h.policy.CreateType(c.UserContext(), req.Name, req.Description, req.IsActive)
	if err != nil {
		return DomainError(c, err)
	}
	return SuccessWithCode(c, fiber.StatusCreated, "insurance type created", t)
}

// UpdateType — PUT /insurance-types/:id
func (h *InsuranceHandler) UpdateType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance type id")
	}

	var req InsuranceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	t, err := h.policy.UpdateType(c.UserContext(), id, req.Name, req.Description)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurance type updated", t)
}

// SetTypeActive — POST /insurance-types/:id/activate и /deactivate.
func (h *InsuranceHandler) SetTypeActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return Error(c, fiber.StatusBadRequest, "invalid insurance type id")
		}
		if err := h.policy.SetTypeActive(c.UserContext(), id, active); err != nil {
			return DomainError(c, err)
		}
		return Success(c, "insurance type status updated", nil)
	}
}

// Get — GET /insurances/:id (договор вместе с событиями).
func (h *InsuranceHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance id")
	}

	ins, events, err := h.policy.GetInsurance(c.UserContext(), id)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurance", fiber.Map{
		"insurance": ins,
		"events":    events,
	})
}

// Update — PUT /insurances/:id
func (h *InsuranceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance id")
	}

	var req UpdateInsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	params := service.UpdateInsuranceParams{
		Subject:  req.Subject,
		Price:    req.Price,
		IsActive: req.IsActive,
	}
	if req.EndDate != nil && *req.EndDate != "" {
		t, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return DomainError(c, fmt.Errorf("end_date %q: %w", *req.EndDate, domain.ErrInvalidInput))
		}
		d := datatypes.Date(t)
		params.EndDate = &d
	}

	ins, err := h.policy.UpdateInsurance(c.UserContext(), id, params)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurance updated", ins)
}

// Delete — DELETE /insurances/:id
func (h *InsuranceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance id")
	}

	if err := h.policy.DeleteInsurance(c.UserContext(), id); err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurance deleted", nil)
}

// Search — GET /insurances/search?q=&page= (по имени застрахованного).
func (h *InsuranceHandler) Search(c *fiber.Ctx) error {
	page, err := h.policy.SearchInsurances(c.UserContext(), c.Query("q"), c.QueryInt("page", 1))
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insurances", page)
}
