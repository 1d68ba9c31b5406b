package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

// PersonHandler — HTTP-обработчики для застрахованных.
type PersonHandler struct {
	people *service.PersonService
	policy *service.PolicyService
}

func NewPersonHandler(people *service.PersonService, policy *service.PolicyService) *PersonHandler {
	return &PersonHandler{people: people, policy: policy}
}

// List — GET /insured-persons?page=&name=&surname=
func (h *PersonHandler) List(c *fiber.Ctx) error {
	page, err := h.people.List(
		c.UserContext(),
		c.Query("name"),
		c.Query("surname"),
		c.QueryInt("page", 1),
	)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insured persons", page)
}

// Create — POST /insured-persons
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var req PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	data, err := req.toPersonData()
	if err != nil {
		return DomainError(c, err)
	}

	p, err := h.people.Create(c.UserContext(), data)
	if err != nil {
		return DomainError(c, err)
	}
	return SuccessWithCode(c, fiber.StatusCreated, "insured person created", p)
}

// Get — GET /insured-persons/:id
func (h *PersonHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insured person id")
	}

	p, err := h.people.Get(c.UserContext(), id)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insured person", p)
}

// Update — PUT /insured-persons/:id
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insured person id")
	}

	var req PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	data, err := req.toPersonData()
	if err != nil {
		return DomainError(c, err)
	}

	p, err := h.people.Update(c.UserContext(), id, data)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insured person updated", p)
}

// Delete — DELETE /insured-persons/:id
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insured person id")
	}

	if err := h.people.Delete(c.UserContext(), id); err != nil {
		return DomainError(c, err)
	}
	return Success(c, "insured person deleted", nil)
}

// AssignInsurance — POST /insured-persons/:id/insurances
func (h *PersonHandler) AssignInsurance(c *fiber.Ctx) error {
	personID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insured person id")
	}

	var req AssignInsuranceRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}
	typeID, err := uuid.Parse(req.InsuranceTypeID)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insurance type id")
	}

	ins, err := h.policy.Assign(c.UserContext(), personID, typeID, req.Subject, req.Price)
	if err != nil {
		return DomainError(c, err)
	}
	return SuccessWithCode(c, fiber.StatusCreated, "insurance assigned", ins)
}
