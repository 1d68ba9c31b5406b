package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/config"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

// AuthHandler — вход и управление учётными записями.
type AuthHandler struct {
	accounts *service.AccountService
	cfg      *config.AppConfig
}

func NewAuthHandler(accounts *service.AccountService, cfg *config.AppConfig) *AuthHandler {
	return &AuthHandler{accounts: accounts, cfg: cfg}
}

// Login — POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	u, err := h.accounts.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return DomainError(c, err)
	}

	token, err := IssueToken(h.cfg, u)
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "login successful", fiber.Map{
		"token": token,
		"user":  u,
	})
}

// RegisterPersonAccount — POST /insured-persons/:id/register
// Привязывает застрахованного к учётной записи: существующей с тем же
// адресом или новой.
func (h *AuthHandler) RegisterPersonAccount(c *fiber.Ctx) error {
	personID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid insured person id")
	}

	var req RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	state, u, err := h.accounts.RegisterPersonAccount(c.UserContext(), personID, req.Password)
	if err != nil {
		return DomainError(c, err)
	}

	message := "account created and linked"
	code := fiber.StatusCreated
	if state == service.LinkStateLinkedExisting {
		message = "existing account linked"
		code = fiber.StatusOK
	}
	return SuccessWithCode(c, code, message, fiber.Map{
		"state": state,
		"user":  u,
	})
}

// ListUsers — GET /users?page=
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	page, err := h.accounts.ListUsers(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "users", page)
}

// ListStaff — GET /staff?page=
func (h *AuthHandler) ListStaff(c *fiber.Ctx) error {
	page, err := h.accounts.ListStaff(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return DomainError(c, err)
	}
	return Success(c, "staff and administrators", page)
}

// CreateStaff — POST /staff
func (h *AuthHandler) CreateStaff(c *fiber.Ctx) error {
	return h.createAccount(c, false)
}

// CreateSuperuser — POST /staff/admins
func (h *AuthHandler) CreateSuperuser(c *fiber.Ctx) error {
	return h.createAccount(c, true)
}

func (h *AuthHandler) createAccount(c *fiber.Ctx, super bool) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	create := h.accounts.CreateStaff
	if super {
		create = h.accounts.CreateSuperuser
	}
	u, err := create(c.UserContext(), req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return DomainError(c, err)
	}
	return SuccessWithCode(c, fiber.StatusCreated, "account created", u)
}

// ResetPassword — POST /users/:id/password-reset
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return ErrorWithDetails(c, fiber.StatusBadRequest, "invalid request", validationErrorMap(err))
	}

	if err := h.accounts.ResetPassword(c.UserContext(), id, req.NewPassword); err != nil {
		return DomainError(c, err)
	}
	return Success(c, "password reset", nil)
}

// DeleteUser — DELETE /users/:id
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.accounts.DeleteUser(c.UserContext(), id); err != nil {
		return DomainError(c, err)
	}
	return Success(c, "user deleted", nil)
}
