package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/domain"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/service"
)

// Единый формат ответов JSON.

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

func ErrorWithDetails(c *fiber.Ctx, code int, message string, details interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  details,
	})
}

// DomainError переводит доменную таксономию в HTTP-статусы.
// Ошибки валидации уходят клиенту целиком — карта поле -> сообщения,
// чтобы форма показала все нарушения за один круг.
func DomainError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		code := fiber.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrConflict) {
			code = fiber.StatusConflict
		}
		return ErrorWithDetails(c, code, "validation failed", ve.Fields)
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return Error(c, fiber.StatusBadRequest, err.Error())
	}

	// Недоступность хранилища и прочее неожиданное — единственный
	// невосстановимый случай; наружу уходит без деталей.
	log.Printf("internal error: %v", err)
	return Error(c, fiber.StatusInternalServerError, "internal server error")
}
