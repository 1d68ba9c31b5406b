package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/config"
)

// RegisterRoutes собирает маршруты бэк-офиса.
// Всё, кроме входа и health-check, закрыто токеном; управление
// учётными записями — только для администраторов.
func RegisterRoutes(
	app *fiber.App,
	cfg *config.AppConfig,
	auth *AuthHandler,
	persons *PersonHandler,
	insurances *InsuranceHandler,
	events *EventHandler,
) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api/v1")
	api.Post("/auth/login", auth.Login)

	protected := api.Group("", JWTProtected(cfg.JWTSecret), StaffOnly())

	p := protected.Group("/insured-persons")
	p.Get("/", persons.List)
	p.Post("/", persons.Create)
	p.Get("/:id", persons.Get)
	p.Put("/:id", persons.Update)
	p.Delete("/:id", persons.Delete)
	p.Post("/:id/insurances", persons.AssignInsurance)
	p.Post("/:id/register", auth.RegisterPersonAccount)

	t := protected.Group("/insurance-types")
	t.Get("/", insurances.ListTypes)
	t.Get("/active", insurances.ListActiveTypes)
	t.Post("/", insurances.CreateType)
	t.Put("/:id", insurances.UpdateType)
	t.Post("/:id/activate", insurances.SetTypeActive(true))
	t.Post("/:id/deactivate", insurances.SetTypeActive(false))

	i := protected.Group("/insurances")
	i.Get("/search", insurances.Search)
	i.Get("/:id", insurances.Get)
	i.Put("/:id", insurances.Update)
	i.Delete("/:id", insurances.Delete)

	e := protected.Group("/events")
	e.Get("/", events.List)
	e.Post("/", events.Create)
	e.Get("/:id", events.Get)
	e.Post("/:id/approve", events.Approve)

	admin := protected.Group("", AdminOnly())
	admin.Get("/users", auth.ListUsers)
	admin.Delete("/users/:id", auth.DeleteUser)
	admin.Post("/users/:id/password-reset", auth.ResetPassword)
	admin.Get("/staff", auth.ListStaff)
	admin.Post("/staff", auth.CreateStaff)
	admin.Post("/staff/admins", auth.CreateSuperuser)
}
