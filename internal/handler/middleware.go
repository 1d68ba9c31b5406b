package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/config"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

const claimsKey = "claims"

// TokenClaims — полезная нагрузка токена бэк-офиса.
type TokenClaims struct {
	jwt.RegisteredClaims
	Username    string `json:"username"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IssueToken выписывает HS256-токен для учётной записи.
func IssueToken(cfg *config.AppConfig, u *model.User) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
		Username:    u.Username,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// JWTProtected проверяет Bearer-токен и кладёт клеймы в контекст запроса.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return Error(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(auth, "Bearer "),
			claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
				}
				return []byte(secret), nil
			},
		)
		if err != nil || !token.Valid {
			return Error(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// StaffOnly пропускает только персонал и администраторов.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(claimsKey).(*TokenClaims)
		if !ok || (!claims.IsStaff && !claims.IsSuperuser) {
			return Error(c, fiber.StatusForbidden, "staff access required")
		}
		return c.Next()
	}
}

// AdminOnly пропускает только администраторов.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(claimsKey).(*TokenClaims)
		if !ok || !claims.IsSuperuser {
			return Error(c, fiber.StatusForbidden, "administrator access required")
		}
		return c.Next()
	}
}
