package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SMR79/Pojistovna-ITnetwork/internal/config"
	"github.com/SMR79/Pojistovna-ITnetwork/internal/model"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}
}

// newGatedApp mounts the three protection levels on probe routes.
func newGatedApp(cfg *config.AppConfig) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return Success(c, "ok", nil) }

	protected := app.Group("/", JWTProtected(cfg.JWTSecret))
	protected.Get("/any", ok)
	protected.Get("/staff", StaffOnly(), ok)
	protected.Get("/admin", AdminOnly(), ok)
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func issue(t *testing.T, cfg *config.AppConfig, staff, super bool) string {
	t.Helper()

	token, err := IssueToken(cfg, &model.User{Username: "probe", IsStaff: staff, IsSuperuser: super})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestJWTProtected_RejectsMissingAndForeignTokens(t *testing.T) {
	cfg := testConfig()
	app := newGatedApp(cfg)

	if code := request(t, app, "/any", ""); code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", code)
	}

	foreign := issue(t, &config.AppConfig{JWTSecret: "other-secret", TokenTTL: time.Hour}, true, true)
	if code := request(t, app, "/any", foreign); code != http.StatusUnauthorized {
		t.Fatalf("foreign signature: status %d, want 401", code)
	}

	expired := &config.AppConfig{JWTSecret: cfg.JWTSecret, TokenTTL: -time.Hour}
	if code := request(t, app, "/any", issue(t, expired, true, true)); code != http.StatusUnauthorized {
		t.Fatalf("expired token: status %d, want 401", code)
	}
}

func TestRoleGates(t *testing.T) {
	cfg := testConfig()
	app := newGatedApp(cfg)

	linkedPerson := issue(t, cfg, false, false)
	staff := issue(t, cfg, true, false)
	admin := issue(t, cfg, true, true)

	cases := []struct {
		path, token string
		want        int
	}{
		{"/any", linkedPerson, http.StatusOK},
		{"/staff", linkedPerson, http.StatusForbidden},
		{"/staff", staff, http.StatusOK},
		{"/admin", staff, http.StatusForbidden},
		{"/admin", admin, http.StatusOK},
	}
	for _, tc := range cases {
		if code := request(t, app, tc.path, tc.token); code != tc.want {
			t.Fatalf("%s: status %d, want %d", tc.path, code, tc.want)
		}
	}
}
