package jwt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/artem13815/users-api/pkg/auth"
)

type authorizerStub struct {
	admins map[string]auth.Administrator
	err    error
}

func (a authorizerStub) Authorize(_ context.Context, email string) (auth.Administrator, error) {
	if a.err != nil {
		return auth.Administrator{}, a.err
	}
	admin, ok := a.admins[email]
	if !ok {
		return auth.Administrator{}, auth.ErrForbidden
	}
	return admin, nil
}

func guardedApp(m *Manager, a Authorizer, called *bool) *fiber.App {
	app := fiber.New()
	app.Delete("/protected", NewAccessGuard(m, a, zap.NewNop()), func(c *fiber.Ctx) error {
		*called = true
		admin, _ := c.Locals(LocalsAdmin).(auth.Administrator)
		return c.JSON(fiber.Map{"email": admin.Email})
	})
	return app
}

func doGuarded(t *testing.T, app *fiber.App, header string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAccessGuard(t *testing.T) {
	m := NewManager(testSecret, "users-api", time.Hour)
	admins := authorizerStub{admins: map[string]auth.Administrator{
		"root@example.com": {ID: 1, Email: "root@example.com", Role: "admin"},
	}}
	adminToken, err := m.Generate(context.Background(), auth.Administrator{Email: "root@example.com"})
	require.NoError(t, err)
	strangerToken, err := m.Generate(context.Background(), auth.Administrator{Email: "nobody@example.com"})
	require.NoError(t, err)

	expired := NewManager(testSecret, "users-api", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Generate(context.Background(), auth.Administrator{Email: "root@example.com"})
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		authz   Authorizer
		status  int
		message string
	}{
		{"no header", "", admins, http.StatusUnauthorized, "missing token"},
		{"wrong scheme", "Token " + adminToken, admins, http.StatusUnauthorized, "missing token"},
		{"malformed", "Bearer nope", admins, http.StatusUnauthorized, "invalid token"},
		{"expired", "Bearer " + expiredToken, admins, http.StatusUnauthorized, "token expired"},
		{"not admin", "Bearer " + strangerToken, admins, http.StatusForbidden, "forbidden"},
		{"store down", "Bearer " + adminToken, authorizerStub{err: errors.New("db down")}, http.StatusInternalServerError, "db down"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			status, body := doGuarded(t, guardedApp(m, tc.authz, &called), tc.header)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body["error"])
			assert.False(t, called)
		})
	}

	t.Run("admin", func(t *testing.T) {
		called := false
		status, body := doGuarded(t, guardedApp(m, admins, &called), "Bearer "+adminToken)
		assert.Equal(t, http.StatusOK, status)
		assert.True(t, called)
		assert.Equal(t, "root@example.com", body["email"])
	})
}
