package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/users-api/pkg/auth"
)

// LocalsAdmin is the c.Locals key holding the authorized auth.Administrator.
const LocalsAdmin = "admin"

// Authorizer confirms that a token subject is still an administrator.
type Authorizer interface {
	Authorize(ctx context.Context, email string) (auth.Administrator, error)
}

// NewAccessGuard returns a Fiber middleware that requires "Bearer <JWT>" and
// re-checks the administrator on every request.
func NewAccessGuard(m *Manager, authorizer Authorizer, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": ErrMissingToken.Error()})
		}
		claims, err := m.Parse(tokenStr)
		if err != nil {
			log.Debug("token rejected", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		admin, err := authorizer.Authorize(c.UserContext(), claims.Email)
		if err != nil {
			if errors.Is(err, auth.ErrForbidden) {
				log.Info("token subject is not an administrator", zap.String("email", claims.Email))
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": auth.ErrForbidden.Error()})
			}
			log.Error("authorize administrator", zap.Error(err))
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals(LocalsAdmin, admin)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
