package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/users-api/api/http/presenter"
)

// Options configures the Fiber application shell.
type Options struct {
	CORSAllowOrigins string
	// Metrics, when set, runs for every request before routing.
	Metrics fiber.Handler
}

// NewApp builds the Fiber app with the middleware every route shares.
func NewApp(opts Options, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "users-api",
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          errorHandler(log),
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			log.Error("panic recovered", zap.Any("panic", e), zap.String("path", c.Path()), zap.Stack("stack"))
		},
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(log))
	if opts.Metrics != nil {
		app.Use(opts.Metrics)
	}

	origins := opts.CORSAllowOrigins
	if strings.TrimSpace(origins) == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	return app
}

// errorHandler renders errors that escape handlers as {"error": msg}.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
		}
		return presenter.Error(c, code, err.Error())
	}
}

func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		log.Info("request",
			zap.String("request_id", rid),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}
