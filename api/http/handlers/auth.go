package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/users-api/api/http/presenter"
	"github.com/artem13815/users-api/pkg/auth"
	"github.com/artem13815/users-api/pkg/metrics"
)

// LoginRecorder observes login outcomes.
type LoginRecorder interface {
	RecordLogin(outcome string)
}

type AuthHandler struct {
	useCase  auth.AuthUseCase
	recorder LoginRecorder
	log      *zap.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, recorder LoginRecorder, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, recorder: recorder, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Login authenticates an administrator.
// @Summary Administrator login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "email and password are required")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.record(metrics.LoginInvalid)
			h.log.Info("login rejected", zap.String("ip", c.IP()))
			return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		h.record(metrics.LoginError)
		h.log.Error("login", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}

	h.record(metrics.LoginSuccess)
	return presenter.JSON(c, http.StatusOK, loginResponse{
		Token: result.Token,
		Email: result.Admin.Email,
	})
}

func (h *AuthHandler) record(outcome string) {
	if h.recorder != nil {
		h.recorder.RecordLogin(outcome)
	}
}
