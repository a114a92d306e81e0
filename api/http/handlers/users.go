package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/users-api/api/http/presenter"
	"github.com/artem13815/users-api/pkg/users"
)

type UsersHandler struct {
	useCase users.UseCase
	log     *zap.Logger
}

func NewUsersHandler(useCase users.UseCase, log *zap.Logger) *UsersHandler {
	return &UsersHandler{useCase: useCase, log: log}
}

// Pointers distinguish absent fields from empty ones.
type createUserRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	BirthDate  *string `json:"birthDate"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
}

type userResponse struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	BirthDate  string `json:"birthDate"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

func toUserResponse(u users.User) userResponse {
	return userResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		BirthDate:  u.BirthDate.Format(users.DateLayout),
		City:       u.City,
		PostalCode: u.PostalCode,
	}
}

// Create registers a user.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "registration payload"
// @Success 201 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/users [post]
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	user, err := h.useCase.Register(c.UserContext(), users.NewUser{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		BirthDate:  req.BirthDate,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		var fe *users.FieldError
		switch {
		case errors.As(err, &fe):
			return presenter.Error(c, http.StatusBadRequest, fe.Error())
		case errors.Is(err, users.ErrDuplicateEmail):
			return presenter.Error(c, http.StatusConflict, "Email already exists")
		default:
			h.log.Error("create user", zap.Error(err))
			return presenter.Error(c, http.StatusInternalServerError, err.Error())
		}
	}
	return presenter.JSON(c, http.StatusCreated, toUserResponse(user))
}

// List returns every registered user.
// @Summary List users
// @Tags    users
// @Produce json
// @Success 200 {array} userResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	list, err := h.useCase.List(c.UserContext())
	if err != nil {
		h.log.Error("list users", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	out := make([]userResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// Delete removes a user. Administrator only.
// @Summary  Delete user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "user id"
// @Success  200 {object} presenter.MessageResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Router   /api/users/{id} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, users.ErrNotFound.Error())
	}
	if err := h.useCase.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, users.ErrNotFound.Error())
		}
		h.log.Error("delete user", zap.Int64("id", id), zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, err.Error())
	}
	h.log.Info("user deleted", zap.Int64("id", id))
	return presenter.Message(c, http.StatusOK, "user deleted")
}
