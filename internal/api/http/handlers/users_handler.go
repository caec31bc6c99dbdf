package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/image-service/internal/api/dto"
	"github.com/spec-kit/image-service/internal/service"
	apperrors "github.com/spec-kit/image-service/pkg/util"
)

// UsersHandler exposes registration and login endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	token, _, err := h.users.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid credentials")
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusOK).JSON(dto.LoginResponse{Token: token})
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	err := h.users.Register(c.Context(), service.RegisterRequest{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Age:             req.Age,
		Email:           req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			return apperrors.NewConflict("username already in use", nil)
		case errors.Is(err, service.ErrPasswordMismatch):
			return apperrors.NewConflict("passwords do not match", nil)
		default:
			return apperrors.MapError(err)
		}
	}

	return c.Status(http.StatusOK).JSON(dto.RegisterResponse{Message: "Successfully Registered!"})
}
