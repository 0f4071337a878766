package handlers

import (
	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/fleetflash/backend/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "username and password are required",
		})
	}

	result, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case services.ErrAuthInvalidCredentials:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid username or password",
			})
		case services.ErrAuthUserSuspended:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "user is not active",
			})
		default:
			h.logger.Errorw("auth_login_failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
	}

	return c.JSON(dto.LoginResponse{Token: result.Token, User: result.User})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.Token(c); token != "" {
		h.service.Logout(token)
	}
	return c.JSON(dto.SuccessResponse{Message: "logged out"})
}
