package handlers

import (
	"strconv"

	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service *services.UserService
	logger  *logger.Logger
}

func NewUserHandler(service *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(true); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	user := domain.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     domain.UserRole(req.Role),
		Status:   domain.UserStatus(req.Status),
	}
	if err := h.service.Create(c.Context(), &user, req.Password); err != nil {
		if err == services.ErrUserExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "username already exists",
			})
		}
		h.logger.Errorw("user_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, pageSize := dto.ParsePagination(c)
	items, total, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		h.logger.Errorw("user_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.NewPaginated(items, total, page, pageSize))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	user, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "user not found",
		})
	}
	return c.JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(false); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	user, err := h.service.Update(c.Context(), uint(id), func(u *domain.User) {
		u.Username = req.Username
		u.Email = req.Email
		u.FullName = req.FullName
		if req.Role != "" {
			u.Role = domain.UserRole(req.Role)
		}
		if req.Status != "" {
			u.Status = domain.UserStatus(req.Status)
		}
		if req.Password != "" {
			u.PasswordHash = services.HashPassword(req.Password)
		}
	})
	if err != nil {
		if err == services.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "user not found",
			})
		}
		h.logger.Errorw("user_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if err == services.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "user not found",
			})
		}
		h.logger.Errorw("user_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "user deleted successfully"})
}
