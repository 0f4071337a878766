package handlers

import (
	"strconv"

	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type ResourceTypeHandler struct {
	service *services.ResourceTypeService
	logger  *logger.Logger
}

func NewResourceTypeHandler(service *services.ResourceTypeService, logger *logger.Logger) *ResourceTypeHandler {
	return &ResourceTypeHandler{service: service, logger: logger}
}

func (h *ResourceTypeHandler) Create(c *fiber.Ctx) error {
	var req dto.ResourceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	var rt domain.ResourceType
	req.Apply(&rt)
	if err := h.service.Create(c.Context(), &rt); err != nil {
		h.logger.Errorw("resource_type_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(rt)
}

func (h *ResourceTypeHandler) List(c *fiber.Ctx) error {
	page, pageSize := dto.ParsePagination(c)
	category := domain.ResourceCategory(c.Query("category"))

	items, total, err := h.service.List(c.Context(), page, pageSize, category)
	if err != nil {
		if err == services.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: "invalid category",
			})
		}
		h.logger.Errorw("resource_type_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.NewPaginated(items, total, page, pageSize))
}

func (h *ResourceTypeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid resource type id",
		})
	}

	rt, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "resource type not found",
		})
	}
	return c.JSON(rt)
}

func (h *ResourceTypeHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid resource type id",
		})
	}

	var req dto.ResourceTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	rt, err := h.service.Update(c.Context(), uint(id), func(rt *domain.ResourceType) {
		req.Apply(rt)
	})
	if err != nil {
		if err == services.ErrResourceTypeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "resource type not found",
			})
		}
		h.logger.Errorw("resource_type_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(rt)
}

func (h *ResourceTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid resource type id",
		})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if err == services.ErrResourceTypeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "resource type not found",
			})
		}
		h.logger.Errorw("resource_type_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "resource type deleted successfully"})
}
