package handlers

import (
	"strconv"

	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type DeviceTypeHandler struct {
	service *services.DeviceTypeService
	logger  *logger.Logger
}

func NewDeviceTypeHandler(service *services.DeviceTypeService, logger *logger.Logger) *DeviceTypeHandler {
	return &DeviceTypeHandler{service: service, logger: logger}
}

func (h *DeviceTypeHandler) Create(c *fiber.Ctx) error {
	var req dto.DeviceTypeRequest
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

	var dt domain.DeviceType
	req.Apply(&dt)
	if err := h.service.Create(c.Context(), &dt); err != nil {
		h.logger.Errorw("device_type_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dt)
}

func (h *DeviceTypeHandler) List(c *fiber.Ctx) error {
	page, pageSize := dto.ParsePagination(c)
	items, total, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		h.logger.Errorw("device_type_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.NewPaginated(items, total, page, pageSize))
}

func (h *DeviceTypeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid device type id",
		})
	}

	dt, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "device type not found",
		})
	}
	return c.JSON(dt)
}

func (h *DeviceTypeHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid device type id",
		})
	}

	var req dto.DeviceTypeRequest
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

	dt, err := h.service.Update(c.Context(), uint(id), func(dt *domain.DeviceType) {
		req.Apply(dt)
	})
	if err != nil {
		if err == services.ErrDeviceTypeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "device type not found",
			})
		}
		h.logger.Errorw("device_type_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dt)
}

func (h *DeviceTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid device type id",
		})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if err == services.ErrDeviceTypeNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "device type not found",
			})
		}
		h.logger.Errorw("device_type_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "device type deleted successfully"})
}
