package handlers

import (
	"strconv"

	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type VersionHandler struct {
	service *services.VersionService
	logger  *logger.Logger
}

func NewVersionHandler(service *services.VersionService, logger *logger.Logger) *VersionHandler {
	return &VersionHandler{service: service, logger: logger}
}

func (h *VersionHandler) Create(c *fiber.Ctx) error {
	var req dto.VersionRequest
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

	var v domain.FirmwareVersion
	req.Apply(&v)
	if err := h.service.Create(c.Context(), &v); err != nil {
		if err == services.ErrVersionExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "version number already exists",
			})
		}
		h.logger.Errorw("version_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (h *VersionHandler) List(c *fiber.Ctx) error {
	page, pageSize := dto.ParsePagination(c)
	items, total, err := h.service.List(c.Context(), page, pageSize)
	if err != nil {
		h.logger.Errorw("version_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.NewPaginated(items, total, page, pageSize))
}

func (h *VersionHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid version id",
		})
	}

	v, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "version not found",
		})
	}
	return c.JSON(v)
}

func (h *VersionHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid version id",
		})
	}

	var req dto.VersionRequest
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

	v, err := h.service.Update(c.Context(), uint(id), func(v *domain.FirmwareVersion) {
		req.Apply(v)
	})
	if err != nil {
		if err == services.ErrVersionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "version not found",
			})
		}
		h.logger.Errorw("version_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(v)
}

func (h *VersionHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid version id",
		})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if err == services.ErrVersionNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "version not found",
			})
		}
		h.logger.Errorw("version_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "version deleted successfully"})
}
