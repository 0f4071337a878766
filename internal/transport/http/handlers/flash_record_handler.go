package handlers

import (
	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type FlashRecordHandler struct {
	service *services.FlashRecordService
	logger  *logger.Logger
}

func NewFlashRecordHandler(service *services.FlashRecordService, logger *logger.Logger) *FlashRecordHandler {
	return &FlashRecordHandler{service: service, logger: logger}
}

func (h *FlashRecordHandler) List(c *fiber.Ctx) error {
	page, pageSize := dto.ParsePagination(c)
	status := domain.FlashRecordStatus(c.Query("status"))

	items, total, err := h.service.List(c.Context(), page, pageSize, status)
	if err != nil {
		h.logger.Errorw("flash_record_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.NewPaginated(items, total, page, pageSize))
}

func (h *FlashRecordHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	rec, err := h.service.Get(c.Context(), id)
	if err != nil {
		if err == services.ErrFlashRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "flash record not found",
			})
		}
		h.logger.Errorw("flash_record_get_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(rec)
}

func (h *FlashRecordHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.FlashRecordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	rec, err := h.service.Update(c.Context(), id, func(rec *domain.FlashRecord) {
		if req.Notes != "" {
			rec.Notes = req.Notes
		}
		if req.Operator != "" {
			rec.Operator = req.Operator
		}
	})
	if err != nil {
		if err == services.ErrFlashRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "flash record not found",
			})
		}
		h.logger.Errorw("flash_record_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(rec)
}

func (h *FlashRecordHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		if err == services.ErrFlashRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "flash record not found",
			})
		}
		h.logger.Errorw("flash_record_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "flash record deleted successfully"})
}
