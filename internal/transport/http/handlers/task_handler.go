package handlers

import (
	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/fleetflash/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	service *services.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.logger.Warnw("task_create_validation_failed", "details", errs)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	h.logger.Infow("task_create_request", "mode", req.Mode, "ip", req.DeviceIP)
	task, err := h.service.CreateTask(c.Context(), req.ToInput())
	if err != nil {
		if err == services.ErrTaskInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("task_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	h.logger.Infow("task_create_success", "task_id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	filters := services.TaskFilters{
		Status: domain.TaskStatus(c.Query("status")),
		Mode:   domain.FlashMode(c.Query("mode")),
		Search: c.Query("search"),
	}
	sortBy := services.TaskSort{
		By:    c.Query("sortBy", "createdAt"),
		Order: c.Query("sortOrder", "desc"),
	}

	tasks := h.service.ListTasks(filters, sortBy)

	page, pageSize := dto.ParsePagination(c)
	total := int64(len(tasks))
	start := (page - 1) * pageSize
	if start > len(tasks) {
		start = len(tasks)
	}
	end := start + pageSize
	if end > len(tasks) {
		end = len(tasks)
	}

	return c.JSON(dto.NewPaginated(tasks[start:end], total, page, pageSize))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	task, err := h.service.GetTask(id)
	if err != nil {
		h.logger.Warnw("task_get_not_found", "task_id", id)
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "task not found",
		})
	}
	return c.JSON(task)
}

func (h *TaskHandler) GetStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// UpdateStatus applies one state-machine transition. Illegal transitions are
// rejected with 409.
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateTaskStatusRequest
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

	h.logger.Infow("task_status_request", "task_id", id, "status", req.Status)
	task, err := h.service.UpdateStatus(c.Context(), id, domain.TaskStatus(req.Status))
	if err != nil {
		switch err {
		case services.ErrTaskNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task not found",
			})
		case services.ErrTaskIllegalTransition:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		default:
			h.logger.Errorw("task_status_failed", "task_id", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
	}

	return c.JSON(task)
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	h.service.DeleteTask(id)
	return c.JSON(dto.SuccessResponse{
		Message: "task deleted successfully",
	})
}
