package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/events"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
)

// legalTransitions encodes the status state machine. Terminal states have no
// entries; anything absent is rejected with ErrTaskIllegalTransition.
var legalTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskStatusPending: {domain.TaskStatusRunning, domain.TaskStatusFailed, domain.TaskStatusCancelled},
	domain.TaskStatusRunning: {domain.TaskStatusPaused, domain.TaskStatusSuccess, domain.TaskStatusFailed, domain.TaskStatusCancelled},
	domain.TaskStatusPaused:  {domain.TaskStatusRunning, domain.TaskStatusCancelled},
}

func transitionAllowed(from, to domain.TaskStatus) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func logLine(msg string) string {
	return fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04:05"), msg)
}

type TaskServiceConfig struct {
	Store      *TaskStore
	Bus        *events.Bus
	RecordRepo ports.FlashRecordRepository
	Runner     *FlashRunner
	Logger     *logger.Logger
}

// TaskService drives the task lifecycle: creation, status transitions with
// their derived-field side effects, and archival of finished runs as flash
// records.
type TaskService struct {
	store      *TaskStore
	bus        *events.Bus
	recordRepo ports.FlashRecordRepository
	runner     *FlashRunner
	log        *logger.Logger
}

func NewTaskService(cfg TaskServiceConfig) *TaskService {
	s := &TaskService{
		store:      cfg.Store,
		bus:        cfg.Bus,
		recordRepo: cfg.RecordRepo,
		runner:     cfg.Runner,
		log:        cfg.Logger,
	}
	if s.runner != nil {
		s.runner.BindUpdater(s)
	}
	return s
}

func (s *TaskService) Store() *TaskStore { return s.store }

// CreateTask registers a new pending task and kicks off its runner. The
// device password from the input is used nowhere beyond this call and is
// never placed on the record.
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.FlashTask, error) {
	if input.DeviceIP == "" || input.DeviceUsername == "" {
		return nil, ErrTaskInvalidInput
	}
	if input.Mode != domain.FlashModeRobot && input.Mode != domain.FlashModeServer {
		return nil, ErrTaskInvalidInput
	}

	task := &domain.FlashTask{
		ID:             uuid.New().String(),
		Mode:           input.Mode,
		DeviceIP:       input.DeviceIP,
		DevicePort:     input.DevicePort,
		DeviceUsername: input.DeviceUsername,
		Status:         domain.TaskStatusPending,
		Progress:       0,
		CurrentStep:    "Waiting to start",
		StartTime:      time.Now(),
		Logs:           []string{logLine("task created")},
		CanCancel:      true,
		CanResume:      false,
		Operator:       input.Operator,
		Priority:       input.Priority,
	}
	if task.DevicePort == "" {
		task.DevicePort = "22"
	}

	switch input.Mode {
	case domain.FlashModeRobot:
		task.DeviceTypeID = input.DeviceTypeID
		task.VersionID = input.VersionID
		task.DeviceSerialNumber = input.DeviceSerialNumber
		if task.DeviceSerialNumber == "" {
			task.DeviceSerialNumber = fmt.Sprintf("SN%06d", time.Now().UnixMilli()%1000000)
		}
	case domain.FlashModeServer:
		if len(input.SoftwareIDs) == 0 {
			return nil, ErrTaskInvalidInput
		}
		task.SoftwareIDs = append([]string(nil), input.SoftwareIDs...)
		task.Logs = append(task.Logs, logLine(fmt.Sprintf("target server: %s:%s", task.DeviceIP, task.DevicePort)))
	}

	s.store.Upsert(task)
	s.log.Infow("task_created", "task_id", task.ID, "mode", task.Mode, "ip", task.DeviceIP)
	s.bus.PublishTaskUpdate(task)

	if s.runner != nil {
		s.runner.Start(task.ID)
	}
	return task, nil
}

// UpdateStatus applies a transition from the table in the status state
// machine. The status change and all its side effects land atomically under
// the store lock, and the updated snapshot is published on the bus.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, target domain.TaskStatus) (*domain.FlashTask, error) {
	return s.transition(ctx, id, target, "")
}

// Fail moves the task to failed and records the error message.
func (s *TaskService) Fail(ctx context.Context, id, errMsg string) (*domain.FlashTask, error) {
	return s.transition(ctx, id, domain.TaskStatusFailed, errMsg)
}

func (s *TaskService) transition(ctx context.Context, id string, target domain.TaskStatus, errMsg string) (*domain.FlashTask, error) {
	var from domain.TaskStatus

	updated, err := s.store.Update(id, func(t *domain.FlashTask) error {
		from = t.Status
		if !transitionAllowed(t.Status, target) {
			return ErrTaskIllegalTransition
		}

		t.Status = target
		switch target {
		case domain.TaskStatusRunning:
			t.CurrentStep = "In progress..."
			t.CanCancel = true
			t.CanResume = false
			if from == domain.TaskStatusPaused {
				t.Logs = append(t.Logs, logLine("task resumed"))
			} else {
				t.Logs = append(t.Logs, logLine("task started"))
			}
		case domain.TaskStatusPaused:
			t.CurrentStep = "Paused"
			t.CanCancel = false
			t.CanResume = true
			t.Logs = append(t.Logs, logLine("task paused"))
		case domain.TaskStatusSuccess:
			t.CurrentStep = "Task completed"
			t.Progress = 100
			t.CanCancel = false
			t.CanResume = false
			now := time.Now()
			t.EndTime = &now
			t.Logs = append(t.Logs, logLine("task completed successfully"))
		case domain.TaskStatusFailed:
			t.CurrentStep = "Task failed"
			t.CanCancel = false
			t.CanResume = false
			if errMsg != "" {
				t.ErrorMessage = errMsg
			}
			now := time.Now()
			t.EndTime = &now
			t.Logs = append(t.Logs, logLine("task failed"))
		case domain.TaskStatusCancelled:
			t.CurrentStep = "Cancelled"
			t.CanCancel = false
			t.CanResume = false
			now := time.Now()
			t.EndTime = &now
			t.Logs = append(t.Logs, logLine("task cancelled"))
		default:
			return ErrTaskIllegalTransition
		}
		return nil
	})
	if err != nil {
		if err == ErrTaskIllegalTransition {
			s.log.Warnw("task_transition_rejected", "task_id", id, "from", from, "to", target)
		}
		return nil, err
	}

	s.log.Infow("task_transition", "task_id", id, "from", from, "to", target)
	s.bus.PublishTaskUpdate(updated)

	if s.runner != nil {
		switch target {
		case domain.TaskStatusRunning:
			s.runner.Start(id)
		case domain.TaskStatusPaused, domain.TaskStatusSuccess,
			domain.TaskStatusFailed, domain.TaskStatusCancelled:
			s.runner.Stop(id)
		}
	}

	if updated.Status.IsTerminal() {
		s.archive(ctx, updated)
	}
	return updated, nil
}

// archive writes a flash record row for a finished task.
func (s *TaskService) archive(ctx context.Context, task *domain.FlashTask) {
	if s.recordRepo == nil {
		return
	}

	rec := &domain.FlashRecord{
		ID:                 "record-" + uuid.New().String(),
		DeviceTypeID:       task.DeviceTypeID,
		VersionID:          task.VersionID,
		DeviceSerialNumber: task.DeviceSerialNumber,
		DeviceIP:           task.DeviceIP,
		DevicePort:         task.DevicePort,
		DeviceUsername:     task.DeviceUsername,
		Status:             recordStatus(task.Status),
		Progress:           task.Progress,
		CurrentStep:        task.CurrentStep,
		StartTime:          task.StartTime,
		EndTime:            task.EndTime,
		ErrorMessage:       task.ErrorMessage,
		Logs:               domain.StringList(task.Logs),
		Operator:           task.Operator,
	}
	if task.EndTime != nil {
		rec.Duration = task.EndTime.Sub(task.StartTime).Milliseconds()
	}

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		s.log.Errorw("task_archive_failed", "task_id", task.ID, "error", err)
		return
	}
	s.log.Infow("task_archived", "task_id", task.ID, "record_id", rec.ID, "status", rec.Status)
}

func recordStatus(s domain.TaskStatus) domain.FlashRecordStatus {
	switch s {
	case domain.TaskStatusSuccess:
		return domain.FlashRecordStatusSuccess
	case domain.TaskStatusFailed:
		return domain.FlashRecordStatusFailed
	case domain.TaskStatusCancelled:
		return domain.FlashRecordStatusCancelled
	default:
		return domain.FlashRecordStatusProcessing
	}
}

func (s *TaskService) GetTask(id string) (*domain.FlashTask, error) {
	return s.store.GetByID(id)
}

func (s *TaskService) ListTasks(filters TaskFilters, sortBy TaskSort) []*domain.FlashTask {
	return s.store.Filtered(filters, sortBy)
}

func (s *TaskService) Stats() TaskStats {
	return s.store.Stats()
}

// DeleteTask removes the task from the store and stops any runner. Unknown
// ids are a no-op, matching the store's remove semantics.
func (s *TaskService) DeleteTask(id string) {
	if s.runner != nil {
		s.runner.Stop(id)
	}
	s.store.Remove(id)
	s.log.Infow("task_deleted", "task_id", id)
}
