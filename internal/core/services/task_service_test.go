package services

import (
	"context"
	"sync"
	"testing"

	"github.com/fleetflash/backend/internal/core/ports"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/events"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []*domain.FlashRecord
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec *domain.FlashRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string) (*domain.FlashRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecordRepo) List(ctx context.Context, page, pageSize int, status domain.FlashRecordStatus) ([]domain.FlashRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.FlashRecord
	for _, rec := range f.records {
		if status == "" || rec.Status == status {
			out = append(out, *rec)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec *domain.FlashRecord) error { return nil }
func (f *fakeRecordRepo) Delete(ctx context.Context, id string) error               { return nil }

func (f *fakeRecordRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *fakeRecordRepo) last() *domain.FlashRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.records) == 0 {
		return nil
	}
	return f.records[len(f.records)-1]
}

func newTestTaskService(repo ports.FlashRecordRepository) *TaskService {
	return NewTaskService(TaskServiceConfig{
		Store:      NewTaskStore(),
		Bus:        events.NewBus(logger.NewNop()),
		RecordRepo: repo,
		Logger:     logger.NewNop(),
	})
}

func robotInput() ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Mode:           domain.FlashModeRobot,
		DeviceTypeID:   "1",
		VersionID:      "2",
		DeviceIP:       "192.168.1.10",
		DeviceUsername: "root",
		DevicePassword: "secret",
	}
}

func TestCreateTaskRobotDefaults(t *testing.T) {
	svc := newTestTaskService(nil)

	task, err := svc.CreateTask(context.Background(), robotInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Status != domain.TaskStatusPending {
		t.Errorf("expected pending, got %s", task.Status)
	}
	if task.DevicePort != "22" {
		t.Errorf("expected default port 22, got %q", task.DevicePort)
	}
	if task.DeviceSerialNumber == "" {
		t.Error("expected generated serial number")
	}
	if task.CurrentStep != "Waiting to start" {
		t.Errorf("unexpected current step %q", task.CurrentStep)
	}
	if !task.CanCancel || task.CanResume {
		t.Errorf("unexpected action flags: cancel=%v resume=%v", task.CanCancel, task.CanResume)
	}
	if len(task.Logs) != 1 {
		t.Errorf("expected single creation log line, got %d", len(task.Logs))
	}
}

func TestCreateTaskServerRequiresSoftware(t *testing.T) {
	svc := newTestTaskService(nil)

	input := ports.CreateTaskInput{
		Mode:           domain.FlashModeServer,
		DeviceIP:       "10.0.0.2",
		DeviceUsername: "deploy",
	}
	if _, err := svc.CreateTask(context.Background(), input); err != ErrTaskInvalidInput {
		t.Fatalf("expected ErrTaskInvalidInput, got %v", err)
	}

	input.SoftwareIDs = []string{"1", "5"}
	task, err := svc.CreateTask(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(task.SoftwareIDs) != 2 {
		t.Errorf("expected software ids carried over, got %+v", task.SoftwareIDs)
	}
	if len(task.Logs) != 2 {
		t.Errorf("expected creation and target log lines, got %d", len(task.Logs))
	}
}

func TestCreateTaskRejectsMissingFields(t *testing.T) {
	svc := newTestTaskService(nil)

	input := robotInput()
	input.DeviceIP = ""
	if _, err := svc.CreateTask(context.Background(), input); err != ErrTaskInvalidInput {
		t.Errorf("missing ip: expected ErrTaskInvalidInput, got %v", err)
	}

	input = robotInput()
	input.Mode = "drone"
	if _, err := svc.CreateTask(context.Background(), input); err != ErrTaskInvalidInput {
		t.Errorf("bad mode: expected ErrTaskInvalidInput, got %v", err)
	}
}

func TestCreateTaskNeverStoresPassword(t *testing.T) {
	svc := newTestTaskService(nil)
	task, err := svc.CreateTask(context.Background(), robotInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := svc.GetTask(task.ID)
	for _, line := range stored.Logs {
		if line == "secret" {
			t.Fatal("password leaked into task logs")
		}
	}
}

func TestLifecyclePendingToSuccess(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := newTestTaskService(repo)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, robotInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []domain.TaskStatus{
		domain.TaskStatusRunning,
		domain.TaskStatusPaused,
		domain.TaskStatusRunning,
		domain.TaskStatusSuccess,
	}
	var current *domain.FlashTask
	for _, target := range steps {
		current, err = svc.UpdateStatus(ctx, task.ID, target)
		if err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
	}

	if current.Status != domain.TaskStatusSuccess {
		t.Errorf("expected success, got %s", current.Status)
	}
	if current.Progress != 100 {
		t.Errorf("expected progress forced to 100, got %d", current.Progress)
	}
	if current.EndTime == nil {
		t.Error("expected end time set")
	}
	if current.CanCancel || current.CanResume {
		t.Errorf("terminal task kept action flags: cancel=%v resume=%v", current.CanCancel, current.CanResume)
	}
	// created + started + paused + resumed + completed
	if len(current.Logs) != 5 {
		t.Errorf("expected 5 log lines, got %d: %v", len(current.Logs), current.Logs)
	}

	if repo.count() != 1 {
		t.Fatalf("expected 1 archived record, got %d", repo.count())
	}
	rec := repo.last()
	if rec.Status != domain.FlashRecordStatusSuccess {
		t.Errorf("expected archived status success, got %s", rec.Status)
	}
	if len(rec.ID) < len("record-") || rec.ID[:len("record-")] != "record-" {
		t.Errorf("unexpected record id %q", rec.ID)
	}
}

func TestPauseResumeFlags(t *testing.T) {
	svc := newTestTaskService(nil)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, robotInput())
	svc.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning)

	paused, err := svc.UpdateStatus(ctx, task.ID, domain.TaskStatusPaused)
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if paused.CanCancel || !paused.CanResume {
		t.Errorf("paused flags wrong: cancel=%v resume=%v", paused.CanCancel, paused.CanResume)
	}
	if paused.CurrentStep != "Paused" {
		t.Errorf("unexpected step %q", paused.CurrentStep)
	}

	resumed, err := svc.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !resumed.CanCancel || resumed.CanResume {
		t.Errorf("resumed flags wrong: cancel=%v resume=%v", resumed.CanCancel, resumed.CanResume)
	}
}

func TestIllegalTransitionsRejected(t *testing.T) {
	svc := newTestTaskService(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		path []domain.TaskStatus
		to   domain.TaskStatus
	}{
		{"pending to paused", nil, domain.TaskStatusPaused},
		{"pending to success", nil, domain.TaskStatusSuccess},
		{"paused to success", []domain.TaskStatus{domain.TaskStatusRunning, domain.TaskStatusPaused}, domain.TaskStatusSuccess},
		{"paused to failed", []domain.TaskStatus{domain.TaskStatusRunning, domain.TaskStatusPaused}, domain.TaskStatusFailed},
		{"success to running", []domain.TaskStatus{domain.TaskStatusRunning, domain.TaskStatusSuccess}, domain.TaskStatusRunning},
		{"cancelled to running", []domain.TaskStatus{domain.TaskStatusCancelled}, domain.TaskStatusRunning},
		{"failed to running", []domain.TaskStatus{domain.TaskStatusFailed}, domain.TaskStatusRunning},
	}

	for _, tc := range cases {
		task, err := svc.CreateTask(ctx, robotInput())
		if err != nil {
			t.Fatalf("%s: create: %v", tc.name, err)
		}
		for _, step := range tc.path {
			if _, err := svc.UpdateStatus(ctx, task.ID, step); err != nil {
				t.Fatalf("%s: setup transition to %s: %v", tc.name, step, err)
			}
		}
		before, _ := svc.GetTask(task.ID)
		if _, err := svc.UpdateStatus(ctx, task.ID, tc.to); err != ErrTaskIllegalTransition {
			t.Errorf("%s: expected ErrTaskIllegalTransition, got %v", tc.name, err)
		}
		after, _ := svc.GetTask(task.ID)
		if after.Status != before.Status || len(after.Logs) != len(before.Logs) {
			t.Errorf("%s: rejected transition mutated the task", tc.name)
		}
	}
}

func TestProgressHundredOnlyOnSuccess(t *testing.T) {
	svc := newTestTaskService(nil)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, robotInput())
	svc.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning)
	failed, err := svc.Fail(ctx, task.ID, "device unreachable")
	if err != nil {
		t.Fatalf("fail: %v", err)
	}
	if failed.Progress == 100 {
		t.Error("failed task must not report 100% progress")
	}
	if failed.ErrorMessage != "device unreachable" {
		t.Errorf("expected error message kept, got %q", failed.ErrorMessage)
	}
}

func TestUpdateStatusUnknownTask(t *testing.T) {
	svc := newTestTaskService(nil)
	if _, err := svc.UpdateStatus(context.Background(), "missing", domain.TaskStatusRunning); err != ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTransitionsPublishSnapshots(t *testing.T) {
	bus := events.NewBus(logger.NewNop())
	svc := NewTaskService(TaskServiceConfig{
		Store:  NewTaskStore(),
		Bus:    bus,
		Logger: logger.NewNop(),
	})
	ctx := context.Background()

	var published []domain.TaskStatus
	bus.On(events.TopicTasksUpdate, func(payload interface{}) {
		published = append(published, payload.(*domain.FlashTask).Status)
	})

	task, _ := svc.CreateTask(ctx, robotInput())
	svc.UpdateStatus(ctx, task.ID, domain.TaskStatusRunning)
	svc.UpdateStatus(ctx, task.ID, domain.TaskStatusCancelled)

	want := []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusRunning,
		domain.TaskStatusCancelled,
	}
	if len(published) != len(want) {
		t.Fatalf("expected %d publishes, got %d", len(want), len(published))
	}
	for i := range want {
		if published[i] != want[i] {
			t.Errorf("publish %d: expected %s, got %s", i, want[i], published[i])
		}
	}
}

func TestCancelledTaskArchivedAsCancelled(t *testing.T) {
	repo := &fakeRecordRepo{}
	svc := newTestTaskService(repo)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, robotInput())
	svc.UpdateStatus(ctx, task.ID, domain.TaskStatusCancelled)

	if repo.count() != 1 {
		t.Fatalf("expected 1 archived record, got %d", repo.count())
	}
	if repo.last().Status != domain.FlashRecordStatusCancelled {
		t.Errorf("expected cancelled record, got %s", repo.last().Status)
	}
}

func TestDeleteTaskRemovesFromStore(t *testing.T) {
	svc := newTestTaskService(nil)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, robotInput())
	svc.DeleteTask(task.ID)

	if _, err := svc.GetTask(task.ID); err != ErrTaskNotFound {
		t.Fatalf("expected task gone, got %v", err)
	}

	// unknown ids are fine
	svc.DeleteTask("missing")
}
