package services

import (
	"testing"
	"time"

	"github.com/fleetflash/backend/internal/domain"
)

func newTestTask(id string, mode domain.FlashMode, status domain.TaskStatus) *domain.FlashTask {
	return &domain.FlashTask{
		ID:             id,
		Mode:           mode,
		DeviceIP:       "10.0.0.1",
		DeviceUsername: "root",
		Status:         status,
		StartTime:      time.Now(),
	}
}

func TestUpsertPreservesInsertionOrder(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))
	store.Upsert(newTestTask("b", domain.FlashModeRobot, domain.TaskStatusPending))
	store.Upsert(newTestTask("c", domain.FlashModeRobot, domain.TaskStatusPending))

	tasks := store.List()
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i, want := range []string{"a", "b", "c"} {
		if tasks[i].ID != want {
			t.Errorf("position %d: expected %q, got %q", i, want, tasks[i].ID)
		}
	}
}

func TestUpsertReplacesWithoutReordering(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))
	store.Upsert(newTestTask("b", domain.FlashModeRobot, domain.TaskStatusPending))

	replacement := newTestTask("a", domain.FlashModeRobot, domain.TaskStatusRunning)
	replacement.Progress = 42
	store.Upsert(replacement)

	tasks := store.List()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].Progress != 42 {
		t.Errorf("expected replaced task first with progress 42, got %+v", tasks[0])
	}
}

func TestUpsertStoresClone(t *testing.T) {
	store := NewTaskStore()
	task := newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending)
	store.Upsert(task)

	task.Progress = 99
	got, err := store.GetByID("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Progress != 0 {
		t.Errorf("mutating the caller's task leaked into the store: progress=%d", got.Progress)
	}
}

func TestGetByIDUnknown(t *testing.T) {
	store := NewTaskStore()
	if _, err := store.GetByID("missing"); err != ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestRemoveClearsFocus(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))
	store.SetFocusedTaskID("a")

	store.Remove("a")

	if _, ok := store.FocusedTask(); ok {
		t.Error("expected focus cleared after removing the focused task")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))
	store.Remove("missing")
	if store.Len() != 1 {
		t.Fatalf("expected store untouched, got %d tasks", store.Len())
	}
}

func TestUpdateAppliesAtomically(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))

	updated, err := store.Update("a", func(task *domain.FlashTask) error {
		task.Status = domain.TaskStatusRunning
		task.Progress = 16
		task.Logs = append(task.Logs, "started")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TaskStatusRunning || updated.Progress != 16 {
		t.Errorf("mutation not applied: %+v", updated)
	}

	got, _ := store.GetByID("a")
	if got.Progress != 16 || len(got.Logs) != 1 {
		t.Errorf("canonical record not updated: %+v", got)
	}
}

func TestUpdateRejectedMutationLeavesRecordUntouched(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusPending))

	_, err := store.Update("a", func(task *domain.FlashTask) error {
		return ErrTaskIllegalTransition
	})
	if err != ErrTaskIllegalTransition {
		t.Fatalf("expected ErrTaskIllegalTransition, got %v", err)
	}
}

func TestFilteredByStatusAndMode(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("a", domain.FlashModeRobot, domain.TaskStatusRunning))
	store.Upsert(newTestTask("b", domain.FlashModeServer, domain.TaskStatusRunning))
	store.Upsert(newTestTask("c", domain.FlashModeRobot, domain.TaskStatusSuccess))

	running := store.Filtered(TaskFilters{Status: domain.TaskStatusRunning}, TaskSort{})
	if len(running) != 2 {
		t.Errorf("expected 2 running tasks, got %d", len(running))
	}

	robotRunning := store.Filtered(TaskFilters{Status: domain.TaskStatusRunning, Mode: domain.FlashModeRobot}, TaskSort{})
	if len(robotRunning) != 1 || robotRunning[0].ID != "a" {
		t.Errorf("expected only task a, got %+v", robotRunning)
	}
}

func TestFilteredSearchMatchesIPUsernameAndStep(t *testing.T) {
	store := NewTaskStore()

	byIP := newTestTask("a", domain.FlashModeRobot, domain.TaskStatusRunning)
	byIP.DeviceIP = "192.168.1.10"
	store.Upsert(byIP)

	byUser := newTestTask("b", domain.FlashModeRobot, domain.TaskStatusRunning)
	byUser.DeviceUsername = "Maintainer"
	store.Upsert(byUser)

	byStep := newTestTask("c", domain.FlashModeRobot, domain.TaskStatusRunning)
	byStep.CurrentStep = "Writing firmware"
	store.Upsert(byStep)

	cases := []struct {
		search string
		want   string
	}{
		{"192.168.1.10", "a"},
		{"maintainer", "b"},
		{"writing", "c"},
	}
	for _, tc := range cases {
		got := store.Filtered(TaskFilters{Search: tc.search}, TaskSort{})
		if len(got) != 1 || got[0].ID != tc.want {
			t.Errorf("search %q: expected [%s], got %+v", tc.search, tc.want, got)
		}
	}
}

func TestFilteredSortByProgress(t *testing.T) {
	store := NewTaskStore()
	for _, tc := range []struct {
		id       string
		progress int
	}{{"a", 50}, {"b", 10}, {"c", 90}} {
		task := newTestTask(tc.id, domain.FlashModeRobot, domain.TaskStatusRunning)
		task.Progress = tc.progress
		store.Upsert(task)
	}

	asc := store.Filtered(TaskFilters{}, TaskSort{By: "progress", Order: "asc"})
	if asc[0].ID != "b" || asc[2].ID != "c" {
		t.Errorf("ascending sort wrong: %s %s %s", asc[0].ID, asc[1].ID, asc[2].ID)
	}

	desc := store.Filtered(TaskFilters{}, TaskSort{By: "progress", Order: "desc"})
	if desc[0].ID != "c" || desc[2].ID != "b" {
		t.Errorf("descending sort wrong: %s %s %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}
}

func TestFilteredSortByCreatedAt(t *testing.T) {
	store := NewTaskStore()
	base := time.Now()
	for i, id := range []string{"a", "b", "c"} {
		task := newTestTask(id, domain.FlashModeRobot, domain.TaskStatusRunning)
		task.StartTime = base.Add(time.Duration(i) * time.Minute)
		store.Upsert(task)
	}

	desc := store.Filtered(TaskFilters{}, TaskSort{By: "createdAt", Order: "desc"})
	if desc[0].ID != "c" || desc[2].ID != "a" {
		t.Errorf("newest-first sort wrong: %s %s %s", desc[0].ID, desc[1].ID, desc[2].ID)
	}
}

func TestStats(t *testing.T) {
	store := NewTaskStore()
	statuses := []domain.TaskStatus{
		domain.TaskStatusPending,
		domain.TaskStatusRunning,
		domain.TaskStatusRunning,
		domain.TaskStatusPaused,
		domain.TaskStatusSuccess,
		domain.TaskStatusFailed,
		domain.TaskStatusCancelled,
	}
	for i, status := range statuses {
		store.Upsert(newTestTask(string(rune('a'+i)), domain.FlashModeRobot, status))
	}

	stats := store.Stats()
	if stats.Total != 7 {
		t.Errorf("total: expected 7, got %d", stats.Total)
	}
	if stats.Running != 2 {
		t.Errorf("running: expected 2, got %d", stats.Running)
	}
	if stats.Pending != 1 || stats.Paused != 1 || stats.Success != 1 || stats.Failed != 1 || stats.Cancelled != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if sum := stats.Pending + stats.Running + stats.Paused + stats.Success + stats.Failed + stats.Cancelled; sum != stats.Total {
		t.Errorf("per-status counts %d do not sum to total %d", sum, stats.Total)
	}
}

func TestSetTasksReplacesCollection(t *testing.T) {
	store := NewTaskStore()
	store.Upsert(newTestTask("old", domain.FlashModeRobot, domain.TaskStatusRunning))

	store.SetTasks([]*domain.FlashTask{
		newTestTask("x", domain.FlashModeRobot, domain.TaskStatusPending),
		newTestTask("y", domain.FlashModeServer, domain.TaskStatusPending),
	})

	if store.Len() != 2 {
		t.Fatalf("expected 2 tasks after replace, got %d", store.Len())
	}
	if _, err := store.GetByID("old"); err != ErrTaskNotFound {
		t.Error("expected previous collection gone")
	}
}
