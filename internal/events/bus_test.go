package events

import (
	"testing"

	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
)

func TestEmitReachesAllHandlers(t *testing.T) {
	bus := NewBus(logger.NewNop())

	var first, second int
	bus.On("topic", func(payload interface{}) { first++ })
	bus.On("topic", func(payload interface{}) { second++ })

	bus.Emit("topic", "payload")

	if first != 1 || second != 1 {
		t.Fatalf("expected each handler invoked once, got first=%d second=%d", first, second)
	}
}

func TestDuplicateRegistrationIsIdempotent(t *testing.T) {
	bus := NewBus(logger.NewNop())

	var calls int
	handler := func(payload interface{}) { calls++ }
	bus.On("topic", handler)
	bus.On("topic", handler)

	bus.Emit("topic", nil)

	if calls != 1 {
		t.Fatalf("expected 1 invocation after duplicate registration, got %d", calls)
	}
}

func TestOffRemovesOnlyThatHandler(t *testing.T) {
	bus := NewBus(logger.NewNop())

	var kept, removed int
	keep := func(payload interface{}) { kept++ }
	drop := func(payload interface{}) { removed++ }
	bus.On("topic", keep)
	bus.On("topic", drop)

	bus.Off("topic", drop)
	bus.Emit("topic", nil)

	if kept != 1 {
		t.Errorf("expected remaining handler invoked, got %d", kept)
	}
	if removed != 0 {
		t.Errorf("expected removed handler not invoked, got %d", removed)
	}
}

func TestOffUnknownHandlerIsNoop(t *testing.T) {
	bus := NewBus(logger.NewNop())
	bus.Off("topic", func(payload interface{}) {})
	bus.Emit("topic", nil)
}

func TestPanickingHandlerDoesNotStarveOthers(t *testing.T) {
	bus := NewBus(logger.NewNop())

	var survived int
	bus.On("topic", func(payload interface{}) { panic("boom") })
	bus.On("topic", func(payload interface{}) { survived++ })

	bus.Emit("topic", nil)

	if survived != 1 {
		t.Fatalf("expected surviving handler invoked once, got %d", survived)
	}
}

func TestPublishTaskUpdateEmitsBothTopics(t *testing.T) {
	bus := NewBus(logger.NewNop())
	task := &domain.FlashTask{ID: "task-1", Status: domain.TaskStatusRunning}

	var perTask, aggregate *domain.FlashTask
	bus.On(TaskTopic("task-1"), func(payload interface{}) {
		perTask = payload.(*domain.FlashTask)
	})
	bus.On(TopicTasksUpdate, func(payload interface{}) {
		aggregate = payload.(*domain.FlashTask)
	})

	bus.PublishTaskUpdate(task)

	if perTask == nil || perTask.ID != "task-1" {
		t.Errorf("per-task topic did not receive the snapshot: %+v", perTask)
	}
	if aggregate == nil || aggregate.ID != "task-1" {
		t.Errorf("aggregate topic did not receive the snapshot: %+v", aggregate)
	}
}

func TestTaskTopic(t *testing.T) {
	if got := TaskTopic("abc"); got != "task:abc:update" {
		t.Fatalf("unexpected topic name %q", got)
	}
}
