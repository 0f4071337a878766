package events

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
)

const TopicTasksUpdate = "tasks:update"

// TaskTopic names the per-task update channel.
func TaskTopic(taskID string) string {
	return fmt.Sprintf("task:%s:update", taskID)
}

type Handler func(payload interface{})

// Bus is an in-process publish/subscribe channel. Producers of task updates
// (the state machine, the flash runner) emit snapshots; consumers (the
// WebSocket hub, tests) subscribe by topic. Handlers are keyed by function
// identity, so registering the same handler twice is idempotent and Off
// removes only that handler.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string]map[uintptr]Handler
	log      *logger.Logger
}

func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string]map[uintptr]Handler),
		log:      log,
	}
}

func (b *Bus) On(topic string, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.handlers[topic]
	if !ok {
		set = make(map[uintptr]Handler)
		b.handlers[topic] = set
	}
	set[reflect.ValueOf(handler).Pointer()] = handler
}

func (b *Bus) Off(topic string, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.handlers[topic]
	if !ok {
		return
	}
	delete(set, reflect.ValueOf(handler).Pointer())
	if len(set) == 0 {
		delete(b.handlers, topic)
	}
}

// Emit invokes every handler registered for the topic with the payload.
// Iteration order is unspecified. A panicking handler is recovered and
// logged so the remaining handlers still run.
func (b *Bus) Emit(topic string, payload interface{}) {
	b.mu.RLock()
	set := b.handlers[topic]
	snapshot := make([]Handler, 0, len(set))
	for _, h := range set {
		snapshot = append(snapshot, h)
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		b.safeInvoke(topic, h, payload)
	}
}

func (b *Bus) safeInvoke(topic string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			if b.log != nil {
				b.log.Errorw("event_handler_panic", "topic", topic, "panic", r)
			}
		}
	}()
	h(payload)
}

// PublishTaskUpdate emits a task snapshot on both the per-task channel and
// the aggregate channel.
func (b *Bus) PublishTaskUpdate(task *domain.FlashTask) {
	if task == nil {
		return
	}
	b.Emit(TaskTopic(task.ID), task)
	b.Emit(TopicTasksUpdate, task)
}
