package handlers

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/fleetflash/backend/internal/core/services"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/events"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
)

// TaskStreamHandler pushes task snapshots to WebSocket clients. It holds a
// single bus subscription on the aggregate channel and fans updates out to
// connected clients; a client subscribed to one task only receives snapshots
// for that task.
type TaskStreamHandler struct {
	store  *services.TaskStore
	logger *logger.Logger

	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

type streamClient struct {
	taskID  string
	updates chan *domain.FlashTask
}

// StreamMessage is the wire envelope for pushed snapshots.
type StreamMessage struct {
	Topic string      `json:"topic"`
	Data  interface{} `json:"data"`
}

func NewTaskStreamHandler(store *services.TaskStore, bus *events.Bus, logger *logger.Logger) *TaskStreamHandler {
	h := &TaskStreamHandler{
		store:   store,
		logger:  logger,
		clients: make(map[*streamClient]struct{}),
	}
	bus.On(events.TopicTasksUpdate, h.onTaskUpdate)
	return h
}

func (h *TaskStreamHandler) onTaskUpdate(payload interface{}) {
	task, ok := payload.(*domain.FlashTask)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.taskID != "" && client.taskID != task.ID {
			continue
		}
		select {
		case client.updates <- task:
		default:
			// slow client, drop the update; the next snapshot supersedes it
		}
	}
}

func (h *TaskStreamHandler) register(client *streamClient) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()
}

func (h *TaskStreamHandler) unregister(client *streamClient) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()
}

func (h *TaskStreamHandler) Handle(c *websocket.Conn) {
	taskID := c.Query("task_id")

	client := &streamClient{
		taskID:  taskID,
		updates: make(chan *domain.FlashTask, 32),
	}
	h.register(client)
	defer h.unregister(client)

	h.logger.Infow("task_stream_connected", "task_id", taskID)

	// Initial snapshot so the client does not have to poll before the first
	// tick lands.
	if taskID != "" {
		if task, err := h.store.GetByID(taskID); err == nil {
			if err := c.WriteJSON(StreamMessage{Topic: events.TaskTopic(taskID), Data: task}); err != nil {
				return
			}
		}
	} else {
		if err := c.WriteJSON(StreamMessage{Topic: events.TopicTasksUpdate, Data: h.store.List()}); err != nil {
			return
		}
	}

	done := make(chan struct{})

	// The read loop only detects disconnects; clients do not send commands.
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case task := <-client.updates:
			topic := events.TopicTasksUpdate
			if taskID != "" {
				topic = events.TaskTopic(taskID)
			}
			if err := c.WriteJSON(StreamMessage{Topic: topic, Data: task}); err != nil {
				h.logger.Infow("task_stream_closed", "task_id", taskID)
				return
			}
		case <-done:
			h.logger.Infow("task_stream_disconnected", "task_id", taskID)
			return
		}
	}
}
