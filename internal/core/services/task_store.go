package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/fleetflash/backend/internal/domain"
)

type TaskFilters struct {
	Status domain.TaskStatus
	Mode   domain.FlashMode
	Search string
}

type TaskSort struct {
	By    string // createdAt | progress | status
	Order string // asc | desc
}

type TaskStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Paused    int `json:"paused"`
	Success   int `json:"success"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}

// TaskStore owns the canonical copy of every flash task. Records are kept in
// an id-keyed map plus an ordered id list preserving insertion order; the two
// are always mutated together under the write lock. Accessors hand out
// clones, never the canonical record.
type TaskStore struct {
	mu        sync.RWMutex
	tasksByID map[string]*domain.FlashTask
	taskIDs   []string
	focusedID string
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasksByID: make(map[string]*domain.FlashTask),
	}
}

// Upsert inserts the task if its id is new, appending to the ordered id
// list, else replaces the existing record in place.
func (s *TaskStore) Upsert(task *domain.FlashTask) {
	if task == nil || task.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasksByID[task.ID]; !exists {
		s.taskIDs = append(s.taskIDs, task.ID)
	}
	s.tasksByID[task.ID] = task.Clone()
}

// Remove deletes the record and its id from the ordered list. Removing the
// focused task clears the focus. Unknown ids are a no-op.
func (s *TaskStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasksByID[id]; !exists {
		return
	}
	delete(s.tasksByID, id)
	for i, tid := range s.taskIDs {
		if tid == id {
			s.taskIDs = append(s.taskIDs[:i], s.taskIDs[i+1:]...)
			break
		}
	}
	if s.focusedID == id {
		s.focusedID = ""
	}
}

// SetFocusedTaskID records which task is under detailed view; empty clears.
func (s *TaskStore) SetFocusedTaskID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusedID = id
}

func (s *TaskStore) FocusedTask() (*domain.FlashTask, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.focusedID == "" {
		return nil, false
	}
	task, ok := s.tasksByID[s.focusedID]
	if !ok {
		return nil, false
	}
	return task.Clone(), true
}

func (s *TaskStore) GetByID(id string) (*domain.FlashTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasksByID[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update mutates the canonical record under the write lock. The mutation and
// anything it derives (status flags, log append) are applied atomically; a
// clone of the updated record is returned.
func (s *TaskStore) Update(id string, mutate func(*domain.FlashTask) error) (*domain.FlashTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasksByID[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	if err := mutate(task); err != nil {
		return nil, err
	}
	return task.Clone(), nil
}

// List returns all tasks in insertion order.
func (s *TaskStore) List() []*domain.FlashTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect()
}

func (s *TaskStore) collect() []*domain.FlashTask {
	tasks := make([]*domain.FlashTask, 0, len(s.taskIDs))
	for _, id := range s.taskIDs {
		tasks = append(tasks, s.tasksByID[id].Clone())
	}
	return tasks
}

// Filtered applies the filter set, then sorts by the (sortBy, sortOrder)
// pair. The text search is a case-insensitive substring match over device
// IP, username and current step.
func (s *TaskStore) Filtered(filters TaskFilters, sortBy TaskSort) []*domain.FlashTask {
	s.mu.RLock()
	tasks := s.collect()
	s.mu.RUnlock()

	filtered := tasks[:0]
	search := strings.ToLower(filters.Search)
	for _, t := range tasks {
		if filters.Status != "" && t.Status != filters.Status {
			continue
		}
		if filters.Mode != "" && t.Mode != filters.Mode {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.DeviceIP), search) &&
			!strings.Contains(strings.ToLower(t.DeviceUsername), search) &&
			!strings.Contains(strings.ToLower(t.CurrentStep), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	sortTasks(filtered, sortBy)
	return filtered
}

func sortTasks(tasks []*domain.FlashTask, by TaskSort) {
	if by.By == "" {
		by.By = "createdAt"
	}
	asc := by.Order == "asc"

	sort.SliceStable(tasks, func(i, j int) bool {
		var less bool
		switch by.By {
		case "progress":
			less = tasks[i].Progress < tasks[j].Progress
		case "status":
			less = tasks[i].Status < tasks[j].Status
		default: // createdAt
			less = tasks[i].StartTime.Before(tasks[j].StartTime)
		}
		if asc {
			return less
		}
		return !less
	})
}

// Stats counts tasks per status in one full scan.
func (s *TaskStore) Stats() TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats TaskStats
	for _, id := range s.taskIDs {
		stats.Total++
		switch s.tasksByID[id].Status {
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusRunning:
			stats.Running++
		case domain.TaskStatusPaused:
			stats.Paused++
		case domain.TaskStatusSuccess:
			stats.Success++
		case domain.TaskStatusFailed:
			stats.Failed++
		case domain.TaskStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// SetTasks replaces the whole collection, preserving the given order.
func (s *TaskStore) SetTasks(tasks []*domain.FlashTask) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasksByID = make(map[string]*domain.FlashTask, len(tasks))
	s.taskIDs = s.taskIDs[:0]
	for _, t := range tasks {
		if t == nil || t.ID == "" {
			continue
		}
		if _, exists := s.tasksByID[t.ID]; !exists {
			s.taskIDs = append(s.taskIDs, t.ID)
		}
		s.tasksByID[t.ID] = t.Clone()
	}
}

func (s *TaskStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasksByID = make(map[string]*domain.FlashTask)
	s.taskIDs = nil
	s.focusedID = ""
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.taskIDs)
}
