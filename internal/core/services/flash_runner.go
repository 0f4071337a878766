package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fleetflash/backend/internal/config"
	"github.com/fleetflash/backend/internal/domain"
	"github.com/fleetflash/backend/internal/events"
	"github.com/fleetflash/backend/internal/infrastructure/logger"
)

var robotPhases = []string{
	"Connecting to device",
	"Verifying identity",
	"Preparing firmware",
	"Writing firmware",
	"Verifying integrity",
	"Rebooting device",
}

var serverPhases = []string{
	"Connecting to server",
	"Checking environment",
	"Downloading packages",
	"Installing software",
	"Configuring services",
	"Starting services",
}

func phasesFor(mode domain.FlashMode) []string {
	if mode == domain.FlashModeServer {
		return serverPhases
	}
	return robotPhases
}

// StatusUpdater applies state-machine transitions on behalf of the runner.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, target domain.TaskStatus) (*domain.FlashTask, error)
}

// FlashRunner owns the simulated flash loop: one goroutine per task, driven
// by a ticker. Each tick re-reads the canonical record first, so a pause or
// cancel applied between ticks is always observed before any further side
// effect. Progress advances by a fixed step; the active phase is
// floor(progress/100*phaseCount) clamped to the last phase.
type FlashRunner struct {
	cfg     config.SimulatorConfig
	store   *TaskStore
	bus     *events.Bus
	log     *logger.Logger
	updater StatusUpdater

	mu    sync.Mutex
	stops map[string]chan struct{}
	wg    sync.WaitGroup
}

func NewFlashRunner(cfg config.SimulatorConfig, store *TaskStore, bus *events.Bus, log *logger.Logger) *FlashRunner {
	cfg.Normalize()
	return &FlashRunner{
		cfg:   cfg,
		store: store,
		bus:   bus,
		log:   log,
		stops: make(map[string]chan struct{}),
	}
}

// BindUpdater wires the state machine in after construction; the runner and
// the task service reference each other.
func (r *FlashRunner) BindUpdater(u StatusUpdater) {
	r.updater = u
}

// Start launches the simulation loop for the task. Idempotent while a loop
// for the same id is alive.
func (r *FlashRunner) Start(taskID string) {
	r.mu.Lock()
	if _, running := r.stops[taskID]; running {
		r.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	r.stops[taskID] = stop
	r.mu.Unlock()

	r.wg.Add(1)
	go r.run(taskID, stop)
}

// Stop tears down the task's loop, if any. Safe to call for unknown ids and
// from within a transition triggered by the loop itself.
func (r *FlashRunner) Stop(taskID string) {
	r.mu.Lock()
	stop, ok := r.stops[taskID]
	if ok {
		delete(r.stops, taskID)
	}
	r.mu.Unlock()
	if ok {
		close(stop)
	}
}

// StopAll tears down every active loop. Used on shutdown.
func (r *FlashRunner) StopAll() {
	r.mu.Lock()
	stops := make([]chan struct{}, 0, len(r.stops))
	for id, stop := range r.stops {
		stops = append(stops, stop)
		delete(r.stops, id)
	}
	r.mu.Unlock()
	for _, stop := range stops {
		close(stop)
	}
}

// Wait blocks until every loop has exited. Used on shutdown and in tests.
func (r *FlashRunner) Wait() {
	r.wg.Wait()
}

func (r *FlashRunner) run(taskID string, stop chan struct{}) {
	defer r.wg.Done()
	// Deregister only our own stop channel: a fast pause/resume may already
	// have installed a fresh loop for this id.
	defer func() {
		r.mu.Lock()
		if cur, ok := r.stops[taskID]; ok && cur == stop {
			delete(r.stops, taskID)
		}
		r.mu.Unlock()
	}()

	if r.cfg.StartDelay > 0 {
		select {
		case <-stop:
			return
		case <-time.After(r.cfg.StartDelay):
		}
	}

	task, err := r.store.GetByID(taskID)
	if err != nil {
		return
	}
	switch task.Status {
	case domain.TaskStatusPending:
		if _, err := r.updater.UpdateStatus(context.Background(), taskID, domain.TaskStatusRunning); err != nil {
			r.log.Warnw("runner_start_transition_failed", "task_id", taskID, "error", err)
			return
		}
	case domain.TaskStatusRunning:
		// resumed; keep going
	default:
		return
	}

	ticker := time.NewTicker(r.cfg.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			done, err := r.tick(taskID)
			if err != nil || done {
				return
			}
		}
	}
}

// tick advances the task by one step. Returns done=true once the task left
// the running state or reached 100%.
func (r *FlashRunner) tick(taskID string) (bool, error) {
	current, err := r.store.GetByID(taskID)
	if err != nil {
		return true, err
	}
	if current.Status != domain.TaskStatusRunning {
		return true, nil
	}

	progress := current.Progress + r.cfg.Step
	if progress >= 100 {
		if _, err := r.updater.UpdateStatus(context.Background(), taskID, domain.TaskStatusSuccess); err != nil {
			// Lost a race against a user-initiated terminal transition.
			r.log.Warnw("runner_finish_transition_failed", "task_id", taskID, "error", err)
		}
		return true, nil
	}

	phases := phasesFor(current.Mode)
	idx := progress * len(phases) / 100
	if idx >= len(phases) {
		idx = len(phases) - 1
	}
	step := phases[idx]

	updated, err := r.store.Update(taskID, func(t *domain.FlashTask) error {
		if t.Status != domain.TaskStatusRunning {
			return ErrTaskIllegalTransition
		}
		t.Progress = progress
		t.CurrentStep = step
		t.Logs = append(t.Logs, logLine(fmt.Sprintf("%s... %d%%", step, progress)))
		return nil
	})
	if err != nil {
		return true, nil
	}

	r.bus.PublishTaskUpdate(updated)
	return false, nil
}
