// Package syncer pushes local rescue mutations to the remote case service.
// Operations for the same rescue run in submission order; operations for
// different rescues run concurrently. A failed push never mutates local
// state beyond clearing the synced flag; the caller decides what to do.
package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/events"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
)

// Operation identifies the remote request kind.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

// Pusher executes a single idempotent remote request for a rescue.
type Pusher interface {
	CreateRescue(ctx context.Context, rescue *domain.Rescue) error
	UpdateRescue(ctx context.Context, rescue *domain.Rescue) error
}

// Engine serializes pushes per rescue.
type Engine struct {
	pusher     Pusher
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	drillMode  bool
	opTimeout  time.Duration

	mu      sync.Mutex
	queues  map[uuid.UUID]*caseQueue
	pending sync.WaitGroup
}

type queuedOp struct {
	kind   Operation
	rescue *domain.Rescue
	result chan error
}

type caseQueue struct {
	ops     []queuedOp
	running bool
}

// New builds a synchronization engine. In drill mode pushes succeed locally
// without touching the remote service.
func New(pusher Pusher, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, drillMode bool) *Engine {
	return &Engine{
		pusher:     pusher,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		drillMode:  drillMode,
		opTimeout:  30 * time.Second,
		queues:     make(map[uuid.UUID]*caseQueue),
	}
}

// Enqueue schedules exactly one outbound operation for the rescue and
// returns a channel delivering its result. Callers that only need
// best-effort annotation may ignore the channel.
func (e *Engine) Enqueue(rescue *domain.Rescue, kind Operation) <-chan error {
	op := queuedOp{kind: kind, rescue: rescue, result: make(chan error, 1)}

	e.mu.Lock()
	queue, ok := e.queues[rescue.ID]
	if !ok {
		queue = &caseQueue{}
		e.queues[rescue.ID] = queue
	}
	queue.ops = append(queue.ops, op)
	e.pending.Add(1)
	if !queue.running {
		queue.running = true
		go e.run(rescue.ID)
	}
	e.mu.Unlock()

	return op.result
}

func (e *Engine) run(id uuid.UUID) {
	for {
		e.mu.Lock()
		queue := e.queues[id]
		if len(queue.ops) == 0 {
			queue.running = false
			delete(e.queues, id)
			e.mu.Unlock()
			return
		}
		op := queue.ops[0]
		queue.ops = queue.ops[1:]
		e.mu.Unlock()

		op.result <- e.execute(op)
		e.pending.Done()
	}
}

func (e *Engine) execute(op queuedOp) error {
	if e.drillMode {
		op.rescue.SetSynced(true)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.opTimeout)
	defer cancel()

	var err error
	switch op.kind {
	case OperationCreate:
		err = e.pusher.CreateRescue(ctx, op.rescue)
	default:
		err = e.pusher.UpdateRescue(ctx, op.rescue)
	}

	if err != nil {
		op.rescue.SetSynced(false)
		e.metrics.Inc(observability.MetricSyncFailed)
		e.logger.Warn("rescue push failed",
			zap.String("rescue", op.rescue.ID.String()),
			zap.Int("handle", op.rescue.Handle()),
			zap.String("operation", string(op.kind)),
			zap.Error(err))
		e.publish(op, events.EventRescueSyncFailed, err)
		return err
	}

	op.rescue.SetSynced(true)
	e.metrics.Inc(observability.MetricSyncSucceeded)
	e.publish(op, events.EventRescueSynced, nil)
	return nil
}

func (e *Engine) publish(op queuedOp, eventType events.EventType, opErr error) {
	if e.dispatcher == nil {
		return
	}
	payload := events.RescueSyncPayload{Operation: string(op.kind)}
	if opErr != nil {
		payload.Error = opErr.Error()
	}
	_ = e.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RescueID:  op.rescue.ID,
		Handle:    op.rescue.Handle(),
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// Drain waits for all queued operations to finish, up to the timeout.
// Used for best-effort flushing on shutdown.
func (e *Engine) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
