// Package worker runs the background timers of the board: the prep
// reminder for fresh cases and the idle sweep that parks stale ones.
package worker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// PrepTracker reminds the channel when a fresh client has not been given
// safety instructions within the configured window. An operator can
// silence the reminder once instructions were given by other means.
type PrepTracker struct {
	timeout   time.Duration
	transport chat.Transport
	logger    *zap.Logger

	mu       sync.Mutex
	timers   map[uuid.UUID]*time.Timer
	silenced map[uuid.UUID]bool
}

// NewPrepTracker creates a tracker.
func NewPrepTracker(timeout time.Duration, transport chat.Transport, logger *zap.Logger) *PrepTracker {
	return &PrepTracker{
		timeout:   timeout,
		transport: transport,
		logger:    logger,
		timers:    make(map[uuid.UUID]*time.Timer),
		silenced:  make(map[uuid.UUID]bool),
	}
}

// Begin starts the reminder timer for a new case. Code-red cases skip the
// prep flow entirely; the client is told to log out, not to prepare.
func (p *PrepTracker) Begin(rescue *domain.Rescue) {
	if rescue.CodeRed() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, running := p.timers[rescue.ID]; running || p.silenced[rescue.ID] {
		return
	}
	p.timers[rescue.ID] = time.AfterFunc(p.timeout, func() {
		p.remind(rescue)
	})
}

func (p *PrepTracker) remind(rescue *domain.Rescue) {
	p.mu.Lock()
	delete(p.timers, rescue.ID)
	silenced := p.silenced[rescue.ID]
	p.mu.Unlock()

	if silenced || rescue.Status() == domain.RescueStatusClosed {
		return
	}
	p.transport.Send(rescue.Channel(), fmt.Sprintf(
		"Case #%d (%s) has not been prepped yet. Someone please give the client instructions.",
		rescue.Handle(), rescue.ClientDescription()))
	p.logger.Debug("prep reminder fired", zap.Int("handle", rescue.Handle()))
}

// Silence marks the client as prepped and cancels any pending reminder.
// Returns false when the case was already silenced.
func (p *PrepTracker) Silence(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.silenced[id] {
		return false
	}
	p.silenced[id] = true
	if timer, ok := p.timers[id]; ok {
		timer.Stop()
		delete(p.timers, id)
	}
	return true
}

// IsPrepped reports whether the client was marked prepped.
func (p *PrepTracker) IsPrepped(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.silenced[id]
}

// Stop cancels the reminder and forgets the case, used when a case leaves
// the board.
func (p *PrepTracker) Stop(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if timer, ok := p.timers[id]; ok {
		timer.Stop()
		delete(p.timers, id)
	}
	delete(p.silenced, id)
}
