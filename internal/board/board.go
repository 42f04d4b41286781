// Package board holds the in-memory collection of active rescues, keyed by
// the short numeric handle operators type in chat. The board is the
// operator-visible truth; the remote case service is updated from it, never
// the other way around outside the startup sync.
package board

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// Board is a concurrency-safe rescue registry.
type Board struct {
	mu         sync.Mutex
	rescues    map[int]*domain.Rescue
	lastSignal time.Time
}

// New creates an empty board.
func New() *Board {
	return &Board{
		rescues: make(map[int]*domain.Rescue),
	}
}

// Add places a rescue on the board under the smallest unused positive
// handle and records it on the rescue.
func (b *Board) Add(rescue *domain.Rescue) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(rescue)
}

func (b *Board) addLocked(rescue *domain.Rescue) int {
	handle := 1
	for {
		if _, taken := b.rescues[handle]; !taken {
			break
		}
		handle++
	}
	b.rescues[handle] = rescue
	rescue.SetHandle(handle)
	return handle
}

// Insert places a rescue under its existing handle, used when rebuilding the
// board from the remote service. A conflicting or missing handle falls back
// to fresh allocation.
func (b *Board) Insert(rescue *domain.Rescue) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := rescue.Handle()
	if handle <= 0 {
		return b.addLocked(rescue)
	}
	if _, taken := b.rescues[handle]; taken {
		return b.addLocked(rescue)
	}
	b.rescues[handle] = rescue
	return handle
}

// Remove evicts a rescue by handle. The handle becomes reusable.
func (b *Board) Remove(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.rescues, handle)
}

// Find returns the rescue for a handle.
func (b *Board) Find(handle int) (*domain.Rescue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rescue, ok := b.rescues[handle]
	return rescue, ok
}

// FindByClient performs a case-insensitive lookup by client name or nick.
func (b *Board) FindByClient(name string) (*domain.Rescue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rescue := range b.rescues {
		if strings.EqualFold(rescue.Client(), name) || strings.EqualFold(rescue.ClientNick(), name) {
			return rescue, true
		}
	}
	return nil, false
}

// FindByIdentifier resolves the way operators reference cases in chat: a
// handle with optional # prefix, or a client name.
func (b *Board) FindByIdentifier(identifier string) (*domain.Rescue, bool) {
	trimmed := strings.TrimPrefix(identifier, "#")
	if handle, err := strconv.Atoi(trimmed); err == nil {
		return b.Find(handle)
	}
	return b.FindByClient(identifier)
}

// FindByID returns the rescue with the given globally unique identifier.
func (b *Board) FindByID(id uuid.UUID) (*domain.Rescue, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rescue := range b.rescues {
		if rescue.ID == id {
			return rescue, true
		}
	}
	return nil, false
}

// Filter narrows a board snapshot.
type Filter struct {
	Statuses   []domain.RescueStatus
	Platforms  []domain.Platform
	Assigned   *bool
	MaxResults int
}

func (f Filter) matches(rescue *domain.Rescue) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, status := range f.Statuses {
			if rescue.Status() == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Platforms) > 0 {
		found := false
		for _, platform := range f.Platforms {
			if rescue.Platform() == platform {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Assigned != nil && rescue.IsAssigned() != *f.Assigned {
		return false
	}
	return true
}

// List returns a stable handle-ordered snapshot of matching rescues.
func (b *Board) List(filter Filter) []*domain.Rescue {
	b.mu.Lock()
	handles := make([]int, 0, len(b.rescues))
	for handle := range b.rescues {
		handles = append(handles, handle)
	}
	byHandle := make(map[int]*domain.Rescue, len(b.rescues))
	for handle, rescue := range b.rescues {
		byHandle[handle] = rescue
	}
	b.mu.Unlock()

	sort.Ints(handles)
	out := make([]*domain.Rescue, 0, len(handles))
	for _, handle := range handles {
		rescue := byHandle[handle]
		if !filter.matches(rescue) {
			continue
		}
		out = append(out, rescue)
		if filter.MaxResults > 0 && len(out) >= filter.MaxResults {
			break
		}
	}
	return out
}

// Len returns the number of open cases.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.rescues)
}

// MarkSignalReceived records the arrival time of an automatic case trigger.
func (b *Board) MarkSignalReceived(at time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if at.After(b.lastSignal) {
		b.lastSignal = at
	}
}

// LastSignal returns the last distress signal time, if any was seen.
func (b *Board) LastSignal() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSignal, !b.lastSignal.IsZero()
}
