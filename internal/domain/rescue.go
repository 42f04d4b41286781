package domain

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Rescue lifecycle errors surfaced to callers.
var (
	ErrAlreadyClosed     = errors.New("rescue is already closed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRescueBanned      = errors.New("rescue is banned from deletion")
)

// Responder is an identity-linked volunteer assigned to a rescue.
type Responder struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Platform Platform  `json:"platform"`
}

// Rescue is the aggregate for one tracked rescue incident. All mutable state
// is guarded by an internal mutex; scanner handlers and command handlers may
// touch the same rescue from different goroutines.
type Rescue struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu               sync.Mutex
	handle           int
	client           string
	clientNick       string
	clientHost       string
	clientLanguage   string
	channel          string
	platform         Platform
	codeRed          bool
	notes            string
	title            string
	system           *StarSystem
	quotes           []Quote
	status           RescueStatus
	outcome          RescueOutcome
	rats             []Responder
	unidentifiedRats []string
	firstLimpet      *Responder
	jumpCalls        map[string]int
	banned           bool
	synced           bool
	updatedAt        time.Time
}

// NewRescue creates an open rescue for a client.
func NewRescue(client, channel string) *Rescue {
	now := time.Now()
	return &Rescue{
		ID:         uuid.New(),
		CreatedAt:  now,
		client:     client,
		clientNick: client,
		channel:    channel,
		status:     RescueStatusOpen,
		jumpCalls:  make(map[string]int),
		updatedAt:  now,
	}
}

func (r *Rescue) touch() {
	r.updatedAt = time.Now()
}

// Handle returns the board-assigned command identifier.
func (r *Rescue) Handle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle
}

// SetHandle records the board-assigned command identifier.
func (r *Rescue) SetHandle(handle int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handle = handle
}

// Client returns the client name.
func (r *Rescue) Client() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.client
}

// ClientNick returns the chat nickname of the client.
func (r *Rescue) ClientNick() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clientNick
}

// SetClientNick updates the chat nickname of the client.
func (r *Rescue) SetClientNick(nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientNick = nick
	r.touch()
}

// ClientHost returns the chat host string of the client, if known.
func (r *Rescue) ClientHost() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clientHost
}

// SetClientHost records the chat host string of the client.
func (r *Rescue) SetClientHost(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientHost = host
}

// ClientLanguage returns the reported language code.
func (r *Rescue) ClientLanguage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clientLanguage
}

// SetClientLanguage records the reported language code.
func (r *Rescue) SetClientLanguage(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientLanguage = code
}

// Channel returns the home channel of the rescue.
func (r *Rescue) Channel() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.channel
}

// SetChannel records the home channel of the rescue.
func (r *Rescue) SetChannel(channel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channel = channel
}

// Platform returns the client platform.
func (r *Rescue) Platform() Platform {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.platform
}

// SetPlatform updates the client platform.
func (r *Rescue) SetPlatform(platform Platform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.platform = platform
	r.touch()
}

// CodeRed reports whether the client is on emergency oxygen.
func (r *Rescue) CodeRed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codeRed
}

// SetCodeRed updates the oxygen status flag.
func (r *Rescue) SetCodeRed(codeRed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codeRed = codeRed
	r.touch()
}

// Notes returns the free-text notes.
func (r *Rescue) Notes() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notes
}

// SetNotes replaces the free-text notes.
func (r *Rescue) SetNotes(notes string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = notes
	r.touch()
}

// Title returns the operation title, if any.
func (r *Rescue) Title() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title
}

// SetTitle records the operation title.
func (r *Rescue) SetTitle(title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.title = title
	r.touch()
}

// System returns the reported star system, which may be nil.
func (r *Rescue) System() *StarSystem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.system == nil {
		return nil
	}
	// Callers mutate the snapshot and commit it back with SetSystem.
	snapshot := *r.system
	snapshot.Corrections = append([]string(nil), r.system.Corrections...)
	return &snapshot
}

// SetSystem replaces the reported star system.
func (r *Rescue) SetSystem(system *StarSystem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.system = system
	r.touch()
}

// Quotes returns a copy of the quote list in insertion order.
func (r *Rescue) Quotes() []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Quote, len(r.quotes))
	copy(out, r.quotes)
	return out
}

// AppendQuote appends a quote. The quote list is append-only.
func (r *Rescue) AppendQuote(quote Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, quote)
	r.touch()
}

// Status returns the lifecycle status.
func (r *Rescue) Status() RescueStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// SetStatusQueued marks an administratively created rescue as queued. Only
// valid before any other transition has happened.
func (r *Rescue) SetStatusQueued() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == RescueStatusOpen {
		r.status = RescueStatusQueued
	}
}

// Transition moves the rescue to a new lifecycle status, enforcing the state
// machine. Closed is terminal.
func (r *Rescue) Transition(next RescueStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == RescueStatusClosed {
		return ErrAlreadyClosed
	}
	if !isValidTransition(r.status, next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.touch()
	return nil
}

// Outcome returns the resolution outcome of a closed rescue.
func (r *Rescue) Outcome() RescueOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// Close marks the rescue successfully closed, recording the optional first
// successful responder. Closing an already-closed rescue returns
// ErrAlreadyClosed.
func (r *Rescue) Close(firstLimpet *Responder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == RescueStatusClosed {
		return ErrAlreadyClosed
	}
	r.status = RescueStatusClosed
	r.outcome = RescueOutcomeSuccess
	r.firstLimpet = firstLimpet
	if firstLimpet != nil && !r.hasRatLocked(firstLimpet.Name) {
		r.rats = append(r.rats, *firstLimpet)
	}
	r.touch()
	return nil
}

// Trash closes the rescue with a purge outcome and a mandatory reason.
// Banned rescues refuse unconditionally.
func (r *Rescue) Trash(reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.banned {
		return ErrRescueBanned
	}
	if r.status == RescueStatusClosed {
		return ErrAlreadyClosed
	}
	r.status = RescueStatusClosed
	r.outcome = RescueOutcomePurge
	r.notes = reason
	r.touch()
	return nil
}

// Banned reports whether the rescue is protected from trashing.
func (r *Rescue) Banned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.banned
}

// SetBanned toggles deletion protection.
func (r *Rescue) SetBanned(banned bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banned = banned
}

// Synced reports whether local and remote copies are known-consistent.
func (r *Rescue) Synced() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.synced
}

// SetSynced records the result of the latest remote push.
func (r *Rescue) SetSynced(synced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.synced = synced
}

// Rats returns a copy of the confirmed responder list.
func (r *Rescue) Rats() []Responder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Responder, len(r.rats))
	copy(out, r.rats)
	return out
}

// UnidentifiedRats returns a copy of the name-only responder list.
func (r *Rescue) UnidentifiedRats() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.unidentifiedRats))
	copy(out, r.unidentifiedRats)
	return out
}

// AddRat appends a confirmed responder, removing any unidentified entry with
// the same name. A responder never appears in both lists. Assigning to a
// queued rescue promotes it to open.
func (r *Rescue) AddRat(rat Responder) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasRatLocked(rat.Name) {
		return false
	}
	r.removeUnidentifiedLocked(rat.Name)
	r.rats = append(r.rats, rat)
	if r.status == RescueStatusQueued {
		r.status = RescueStatusOpen
	}
	r.touch()
	return true
}

// AddUnidentifiedRat appends a name-only responder unless already present in
// either list.
func (r *Rescue) AddUnidentifiedRat(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasRatLocked(name) || r.hasUnidentifiedLocked(name) {
		return false
	}
	r.unidentifiedRats = append(r.unidentifiedRats, name)
	if r.status == RescueStatusQueued {
		r.status = RescueStatusOpen
	}
	r.touch()
	return true
}

// IsAssigned reports whether any responder is attached.
func (r *Rescue) IsAssigned() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rats) > 0 || len(r.unidentifiedRats) > 0
}

// HasRat reports whether a confirmed responder with the given name exists.
func (r *Rescue) HasRat(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasRatLocked(name)
}

// FirstLimpet returns the first successful responder recorded at close.
func (r *Rescue) FirstLimpet() *Responder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.firstLimpet
}

// RecordJumpCall adds a jump-count call by the named responder.
func (r *Rescue) RecordJumpCall(name string, jumps int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jumpCalls[strings.ToLower(name)] += jumps
	r.touch()
}

// JumpCallFor returns the total jumps called by the named responder.
func (r *Rescue) JumpCallFor(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jumpCalls[strings.ToLower(name)]
}

// UpdatedAt returns the last mutation time.
func (r *Rescue) UpdatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updatedAt
}

// ClientDescription names the client for chat output.
func (r *Rescue) ClientDescription() string {
	client := r.Client()
	if client == "" {
		return "unknown client"
	}
	return client
}

// AssignList renders the responder lists for chat output, or "" when empty.
func (r *Rescue) AssignList() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rats) == 0 && len(r.unidentifiedRats) == 0 {
		return ""
	}
	names := make([]string, 0, len(r.rats)+len(r.unidentifiedRats))
	for _, rat := range r.rats {
		names = append(names, rat.Name)
	}
	for _, name := range r.unidentifiedRats {
		names = append(names, name+" (unidentified)")
	}
	return strings.Join(names, ", ")
}

func (r *Rescue) hasRatLocked(name string) bool {
	for _, rat := range r.rats {
		if strings.EqualFold(rat.Name, name) {
			return true
		}
	}
	return false
}

func (r *Rescue) hasUnidentifiedLocked(name string) bool {
	for _, existing := range r.unidentifiedRats {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

func (r *Rescue) removeUnidentifiedLocked(name string) {
	filtered := r.unidentifiedRats[:0]
	for _, existing := range r.unidentifiedRats {
		if !strings.EqualFold(existing, name) {
			filtered = append(filtered, existing)
		}
	}
	r.unidentifiedRats = filtered
}
