// Package service implements the coordination workflows behind chat
// commands and scanner triggers: opening cases, assigning responders,
// resolving star systems, and closing cases out against the remote case
// service.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/events"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/internal/starsystems"
	"github.com/spec-kit/rescue-dispatch/internal/syncer"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// Restorer lists cases still open on the remote service, used to rebuild
// the board after a restart.
type Restorer interface {
	ListOpenRescues(ctx context.Context) ([]*domain.Rescue, error)
}

// RescueServiceDeps bundles the dependencies of RescueService.
type RescueServiceDeps struct {
	Board      *board.Board
	Syncer     *syncer.Engine
	Remote     Restorer
	Systems    starsystems.Lookup
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Config     *config.Config
}

// RescueService orchestrates the rescue lifecycle.
type RescueService struct {
	board      *board.Board
	syncer     *syncer.Engine
	remote     Restorer
	systems    starsystems.Lookup
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        *config.Config
}

// NewRescueService creates the service.
func NewRescueService(deps RescueServiceDeps) *RescueService {
	return &RescueService{
		board:      deps.Board,
		syncer:     deps.Syncer,
		remote:     deps.Remote,
		systems:    deps.Systems,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		cfg:        deps.Config,
	}
}

// CreateOptions carries the initial facts known about a new case.
type CreateOptions struct {
	Client     string
	ClientNick string
	Language   string
	Channel    string
	Platform   domain.Platform
	System     string
	CodeRed    bool
	Queued     bool
	Trigger    string
	Actor      string
}

// Create opens a new rescue on the board and pushes it to the remote
// service. A client with an existing open case is refused.
func (s *RescueService) Create(ctx context.Context, opts CreateOptions) (*domain.Rescue, error) {
	client := strings.TrimSpace(opts.Client)
	if client == "" {
		return nil, util.NewValidationError("client name is required", nil)
	}
	if existing, ok := s.board.FindByClient(client); ok {
		return nil, util.NewConflict(
			fmt.Sprintf("%s already has case #%d", client, existing.Handle()), nil)
	}

	rescue := domain.NewRescue(client, opts.Channel)
	if opts.ClientNick != "" {
		rescue.SetClientNick(opts.ClientNick)
	}
	if opts.Language != "" {
		rescue.SetClientLanguage(opts.Language)
	}
	if opts.Platform != domain.PlatformNone {
		rescue.SetPlatform(opts.Platform)
	}
	if opts.CodeRed {
		rescue.SetCodeRed(true)
	}
	if opts.System != "" {
		rescue.SetSystem(domain.NewStarSystem(opts.System))
	}
	if opts.Queued {
		rescue.SetStatusQueued()
	}

	handle := s.board.Add(rescue)
	s.metrics.Inc(observability.MetricRescuesOpened)
	s.logger.Info("rescue opened",
		zap.Int("handle", handle),
		zap.String("client", client),
		zap.String("trigger", opts.Trigger))

	s.publish(events.EventRescueCreated, rescue, opts.Actor, events.RescueCreatedPayload{
		Client:   client,
		System:   opts.System,
		Platform: opts.Platform,
		CodeRed:  opts.CodeRed,
		Trigger:  opts.Trigger,
	})
	s.syncer.Enqueue(rescue, syncer.OperationCreate)
	return rescue, nil
}

// AssignResult buckets the outcome of an assignment request per name.
type AssignResult struct {
	Assigned    []string
	Duplicates  []string
	Blacklisted []string
	Invalid     []string
}

// Assign attaches responders by name. Names on the drill blacklist are
// refused, as is a client self-assigning, unless forced. Assigning to a
// queued case promotes it to open.
func (s *RescueService) Assign(ctx context.Context, rescue *domain.Rescue, names []string, force bool) (AssignResult, error) {
	var result AssignResult
	oldStatus := rescue.Status()
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		switch {
		case !force && s.isBlacklisted(name):
			result.Blacklisted = append(result.Blacklisted, name)
		case !force && (strings.EqualFold(name, rescue.Client()) || strings.EqualFold(name, rescue.ClientNick())):
			result.Invalid = append(result.Invalid, name)
		case rescue.AddUnidentifiedRat(name):
			result.Assigned = append(result.Assigned, name)
		default:
			result.Duplicates = append(result.Duplicates, name)
		}
	}

	if len(result.Assigned) == 0 {
		return result, nil
	}

	if newStatus := rescue.Status(); newStatus != oldStatus {
		s.publish(events.EventRescueStatusChanged, rescue, "", events.RescueStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		})
	}
	s.publish(events.EventRescueAssigned, rescue, "", events.RescueAssignedPayload{
		Unidentified: result.Assigned,
	})
	s.syncer.Enqueue(rescue, syncer.OperationUpdate)
	return result, nil
}

// Close resolves a rescue as successful and removes it from the board.
// Returns the paperwork link for the closing responder. Closing twice
// reports ErrAlreadyClosed untouched for the caller to phrase. The case
// leaves the board only once the remote push lands; on a failed push it
// stays behind, unsynced, so the sync command can retry the close.
func (s *RescueService) Close(ctx context.Context, rescue *domain.Rescue, firstLimpet string) (string, error) {
	var limpet *domain.Responder
	if firstLimpet = strings.TrimSpace(firstLimpet); firstLimpet != "" {
		limpet = &domain.Responder{ID: uuid.New(), Name: firstLimpet}
	}
	oldStatus := rescue.Status()
	if err := rescue.Close(limpet); err != nil {
		return "", err
	}

	s.publish(events.EventRescueStatusChanged, rescue, "", events.RescueStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: domain.RescueStatusClosed,
		Outcome:   domain.RescueOutcomeSuccess,
	})

	if err := <-s.syncer.Enqueue(rescue, syncer.OperationUpdate); err != nil {
		s.logger.Warn("close push failed, case stays on the board for a retry",
			zap.Int("handle", rescue.Handle()),
			zap.Error(err))
		return "", util.NewSyncFailure(err)
	}

	s.board.Remove(rescue.Handle())
	s.metrics.Inc(observability.MetricRescuesClosed)
	s.logger.Info("rescue closed",
		zap.Int("handle", rescue.Handle()),
		zap.String("client", rescue.Client()),
		zap.String("first_limpet", firstLimpet))
	return s.PaperworkLink(rescue), nil
}

// Trash closes a rescue as invalid with a mandatory reason. An assigned
// case needs force; a banned case refuses unconditionally.
func (s *RescueService) Trash(ctx context.Context, rescue *domain.Rescue, reason string, force bool) error {
	if strings.TrimSpace(reason) == "" {
		return util.NewValidationError("a deletion reason is required", nil)
	}
	if rescue.Banned() {
		return domain.ErrRescueBanned
	}
	if rescue.IsAssigned() && !force {
		return util.NewConflict(
			fmt.Sprintf("case #%d has assigned responders, use force to delete anyway", rescue.Handle()), nil)
	}
	oldStatus := rescue.Status()
	if err := rescue.Trash(reason); err != nil {
		return err
	}

	s.publish(events.EventRescueStatusChanged, rescue, "", events.RescueStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: domain.RescueStatusClosed,
		Outcome:   domain.RescueOutcomePurge,
	})

	if err := <-s.syncer.Enqueue(rescue, syncer.OperationUpdate); err != nil {
		s.logger.Warn("trash push failed, case stays on the board for a retry",
			zap.Int("handle", rescue.Handle()),
			zap.Error(err))
		return util.NewSyncFailure(err)
	}

	s.board.Remove(rescue.Handle())
	s.metrics.Inc(observability.MetricRescuesTrashed)
	s.logger.Info("rescue trashed",
		zap.Int("handle", rescue.Handle()),
		zap.String("client", rescue.Client()),
		zap.String("reason", reason))
	return nil
}

// SetInactive marks a rescue inactive, used by the idle sweep and the
// inactive toggle command.
func (s *RescueService) SetInactive(ctx context.Context, rescue *domain.Rescue) error {
	oldStatus := rescue.Status()
	if err := rescue.Transition(domain.RescueStatusInactive); err != nil {
		return err
	}
	s.publish(events.EventRescueStatusChanged, rescue, "", events.RescueStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: domain.RescueStatusInactive,
	})
	s.syncer.Enqueue(rescue, syncer.OperationUpdate)
	return nil
}

// SetActive moves an inactive rescue back to open.
func (s *RescueService) SetActive(ctx context.Context, rescue *domain.Rescue) error {
	oldStatus := rescue.Status()
	if err := rescue.Transition(domain.RescueStatusOpen); err != nil {
		return err
	}
	s.publish(events.EventRescueStatusChanged, rescue, "", events.RescueStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: domain.RescueStatusOpen,
	})
	s.syncer.Enqueue(rescue, syncer.OperationUpdate)
	return nil
}

// AddQuote appends a structured quote and pushes the update.
func (s *RescueService) AddQuote(ctx context.Context, rescue *domain.Rescue, author, message string) {
	rescue.AppendQuote(domain.NewQuote(author, message))
	s.metrics.Inc(observability.MetricQuotesAppended)
	s.publish(events.EventRescueQuoteAdded, rescue, author, events.RescueQuoteAddedPayload{
		Author:  author,
		Preview: preview(message),
	})
	s.syncer.Enqueue(rescue, syncer.OperationUpdate)
}

// Push re-sends the current local state of a rescue to the remote service
// and waits for the result. A closed case whose terminal push previously
// failed finally leaves the board here.
func (s *RescueService) Push(ctx context.Context, rescue *domain.Rescue) error {
	if err := <-s.syncer.Enqueue(rescue, syncer.OperationUpdate); err != nil {
		return util.NewSyncFailure(err)
	}
	if rescue.Status() == domain.RescueStatusClosed {
		s.board.Remove(rescue.Handle())
	}
	return nil
}

// RestoreBoard rebuilds the board from cases still open on the remote
// service, keeping their remote handles where possible.
func (s *RescueService) RestoreBoard(ctx context.Context) (int, error) {
	rescues, err := s.remote.ListOpenRescues(ctx)
	if err != nil {
		return 0, util.NewSyncFailure(err)
	}
	for _, rescue := range rescues {
		handle := s.board.Insert(rescue)
		rescue.SetHandle(handle)
	}
	s.logger.Info("board restored from case service", zap.Int("cases", len(rescues)))
	return len(rescues), nil
}

// PushUnsynced re-pushes every board case whose last push failed. The
// pushes run in the background; the count of scheduled cases returns
// immediately.
func (s *RescueService) PushUnsynced(ctx context.Context) int {
	count := 0
	for _, rescue := range s.board.List(board.Filter{}) {
		if rescue.Synced() {
			continue
		}
		count++
		go func(rescue *domain.Rescue) {
			if err := s.Push(ctx, rescue); err != nil {
				s.logger.Warn("re-push failed",
					zap.Int("handle", rescue.Handle()),
					zap.Error(err))
			}
		}(rescue)
	}
	return count
}

// PaperworkLink renders the paperwork URL for a rescue.
func (s *RescueService) PaperworkLink(rescue *domain.Rescue) string {
	return fmt.Sprintf(s.cfg.CaseAPI.PaperworkURL, rescue.ID.String())
}

// Board exposes the underlying board for read paths.
func (s *RescueService) Board() *board.Board {
	return s.board
}

// quoteAuthor names the bot itself on quotes it writes.
func (s *RescueService) quoteAuthor() string {
	if s.cfg != nil && s.cfg.App.Name != "" {
		return s.cfg.App.Name
	}
	return "dispatch"
}

func (s *RescueService) isBlacklisted(name string) bool {
	for _, blocked := range s.cfg.Chat.RatBlacklist {
		if strings.EqualFold(blocked, name) {
			return true
		}
	}
	return false
}

func (s *RescueService) publish(eventType events.EventType, rescue *domain.Rescue, actor string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RescueID:  rescue.ID,
		Handle:    rescue.Handle(),
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func preview(message string) string {
	const max = 80
	if len(message) <= max {
		return message
	}
	return message[:max] + "..."
}
