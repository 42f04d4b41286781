// Package scanner watches passive channel traffic for signals the bot
// should act on without being addressed: new-client announcements,
// distress calls, responder jump calls, and case-relevant chatter worth
// preserving as quotes.
package scanner

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/internal/service"
)

var (
	jumpCallBeforeExpression = regexp.MustCompile(`(?i)\b([0-9]{1,3})j\s+#?([0-9]{1,3})\b`)
	jumpCallAfterExpression  = regexp.MustCompile(`(?i)#([0-9]{1,3})\s+([0-9]{1,3})j\b`)
	caseMentionExpression    = regexp.MustCompile(`(?:^|\s)#([0-9]{1,3})(?:$|\s)`)
	relayedLineExpression    = regexp.MustCompile(`<[^<>\s][^<>]*>`)
)

// relevancePhrases gate case-mention quoting: a bare "#3" is only worth
// preserving when the rest of the line carries rescue progress.
var relevancePhrases = []string{
	"fr+", "fr-", "wr+", "wr-", "bc+", "bc-", "fuel+", "fuel-",
	"sys-", "sysconf", "destroyed", "exploded", "code red", "oxygen",
	"supercruise", "prep-", "prep+", "ez", "inst-",
}

// fleetCarrierKeywords suppress the platform-mismatch warning; carriers
// jump for clients on any platform.
var fleetCarrierKeywords = []string{"fc", "carrier", "flrc"}

// PrepChecker reports whether a client has been given pre-rescue safety
// instructions.
type PrepChecker interface {
	IsPrepped(id uuid.UUID) bool
}

// ScannerDeps bundles the dependencies of Scanner.
type ScannerDeps struct {
	Board     *board.Board
	Service   *service.RescueService
	Transport chat.Transport
	Prep      PrepChecker
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Config    *config.Config
}

// Scanner is the passive message pipeline.
type Scanner struct {
	board     *board.Board
	service   *service.RescueService
	transport chat.Transport
	prep      PrepChecker
	logger    *zap.Logger
	metrics   *observability.Metrics
	cfg       *config.Config

	mu           sync.Mutex
	permitWarned map[string]int
}

// New creates a scanner.
func New(deps ScannerDeps) *Scanner {
	return &Scanner{
		board:        deps.Board,
		service:      deps.Service,
		transport:    deps.Transport,
		prep:         deps.Prep,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		cfg:          deps.Config,
		permitWarned: make(map[string]int),
	}
}

// Scan inspects one channel message. Playback replays and command lines
// are skipped; at most one trigger fires per message, checked in priority
// order: jump call, announcement, distress signal, case mention. A jump
// call outranks the signal keyword so a responder echoing the signal while
// calling jumps does not open a second case.
func (s *Scanner) Scan(ctx context.Context, msg chat.Message) {
	if msg.IsPlayback() || msg.IsCommand(s.cfg.Chat.CommandPrefix) {
		return
	}
	s.metrics.Inc(observability.MetricMessagesScanned)

	switch {
	case s.handleJumpCall(ctx, msg):
	case service.IsAnnouncement(msg.Text):
		s.handleAnnouncement(ctx, msg)
	case s.isSignal(msg.Text):
		s.handleSignal(ctx, msg)
	default:
		s.handleCaseMention(ctx, msg)
	}
}

func (s *Scanner) isSignal(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(s.cfg.Chat.SignalKeyword))
}

func (s *Scanner) handleAnnouncement(ctx context.Context, msg chat.Message) {
	rescue, err := s.service.CreateFromAnnouncement(ctx, msg)
	if err != nil {
		s.logger.Warn("announcement rejected", zap.String("sender", msg.Sender), zap.Error(err))
		return
	}
	s.announceCase(msg.Channel, rescue)
}

func (s *Scanner) handleSignal(ctx context.Context, msg chat.Message) {
	rescue, err := s.service.CreateFromSignal(ctx, msg)
	if err != nil {
		s.logger.Warn("distress signal rejected", zap.String("sender", msg.Sender), zap.Error(err))
		return
	}
	s.announceCase(msg.Channel, rescue)
}

func (s *Scanner) announceCase(channel string, rescue *domain.Rescue) {
	details := []string{rescue.ClientDescription()}
	if rescue.Platform() != domain.PlatformNone {
		details = append(details, rescue.Platform().DisplayName())
	}
	if system := rescue.System(); system != nil {
		details = append(details, system.Name)
	}
	suffix := ""
	if rescue.CodeRed() {
		suffix = " (CODE RED)"
	}
	s.transport.Send(channel, fmt.Sprintf("Case #%d opened: %s%s",
		rescue.Handle(), strings.Join(details, ", "), suffix))
}

// handleJumpCall reacts to a responder calling jump counts at a case,
// for example "4j #2" or "#2 4j". Returns whether a call was handled.
func (s *Scanner) handleJumpCall(ctx context.Context, msg chat.Message) bool {
	jumps, handle, ok := parseJumpCall(msg.Text)
	if !ok {
		return false
	}
	rescue, found := s.board.Find(handle)
	if !found {
		s.transport.SendPrivate(msg.Sender, fmt.Sprintf(
			"There is no case #%d on the board.", handle))
		return true
	}

	rescue.RecordJumpCall(msg.Sender, jumps)
	s.metrics.Inc(observability.MetricJumpCalls)

	annotations := s.jumpCallAnnotations(msg, rescue)
	quote := fmt.Sprintf("%s called %d jumps", msg.Sender, jumps)
	if len(annotations) > 0 {
		quote += " (" + strings.Join(annotations, "; ") + ")"
	}
	s.service.AddQuote(ctx, rescue, msg.Sender, quote)
	return true
}

// jumpCallAnnotations collects warnings worth attaching to a jump call.
// Prep warnings go to the caller directly; platform and database
// warnings go to the channel.
func (s *Scanner) jumpCallAnnotations(msg chat.Message, rescue *domain.Rescue) []string {
	var annotations []string

	if s.prep != nil && !s.prep.IsPrepped(rescue.ID) && !rescue.CodeRed() {
		annotations = append(annotations, "client not prepped")
		s.transport.SendPrivate(msg.Sender, fmt.Sprintf(
			"Case #%d (%s) has not been prepped, check in with dispatch before jumping.",
			rescue.Handle(), rescue.ClientDescription()))
	}

	if !rescue.HasRat(msg.Sender) && !s.isUnidentifiedOn(rescue, msg.Sender) {
		annotations = append(annotations, "caller is not assigned")
	}

	if mismatch := s.platformMismatch(msg.Text, rescue); mismatch != "" {
		annotations = append(annotations, mismatch)
		s.transport.Send(msg.Channel, fmt.Sprintf(
			"%s: case #%d is %s, your call mentioned a different platform.",
			msg.Sender, rescue.Handle(), rescue.Platform().DisplayName()))
	}

	if system := rescue.System(); system != nil {
		if system.PermitRequired {
			annotations = append(annotations, "system requires a permit")
			s.warnPermit(msg, rescue, system)
		}
		if !system.Confirmed && !system.InvalidWarned {
			system.InvalidWarned = true
			rescue.SetSystem(system)
			annotations = append(annotations, "system not in galaxy database")
			s.transport.Send(msg.Channel, fmt.Sprintf(
				"Case #%d system %q is not in the galaxy database, verify before jumping.",
				rescue.Handle(), system.Name))
		}
	}
	return annotations
}

// warnPermit nags about permit-locked systems. The first warning to a
// responder is private; repeat offenders get reminded in the channel.
func (s *Scanner) warnPermit(msg chat.Message, rescue *domain.Rescue, system *domain.StarSystem) {
	s.mu.Lock()
	s.permitWarned[strings.ToLower(msg.Sender)]++
	count := s.permitWarned[strings.ToLower(msg.Sender)]
	s.mu.Unlock()

	permit := system.PermitName
	if permit == "" {
		permit = system.Name
	}
	warning := fmt.Sprintf("Case #%d is in a permit-locked system (%s permit). Confirm you hold the permit before jumping.",
		rescue.Handle(), permit)
	if count > 1 {
		s.transport.Send(msg.Channel, fmt.Sprintf("%s: %s", msg.Sender, warning))
		return
	}
	s.transport.SendPrivate(msg.Sender, warning)
}

func (s *Scanner) platformMismatch(text string, rescue *domain.Rescue) string {
	if rescue.Platform() == domain.PlatformNone {
		return ""
	}
	lowered := strings.ToLower(text)
	for _, keyword := range fleetCarrierKeywords {
		if containsToken(lowered, keyword) {
			return ""
		}
	}
	for _, token := range strings.Fields(lowered) {
		platform := domain.ParsePlatform(strings.Trim(token, ".,!?"))
		if platform != domain.PlatformNone && platform != rescue.Platform() {
			return "platform mismatch"
		}
	}
	return ""
}

func (s *Scanner) isUnidentifiedOn(rescue *domain.Rescue, name string) bool {
	for _, existing := range rescue.UnidentifiedRats() {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// handleCaseMention quotes channel chatter that references a case by
// number and carries rescue progress. Lines carrying "<nick>" relay
// markers anywhere are skipped so a bridge bot cannot forge updates.
func (s *Scanner) handleCaseMention(ctx context.Context, msg chat.Message) {
	if relayedLineExpression.MatchString(msg.Text) {
		return
	}
	if !isRelevant(msg.Text) {
		return
	}

	seen := make(map[int]bool)
	for _, match := range caseMentionExpression.FindAllStringSubmatch(msg.Text, -1) {
		handle, err := strconv.Atoi(match[1])
		if err != nil || seen[handle] {
			continue
		}
		seen[handle] = true

		rescue, found := s.board.Find(handle)
		if !found {
			continue
		}
		if !s.senderMayUpdate(msg, rescue) {
			continue
		}
		s.service.AddQuote(ctx, rescue, msg.Sender, msg.Text)
	}
}

// senderMayUpdate allows quoting by assigned responders anywhere and by
// anyone speaking in the case's home channel.
func (s *Scanner) senderMayUpdate(msg chat.Message, rescue *domain.Rescue) bool {
	if rescue.HasRat(msg.Sender) || s.isUnidentifiedOn(rescue, msg.Sender) {
		return true
	}
	return msg.Channel != "" && strings.EqualFold(msg.Channel, rescue.Channel())
}

func isRelevant(text string) bool {
	lowered := strings.ToLower(text)
	for _, phrase := range relevancePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

func parseJumpCall(text string) (jumps, handle int, ok bool) {
	if match := jumpCallBeforeExpression.FindStringSubmatch(text); match != nil {
		return atoiPair(match[1], match[2])
	}
	if match := jumpCallAfterExpression.FindStringSubmatch(text); match != nil {
		handle, jumps, ok = atoiPair(match[1], match[2])
		return jumps, handle, ok
	}
	return 0, 0, false
}

func atoiPair(first, second string) (int, int, bool) {
	a, errA := strconv.Atoi(first)
	b, errB := strconv.Atoi(second)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return a, b, true
}

func containsToken(text, token string) bool {
	for _, field := range strings.Fields(text) {
		if strings.Trim(field, ".,!?") == token {
			return true
		}
	}
	return false
}
