package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// announcementPrefix marks an automated new-client announcement.
const announcementPrefix = "Incoming Client: "

var (
	languageCodeExpression = regexp.MustCompile(`\(([a-zA-Z]{2}(?:-[a-zA-Z]{2})?)\)`)

	// Free-form distress calls mention the system either labelled
	// ("system: Delkar") or as a location phrase ("stuck in the Delkar
	// system").
	signalLabelledSystemExpression = regexp.MustCompile(`(?i)\bsys(?:tem)?\s*[:=]\s*([^,.!?]+)`)
	signalLocationSystemExpression = regexp.MustCompile(`(?i)\bin\s+(?:the\s+)?([A-Za-z0-9][A-Za-z0-9' +-]*?)\s+system\b`)
)

// IsAnnouncement reports whether a message is a new-client announcement.
func IsAnnouncement(text string) bool {
	return strings.HasPrefix(text, announcementPrefix)
}

// CreateFromAnnouncement opens a case from an automated announcement line.
// Only trusted senders may trigger it. The announcement format is a
// client name followed by "Key: Value" fields separated by " - ", for
// example:
//
//	Incoming Client: Erebus - System: Delkar - Platform: XB - O2: NOT OK - Language: German (de-DE)
func (s *RescueService) CreateFromAnnouncement(ctx context.Context, msg chat.Message) (*domain.Rescue, error) {
	if !msg.Admin {
		return nil, util.NewForbidden("announcements are only accepted from trusted senders")
	}
	body := strings.TrimPrefix(msg.Text, announcementPrefix)
	fields := strings.Split(body, " - ")
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return nil, util.NewValidationError("announcement is missing a client name", nil)
	}

	opts := CreateOptions{
		Client:  strings.TrimSpace(fields[0]),
		Channel: msg.Channel,
		Trigger: "announcement",
		Actor:   msg.Sender,
	}
	for _, field := range fields[1:] {
		key, value, found := strings.Cut(field, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "system":
			opts.System = stripSystemSuffix(value)
		case "platform":
			opts.Platform = domain.ParsePlatform(value)
		case "o2":
			opts.CodeRed = strings.EqualFold(value, "NOT OK")
		case "language":
			if match := languageCodeExpression.FindStringSubmatch(value); match != nil {
				opts.Language = match[1]
			}
		case "irc nickname", "nick":
			opts.ClientNick = value
		}
	}

	rescue, err := s.Create(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.board.MarkSignalReceived(rescue.CreatedAt)
	s.ValidateSystemAsync(rescue)
	return rescue, nil
}

// CreateFromSignal opens a case from a free-form distress call sent by the
// client themselves. System, platform, and oxygen status are scavenged
// from the text; whatever system was found goes through catalog
// validation in the background.
func (s *RescueService) CreateFromSignal(ctx context.Context, msg chat.Message) (*domain.Rescue, error) {
	opts := CreateOptions{
		Client:  msg.Sender,
		Channel: msg.Channel,
		System:  extractSignalSystem(msg.Text),
		Trigger: "signal",
		Actor:   msg.Sender,
	}

	lowered := strings.ToLower(msg.Text)
	for _, token := range strings.Fields(lowered) {
		if platform := domain.ParsePlatform(strings.Trim(token, ".,!?")); platform != domain.PlatformNone {
			opts.Platform = platform
			break
		}
	}
	if strings.Contains(lowered, "code red") || containsWord(lowered, "cr") {
		opts.CodeRed = true
	}

	rescue, err := s.Create(ctx, opts)
	if err != nil {
		return nil, err
	}
	if msg.Host != "" {
		rescue.SetClientHost(msg.Host)
	}
	rescue.AppendQuote(domain.NewQuote(msg.Sender, msg.Text))
	s.board.MarkSignalReceived(rescue.CreatedAt)
	if rescue.System() != nil {
		s.ValidateSystemAsync(rescue)
	}
	return rescue, nil
}

// extractSignalSystem pulls a reported system name out of free-form
// distress text. Returns "" when no recognizable mention exists.
func extractSignalSystem(text string) string {
	if match := signalLabelledSystemExpression.FindStringSubmatch(text); match != nil {
		name := match[1]
		// Labelled reports often run into the next field or a
		// parenthetical, cut those off.
		if cut, _, found := strings.Cut(name, " - "); found {
			name = cut
		}
		if cut, _, found := strings.Cut(name, "("); found {
			name = cut
		}
		return stripSystemSuffix(name)
	}
	if match := signalLocationSystemExpression.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

// stripSystemSuffix drops a redundant trailing "SYSTEM" word that clients
// often include when reporting their location.
func stripSystemSuffix(name string) string {
	trimmed := strings.TrimSpace(name)
	upper := strings.ToUpper(trimmed)
	if upper != "SYSTEM" && strings.HasSuffix(upper, " SYSTEM") {
		return strings.TrimSpace(trimmed[:len(trimmed)-len(" SYSTEM")])
	}
	return trimmed
}

func containsWord(text, word string) bool {
	for _, token := range strings.Fields(text) {
		if strings.Trim(token, ".,!?") == word {
			return true
		}
	}
	return false
}
