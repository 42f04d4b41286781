package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// Quiet thresholds: below the short window the channel only just went
// quiet, beyond the long window the lull is worth celebrating.
const (
	quietShortWindow = 15 * time.Minute
	quietLongWindow  = 12 * time.Hour
)

// handleList renders the board. Flags: i include inactive, q include
// queued, a assigned only, u unassigned only, r show responder names.
// Positional platform names narrow further.
func (r *Router) handleList(msg chat.Message, args []string) {
	flags, rest := splitFlags(args)

	filter := board.Filter{Statuses: []domain.RescueStatus{domain.RescueStatusOpen}}
	if flags['i'] {
		filter.Statuses = append(filter.Statuses, domain.RescueStatusInactive)
	}
	if flags['q'] {
		filter.Statuses = append(filter.Statuses, domain.RescueStatusQueued)
	}
	if flags['a'] != flags['u'] {
		assigned := flags['a']
		filter.Assigned = &assigned
	}
	for _, arg := range rest {
		if platform := domain.ParsePlatform(arg); platform != domain.PlatformNone {
			filter.Platforms = append(filter.Platforms, platform)
		}
	}

	rescues := r.board.List(filter)
	if len(rescues) == 0 {
		r.reply(msg, "no cases on the board.")
		return
	}

	lines := make([]string, 0, len(rescues))
	for _, rescue := range rescues {
		lines = append(lines, describeCase(rescue, flags['r']))
	}
	r.reply(msg, fmt.Sprintf("%d case(s): %s", len(rescues), strings.Join(lines, " | ")))
}

func describeCase(rescue *domain.Rescue, withRats bool) string {
	out := fmt.Sprintf("#%d %s", rescue.Handle(), rescue.ClientDescription())
	if platform := rescue.Platform(); platform != domain.PlatformNone {
		out += " (" + platform.DisplayName() + ")"
	}
	if rescue.CodeRed() {
		out += " [CR]"
	}
	switch rescue.Status() {
	case domain.RescueStatusInactive:
		out += " [inactive]"
	case domain.RescueStatusQueued:
		out += " [queued]"
	}
	if withRats {
		if assigned := rescue.AssignList(); assigned != "" {
			out += " rats: " + assigned
		}
	}
	return out
}

// handleQuiet reports how long it has been since the last automatic case
// trigger. Open unassigned cases override the answer: the channel is not
// quiet while clients are waiting.
func (r *Router) handleQuiet(msg chat.Message) {
	unassigned := false
	needsHelp := r.board.List(board.Filter{
		Statuses: []domain.RescueStatus{domain.RescueStatusOpen, domain.RescueStatusQueued},
		Assigned: &unassigned,
	})
	if len(needsHelp) > 0 {
		r.reply(msg, fmt.Sprintf("it is not quiet, %d case(s) still need responders.", len(needsHelp)))
		return
	}

	last, ok := r.board.LastSignal()
	if !ok {
		r.reply(msg, "no distress signal seen since startup.")
		return
	}

	elapsed := time.Since(last)
	switch {
	case elapsed < quietShortWindow:
		r.reply(msg, fmt.Sprintf("the last signal was only %s ago, give it a moment.", formatDuration(elapsed)))
	case elapsed > quietLongWindow:
		r.reply(msg, fmt.Sprintf("remarkably quiet, no signal for %s.", formatDuration(elapsed)))
	default:
		r.reply(msg, fmt.Sprintf("quiet for %s.", formatDuration(elapsed)))
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
