// Package commands implements the operator-facing chat commands. Commands
// are prefixed lines in a channel; the first word selects the handler and
// the rest is split on whitespace.
package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/service"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// PrepSilencer silences the prep reminder for a client, used when an
// operator confirms instructions were already given.
type PrepSilencer interface {
	Silence(id uuid.UUID) bool
}

// RouterDeps bundles the dependencies of Router.
type RouterDeps struct {
	Board     *board.Board
	Service   *service.RescueService
	Transport chat.Transport
	Prep      PrepSilencer
	Logger    *zap.Logger
	Config    *config.Config
}

// Router parses and dispatches operator commands.
type Router struct {
	board     *board.Board
	service   *service.RescueService
	transport chat.Transport
	prep      PrepSilencer
	logger    *zap.Logger
	cfg       *config.Config

	// lastClosed remembers the most recently closed case so operators can
	// still fetch its paperwork link after it left the board.
	lastClosed *domain.Rescue
}

// NewRouter creates a command router.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		board:     deps.Board,
		service:   deps.Service,
		transport: deps.Transport,
		prep:      deps.Prep,
		logger:    deps.Logger,
		cfg:       deps.Config,
	}
}

// Handle dispatches a command message. Non-command and playback lines are
// ignored.
func (r *Router) Handle(ctx context.Context, msg chat.Message) {
	if msg.IsPlayback() || !msg.IsCommand(r.cfg.Chat.CommandPrefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(msg.Text, r.cfg.Chat.CommandPrefix))
	if len(fields) == 0 {
		return
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]

	switch command {
	case "list":
		r.handleList(msg, args)
	case "close", "clear":
		r.handleClose(ctx, msg, args)
	case "trash", "md":
		r.handleTrash(ctx, msg, args)
	case "assign", "go":
		r.handleAssign(ctx, msg, args)
	case "active", "inactive":
		r.handleToggleActive(ctx, msg, args, command == "active")
	case "sys":
		r.handleSetSystem(ctx, msg, args)
	case "sysc":
		r.handleSystemCorrection(ctx, msg, args)
	case "sprep":
		r.handleSilencePrep(msg, args)
	case "quiet", "last":
		r.handleQuiet(msg)
	case "sync":
		r.handleSync(ctx, msg, args)
	case "pwl":
		r.handlePaperwork(msg, args)
	}
}

// findCase resolves the first argument to a board case and replies when it
// cannot.
func (r *Router) findCase(msg chat.Message, args []string) (*domain.Rescue, bool) {
	if len(args) == 0 {
		r.reply(msg, "which case? give a case number or client name.")
		return nil, false
	}
	rescue, ok := r.board.FindByIdentifier(args[0])
	if !ok {
		r.reply(msg, "could not find a case for \""+args[0]+"\".")
		return nil, false
	}
	return rescue, true
}

func (r *Router) reply(msg chat.Message, text string) {
	if msg.Channel == "" {
		r.transport.SendPrivate(msg.Sender, msg.Sender+": "+text)
		return
	}
	r.transport.Send(msg.Channel, msg.Sender+": "+text)
}

// replyError phrases a failure for chat.
func (r *Router) replyError(msg chat.Message, err error) {
	switch {
	case errors.Is(err, domain.ErrAlreadyClosed):
		r.reply(msg, "that case is already closed.")
	case errors.Is(err, domain.ErrRescueBanned):
		r.reply(msg, "that case is protected and cannot be deleted.")
	case errors.Is(err, domain.ErrInvalidTransition):
		r.reply(msg, "that status change is not allowed.")
	default:
		r.reply(msg, util.ToDomainError(err).Message)
	}
}

// splitFlags separates leading dash-flags from positional arguments and
// returns the set of flag characters.
func splitFlags(args []string) (map[rune]bool, []string) {
	flags := make(map[rune]bool)
	rest := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			for _, flag := range arg[1:] {
				flags[flag] = true
			}
			continue
		}
		rest = append(rest, arg)
	}
	return flags, rest
}
