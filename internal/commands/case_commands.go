package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/rescue-dispatch/internal/chat"
)

// handleClose resolves a case as successful. An optional second argument
// names the responder who delivered first.
func (r *Router) handleClose(ctx context.Context, msg chat.Message, args []string) {
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	firstLimpet := ""
	if len(args) > 1 {
		firstLimpet = args[1]
	}

	link, err := r.service.Close(ctx, rescue, firstLimpet)
	if err != nil {
		r.replyError(msg, err)
		return
	}
	r.lastClosed = rescue

	text := fmt.Sprintf("case #%d (%s) closed.", rescue.Handle(), rescue.ClientDescription())
	r.reply(msg, text)
	if firstLimpet != "" {
		r.transport.SendPrivate(firstLimpet, fmt.Sprintf(
			"Thanks for the rescue of %s! Paperwork: %s", rescue.ClientDescription(), link))
	}
}

// handleTrash deletes an invalid case. A reason is mandatory; -f forces
// deletion of an assigned case.
func (r *Router) handleTrash(ctx context.Context, msg chat.Message, args []string) {
	flags, rest := splitFlags(args)
	rescue, ok := r.findCase(msg, rest)
	if !ok {
		return
	}
	reason := strings.Join(rest[1:], " ")

	if err := r.service.Trash(ctx, rescue, reason, flags['f']); err != nil {
		r.replyError(msg, err)
		return
	}
	r.lastClosed = rescue
	r.reply(msg, fmt.Sprintf("case #%d (%s) deleted: %s", rescue.Handle(), rescue.ClientDescription(), reason))
}

// handleAssign attaches responders to a case. -f overrides the blacklist
// and the self-assignment guard.
func (r *Router) handleAssign(ctx context.Context, msg chat.Message, args []string) {
	flags, rest := splitFlags(args)
	rescue, ok := r.findCase(msg, rest)
	if !ok {
		return
	}
	names := rest[1:]
	if len(names) == 0 {
		names = []string{msg.Sender}
	}

	result, err := r.service.Assign(ctx, rescue, names, flags['f'])
	if err != nil {
		r.replyError(msg, err)
		return
	}

	var parts []string
	if len(result.Assigned) > 0 {
		parts = append(parts, fmt.Sprintf("%s: please go to %s's location",
			strings.Join(result.Assigned, ", "), rescue.ClientDescription()))
	}
	if len(result.Duplicates) > 0 {
		parts = append(parts, "already assigned: "+strings.Join(result.Duplicates, ", "))
	}
	if len(result.Blacklisted) > 0 {
		parts = append(parts, "not eligible: "+strings.Join(result.Blacklisted, ", "))
	}
	if len(result.Invalid) > 0 {
		parts = append(parts, "cannot self-assign: "+strings.Join(result.Invalid, ", "))
	}
	if len(parts) == 0 {
		r.reply(msg, "nobody was assigned.")
		return
	}
	r.reply(msg, strings.Join(parts, " | "))
}

// handleToggleActive flips a case between open and inactive.
func (r *Router) handleToggleActive(ctx context.Context, msg chat.Message, args []string, active bool) {
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	var err error
	if active {
		err = r.service.SetActive(ctx, rescue)
	} else {
		err = r.service.SetInactive(ctx, rescue)
	}
	if err != nil {
		r.replyError(msg, err)
		return
	}
	state := "inactive"
	if active {
		state = "active"
	}
	r.reply(msg, fmt.Sprintf("case #%d is now %s.", rescue.Handle(), state))
}

// handleSetSystem replaces the reported system and revalidates it.
func (r *Router) handleSetSystem(ctx context.Context, msg chat.Message, args []string) {
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	if len(args) < 2 {
		r.reply(msg, "give the system name.")
		return
	}
	name := strings.Join(args[1:], " ")
	if err := r.service.SetSystem(ctx, rescue, name); err != nil {
		r.replyError(msg, err)
		return
	}

	system := rescue.System()
	if system != nil && !system.Confirmed && len(system.Corrections) > 0 {
		r.reply(msg, fmt.Sprintf("%q is not in the galaxy database. Did you mean: %s (use sysc)",
			system.Name, numberedList(system.Corrections)))
		return
	}
	r.reply(msg, fmt.Sprintf("case #%d system set to %s.", rescue.Handle(), system.Description()))
}

// handleSystemCorrection picks one of the suggested alternatives shown by
// a failed system lookup.
func (r *Router) handleSystemCorrection(ctx context.Context, msg chat.Message, args []string) {
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	if len(args) < 2 {
		r.reply(msg, "give the number of the correction to apply.")
		return
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		r.reply(msg, "correction must be a number.")
		return
	}

	chosen, err := r.service.ApplyCorrection(ctx, rescue, index)
	if err != nil {
		r.replyError(msg, err)
		return
	}
	r.reply(msg, fmt.Sprintf("case #%d system corrected to %s.", rescue.Handle(), chosen))
}

// handleSilencePrep stops the prep reminder for a client after an operator
// confirms instructions were already given.
func (r *Router) handleSilencePrep(msg chat.Message, args []string) {
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	if r.prep == nil || !r.prep.Silence(rescue.ID) {
		r.reply(msg, fmt.Sprintf("case #%d had no pending prep reminder.", rescue.Handle()))
		return
	}
	r.reply(msg, fmt.Sprintf("prep reminder for case #%d silenced.", rescue.Handle()))
}

// handleSync re-pushes local state to the case service: one case when
// named, otherwise everything that failed its last push.
func (r *Router) handleSync(ctx context.Context, msg chat.Message, args []string) {
	if len(args) > 0 {
		rescue, ok := r.findCase(msg, args)
		if !ok {
			return
		}
		if err := r.service.Push(ctx, rescue); err != nil {
			r.replyError(msg, err)
			return
		}
		r.reply(msg, fmt.Sprintf("case #%d synced.", rescue.Handle()))
		return
	}

	count := r.service.PushUnsynced(ctx)
	if count == 0 {
		r.reply(msg, "all cases are in sync.")
		return
	}
	r.reply(msg, fmt.Sprintf("re-pushing %d case(s).", count))
}

// handlePaperwork fetches the paperwork link for a board case, or for the
// most recently closed one when called without arguments.
func (r *Router) handlePaperwork(msg chat.Message, args []string) {
	if len(args) == 0 {
		if r.lastClosed == nil {
			r.reply(msg, "no case has been closed yet.")
			return
		}
		r.reply(msg, "paperwork: "+r.service.PaperworkLink(r.lastClosed))
		return
	}
	rescue, ok := r.findCase(msg, args)
	if !ok {
		return
	}
	r.reply(msg, "paperwork: "+r.service.PaperworkLink(rescue))
}

func numberedList(items []string) string {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		parts = append(parts, fmt.Sprintf("%d) %s", i+1, item))
	}
	return strings.Join(parts, " ")
}
