package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/commands"
	"github.com/spec-kit/rescue-dispatch/internal/scanner"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// MessagesHandler receives inbound chat traffic from the gateway and
// feeds it through the command router and the passive scanner.
type MessagesHandler struct {
	scanner *scanner.Scanner
	router  *commands.Router
}

// NewMessagesHandler returns a new handler instance.
func NewMessagesHandler(s *scanner.Scanner, r *commands.Router) *MessagesHandler {
	return &MessagesHandler{scanner: s, router: r}
}

// Post ingests one chat message.
func (h *MessagesHandler) Post(c *fiber.Ctx) error {
	var msg chat.Message
	if err := c.BodyParser(&msg); err != nil {
		return util.NewValidationError("malformed message payload", nil)
	}
	if msg.Sender == "" || msg.Text == "" {
		return util.NewValidationError("sender and text are required", nil)
	}

	ctx := c.UserContext()
	h.router.Handle(ctx, msg)
	h.scanner.Scan(ctx, msg)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "accepted"})
}
