package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// RescuesHandler serves read-only board snapshots for dashboards.
type RescuesHandler struct {
	board   *board.Board
	metrics *observability.Metrics
}

// NewRescuesHandler returns a new handler instance.
func NewRescuesHandler(b *board.Board, metrics *observability.Metrics) *RescuesHandler {
	return &RescuesHandler{board: b, metrics: metrics}
}

type rescueView struct {
	ID         string                  `json:"id"`
	Handle     int                     `json:"handle"`
	Synced     bool                    `json:"synced"`
	Attributes domain.RescueAttributes `json:"attributes"`
}

func viewOf(rescue *domain.Rescue) rescueView {
	return rescueView{
		ID:         rescue.ID.String(),
		Handle:     rescue.Handle(),
		Synced:     rescue.Synced(),
		Attributes: rescue.Attributes(),
	}
}

// List returns every case on the board, handle-ordered. An optional
// status query narrows the snapshot.
func (h *RescuesHandler) List(c *fiber.Ctx) error {
	filter := board.Filter{}
	if status := c.Query("status"); status != "" {
		parsed, ok := domain.ParseRescueStatus(status)
		if !ok {
			return util.NewValidationError("unknown status", map[string]any{"status": status})
		}
		filter.Statuses = []domain.RescueStatus{parsed}
	}

	rescues := h.board.List(filter)
	views := make([]rescueView, 0, len(rescues))
	for _, rescue := range rescues {
		views = append(views, viewOf(rescue))
	}
	return c.JSON(fiber.Map{"count": len(views), "rescues": views})
}

// Get returns one case by handle.
func (h *RescuesHandler) Get(c *fiber.Ctx) error {
	handle, err := strconv.Atoi(c.Params("handle"))
	if err != nil {
		return util.NewValidationError("handle must be a number", nil)
	}
	rescue, ok := h.board.Find(handle)
	if !ok {
		return util.NewNotFound("rescue", map[string]any{"handle": handle})
	}
	return c.JSON(viewOf(rescue))
}

// Metrics returns the in-memory activity counters.
func (h *RescuesHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
