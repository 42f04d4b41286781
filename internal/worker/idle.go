package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/service"
)

// IdleSweep periodically marks open cases inactive when nothing has
// touched them for the configured window.
type IdleSweep struct {
	board    *board.Board
	service  *service.RescueService
	window   time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewIdleSweep creates a sweep checking every interval.
func NewIdleSweep(b *board.Board, svc *service.RescueService, window, interval time.Duration, logger *zap.Logger) *IdleSweep {
	return &IdleSweep{
		board:    b,
		service:  svc,
		window:   window,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the sweep until the context is cancelled.
func (s *IdleSweep) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one pass over the board.
func (s *IdleSweep) Sweep(ctx context.Context) int {
	swept := 0
	cutoff := time.Now().Add(-s.window)
	for _, rescue := range s.board.List(board.Filter{Statuses: []domain.RescueStatus{domain.RescueStatusOpen}}) {
		if rescue.UpdatedAt().After(cutoff) {
			continue
		}
		if err := s.service.SetInactive(ctx, rescue); err != nil {
			continue
		}
		swept++
		s.logger.Info("case marked inactive after idle window",
			zap.Int("handle", rescue.Handle()),
			zap.String("client", rescue.Client()))
	}
	return swept
}
