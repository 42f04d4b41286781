package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/syncer"
	"github.com/spec-kit/rescue-dispatch/internal/sysname"
	"github.com/spec-kit/rescue-dispatch/pkg/util"
)

// maxCorrections caps how many ranked alternatives are attached to a case
// with an unrecognized system name.
const maxCorrections = 9

// ValidateSystem resolves the reported system name against the star
// catalog. A confirmed name absorbs catalog metadata. An unconfirmed name
// is first run through the procedural-name corrector; failing that, up to
// nine ranked alternatives are attached for the sysc command.
func (s *RescueService) ValidateSystem(ctx context.Context, rescue *domain.Rescue) error {
	system := rescue.System()
	if system == nil {
		return nil
	}

	lookup, err := s.systems.Check(ctx, system.Name)
	if err != nil {
		return util.NewSyncFailure(err)
	}
	if lookup.Confirmed {
		system.Merge(lookup)
		rescue.SetSystem(system)
		s.syncer.Enqueue(rescue, syncer.OperationUpdate)
		return nil
	}

	results, err := s.systems.Search(ctx, system.Name)
	if err != nil {
		return util.NewSyncFailure(err)
	}
	candidates := make([]sysname.Candidate, 0, len(results))
	for _, result := range results {
		candidates = append(candidates, sysname.Candidate{Name: result.Name, Distance: result.Distance})
	}

	if corrected, ok := sysname.Correct(system.Name, candidates); ok {
		if fixed, err := s.systems.Check(ctx, corrected); err == nil && fixed.Confirmed {
			s.logger.Info("system name autocorrected",
				zap.Int("handle", rescue.Handle()),
				zap.String("reported", system.RawName),
				zap.String("corrected", corrected))
			// The reported name is not serialized once replaced, so the
			// correction is preserved in the quote history.
			rescue.AppendQuote(domain.NewQuote(s.quoteAuthor(), fmt.Sprintf(
				"Autocorrected system name from %q to %q", system.Name, corrected)))
			system.Name = corrected
			system.Merge(fixed)
			rescue.SetSystem(system)
			s.syncer.Enqueue(rescue, syncer.OperationUpdate)
			return nil
		}
	}

	system.Confirmed = false
	system.Corrections = system.Corrections[:0]
	for i, candidate := range candidates {
		if i >= maxCorrections {
			break
		}
		system.Corrections = append(system.Corrections, candidate.Name)
	}
	rescue.SetSystem(system)
	s.syncer.Enqueue(rescue, syncer.OperationUpdate)
	return nil
}

// ValidateSystemAsync runs ValidateSystem in the background, used on the
// case-creation path where chat handling must not block on the catalog.
func (s *RescueService) ValidateSystemAsync(rescue *domain.Rescue) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.ValidateSystem(ctx, rescue); err != nil {
			s.logger.Warn("system validation failed",
				zap.Int("handle", rescue.Handle()),
				zap.Error(err))
		}
	}()
}

// SetSystem replaces the reported system on a case and revalidates it.
func (s *RescueService) SetSystem(ctx context.Context, rescue *domain.Rescue, name string) error {
	rescue.SetSystem(domain.NewStarSystem(stripSystemSuffix(name)))
	return s.ValidateSystem(ctx, rescue)
}

// ApplyCorrection picks one of the ranked alternatives attached to a case
// with an unrecognized system. Indexes are 1-based the way they are shown
// in chat.
func (s *RescueService) ApplyCorrection(ctx context.Context, rescue *domain.Rescue, index int) (string, error) {
	system := rescue.System()
	if system == nil || len(system.Corrections) == 0 {
		return "", util.NewNotFound("system correction list", map[string]any{"handle": rescue.Handle()})
	}
	if index < 1 || index > len(system.Corrections) {
		return "", util.NewValidationError(
			fmt.Sprintf("correction index must be between 1 and %d", len(system.Corrections)), nil)
	}

	chosen := system.Corrections[index-1]
	system.Name = chosen
	system.Corrections = nil
	rescue.SetSystem(system)
	if err := s.ValidateSystem(ctx, rescue); err != nil {
		return chosen, err
	}
	return chosen, nil
}
