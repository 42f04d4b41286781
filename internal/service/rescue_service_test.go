package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/internal/starsystems"
	"github.com/spec-kit/rescue-dispatch/internal/syncer"
)

type fakeLookup struct {
	checks   map[string]domain.SystemLookup
	searches map[string][]starsystems.SearchResult
	checkErr error
}

func (f *fakeLookup) Check(ctx context.Context, name string) (domain.SystemLookup, error) {
	if f.checkErr != nil {
		return domain.SystemLookup{}, f.checkErr
	}
	if lookup, ok := f.checks[strings.ToUpper(name)]; ok {
		return lookup, nil
	}
	return domain.SystemLookup{Name: name, Confirmed: false}, nil
}

func (f *fakeLookup) Search(ctx context.Context, name string) ([]starsystems.SearchResult, error) {
	return f.searches[strings.ToUpper(name)], nil
}

type fakeRestorer struct {
	rescues []*domain.Rescue
	err     error
}

func (f *fakeRestorer) ListOpenRescues(ctx context.Context) ([]*domain.Rescue, error) {
	return f.rescues, f.err
}

// flakyPusher rejects pushes while fail is set, standing in for a case
// service outage.
type flakyPusher struct {
	mu   sync.Mutex
	fail bool
}

func (p *flakyPusher) setFail(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fail = fail
}

func (p *flakyPusher) push() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("case service unavailable")
	}
	return nil
}

func (p *flakyPusher) CreateRescue(ctx context.Context, rescue *domain.Rescue) error {
	return p.push()
}

func (p *flakyPusher) UpdateRescue(ctx context.Context, rescue *domain.Rescue) error {
	return p.push()
}

type fixture struct {
	service *RescueService
	board   *board.Board
	engine  *syncer.Engine
	lookup  *fakeLookup
	remote  *fakeRestorer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := board.New()
	engine := syncer.New(nil, nil, zap.NewNop(), observability.NewMetrics(), true)
	lookup := &fakeLookup{
		checks:   make(map[string]domain.SystemLookup),
		searches: make(map[string][]starsystems.SearchResult),
	}
	remote := &fakeRestorer{}
	cfg := &config.Config{
		Chat: config.ChatConfig{
			RescueChannel: "#rescue",
			RatBlacklist:  []string{"DrillRat"},
		},
		CaseAPI: config.CaseAPIConfig{PaperworkURL: "https://example.org/paperwork/%s/edit"},
	}
	svc := NewRescueService(RescueServiceDeps{
		Board:   b,
		Syncer:  engine,
		Remote:  remote,
		Systems: lookup,
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
		Config:  cfg,
	})
	return &fixture{service: svc, board: b, engine: engine, lookup: lookup, remote: remote}
}

// newPushFixture builds a fixture whose engine pushes through the given
// pusher instead of running in drill mode.
func newPushFixture(t *testing.T, pusher syncer.Pusher) *fixture {
	t.Helper()
	f := newFixture(t)
	f.engine = syncer.New(pusher, nil, zap.NewNop(), observability.NewMetrics(), false)
	f.service.syncer = f.engine
	return f
}

func (f *fixture) drain(t *testing.T) {
	t.Helper()
	require.True(t, f.engine.Drain(5*time.Second))
}

func TestCreateAssignsSmallestHandle(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", Channel: "#rescue"})
	require.NoError(t, err)
	assert.Equal(t, 1, rescue.Handle())
	f.drain(t)
	assert.True(t, rescue.Synced())
}

func TestCreateRefusesDuplicateClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), CreateOptions{Client: "spacedawg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has case #1")
}

func TestCreateRequiresClient(t *testing.T) {
	f := newFixture(t)
	_, err := f.service.Create(context.Background(), CreateOptions{Client: "  "})
	assert.Error(t, err)
}

func TestAssignBucketsNames(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	result, err := f.service.Assign(context.Background(), rescue, []string{"RatOne", "DrillRat", "SpaceDawg", "RatOne"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"RatOne"}, result.Assigned)
	assert.Equal(t, []string{"DrillRat"}, result.Blacklisted)
	assert.Equal(t, []string{"SpaceDawg"}, result.Invalid)
	assert.Equal(t, []string{"RatOne"}, result.Duplicates)
}

func TestAssignForceOverridesBlacklistAndSelfAssign(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	result, err := f.service.Assign(context.Background(), rescue, []string{"DrillRat", "SpaceDawg"}, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"DrillRat", "SpaceDawg"}, result.Assigned)
	assert.Empty(t, result.Blacklisted)
	assert.Empty(t, result.Invalid)
}

func TestAssignPromotesQueuedCase(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg", Queued: true})
	require.NoError(t, err)
	require.Equal(t, domain.RescueStatusQueued, rescue.Status())

	_, err = f.service.Assign(context.Background(), rescue, []string{"RatOne"}, false)
	require.NoError(t, err)
	assert.Equal(t, domain.RescueStatusOpen, rescue.Status())
}

func TestCloseRemovesFromBoardAndBuildsPaperworkLink(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	link, err := f.service.Close(context.Background(), rescue, "RatOne")
	require.NoError(t, err)
	assert.Contains(t, link, rescue.ID.String())
	assert.Equal(t, 0, f.board.Len())
	require.NotNil(t, rescue.FirstLimpet())
	assert.Equal(t, "RatOne", rescue.FirstLimpet().Name)
}

func TestCloseKeepsCaseOnBoardWhenPushFails(t *testing.T) {
	pusher := &flakyPusher{fail: true}
	f := newPushFixture(t, pusher)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	f.drain(t)

	_, err = f.service.Close(context.Background(), rescue, "RatOne")
	require.Error(t, err)

	assert.Equal(t, domain.RescueStatusClosed, rescue.Status())
	assert.False(t, rescue.Synced())
	assert.Equal(t, 1, f.board.Len())
	assert.Equal(t, 1, f.service.PushUnsynced(context.Background()))
	f.drain(t)
}

func TestPushEvictsClosedCaseOnceRemoteRecovers(t *testing.T) {
	pusher := &flakyPusher{fail: true}
	f := newPushFixture(t, pusher)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	_, err = f.service.Close(context.Background(), rescue, "RatOne")
	require.Error(t, err)
	require.Equal(t, 1, f.board.Len())

	pusher.setFail(false)
	require.NoError(t, f.service.Push(context.Background(), rescue))
	assert.True(t, rescue.Synced())
	assert.Equal(t, 0, f.board.Len())
}

func TestTrashKeepsCaseOnBoardWhenPushFails(t *testing.T) {
	pusher := &flakyPusher{fail: true}
	f := newPushFixture(t, pusher)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	f.drain(t)

	err = f.service.Trash(context.Background(), rescue, "duplicate", false)
	require.Error(t, err)

	assert.Equal(t, domain.RescueStatusClosed, rescue.Status())
	assert.False(t, rescue.Synced())
	assert.Equal(t, 1, f.board.Len())
	f.drain(t)
}

func TestCloseTwiceReportsAlreadyClosed(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)

	_, err = f.service.Close(context.Background(), rescue, "")
	require.NoError(t, err)
	_, err = f.service.Close(context.Background(), rescue, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestTrashRequiresReason(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	assert.Error(t, f.service.Trash(context.Background(), rescue, "  ", false))
}

func TestTrashAssignedCaseNeedsForce(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	rescue.AddUnidentifiedRat("RatOne")

	err = f.service.Trash(context.Background(), rescue, "duplicate", false)
	require.Error(t, err)
	assert.Equal(t, domain.RescueStatusOpen, rescue.Status())

	require.NoError(t, f.service.Trash(context.Background(), rescue, "duplicate", true))
	assert.Equal(t, domain.RescueOutcomePurge, rescue.Outcome())
	assert.Equal(t, 0, f.board.Len())
}

func TestTrashBannedCaseRefusesEvenWithForce(t *testing.T) {
	f := newFixture(t)
	rescue, err := f.service.Create(context.Background(), CreateOptions{Client: "SpaceDawg"})
	require.NoError(t, err)
	rescue.SetBanned(true)

	err = f.service.Trash(context.Background(), rescue, "spite", true)
	assert.ErrorIs(t, err, domain.ErrRescueBanned)
	assert.Equal(t, 1, f.board.Len())
}

func TestCreateFromAnnouncementParsesFields(t *testing.T) {
	f := newFixture(t)
	msg := chat.Message{
		Sender:  "DispatchGateway",
		Channel: "#rescue",
		Admin:   true,
		Text:    "Incoming Client: Erebus - System: Delkar SYSTEM - Platform: XB - O2: NOT OK - Language: German (de-DE)",
	}
	rescue, err := f.service.CreateFromAnnouncement(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "Erebus", rescue.Client())
	assert.Equal(t, domain.PlatformXbox, rescue.Platform())
	assert.True(t, rescue.CodeRed())
	assert.Equal(t, "de-DE", rescue.ClientLanguage())
	require.NotNil(t, rescue.System())
	assert.Equal(t, "Delkar", rescue.System().Name)
}

func TestCreateFromAnnouncementRejectsUntrustedSender(t *testing.T) {
	f := newFixture(t)
	msg := chat.Message{Sender: "prankster", Text: "Incoming Client: Fake - System: Sol"}
	_, err := f.service.CreateFromAnnouncement(context.Background(), msg)
	assert.Error(t, err)
	assert.Equal(t, 0, f.board.Len())
}

func TestCreateFromSignalScavengesPlatformAndCodeRed(t *testing.T) {
	f := newFixture(t)
	msg := chat.Message{
		Sender:  "StrandedCmdr",
		Channel: "#rescue",
		Text:    "ratsignal need help, xbox, code red!",
	}
	rescue, err := f.service.CreateFromSignal(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "StrandedCmdr", rescue.Client())
	assert.Equal(t, domain.PlatformXbox, rescue.Platform())
	assert.True(t, rescue.CodeRed())
	require.Len(t, rescue.Quotes(), 1)
	assert.Equal(t, msg.Text, rescue.Quotes()[0].Message)
}

func TestCreateFromSignalExtractsSystemAndHost(t *testing.T) {
	f := newFixture(t)
	f.lookup.checks["DELKAR"] = domain.SystemLookup{Name: "Delkar", Confirmed: true}
	msg := chat.Message{
		Sender:  "StrandedCmdr",
		Host:    "cmdr.stranded.example",
		Channel: "#rescue",
		Text:    "ratsignal stuck in the Delkar system on pc, running low",
	}
	rescue, err := f.service.CreateFromSignal(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, "cmdr.stranded.example", rescue.ClientHost())
	require.NotNil(t, rescue.System())
	assert.Equal(t, "Delkar", rescue.System().Name)
	require.Eventually(t, func() bool {
		system := rescue.System()
		return system != nil && system.Confirmed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestExtractSignalSystem(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"ratsignal sys: NLTT 48288, pc, o2 ok", "NLTT 48288"},
		{"RATSIGNAL System: Delkar SYSTEM - Platform: PC", "Delkar"},
		{"ratsignal stranded in the Fuelum system please help", "Fuelum"},
		{"ratsignal out of fuel, no clue where I am", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractSignalSystem(tc.text), tc.text)
	}
}

func TestRestoreBoardKeepsRemoteHandles(t *testing.T) {
	f := newFixture(t)
	restored := domain.NewRescue("SpaceDawg", "#rescue")
	restored.SetHandle(4)
	f.remote.rescues = []*domain.Rescue{restored}

	count, err := f.service.RestoreBoard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, ok := f.board.Find(4)
	require.True(t, ok)
	assert.Equal(t, restored.ID, found.ID)
}

func TestRestoreBoardSurfacesRemoteFailure(t *testing.T) {
	f := newFixture(t)
	f.remote.err = errors.New("connection refused")
	_, err := f.service.RestoreBoard(context.Background())
	assert.Error(t, err)
}

func TestPushUnsyncedSkipsSyncedCases(t *testing.T) {
	f := newFixture(t)
	synced, err := f.service.Create(context.Background(), CreateOptions{Client: "ClientOne"})
	require.NoError(t, err)
	unsynced, err := f.service.Create(context.Background(), CreateOptions{Client: "ClientTwo"})
	require.NoError(t, err)
	f.drain(t)
	require.True(t, synced.Synced())
	unsynced.SetSynced(false)

	assert.Equal(t, 1, f.service.PushUnsynced(context.Background()))
}

func TestStripSystemSuffix(t *testing.T) {
	assert.Equal(t, "Delkar", stripSystemSuffix("Delkar SYSTEM"))
	assert.Equal(t, "Delkar", stripSystemSuffix("Delkar system"))
	assert.Equal(t, "Delkar", stripSystemSuffix("Delkar"))
	assert.Equal(t, "SYSTEM", stripSystemSuffix("SYSTEM"))
}
