package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/board"
	"github.com/spec-kit/rescue-dispatch/internal/chat"
	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
	"github.com/spec-kit/rescue-dispatch/internal/service"
	"github.com/spec-kit/rescue-dispatch/internal/starsystems"
	"github.com/spec-kit/rescue-dispatch/internal/syncer"
)

type stubLookup struct {
	confirmed map[string]bool
}

func (s stubLookup) Search(ctx context.Context, name string) ([]starsystems.SearchResult, error) {
	return nil, nil
}

func (s stubLookup) Check(ctx context.Context, name string) (domain.SystemLookup, error) {
	return domain.SystemLookup{Name: name, Confirmed: s.confirmed[name]}, nil
}

type stubPrep struct {
	silenced map[uuid.UUID]bool
}

func (s *stubPrep) Silence(id uuid.UUID) bool {
	if s.silenced == nil {
		s.silenced = make(map[uuid.UUID]bool)
	}
	if s.silenced[id] {
		return false
	}
	s.silenced[id] = true
	return true
}

type routerFixture struct {
	router   *Router
	board    *board.Board
	service  *service.RescueService
	recorder *chat.Recorder
	prep     *stubPrep
}

// downPusher stands in for a case service outage.
type downPusher struct{}

func (downPusher) CreateRescue(ctx context.Context, rescue *domain.Rescue) error {
	return errors.New("case service unavailable")
}

func (downPusher) UpdateRescue(ctx context.Context, rescue *domain.Rescue) error {
	return errors.New("case service unavailable")
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	return newRouterFixtureWithEngine(t, syncer.New(nil, nil, zap.NewNop(), observability.NewMetrics(), true))
}

func newRouterFixtureWithEngine(t *testing.T, engine *syncer.Engine) *routerFixture {
	t.Helper()
	b := board.New()
	cfg := &config.Config{
		Chat: config.ChatConfig{
			RescueChannel: "#rescue",
			CommandPrefix: "!",
			RatBlacklist:  []string{"DrillRat"},
		},
		CaseAPI: config.CaseAPIConfig{PaperworkURL: "https://example.org/paperwork/%s/edit"},
	}
	svc := service.NewRescueService(service.RescueServiceDeps{
		Board:   b,
		Syncer:  engine,
		Systems: stubLookup{confirmed: map[string]bool{"Delkar": true}},
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
		Config:  cfg,
	})
	recorder := chat.NewRecorder()
	prep := &stubPrep{}
	router := NewRouter(RouterDeps{
		Board:     b,
		Service:   svc,
		Transport: recorder,
		Prep:      prep,
		Logger:    zap.NewNop(),
		Config:    cfg,
	})
	return &routerFixture{router: router, board: b, service: svc, recorder: recorder, prep: prep}
}

func (f *routerFixture) addRescue(t *testing.T, client string) *domain.Rescue {
	t.Helper()
	rescue, err := f.service.Create(context.Background(), service.CreateOptions{Client: client, Channel: "#rescue"})
	require.NoError(t, err)
	return rescue
}

func (f *routerFixture) command(text string) {
	f.router.Handle(context.Background(), chat.Message{Sender: "Dispatch", Channel: "#rescue", Text: text})
}

func (f *routerFixture) lastReply(t *testing.T) string {
	t.Helper()
	messages := f.recorder.All()
	require.NotEmpty(t, messages)
	return messages[len(messages)-1].Text
}

func TestRouterIgnoresNonCommands(t *testing.T) {
	f := newRouterFixture(t)
	f.router.Handle(context.Background(), chat.Message{Sender: "x", Channel: "#rescue", Text: "list"})
	assert.Empty(t, f.recorder.All())
}

func TestRouterIgnoresPlayback(t *testing.T) {
	f := newRouterFixture(t)
	f.router.Handle(context.Background(), chat.Message{
		Sender: "x", Channel: "#rescue", Text: "!list",
		Tags: map[string]string{"batch": "1"},
	})
	assert.Empty(t, f.recorder.All())
}

func TestListShowsOpenCases(t *testing.T) {
	f := newRouterFixture(t)
	f.addRescue(t, "ClientOne")
	rescue := f.addRescue(t, "ClientTwo")
	rescue.SetPlatform(domain.PlatformXbox)
	rescue.SetCodeRed(true)

	f.command("!list")
	reply := f.lastReply(t)
	assert.Contains(t, reply, "2 case(s)")
	assert.Contains(t, reply, "#1 ClientOne")
	assert.Contains(t, reply, "#2 ClientTwo (Xbox) [CR]")
}

func TestListFiltersInactiveUnlessFlagged(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "ClientOne")
	require.NoError(t, rescue.Transition(domain.RescueStatusInactive))

	f.command("!list")
	assert.Contains(t, f.lastReply(t), "no cases")

	f.command("!list -i")
	assert.Contains(t, f.lastReply(t), "[inactive]")
}

func TestListUnassignedFilterAndPlatform(t *testing.T) {
	f := newRouterFixture(t)
	assigned := f.addRescue(t, "ClientOne")
	assigned.AddUnidentifiedRat("RatOne")
	pc := f.addRescue(t, "ClientTwo")
	pc.SetPlatform(domain.PlatformPC)

	f.command("!list -u")
	reply := f.lastReply(t)
	assert.Contains(t, reply, "ClientTwo")
	assert.NotContains(t, reply, "ClientOne")

	f.command("!list pc")
	reply = f.lastReply(t)
	assert.Contains(t, reply, "ClientTwo")
	assert.NotContains(t, reply, "ClientOne")
}

func TestCloseRemovesCaseAndThanksFirstLimpet(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")

	f.command("!close 1 RatOne")
	assert.Equal(t, 0, f.board.Len())
	assert.Equal(t, domain.RescueStatusClosed, rescue.Status())

	messages := f.recorder.All()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0].Text, "closed")
	assert.Equal(t, "private", messages[1].Kind)
	assert.Equal(t, "RatOne", messages[1].Target)
	assert.Contains(t, messages[1].Text, rescue.ID.String())
}

func TestCloseReportsFailedPushAndKeepsCase(t *testing.T) {
	engine := syncer.New(downPusher{}, nil, zap.NewNop(), observability.NewMetrics(), false)
	f := newRouterFixtureWithEngine(t, engine)
	f.addRescue(t, "SpaceDawg")

	f.command("!close 1 RatOne")

	assert.Equal(t, 1, f.board.Len())
	assert.Contains(t, f.lastReply(t), "rejected the update")
	for _, msg := range f.recorder.All() {
		assert.NotEqual(t, "private", msg.Kind)
	}
}

func TestCloseUnknownCaseReplies(t *testing.T) {
	f := newRouterFixture(t)
	f.command("!close 7")
	assert.Contains(t, f.lastReply(t), "could not find a case")
}

func TestTrashNeedsReasonAndForceWhenAssigned(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")
	rescue.AddUnidentifiedRat("RatOne")

	f.command("!trash 1")
	assert.Contains(t, f.lastReply(t), "reason")

	f.command("!trash 1 duplicate case")
	assert.Contains(t, f.lastReply(t), "force")
	assert.Equal(t, 1, f.board.Len())

	f.command("!md -f 1 duplicate case")
	assert.Contains(t, f.lastReply(t), "deleted")
	assert.Equal(t, 0, f.board.Len())
}

func TestAssignDefaultsToSender(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")

	f.command("!go 1")
	assert.Contains(t, f.lastReply(t), "Dispatch: please go to SpaceDawg's location")
	assert.True(t, rescue.IsAssigned())
}

func TestAssignReportsBlacklisted(t *testing.T) {
	f := newRouterFixture(t)
	f.addRescue(t, "SpaceDawg")

	f.command("!assign 1 DrillRat RatOne")
	reply := f.lastReply(t)
	assert.Contains(t, reply, "RatOne: please go")
	assert.Contains(t, reply, "not eligible: DrillRat")
}

func TestToggleActive(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")

	f.command("!inactive 1")
	assert.Equal(t, domain.RescueStatusInactive, rescue.Status())
	f.command("!active 1")
	assert.Equal(t, domain.RescueStatusOpen, rescue.Status())
}

func TestSetSystemConfirmed(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")

	f.command("!sys 1 Delkar")
	assert.Contains(t, f.lastReply(t), "system set to Delkar")
	require.NotNil(t, rescue.System())
	assert.True(t, rescue.System().Confirmed)
}

func TestSystemCorrectionAppliesNumberedChoice(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")
	system := domain.NewStarSystem("Delkar2")
	system.Corrections = []string{"Delkar"}
	rescue.SetSystem(system)

	f.command("!sysc 1 1")
	assert.Contains(t, f.lastReply(t), "corrected to Delkar")
	assert.True(t, rescue.System().Confirmed)
}

func TestSilencePrepOnlyOnce(t *testing.T) {
	f := newRouterFixture(t)
	f.addRescue(t, "SpaceDawg")

	f.command("!sprep 1")
	assert.Contains(t, f.lastReply(t), "silenced")
	f.command("!sprep 1")
	assert.Contains(t, f.lastReply(t), "no pending prep reminder")
}

func TestQuietReportsOpenCasesFirst(t *testing.T) {
	f := newRouterFixture(t)
	f.addRescue(t, "SpaceDawg")
	f.command("!quiet")
	assert.Contains(t, f.lastReply(t), "not quiet")
}

func TestQuietWithoutSignalSinceStartup(t *testing.T) {
	f := newRouterFixture(t)
	f.command("!quiet")
	assert.Contains(t, f.lastReply(t), "since startup")
}

func TestQuietThresholds(t *testing.T) {
	f := newRouterFixture(t)

	f.board.MarkSignalReceived(time.Now().Add(-2 * time.Hour))
	f.command("!last")
	assert.Contains(t, f.lastReply(t), "quiet for")

	f.board.MarkSignalReceived(time.Now().Add(-5 * time.Minute))
	f.command("!last")
	assert.Contains(t, f.lastReply(t), "give it a moment")
}

func TestSyncSingleCase(t *testing.T) {
	f := newRouterFixture(t)
	f.addRescue(t, "SpaceDawg")
	f.command("!sync 1")
	assert.Contains(t, f.lastReply(t), "case #1 synced")
}

func TestSyncAllWhenNothingPending(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")
	rescue.SetSynced(true)
	f.command("!sync")
	assert.Contains(t, f.lastReply(t), "in sync")
}

func TestPaperworkLinkForLastClosedCase(t *testing.T) {
	f := newRouterFixture(t)
	rescue := f.addRescue(t, "SpaceDawg")

	f.command("!pwl")
	assert.Contains(t, f.lastReply(t), "no case has been closed")

	f.command("!close 1")
	f.command("!pwl")
	assert.Contains(t, f.lastReply(t), rescue.ID.String())
}
