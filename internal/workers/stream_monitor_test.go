package workers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
	"github.com/pinkslip-racing/pinkslip/internal/testutil"
)

type announcement struct {
	channelID string
	login     string
	streamID  string
	display   string
}

// Mock Announcer
type mockAnnouncer struct {
	mu   sync.Mutex
	sent []announcement
	err  error
}

func (m *mockAnnouncer) AnnounceLive(ctx context.Context, target gormModels.WatchTarget, user providers.StreamUser, stream providers.Stream) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, announcement{
		channelID: target.ChannelID,
		login:     target.TwitchUsername,
		streamID:  stream.ID,
		display:   user.DisplayName,
	})
	return m.err
}

func (m *mockAnnouncer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type monitorFixture struct {
	monitor   *StreamMonitor
	repo      *repositories.TwitchRepository
	twitch    *testutil.MockTwitch
	announcer *mockAnnouncer
}

func newMonitorFixture(t *testing.T) *monitorFixture {
	t.Helper()
	database := testutil.SetupTestDB(t)
	ctx := context.Background()

	f := &monitorFixture{
		repo:      repositories.NewTwitchRepository(database),
		twitch:    testutil.NewMockTwitch(t, "client-id"),
		announcer: &mockAnnouncer{},
	}
	f.twitch.AddUser(testutil.MockTwitchUser{ID: "42", Login: "racer", DisplayName: "Racer"})

	provider := providers.NewTwitchProvider(ctx, providers.TwitchConfig{
		ClientID:     "client-id",
		ClientSecret: "secret",
		BaseURL:      f.twitch.HelixURL(),
		TokenURL:     f.twitch.TokenURL(),
	}, nil, nil)
	f.monitor = NewStreamMonitor(f.repo, provider, f.announcer, nil)

	if err := f.repo.UpsertSettings(ctx, "guild", "chan-live", nil); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}
	if err := f.repo.AddWatch(ctx, "guild", "racer"); err != nil {
		t.Fatalf("AddWatch failed: %v", err)
	}
	return f
}

func (f *monitorFixture) poll(t *testing.T) PollStats {
	t.Helper()
	stats, err := f.monitor.Poll(context.Background())
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	return stats
}

func TestStreamMonitor_AnnouncesOncePerStream(t *testing.T) {
	f := newMonitorFixture(t)

	if stats := f.poll(t); stats.Checked != 1 || stats.Announced != 0 {
		t.Fatalf("Expected a quiet first pass, got %+v", stats)
	}

	f.twitch.GoLive(testutil.MockTwitchStream{ID: "s1", UserID: "42", Title: "Drift night"})
	if stats := f.poll(t); stats.Announced != 1 {
		t.Fatalf("Expected one announcement, got %+v", stats)
	}

	// repeated polls of the same broadcast are no-ops
	for i := 0; i < 3; i++ {
		f.poll(t)
	}
	if got := f.announcer.count(); got != 1 {
		t.Fatalf("Expected 1 announcement after repeated polls, got %d", got)
	}
	sent := f.announcer.sent[0]
	if sent.channelID != "chan-live" || sent.streamID != "s1" || sent.display != "Racer" {
		t.Errorf("Unexpected announcement %+v", sent)
	}

	f.twitch.GoOffline("42")
	if stats := f.poll(t); stats.WentOffline != 1 {
		t.Fatalf("Expected offline transition, got %+v", stats)
	}

	// the same stream id coming back is not re-announced
	f.twitch.GoLive(testutil.MockTwitchStream{ID: "s1", UserID: "42"})
	f.poll(t)
	if got := f.announcer.count(); got != 1 {
		t.Errorf("Expected no re-announcement of s1, got %d", got)
	}

	f.twitch.GoLive(testutil.MockTwitchStream{ID: "s2", UserID: "42"})
	f.poll(t)
	if got := f.announcer.count(); got != 2 {
		t.Errorf("Expected a new stream to be announced, got %d", got)
	}
}

func TestStreamMonitor_SkipsFailures(t *testing.T) {
	f := newMonitorFixture(t)
	ctx := context.Background()

	// unknown login and a watch in a guild without settings
	f.repo.AddWatch(ctx, "guild", "ghost")
	f.repo.AddWatch(ctx, "unconfigured", "racer")

	f.twitch.GoLive(testutil.MockTwitchStream{ID: "s1", UserID: "42"})
	f.twitch.FailStreams(true)

	stats := f.poll(t)
	if stats.Checked != 2 {
		t.Errorf("Expected only configured guilds to be polled, got %+v", stats)
	}
	if stats.Skipped != 2 || stats.Announced != 0 {
		t.Errorf("Expected both watches skipped, got %+v", stats)
	}

	f.twitch.FailStreams(false)
	stats = f.poll(t)
	if stats.Announced != 1 || stats.Skipped != 1 {
		t.Errorf("Expected recovery on the next pass, got %+v", stats)
	}
}

func TestStreamMonitor_AnnouncerErrorStillRecordsStream(t *testing.T) {
	f := newMonitorFixture(t)
	f.announcer.err = errors.New("missing access")

	f.twitch.GoLive(testutil.MockTwitchStream{ID: "s1", UserID: "42"})
	f.poll(t)
	f.poll(t)

	if got := f.announcer.count(); got != 1 {
		t.Errorf("Expected a single attempt, got %d", got)
	}
	targets, err := f.repo.ListTargets(context.Background())
	if err != nil {
		t.Fatalf("ListTargets failed: %v", err)
	}
	if !targets[0].IsLive || targets[0].LastStreamID != "s1" {
		t.Errorf("Expected stream recorded, got %+v", targets[0])
	}
}
