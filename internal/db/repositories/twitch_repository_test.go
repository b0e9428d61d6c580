package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/pinkslip-racing/pinkslip/internal/testutil"
)

func TestTwitchRepository_Watches(t *testing.T) {
	repo := NewTwitchRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	if err := repo.AddWatch(ctx, "200", "racer"); err != nil {
		t.Fatalf("AddWatch failed: %v", err)
	}
	if err := repo.AddWatch(ctx, "200", "racer"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
	if err := repo.AddWatch(ctx, "300", "racer"); err != nil {
		t.Fatalf("Same login in another guild should be allowed: %v", err)
	}

	count, err := repo.CountWatches(ctx, "200")
	if err != nil || count != 1 {
		t.Errorf("Expected 1 watch, got %d err=%v", count, err)
	}

	removed, err := repo.RemoveWatch(ctx, "200", "racer")
	if err != nil || !removed {
		t.Errorf("Expected remove to succeed, got %v err=%v", removed, err)
	}
	removed, _ = repo.RemoveWatch(ctx, "200", "racer")
	if removed {
		t.Error("Expected second remove to report false")
	}
}

func TestTwitchRepository_ListTargetsRequiresSettings(t *testing.T) {
	repo := NewTwitchRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	role := "role-1"
	if err := repo.UpsertSettings(ctx, "200", "chan-1", &role); err != nil {
		t.Fatalf("UpsertSettings failed: %v", err)
	}
	repo.AddWatch(ctx, "200", "configured")
	repo.AddWatch(ctx, "300", "unconfigured")

	targets, err := repo.ListTargets(ctx)
	if err != nil {
		t.Fatalf("ListTargets failed: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("Expected 1 target, got %d", len(targets))
	}
	got := targets[0]
	if got.TwitchUsername != "configured" || got.ChannelID != "chan-1" {
		t.Errorf("Unexpected target %+v", got)
	}
	if got.RoleID == nil || *got.RoleID != "role-1" {
		t.Errorf("Expected role-1, got %v", got.RoleID)
	}
}

func TestTwitchRepository_LiveFlags(t *testing.T) {
	repo := NewTwitchRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	repo.UpsertSettings(ctx, "200", "chan-1", nil)
	repo.AddWatch(ctx, "200", "racer")
	targets, _ := repo.ListTargets(ctx)
	if len(targets) != 1 || targets[0].IsLive {
		t.Fatalf("Expected one offline target, got %+v", targets)
	}

	if err := repo.SetLive(ctx, targets[0].ID, "stream-9"); err != nil {
		t.Fatalf("SetLive failed: %v", err)
	}
	targets, _ = repo.ListTargets(ctx)
	if !targets[0].IsLive || targets[0].LastStreamID != "stream-9" {
		t.Errorf("Expected live with stream-9, got %+v", targets[0])
	}

	if err := repo.SetOffline(ctx, targets[0].ID); err != nil {
		t.Fatalf("SetOffline failed: %v", err)
	}
	targets, _ = repo.ListTargets(ctx)
	if targets[0].IsLive || targets[0].LastStreamID != "stream-9" {
		t.Errorf("Expected offline keeping last stream id, got %+v", targets[0])
	}
}

func TestTwitchRepository_DisableGuild(t *testing.T) {
	repo := NewTwitchRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	existed, err := repo.DisableGuild(ctx, "200")
	if err != nil || existed {
		t.Fatalf("Expected nothing to disable, got %v err=%v", existed, err)
	}

	repo.UpsertSettings(ctx, "200", "chan-1", nil)
	repo.AddWatch(ctx, "200", "a")
	repo.AddWatch(ctx, "200", "b")

	existed, err = repo.DisableGuild(ctx, "200")
	if err != nil || !existed {
		t.Fatalf("Expected settings removed, got %v err=%v", existed, err)
	}
	if s, _ := repo.GetSettings(ctx, "200"); s != nil {
		t.Errorf("Expected settings gone, got %+v", s)
	}
	if n, _ := repo.CountWatches(ctx, "200"); n != 0 {
		t.Errorf("Expected no watches, got %d", n)
	}
}
