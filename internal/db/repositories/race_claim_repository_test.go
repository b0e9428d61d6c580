package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/testutil"
)

func TestRaceClaimRepository_TransitionState(t *testing.T) {
	repo := NewRaceClaimRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	claim := &gormModels.RaceClaim{
		ID:          "claim-1",
		GuildID:     "200",
		InitiatorID: "100",
		OpponentID:  "101",
		State:       constants.ClaimStarted,
		ExpiresAt:   time.Now().UTC().Add(5 * time.Minute),
	}
	if err := repo.Create(ctx, claim); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	next := *claim
	next.State = constants.ClaimOutcomeClaimed
	next.Outcome = constants.OutcomeWin
	next.Compensations = gormModels.Compensations{
		{Kind: gormModels.CompensateStat, UserID: "100", Stat: constants.StatWins, Delta: -1},
	}
	if err := repo.TransitionState(ctx, constants.ClaimStarted, &next); err != nil {
		t.Fatalf("TransitionState failed: %v", err)
	}

	// a second actor holding the old state loses
	err := repo.TransitionState(ctx, constants.ClaimStarted, &next)
	if !errors.Is(err, ErrStaleState) {
		t.Fatalf("Expected ErrStaleState, got %v", err)
	}

	got, err := repo.Get(ctx, "claim-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.State != constants.ClaimOutcomeClaimed {
		t.Errorf("Expected outcome_claimed, got %s", got.State)
	}
	if len(got.Compensations) != 1 || got.Compensations[0].Stat != constants.StatWins {
		t.Errorf("Expected one wins compensation, got %+v", got.Compensations)
	}
}

func TestRaceClaimRepository_ListExpired(t *testing.T) {
	repo := NewRaceClaimRepository(testutil.SetupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	claims := []*gormModels.RaceClaim{
		{ID: "expired-open", GuildID: "200", InitiatorID: "1", OpponentID: "2", State: constants.ClaimAwaitingOpponent, ExpiresAt: now.Add(-time.Minute)},
		{ID: "expired-closed", GuildID: "200", InitiatorID: "1", OpponentID: "2", State: constants.ClaimConfirmed, ExpiresAt: now.Add(-time.Minute)},
		{ID: "still-open", GuildID: "200", InitiatorID: "1", OpponentID: "2", State: constants.ClaimOutcomeClaimed, ExpiresAt: now.Add(time.Minute)},
	}
	for _, c := range claims {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.ListExpired(ctx, now, 10)
	if err != nil {
		t.Fatalf("ListExpired failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "expired-open" {
		t.Errorf("Expected only expired-open, got %+v", got)
	}

	open, err := repo.CountOpen(ctx)
	if err != nil {
		t.Fatalf("CountOpen failed: %v", err)
	}
	if open != 2 {
		t.Errorf("Expected 2 open claims, got %d", open)
	}
}

func TestRaceClaimRepository_GetMissing(t *testing.T) {
	repo := NewRaceClaimRepository(testutil.SetupTestDB(t))
	got, err := repo.Get(context.Background(), "missing")
	if err != nil || got != nil {
		t.Errorf("Expected nil, nil for missing claim, got %+v, %v", got, err)
	}
}

func TestRaceResultRepository_Record(t *testing.T) {
	repo := NewRaceResultRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	if err := repo.Record(ctx, &gormModels.RaceResult{GuildID: "200", WinnerID: "100", LoserID: "101", VehicleSlipID: "1534", ClaimID: "claim-1"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	results, err := repo.ListByGuild(ctx, "200", 10)
	if err != nil {
		t.Fatalf("ListByGuild failed: %v", err)
	}
	if len(results) != 1 || results[0].WinnerID != "100" {
		t.Errorf("Expected one result won by 100, got %+v", results)
	}
}
