package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/testutil"
)

func newAdminFixture(t *testing.T) (*AdminService, *repositories.VehicleRepository, string) {
	database := testutil.SetupTestDB(t)
	vehicles := repositories.NewVehicleRepository(database)
	stats := repositories.NewStatsRepository(database)

	slipID, err := vehicles.Create(context.Background(), &gormModels.Vehicle{
		UserID: "owner", GuildID: "guild", MakeModel: "Subaru Impreza", Year: "2004",
		EngineSpec: "2.5L boxer turbo", Transmission: "6-speed", SteamID: "76561198123456789",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return NewAdminService(vehicles, stats), vehicles, slipID
}

func TestAdminService_ForceTransfer(t *testing.T) {
	svc, vehicles, slipID := newAdminFixture(t)
	ctx := context.Background()

	if _, err := svc.ForceTransfer(ctx, "admin", "guild", "missing", "other"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := svc.ForceTransfer(ctx, "admin", "other-guild", slipID, "other"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound across guilds, got %v", err)
	}
	if _, err := svc.ForceTransfer(ctx, "admin", "guild", slipID, "owner"); !errors.Is(err, repositories.ErrNoOp) {
		t.Errorf("Expected ErrNoOp for same owner, got %v", err)
	}

	v, err := svc.ForceTransfer(ctx, "admin", "guild", slipID, "other")
	if err != nil {
		t.Fatalf("ForceTransfer failed: %v", err)
	}
	if v.UserID != "other" {
		t.Errorf("Expected returned owner other, got %s", v.UserID)
	}
	stored, _ := vehicles.GetBySlipID(ctx, slipID)
	if stored.UserID != "other" || stored.Status != constants.VehicleStatusPending {
		t.Errorf("Transfer must change owner only, got %+v", stored)
	}
}

func TestAdminService_ForceDelete(t *testing.T) {
	svc, vehicles, slipID := newAdminFixture(t)
	ctx := context.Background()

	if _, err := svc.ForceDelete(ctx, "admin", "guild", slipID); err != nil {
		t.Fatalf("ForceDelete failed: %v", err)
	}
	if stored, _ := vehicles.GetBySlipID(ctx, slipID); stored != nil {
		t.Error("Expected vehicle deleted")
	}
	if _, err := svc.ForceDelete(ctx, "admin", "guild", slipID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAdminService_AdjustStats(t *testing.T) {
	svc, _, _ := newAdminFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		op         StatOperation
		kind       constants.StatKind
		amount     int
		wantWins   int
		wantLosses int
		wantErr    error
	}{
		{"Add wins", StatAdd, constants.StatWins, 3, 3, 0, nil},
		{"Subtract clamps", StatSubtract, constants.StatWins, 10, 0, 0, nil},
		{"Add losses", StatAdd, constants.StatLosses, 2, 0, 2, nil},
		{"Zero amount", StatAdd, constants.StatWins, 0, 0, 2, ErrInvalidAmount},
		{"Negative amount", StatSubtract, constants.StatLosses, -1, 0, 2, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := svc.AdjustStats(ctx, "admin", "guild", "member", tt.op, tt.kind, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("AdjustStats failed: %v", err)
			}
			if stats.Wins != tt.wantWins || stats.Losses != tt.wantLosses {
				t.Errorf("Expected %d-%d, got %d-%d", tt.wantWins, tt.wantLosses, stats.Wins, stats.Losses)
			}
		})
	}
}
