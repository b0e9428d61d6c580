package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/testutil"
)

func newVehicle(user, guild, makeModel, year string) *gormModels.Vehicle {
	return &gormModels.Vehicle{
		UserID:       user,
		GuildID:      guild,
		MakeModel:    makeModel,
		Year:         year,
		EngineSpec:   "2.0L Turbo I4",
		Transmission: "6-speed manual",
		SteamID:      "76561198000000001",
	}
}

func TestVehicleRepository_CreateAndGet(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	repo.randSuffix = func() int { return 1234 }
	ctx := context.Background()

	slipID, err := repo.Create(ctx, newVehicle("100", "200", "Nissan Skyline", "1999"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if slipID != "1534" {
		t.Errorf("Expected slip id 1534, got %s", slipID)
	}

	got, err := repo.GetBySlipID(ctx, slipID)
	if err != nil {
		t.Fatalf("GetBySlipID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected vehicle, got nil")
	}
	if got.Status != constants.VehicleStatusPending {
		t.Errorf("Expected pending status, got %s", got.Status)
	}
	if got.MakeModel != "Nissan Skyline" {
		t.Errorf("Expected make_model Nissan Skyline, got %s", got.MakeModel)
	}
}

func TestVehicleRepository_CreateDuplicate(t *testing.T) {
	database := testutil.SetupTestDB(t)
	repo := NewVehicleRepository(database)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newVehicle("100", "200", "Nissan Skyline", "1999")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := repo.Create(ctx, newVehicle("100", "200", "Nissan Skyline", "1999"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}

	var count int64
	database.Model(&gormModels.Vehicle{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 row after duplicate, got %d", count)
	}

	// same car in another guild is a different registration
	if _, err := repo.Create(ctx, newVehicle("100", "300", "Nissan Skyline", "1999")); err != nil {
		t.Errorf("Expected cross-guild create to succeed, got %v", err)
	}
}

func TestVehicleRepository_SlipIDProbing(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	suffixes := []int{1000, 1000, 1001}
	repo.randSuffix = func() int {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}

	first, err := repo.Create(ctx, newVehicle("1", "1", "Mazda RX-7", "1995"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx, newVehicle("1", "1", "Mazda RX-8", "2004"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first != "1002" || second != "1003" {
		t.Errorf("Expected 1002 and 1003, got %s and %s", first, second)
	}
}

func TestVehicleRepository_SlipIDExhausted(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	repo.randSuffix = func() int { return 1000 }
	ctx := context.Background()

	if _, err := repo.Create(ctx, newVehicle("1", "1", "Mazda RX-7", "1995")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := repo.Create(ctx, newVehicle("1", "1", "Mazda RX-8", "2004"))
	if err == nil {
		t.Fatal("Expected error when slip ids are exhausted")
	}
	if errors.Is(err, ErrDuplicate) {
		t.Errorf("Exhaustion must not be reported as a duplicate")
	}
}

func TestVehicleRepository_NonNumericIDs(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	repo.randSuffix = func() int { return 4321 }

	slipID, err := repo.Create(context.Background(), newVehicle("user-a", "guild-b", "Honda Civic", "2001"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if slipID != "user-a4321" {
		t.Errorf("Expected fallback slip id user-a4321, got %s", slipID)
	}
}

func TestVehicleRepository_GetMissing(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	got, err := repo.GetBySlipID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil vehicle, got %+v", got)
	}
}

func TestVehicleRepository_SetStatusBySlip(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	slipID, err := repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := repo.SetStatusBySlip(ctx, slipID, "200", constants.VehicleStatusPending, constants.VehicleStatusApproved)
	if err != nil || !ok {
		t.Fatalf("Expected approval to apply, got ok=%v err=%v", ok, err)
	}

	// second approval finds the row no longer pending
	ok, err = repo.SetStatusBySlip(ctx, slipID, "200", constants.VehicleStatusPending, constants.VehicleStatusApproved)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected stale approval to be rejected")
	}

	ok, _ = repo.SetStatusBySlip(ctx, slipID, "999", constants.VehicleStatusApproved, constants.VehicleStatusPending)
	if ok {
		t.Error("Expected guild mismatch to be rejected")
	}
}

func TestVehicleRepository_SetStatusByDetails(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := repo.SetStatus(ctx, "100", "200", "Toyota Supra", "1998", constants.VehicleStatusApproved)
	if err != nil || !ok {
		t.Fatalf("Expected status update, got ok=%v err=%v", ok, err)
	}
	ok, _ = repo.SetStatus(ctx, "100", "200", "Toyota Supra", "1997", constants.VehicleStatusApproved)
	if ok {
		t.Error("Expected no match for other year")
	}
}

func TestVehicleRepository_ListByOwner(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	first, _ := repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998"))
	second, _ := repo.Create(ctx, newVehicle("100", "200", "Honda NSX", "1991"))
	if _, err := repo.Create(ctx, newVehicle("101", "200", "Honda NSX", "1991")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.SetStatusBySlip(ctx, second, "200", constants.VehicleStatusPending, constants.VehicleStatusApproved); err != nil {
		t.Fatalf("SetStatusBySlip failed: %v", err)
	}

	all, err := repo.ListByOwner(ctx, "100", "200")
	if err != nil {
		t.Fatalf("ListByOwner failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 vehicles, got %d", len(all))
	}

	approved, err := repo.ListApprovedByOwner(ctx, "100", "200")
	if err != nil {
		t.Fatalf("ListApprovedByOwner failed: %v", err)
	}
	if len(approved) != 1 || approved[0].SlipID != second {
		t.Errorf("Expected only %s approved, got %+v", second, approved)
	}
	for _, v := range approved {
		if v.SlipID == first {
			t.Errorf("Pending vehicle %s must not be in the approved pool", first)
		}
	}
}

func TestVehicleRepository_SearchGuild(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998"))
	repo.Create(ctx, newVehicle("100", "200", "Honda NSX", "1991"))
	repo.Create(ctx, newVehicle("100", "300", "Toyota Chaser", "1996"))

	got, err := repo.SearchGuild(ctx, "200", "Toyota")
	if err != nil {
		t.Fatalf("SearchGuild failed: %v", err)
	}
	if len(got) != 1 || got[0].MakeModel != "Toyota Supra" {
		t.Errorf("Expected only Toyota Supra, got %+v", got)
	}
}

func TestVehicleRepository_Delete(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	slipID, _ := repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998"))
	repo.Create(ctx, newVehicle("100", "200", "Honda NSX", "1991"))

	if ok, _ := repo.DeleteBySlip(ctx, slipID, "999"); ok {
		t.Error("Expected delete in another guild to miss")
	}
	if ok, err := repo.DeleteBySlip(ctx, slipID, "200"); err != nil || !ok {
		t.Errorf("Expected delete by slip, got ok=%v err=%v", ok, err)
	}
	if ok, _ := repo.DeleteBySlip(ctx, slipID, "200"); ok {
		t.Error("Expected second delete to report false")
	}
	if ok, err := repo.DeleteByDetails(ctx, "100", "200", "Honda NSX", "1991"); err != nil || !ok {
		t.Errorf("Expected delete by details, got ok=%v err=%v", ok, err)
	}
}

func TestVehicleRepository_TransferOwnership(t *testing.T) {
	repo := NewVehicleRepository(testutil.SetupTestDB(t))
	ctx := context.Background()

	slipID, _ := repo.Create(ctx, newVehicle("100", "200", "Toyota Supra", "1998"))

	tests := []struct {
		name     string
		slipID   string
		newOwner string
		guildID  string
		want     bool
	}{
		{"Missing slip", "0", "101", "200", false},
		{"Guild mismatch", slipID, "101", "999", false},
		{"Same owner", slipID, "100", "200", false},
		{"Moves to new owner", slipID, "101", "200", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.TransferOwnership(ctx, tt.slipID, tt.newOwner, tt.guildID)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	v, _ := repo.GetBySlipID(ctx, slipID)
	if v.UserID != "101" {
		t.Errorf("Expected owner 101, got %s", v.UserID)
	}
}
