package discord

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

func TestValidationEmbedListsEveryProblem(t *testing.T) {
	_, err := services.ValidateForm(services.RegistrationForm{
		MakeModel:    "12",
		Year:         "1980",
		EngineSpec:   "V8",
		Transmission: "6",
		SteamID:      "123",
	})
	verr, ok := err.(*services.ValidationError)
	if !ok {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}

	e := validationEmbed(verr)
	if got := strings.Count(e.Description, "▫️"); got != 5 {
		t.Errorf("Expected 5 itemised problems, got %d in %q", got, e.Description)
	}
	if e.Color != constants.ColorDenied {
		t.Errorf("Expected error colour, got %x", e.Color)
	}
}

func TestProfileEmbed(t *testing.T) {
	older := *testVehicle()
	newer := *testVehicle()
	newer.SlipID = "5678"
	newer.MakeModel = "Toyota Supra"
	newer.Status = constants.VehicleStatusApproved
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)

	p := &services.Profile{
		UserID:   "111",
		Wins:     12,
		Losses:   3,
		Record:   services.FormatStats(12, 3),
		Approved: 1,
		Pending:  1,
		Vehicles: []gormModels.Vehicle{older, newer},
	}
	e := profileEmbed(p)

	if !strings.Contains(e.Description, "Veteran") {
		t.Errorf("Expected veteran rank, got %q", e.Description)
	}
	if e.Fields[1].Value != "12W-3L (80.0%)" {
		t.Errorf("Unexpected record %q", e.Fields[1].Value)
	}
	latest := e.Fields[len(e.Fields)-1]
	if !strings.Contains(latest.Value, "5678") || !strings.HasPrefix(latest.Value, "✅") {
		t.Errorf("Expected the newest approved vehicle as latest, got %q", latest.Value)
	}
}

func TestRankFor(t *testing.T) {
	tests := []struct {
		wins int
		want string
	}{
		{0, "🚦 Rookie"},
		{1, "🥉 Contender"},
		{10, "🥈 Veteran"},
		{25, "🥇 Champion"},
		{50, "🏆 Legend"},
	}
	for _, tt := range tests {
		if got := rankFor(tt.wins); got != tt.want {
			t.Errorf("rankFor(%d) = %q, want %q", tt.wins, got, tt.want)
		}
	}
}

func TestClaimResolvedEmbed(t *testing.T) {
	claim := &gormModels.RaceClaim{
		InitiatorID: "111",
		OpponentID:  "222",
		Outcome:     constants.OutcomeLoss,
		SlipID:      "1234",
	}

	tests := []struct {
		state constants.ClaimState
		want  string
	}{
		{constants.ClaimConfirmed, "Race Result Confirmed"},
		{constants.ClaimDisputed, "Race Result Disputed"},
		{constants.ClaimTimedOut, constants.TitleClaimExpired},
		{constants.ClaimAborted, constants.TitleNoEligibleVehicle},
	}
	for _, tt := range tests {
		claim.State = tt.state
		e := claimResolvedEmbed(claim)
		if !strings.Contains(e.Title, tt.want) {
			t.Errorf("State %s: expected title containing %q, got %q", tt.state, tt.want, e.Title)
		}
	}

	// a loss claim hands the vehicle to the opponent
	claim.State = constants.ClaimConfirmed
	if e := claimResolvedEmbed(claim); !strings.Contains(e.Description, "now belongs to <@222>") {
		t.Errorf("Expected opponent as new owner, got %q", e.Description)
	}
}

func TestTwitchListEmbed(t *testing.T) {
	e := twitchListEmbed([]gormModels.StreamerWatch{
		{TwitchUsername: "racer", IsLive: true},
		{TwitchUsername: "drifter"},
	})
	lines := strings.Split(strings.TrimSpace(e.Description), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %q", e.Description)
	}
	if !strings.HasPrefix(lines[0], "🔴") || !strings.HasPrefix(lines[1], "⚫") {
		t.Errorf("Unexpected live markers %q", lines)
	}

	if empty := twitchListEmbed(nil); !strings.Contains(empty.Description, "/twitch add") {
		t.Errorf("Expected hint on empty list, got %q", empty.Description)
	}
}

func TestVehicleOptionsCapsAtSelectLimit(t *testing.T) {
	vehicles := make([]gormModels.Vehicle, 30)
	for i := range vehicles {
		vehicles[i] = *testVehicle()
	}
	if got := len(vehicleOptions(vehicles)); got != maxSelectOptions {
		t.Errorf("Expected %d options, got %d", maxSelectOptions, got)
	}
}

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "ps:form",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: fieldMakeModel, Value: "Ford Mustang GT"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: fieldYear, Value: "2023"},
			}},
		},
	}
	values := modalValues(data)
	if values[fieldMakeModel] != "Ford Mustang GT" || values[fieldYear] != "2023" {
		t.Errorf("Unexpected values %v", values)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("Expected untouched string, got %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("Expected abcd…, got %q", got)
	}
}
