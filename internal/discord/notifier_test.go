package discord

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
)

type sentMessage struct {
	channelID string
	msg       *discordgo.MessageSend
}

// Mock MessageSender
type mockSender struct {
	sent []sentMessage
	err  error
}

func (m *mockSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.sent = append(m.sent, sentMessage{channelID: channelID, msg: data})
	if m.err != nil {
		return nil, m.err
	}
	return &discordgo.Message{ChannelID: channelID}, nil
}

func testVehicle() *gormModels.Vehicle {
	return &gormModels.Vehicle{
		SlipID:       "1234",
		UserID:       "111",
		GuildID:      "999",
		MakeModel:    "Nissan Skyline GT-R",
		Year:         "1999",
		EngineSpec:   "RB26DETT 600whp",
		Transmission: "6-Speed Manual",
		SteamID:      "76561198125412123",
		Status:       constants.VehicleStatusPending,
		CreatedAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func firstButtonIDs(t *testing.T, components []discordgo.MessageComponent) []string {
	t.Helper()
	if len(components) == 0 {
		t.Fatalf("Expected components, got none")
	}
	r, ok := components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("Expected an actions row, got %T", components[0])
	}
	var ids []string
	for _, c := range r.Components {
		if btn, ok := c.(discordgo.Button); ok {
			ids = append(ids, btn.CustomID)
		}
	}
	return ids
}

func TestNotifier_RequestReviewCarriesSlipID(t *testing.T) {
	sender := &mockSender{}
	n := NewNotifier(sender)

	if err := n.RequestReview(context.Background(), "review-chan", testVehicle()); err != nil {
		t.Fatalf("RequestReview failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].channelID != "review-chan" {
		t.Fatalf("Expected one message to review-chan, got %+v", sender.sent)
	}

	ids := firstButtonIDs(t, sender.sent[0].msg.Components)
	want := []string{"ps:approve:1234", "ps:deny:1234", "ps:info:1234"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("Expected buttons %v, got %v", want, ids)
	}
	if title := sender.sent[0].msg.Embeds[0].Title; title != "🔍 Registration Review Required" {
		t.Errorf("Unexpected title %q", title)
	}
}

func TestNotifier_DeniedIncludesReasonAndPingsSubmitter(t *testing.T) {
	sender := &mockSender{}
	n := NewNotifier(sender)

	if err := n.NotifyDenied(context.Background(), "notify-chan", testVehicle(), "555", "Invalid Steam ID"); err != nil {
		t.Fatalf("NotifyDenied failed: %v", err)
	}
	msg := sender.sent[0].msg
	if msg.Content != "<@111>" {
		t.Errorf("Expected submitter mention, got %q", msg.Content)
	}
	if len(msg.AllowedMentions.Users) != 1 || msg.AllowedMentions.Users[0] != "111" {
		t.Errorf("Expected only the submitter to be pingable, got %+v", msg.AllowedMentions)
	}

	var reason string
	for _, f := range msg.Embeds[0].Fields {
		if strings.Contains(f.Name, "Reason") {
			reason = f.Value
		}
	}
	if reason != "Invalid Steam ID" {
		t.Errorf("Expected reason field, got %q", reason)
	}
}

func TestNotifier_RequestConfirmation(t *testing.T) {
	sender := &mockSender{}
	n := NewNotifier(sender)

	claim := &gormModels.RaceClaim{
		ID:          "claim-1",
		InitiatorID: "111",
		OpponentID:  "222",
		Outcome:     constants.OutcomeWin,
		SlipID:      "1234",
		State:       constants.ClaimAwaitingOpponent,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}
	if err := n.RequestConfirmation(context.Background(), "chan", claim, testVehicle()); err != nil {
		t.Fatalf("RequestConfirmation failed: %v", err)
	}

	msg := sender.sent[0].msg
	if msg.Content != "<@222>" {
		t.Errorf("Expected opponent ping, got %q", msg.Content)
	}
	ids := firstButtonIDs(t, msg.Components)
	if len(ids) != 2 || ids[0] != "rc:confirm:claim-1" || ids[1] != "rc:dispute:claim-1" {
		t.Errorf("Unexpected confirmation buttons %v", ids)
	}
	if !strings.HasPrefix(msg.Embeds[0].Title, "🏆 Victory Claim") {
		t.Errorf("Expected victory claim title, got %q", msg.Embeds[0].Title)
	}
}

func TestNotifier_AnnounceLive(t *testing.T) {
	sender := &mockSender{}
	n := NewNotifier(sender)

	role := "777"
	target := gormModels.WatchTarget{ChannelID: "live-chan", TwitchUsername: "racer", RoleID: &role}
	user := providers.StreamUser{ID: "42", Login: "racer", DisplayName: "Racer", ProfileImageURL: "https://img/racer.png"}
	stream := providers.Stream{
		ID:           "s1",
		Title:        "Drift night",
		GameName:     "Assetto Corsa",
		ViewerCount:  12,
		StartedAt:    time.Unix(1717264800, 0).UTC(),
		ThumbnailURL: "https://thumb/{width}x{height}.jpg",
	}

	if err := n.AnnounceLive(context.Background(), target, user, stream); err != nil {
		t.Fatalf("AnnounceLive failed: %v", err)
	}

	msg := sender.sent[0].msg
	if sender.sent[0].channelID != "live-chan" {
		t.Errorf("Expected live-chan, got %s", sender.sent[0].channelID)
	}
	if msg.Content != "<@&777> **Racer** is now live! 🎮" {
		t.Errorf("Unexpected content %q", msg.Content)
	}
	if len(msg.AllowedMentions.Roles) != 1 || msg.AllowedMentions.Roles[0] != "777" {
		t.Errorf("Expected role ping allowed, got %+v", msg.AllowedMentions)
	}

	e := msg.Embeds[0]
	if e.Title != "🔴 Racer is now live on Twitch!" || e.Description != "Drift night" {
		t.Errorf("Unexpected embed %q / %q", e.Title, e.Description)
	}
	if e.URL != "https://twitch.tv/racer" {
		t.Errorf("Unexpected url %q", e.URL)
	}
	if e.Image == nil || e.Image.URL != "https://thumb/320x180.jpg" {
		t.Errorf("Unexpected thumbnail %+v", e.Image)
	}
	if e.Color != constants.ColorTwitch {
		t.Errorf("Expected twitch colour, got %x", e.Color)
	}
	if started := e.Fields[2].Value; started != "<t:1717264800:R>" {
		t.Errorf("Unexpected started field %q", started)
	}
}

func TestNotifier_WrapsSendError(t *testing.T) {
	boom := errors.New("missing access")
	n := NewNotifier(&mockSender{err: boom})

	err := n.NotifyExpired(context.Background(), "chan", &gormModels.RaceClaim{State: constants.ClaimTimedOut})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped send error, got %v", err)
	}
}
