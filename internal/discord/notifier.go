package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
)

// MessageSender is the slice of *discordgo.Session the notifier needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts workflow traffic to guild channels. It satisfies
// services.RegistrationNotifier, services.RaceNotifier and
// workers.Announcer.
type Notifier struct {
	sender MessageSender
}

func NewNotifier(sender MessageSender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) send(ctx context.Context, channelID string, msg *discordgo.MessageSend) error {
	if _, err := n.sender.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

// userPing mentions userID and lets only that user be pinged
func userPing(userID string) *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{},
		Users: []string{userID},
	}
}

func (n *Notifier) RequestReview(ctx context.Context, channelID string, v *gormModels.Vehicle) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{reviewRequestEmbed(v)},
		Components:      reviewComponents(v.SlipID, false),
		AllowedMentions: noPings(),
	})
}

func (n *Notifier) NotifyApproved(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID string) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Content:         mention(v.UserID),
		Embeds:          []*discordgo.MessageEmbed{approvedEmbed(v, staffID)},
		AllowedMentions: userPing(v.UserID),
	})
}

func (n *Notifier) NotifyDenied(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID, reason string) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Content:         mention(v.UserID),
		Embeds:          []*discordgo.MessageEmbed{deniedEmbed(v, staffID, reason)},
		AllowedMentions: userPing(v.UserID),
	})
}

func (n *Notifier) NotifyInfoRequested(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID, message string) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Content:         mention(v.UserID),
		Embeds:          []*discordgo.MessageEmbed{infoRequestedEmbed(v, staffID, message)},
		AllowedMentions: userPing(v.UserID),
	})
}

// RequestConfirmation pings the opponent with Confirm and Dispute buttons
func (n *Notifier) RequestConfirmation(ctx context.Context, channelID string, claim *gormModels.RaceClaim, v *gormModels.Vehicle) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Content:         mention(claim.OpponentID),
		Embeds:          []*discordgo.MessageEmbed{confirmationEmbed(claim, v)},
		Components:      confirmationComponents(claim.ID, false),
		AllowedMentions: userPing(claim.OpponentID),
	})
}

func (n *Notifier) NotifyExpired(ctx context.Context, channelID string, claim *gormModels.RaceClaim) error {
	return n.send(ctx, channelID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{claimResolvedEmbed(claim)},
		AllowedMentions: noPings(),
	})
}

func (n *Notifier) AnnounceLive(ctx context.Context, target gormModels.WatchTarget, user providers.StreamUser, stream providers.Stream) error {
	return n.send(ctx, target.ChannelID, liveMessage(target, user, stream))
}
