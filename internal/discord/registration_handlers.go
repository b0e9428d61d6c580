package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

func (b *Bot) handleSubmit(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	respondEmbed(s, i, submissionIntroEmbed(), submissionIntroComponents(), true)
	return nil
}

func (b *Bot) handleSetup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if !memberHas(i, permAdministrator) {
		return reject(constants.TitleInsufficientPerms, constants.MsgAdminOnly)
	}

	review := opts["review_channel"].ChannelValue(nil).ID
	notify := opts["notification_channel"].ChannelValue(nil).ID

	missing, err := missingPostPermissions(s, review, notify)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return reject(constants.TitleInsufficientPerms, fmt.Sprintf(constants.MsgMissingPermissions, strings.Join(missing, ", ")))
	}

	if err := b.svc.Registration.Setup(ctx, invoker(i).ID, i.GuildID, review, notify); err != nil {
		return err
	}
	respondEmbed(s, i, successEmbed("System Configuration Complete",
		fmt.Sprintf("**Review Channel:** %s\n**Notification Channel:** %s\n\nThe registration system is now ready for use.",
			channelMention(review), channelMention(notify))), nil, true)
	return nil
}

func (b *Bot) handleOpenForm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	respondModal(s, i, registrationModal())
	return nil
}

func (b *Bot) handleCancelForm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	updateMessage(s, i, infoEmbed("Registration Cancelled", "No registration was submitted."), nil)
	return nil
}

func (b *Bot) handleRegistrationForm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	values := modalValues(i.ModalSubmitData())
	form := services.RegistrationForm{
		MakeModel:    values[fieldMakeModel],
		Year:         values[fieldYear],
		EngineSpec:   values[fieldEngineSpec],
		Transmission: values[fieldTransmission],
		SteamID:      values[fieldSteamID],
	}

	v, err := b.svc.Registration.Submit(ctx, invoker(i).ID, i.GuildID, form)
	if err != nil {
		return err
	}
	respondEmbed(s, i, submittedEmbed(v), nil, true)
	return nil
}

func (b *Bot) handleApprove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	staffID := invoker(i).ID
	v, err := b.svc.Registration.Approve(ctx, staffID, i.GuildID, id.Arg)
	if err != nil {
		return err
	}
	updateMessage(s, i, reviewedEmbed(v, staffID, "Approved", constants.ColorApproved), reviewComponents(v.SlipID, true))
	return nil
}

func (b *Bot) handleDenyButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	respondModal(s, i, denyModal(id.Arg))
	return nil
}

func (b *Bot) handleDenyReason(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	staffID := invoker(i).ID
	reason := modalValues(i.ModalSubmitData())[fieldReason]

	v, err := b.svc.Registration.Deny(ctx, staffID, i.GuildID, id.Arg, reason)
	if err != nil {
		return err
	}

	e := reviewedEmbed(v, staffID, "Denied", constants.ColorDenied)
	e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "📝 Reason", Value: strings.TrimSpace(reason)})
	updateMessage(s, i, e, reviewComponents(v.SlipID, true))
	return nil
}

func (b *Bot) handleInfoButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	respondModal(s, i, infoModal(id.Arg))
	return nil
}

func (b *Bot) handleInfoText(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	message := modalValues(i.ModalSubmitData())[fieldMessage]
	v, err := b.svc.Registration.RequestInfo(ctx, invoker(i).ID, i.GuildID, id.Arg, message)
	if err != nil {
		return err
	}
	respondEmbed(s, i, successEmbed("Request Sent",
		fmt.Sprintf("%s has been asked for more information about `%s`.", mention(v.UserID), v.SlipID)), nil, true)
	return nil
}
