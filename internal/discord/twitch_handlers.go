package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

func requireManageServer(i *discordgo.InteractionCreate) error {
	if !memberHas(i, permManageServer) {
		return reject(constants.TitleInsufficientPerms, constants.MsgManageServerOnly)
	}
	return nil
}

func (b *Bot) handleTwitchSetup(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if err := requireManageServer(i); err != nil {
		return err
	}
	channelID := opts["channel"].ChannelValue(nil).ID

	var roleID *string
	if opt, ok := opts["role"]; ok {
		id := opt.RoleValue(nil, i.GuildID).ID
		roleID = &id
	}

	missing, err := missingPostPermissions(s, channelID)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return reject(constants.TitleInsufficientPerms, fmt.Sprintf(constants.MsgMissingPermissions, strings.Join(missing, ", ")))
	}

	if err := b.svc.Twitch.Setup(ctx, invoker(i).ID, i.GuildID, channelID, roleID); err != nil {
		return err
	}

	role := "None"
	if roleID != nil {
		role = roleMention(*roleID)
	}
	respondEmbed(s, i, successEmbed("Twitch Announcements Configured",
		fmt.Sprintf("**Channel:** %s\n**Ping Role:** %s\n\nAdd streamers with `/twitch add`.", channelMention(channelID), role)), nil, true)
	return nil
}

func (b *Bot) handleTwitchAdd(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if err := requireManageServer(i); err != nil {
		return err
	}
	raw := opts["username"].StringValue()

	user, err := b.svc.Twitch.Lookup(ctx, i.GuildID, raw)
	if err != nil {
		return twitchRejection(err, services.NormalizeUsername(raw))
	}
	respondEmbed(s, i, twitchConfirmEmbed(user), twitchConfirmComponents(user.Login, false), true)
	return nil
}

// twitchRejection maps watch-list errors to copy naming the login
func twitchRejection(err error, login string) error {
	switch {
	case errors.Is(err, services.ErrNotConfigured):
		return reject(constants.TitleNotConfigured, constants.MsgTwitchNotSetup)
	case errors.Is(err, repositories.ErrDuplicate):
		return reject(constants.TitleAlreadyWatching, fmt.Sprintf(constants.MsgAlreadyWatching, login))
	case errors.Is(err, services.ErrStreamerNotFound):
		return reject(constants.TitleStreamerNotFound, fmt.Sprintf(constants.MsgStreamerNotFound, login))
	}
	return err
}

func (b *Bot) handleTwitchConfirm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	if err := requireManageServer(i); err != nil {
		return err
	}
	login, err := b.svc.Twitch.Add(ctx, invoker(i).ID, i.GuildID, id.Arg)
	if err != nil {
		return twitchRejection(err, id.Arg)
	}
	updateMessage(s, i, successEmbed("Streamer Added",
		fmt.Sprintf("Now watching [%s](https://twitch.tv/%s). Live announcements will be posted automatically.", login, login)),
		twitchConfirmComponents(login, true))
	return nil
}

func (b *Bot) handleTwitchCancel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	updateMessage(s, i, infoEmbed("Cancelled", fmt.Sprintf("`%s` was not added.", id.Arg)), nil)
	return nil
}

func (b *Bot) handleTwitchRemove(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if err := requireManageServer(i); err != nil {
		return err
	}
	login, removed, err := b.svc.Twitch.Remove(ctx, invoker(i).ID, i.GuildID, opts["username"].StringValue())
	if err != nil {
		return err
	}
	if !removed {
		return reject(constants.TitleStreamerNotFound, fmt.Sprintf("`%s` is not on the watch list.", login))
	}
	respondEmbed(s, i, successEmbed("Streamer Removed", fmt.Sprintf("Stopped watching `%s`.", login)), nil, true)
	return nil
}

func (b *Bot) handleTwitchList(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	watches, err := b.svc.Twitch.List(ctx, i.GuildID)
	if err != nil {
		return err
	}
	respondEmbed(s, i, twitchListEmbed(watches), nil, true)
	return nil
}

func (b *Bot) handleTwitchSettings(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	overview, err := b.svc.Twitch.Overview(ctx, i.GuildID)
	if errors.Is(err, services.ErrNotConfigured) {
		return reject(constants.TitleNotConfigured, constants.MsgTwitchNotSetup)
	}
	if err != nil {
		return err
	}
	respondEmbed(s, i, twitchSettingsEmbed(overview), nil, true)
	return nil
}

func (b *Bot) handleTwitchDisable(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if err := requireManageServer(i); err != nil {
		return err
	}
	existed, err := b.svc.Twitch.Disable(ctx, invoker(i).ID, i.GuildID)
	if err != nil {
		return err
	}
	if !existed {
		respondEmbed(s, i, infoEmbed("Nothing to Disable", "Twitch announcements are not configured for this server."), nil, true)
		return nil
	}
	respondEmbed(s, i, successEmbed("Twitch Announcements Disabled",
		"Settings and every watched streamer have been removed."), nil, true)
	return nil
}
