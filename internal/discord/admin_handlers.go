package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

func (b *Bot) handleAdminTransfer(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if !memberHas(i, permAdministrator) {
		return reject(constants.TitleInsufficientPerms, constants.MsgAdminOnly)
	}
	slipID := opts["vehicle_id"].StringValue()
	newOwner := opts["new_owner"].UserValue(nil).ID

	v, err := b.svc.Admin.ForceTransfer(ctx, invoker(i).ID, i.GuildID, slipID, newOwner)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return reject(constants.TitleVehicleNotFound, fmt.Sprintf(constants.MsgVehicleNotFound, slipID))
	case errors.Is(err, repositories.ErrNoOp):
		return reject(constants.TitleTransferFailed, fmt.Sprintf(constants.MsgTransferNoOp, slipID, mention(newOwner)))
	case err != nil:
		return err
	}

	respondEmbed(s, i, successEmbed("Transfer Completed",
		fmt.Sprintf("Vehicle `%s` (%s) has been transferred to %s.", v.SlipID, v.DisplayName(), mention(newOwner))), nil, true)
	return nil
}

func (b *Bot) handleAdminDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if !memberHas(i, permAdministrator) {
		return reject(constants.TitleInsufficientPerms, constants.MsgAdminOnly)
	}
	slipID := opts["vehicle_id"].StringValue()

	v, err := b.svc.Admin.ForceDelete(ctx, invoker(i).ID, i.GuildID, slipID)
	if errors.Is(err, repositories.ErrNotFound) {
		return reject(constants.TitleVehicleNotFound, fmt.Sprintf(constants.MsgVehicleNotFound, slipID))
	}
	if err != nil {
		return err
	}

	respondEmbed(s, i, successEmbed("Vehicle Deleted",
		fmt.Sprintf("Vehicle `%s` (%s) has been permanently removed.", v.SlipID, v.DisplayName())), nil, true)
	return nil
}

func (b *Bot) handleAdminStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	if !memberHas(i, permAdministrator) {
		return reject(constants.TitleInsufficientPerms, constants.MsgAdminOnly)
	}
	member := opts["member"].UserValue(nil).ID
	op := services.StatOperation(opts["action"].StringValue())
	kind := constants.StatKind(opts["stat_type"].StringValue())
	amount := int(opts["amount"].IntValue())

	stats, err := b.svc.Admin.AdjustStats(ctx, invoker(i).ID, i.GuildID, member, op, kind, amount)
	if err != nil {
		return err
	}

	value := stats.Wins
	if kind == constants.StatLosses {
		value = stats.Losses
	}
	respondEmbed(s, i, successEmbed("Statistics Updated",
		fmt.Sprintf("%s's %s have been updated to **%d**.", mention(member), kind, value)), nil, true)
	return nil
}

// handleAutocomplete suggests vehicles for the focused vehicle_id option.
// Lookup failures answer with no choices.
func (b *Bot) handleAutocomplete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	var query string
	for _, o := range opts {
		if o.Focused && o.Name == "vehicle_id" {
			query = o.StringValue()
		}
	}

	vehicles, err := b.svc.Profiles.SearchVehicles(ctx, i.GuildID, query)
	if err != nil {
		logging.Warn("Vehicle autocomplete failed", "guild_id", i.GuildID, "error", err)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(vehicles))
	for _, v := range vehicles {
		if len(choices) == maxSelectOptions {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(fmt.Sprintf("%s - %s - Owner: %s", v.SlipID, v.DisplayName(), v.UserID), 100),
			Value: v.SlipID,
		})
	}
	respondChoices(s, i, choices)
}
