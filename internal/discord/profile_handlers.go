package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
)

func (b *Bot) handleProfile(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	targetID := invoker(i).ID
	if opt, ok := opts["member"]; ok {
		targetID = opt.UserValue(nil).ID
	}

	p, err := b.svc.Profiles.Profile(ctx, targetID, i.GuildID)
	if err != nil {
		return err
	}
	if len(p.Vehicles) == 0 {
		respondEmbed(s, i, infoEmbed(constants.TitleNoRegistrationFound,
			fmt.Sprintf(constants.MsgNoRegistrations, mention(targetID))), nil, true)
		return nil
	}
	respondEmbed(s, i, profileEmbed(p), profileComponents(targetID, p.Vehicles), false)
	return nil
}

func (b *Bot) handleProfileVehicle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("profile select carried no value")
	}

	v, err := b.svc.Profiles.Vehicle(ctx, i.GuildID, values[0])
	if errors.Is(err, repositories.ErrNotFound) {
		return reject(constants.TitleVehicleNotFound, fmt.Sprintf(constants.MsgVehicleNotFound, values[0]))
	}
	if err != nil {
		return err
	}
	updateMessage(s, i, vehicleDetailEmbed(v), backToProfileComponents(id.Arg))
	return nil
}

func (b *Bot) handleProfileOverview(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	p, err := b.svc.Profiles.Profile(ctx, id.Arg, i.GuildID)
	if err != nil {
		return err
	}
	updateMessage(s, i, profileEmbed(p), profileComponents(id.Arg, p.Vehicles))
	return nil
}
