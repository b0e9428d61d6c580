package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/constants"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

// resolvedUser returns the full user for a user option, falling back to
// an id-only user when the payload carried no resolved data.
func resolvedUser(i *discordgo.InteractionCreate, opt *discordgo.ApplicationCommandInteractionDataOption) *discordgo.User {
	u := opt.UserValue(nil)
	if data := i.ApplicationCommandData(); data.Resolved != nil {
		if full, ok := data.Resolved.Users[u.ID]; ok {
			return full
		}
	}
	return u
}

func (b *Bot) handleRaceResult(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error {
	opponent := resolvedUser(i, opts["opponent"])

	claim, err := b.svc.Races.Start(ctx, i.GuildID, i.ChannelID, invoker(i).ID, opponent.ID, opponent.Bot)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOpponent) {
			msg := constants.MsgSelfRace
			if opponent.Bot {
				msg = constants.MsgBotOpponent
			}
			return reject(constants.TitleInvalidOpponent, msg)
		}
		return err
	}
	respondEmbed(s, i, raceIntroEmbed(opponent.ID), outcomeComponents(claim.ID), true)
	return nil
}

// closeClaimMessage swaps the claim's message for its terminal embed when
// err reports the claim ended. It reports whether it responded.
func closeClaimMessage(s *discordgo.Session, i *discordgo.InteractionCreate, claim *gormModels.RaceClaim, err error) bool {
	if claim == nil || !claim.State.Terminal() {
		return false
	}
	if !errors.Is(err, services.ErrClaimExpired) && !errors.Is(err, services.ErrNoEligibleVehicle) {
		return false
	}
	updateMessage(s, i, claimResolvedEmbed(claim), nil)
	return true
}

func (b *Bot) handleOutcome(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	outcome := constants.OutcomeWin
	if id.Action == actionLoss {
		outcome = constants.OutcomeLoss
	}

	claim, pool, err := b.svc.Races.ClaimOutcome(ctx, id.Arg, invoker(i).ID, outcome)
	if err != nil {
		if closeClaimMessage(s, i, claim, err) {
			return nil
		}
		return err
	}
	updateMessage(s, i, vehiclePickEmbed(claim), vehiclePickComponents(claim.ID, pool))
	return nil
}

func (b *Bot) handlePick(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return fmt.Errorf("vehicle select for claim %s carried no value", id.Arg)
	}

	claim, v, err := b.svc.Races.ChooseVehicle(ctx, id.Arg, invoker(i).ID, values[0])
	if err != nil {
		if closeClaimMessage(s, i, claim, err) {
			return nil
		}
		return err
	}
	updateMessage(s, i, successEmbed("Confirmation Requested",
		fmt.Sprintf("**%s** is provisionally transferred to %s.\n\n%s has been asked to confirm the result.",
			v.DisplayName(), mention(claim.Winner()), mention(claim.OpponentID))), nil)
	return nil
}

func (b *Bot) handleConfirm(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	claim, err := b.svc.Races.Confirm(ctx, id.Arg, invoker(i).ID)
	return b.finishClaim(s, i, claim, err)
}

func (b *Bot) handleDispute(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error {
	claim, err := b.svc.Races.Dispute(ctx, id.Arg, invoker(i).ID)
	return b.finishClaim(s, i, claim, err)
}

// finishClaim renders the confirmation message in its terminal state.
// Rejections such as a third party pressing the button leave it untouched.
func (b *Bot) finishClaim(s *discordgo.Session, i *discordgo.InteractionCreate, claim *gormModels.RaceClaim, err error) error {
	if err != nil && !errors.Is(err, services.ErrClaimExpired) {
		return err
	}
	if claim == nil {
		return err
	}
	updateMessage(s, i, claimResolvedEmbed(claim), confirmationComponents(claim.ID, true))
	return nil
}
