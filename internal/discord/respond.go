package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
)

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, resp *discordgo.InteractionResponse) {
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		logging.Error("Failed to respond to interaction",
			"guild_id", i.GuildID,
			"interaction_type", i.Type.String(),
			"response_type", resp.Type,
			"error", err,
		)
	}
}

// respondEmbed sends a new message carrying embed and optional components
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		// replies never ping anyone
		AllowedMentions: noPings(),
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, title, description string) {
	respondEmbed(s, i, errorEmbed(title, description), nil, true)
}

// updateMessage rewrites the message a component belongs to
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

func respondModal(s *discordgo.Session, i *discordgo.InteractionCreate, modal *discordgo.InteractionResponseData) {
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	})
}

func respondChoices(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

// invoker returns the user behind an interaction in a guild or a DM
func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
