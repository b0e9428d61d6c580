package discord

import "github.com/bwmarrin/discordgo"

var (
	guildOnly = false
	minAmount = 1.0
)

func vehicleIDOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         "vehicle_id",
		Description:  description,
		Required:     true,
		Autocomplete: true,
	}
}

func textChannelOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     true,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

// Commands returns the application commands the bot registers. Per-subcommand
// permissions cannot be set on Discord, so admin and manage-server gates
// are re-checked by the handlers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:         "pinkslip",
			Description:  "Vehicle registration and race tracking",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "submit",
					Description: "Submit a new vehicle registration for review",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Configure review and notification channels",
					Options: []*discordgo.ApplicationCommandOption{
						textChannelOption("review_channel", "Channel where staff review pending registrations"),
						textChannelOption("notification_channel", "Channel for public approval and denial notices"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "view",
					Description: "View registrations and racing statistics",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "profile",
							Description: "View a member's vehicles and race record",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "member",
									Description: "The member to view (defaults to yourself)",
								},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "race",
					Description: "Record race results and vehicle transfers",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "result",
							Description: "Record a race result against another member",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "opponent",
									Description: "The member you raced against",
									Required:    true,
								},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Name:        "admin",
					Description: "Administrative management tools",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "transfer",
							Description: "Transfer vehicle ownership",
							Options: []*discordgo.ApplicationCommandOption{
								vehicleIDOption("Vehicle registration ID"),
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "new_owner",
									Description: "New owner of the vehicle",
									Required:    true,
								},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "delete",
							Description: "Permanently delete a vehicle registration",
							Options: []*discordgo.ApplicationCommandOption{
								vehicleIDOption("Vehicle registration ID to delete"),
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "stats",
							Description: "Modify a member's race statistics",
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionUser,
									Name:        "member",
									Description: "Member to modify statistics for",
									Required:    true,
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "action",
									Description: "Add to or subtract from the stat",
									Required:    true,
									Choices: []*discordgo.ApplicationCommandOptionChoice{
										{Name: "add", Value: "add"},
										{Name: "subtract", Value: "subtract"},
									},
								},
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "stat_type",
									Description: "Which statistic to modify",
									Required:    true,
									Choices: []*discordgo.ApplicationCommandOptionChoice{
										{Name: "wins", Value: "wins"},
										{Name: "losses", Value: "losses"},
									},
								},
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "amount",
									Description: "Amount to change (positive number)",
									Required:    true,
									MinValue:    &minAmount,
								},
							},
						},
					},
				},
			},
		},
		{
			Name:         "twitch",
			Description:  "Twitch live announcements",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup",
					Description: "Set the announcement channel and optional ping role",
					Options: []*discordgo.ApplicationCommandOption{
						textChannelOption("channel", "Channel where live announcements are posted"),
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to ping when a streamer goes live",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Watch a Twitch streamer",
					Options: []*discordgo.ApplicationCommandOption{
						twitchUsernameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Stop watching a Twitch streamer",
					Options: []*discordgo.ApplicationCommandOption{
						twitchUsernameOption(),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List watched streamers",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "settings",
					Description: "Show the Twitch announcement settings",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "disable",
					Description: "Remove Twitch settings and every watched streamer",
				},
			},
		},
	}
}

func twitchUsernameOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "username",
		Description: "Twitch username or channel link",
		Required:    true,
		MaxLength:   100,
	}
}
