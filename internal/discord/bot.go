package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	"github.com/pinkslip-racing/pinkslip/internal/services"
)

// handlerTimeout bounds the store and API work of one interaction. Discord
// drops responses sent after three seconds.
const handlerTimeout = 3 * time.Second

// Services are the workflows the chat surface drives
type Services struct {
	Registration *services.RegistrationService
	Races        *services.RaceService
	Admin        *services.AdminService
	Profiles     *services.ProfileService
	Twitch       *services.TwitchService
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

type commandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) error

type componentHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, id CustomID) error

// Bot owns the gateway session and routes interactions to the services
type Bot struct {
	session *discordgo.Session
	guildID string
	svc     Services
	metrics *metrics.MetricsRegistry

	commands   map[string]commandHandler
	components map[string]componentHandler
	modals     map[string]componentHandler
}

// NewSession creates the gateway session shared by the bot and the notifier
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// NewBot wires the handlers onto session. guildID scopes command
// registration to one guild; empty registers globally.
func NewBot(session *discordgo.Session, guildID string, svc Services, metricsReg *metrics.MetricsRegistry) *Bot {
	b := &Bot{
		session: session,
		guildID: guildID,
		svc:     svc,
		metrics: metricsReg,
	}

	b.commands = map[string]commandHandler{
		"pinkslip submit":         b.handleSubmit,
		"pinkslip setup":          b.handleSetup,
		"pinkslip view profile":   b.handleProfile,
		"pinkslip race result":    b.handleRaceResult,
		"pinkslip admin transfer": b.handleAdminTransfer,
		"pinkslip admin delete":   b.handleAdminDelete,
		"pinkslip admin stats":    b.handleAdminStats,
		"twitch setup":            b.handleTwitchSetup,
		"twitch add":              b.handleTwitchAdd,
		"twitch remove":           b.handleTwitchRemove,
		"twitch list":             b.handleTwitchList,
		"twitch settings":         b.handleTwitchSettings,
		"twitch disable":          b.handleTwitchDisable,
	}
	b.components = map[string]componentHandler{
		scopeRegistration + ":" + actionOpenForm:   b.handleOpenForm,
		scopeRegistration + ":" + actionCancelForm: b.handleCancelForm,
		scopeRegistration + ":" + actionApprove:    b.handleApprove,
		scopeRegistration + ":" + actionDeny:       b.handleDenyButton,
		scopeRegistration + ":" + actionInfo:       b.handleInfoButton,
		scopeRace + ":" + actionWin:                b.handleOutcome,
		scopeRace + ":" + actionLoss:               b.handleOutcome,
		scopeRace + ":" + actionPick:               b.handlePick,
		scopeRace + ":" + actionConfirm:            b.handleConfirm,
		scopeRace + ":" + actionDispute:            b.handleDispute,
		scopeProfile + ":" + actionVehicle:         b.handleProfileVehicle,
		scopeProfile + ":" + actionOverview:        b.handleProfileOverview,
		scopeTwitch + ":" + actionTwitchConfirm:    b.handleTwitchConfirm,
		scopeTwitch + ":" + actionTwitchCancel:     b.handleTwitchCancel,
	}
	b.modals = map[string]componentHandler{
		scopeRegistration + ":" + actionForm:       b.handleRegistrationForm,
		scopeRegistration + ":" + actionDenyReason: b.handleDenyReason,
		scopeRegistration + ":" + actionInfoText:   b.handleInfoText,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b
}

// Run opens the gateway, registers commands and blocks until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer b.session.Close()

	if err := b.registerCommands(); err != nil {
		return err
	}

	<-ctx.Done()
	logging.Info("Discord bot shutting down")
	return nil
}

func (b *Bot) registerCommands() error {
	appID := b.session.State.User.ID
	created, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, Commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	logging.Info("Registered application commands", "count", len(created), "guild_id", b.guildID)
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	logging.Info("Discord session ready",
		"user", r.User.Username,
		"guilds", len(r.Guilds),
	)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	kind, name, err := b.dispatch(ctx, s, i)
	outcome := "ok"
	if err != nil {
		outcome = b.reportError(s, i, name, err)
	}
	b.metrics.ObserveInteraction(kind, name, outcome, time.Since(started).Seconds())
}

// dispatch routes i to its handler and returns labels for metrics
func (b *Bot) dispatch(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) (string, string, error) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		path, opts := commandPath(i.ApplicationCommandData())
		h, ok := b.commands[path]
		if !ok {
			return "command", path, fmt.Errorf("unknown command %q", path)
		}
		return "command", path, h(ctx, s, i, opts)

	case discordgo.InteractionApplicationCommandAutocomplete:
		path, opts := commandPath(i.ApplicationCommandData())
		b.handleAutocomplete(ctx, s, i, opts)
		return "autocomplete", path, nil

	case discordgo.InteractionMessageComponent:
		id, err := ParseCustomID(i.MessageComponentData().CustomID)
		if err != nil {
			return "component", "invalid", err
		}
		h, ok := b.components[id.Route()]
		if !ok {
			return "component", id.Route(), fmt.Errorf("unknown component %q", id.Route())
		}
		return "component", id.Route(), h(ctx, s, i, id)

	case discordgo.InteractionModalSubmit:
		id, err := ParseCustomID(i.ModalSubmitData().CustomID)
		if err != nil {
			return "modal", "invalid", err
		}
		h, ok := b.modals[id.Route()]
		if !ok {
			return "modal", id.Route(), fmt.Errorf("unknown modal %q", id.Route())
		}
		return "modal", id.Route(), h(ctx, s, i, id)
	}
	return "unknown", i.Type.String(), nil
}

// reportError replies with copy for err. Expected errors are logged at
// warn, hard failures at error with the detail kept out of the reply.
func (b *Bot) reportError(s *discordgo.Session, i *discordgo.InteractionCreate, name string, err error) string {
	var userID string
	if u := invoker(i); u != nil {
		userID = u.ID
	}
	log := logging.WithInteraction(i.GuildID, userID, name)

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		log.Infow("Submission rejected", "problems", verr.Problems)
		respondEmbed(s, i, validationEmbed(verr), nil, true)
		return "rejected"
	}

	title, description, expected := userFacing(err)
	if expected {
		log.Warnw("Interaction rejected", "error", err)
		respondError(s, i, title, description)
		return "rejected"
	}
	log.Errorw("Interaction failed", "error", err)
	respondError(s, i, title, description)
	return "error"
}

// commandPath flattens subcommand groups into "pinkslip admin stats" and
// returns the leaf options by name.
func commandPath(data discordgo.ApplicationCommandInteractionData) (string, optionMap) {
	parts := []string{data.Name}
	options := data.Options
	for len(options) == 1 &&
		(options[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup ||
			options[0].Type == discordgo.ApplicationCommandOptionSubCommand) {
		parts = append(parts, options[0].Name)
		options = options[0].Options
	}

	opts := make(optionMap, len(options))
	for _, o := range options {
		opts[o.Name] = o
	}
	return strings.Join(parts, " "), opts
}
