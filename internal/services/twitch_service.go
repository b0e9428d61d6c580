package services

import (
	"context"
	"strings"

	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
)

// TwitchOverview backs /twitch settings
type TwitchOverview struct {
	Settings *gormModels.TwitchSettings
	Watching int64
}

// TwitchService manages per-guild announcement settings and watched
// logins. provider may be nil when the bot runs without Twitch credentials;
// only Lookup needs it.
type TwitchService struct {
	repo     *repositories.TwitchRepository
	provider providers.StreamProvider
}

func NewTwitchService(repo *repositories.TwitchRepository, provider providers.StreamProvider) *TwitchService {
	return &TwitchService{repo: repo, provider: provider}
}

// NormalizeUsername lowercases a login and strips "@" and any twitch.tv
// url prefix, so "@Foo", "twitch.tv/foo" and "https://www.twitch.tv/foo"
// all become "foo".
func NormalizeUsername(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"https://", "http://", "www."} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, "twitch.tv/", "")
	s = strings.ReplaceAll(s, "@", "")
	return strings.Trim(s, "/ ")
}

// validLogin follows Twitch's login charset: 1-25 of [a-z0-9_]
func validLogin(login string) bool {
	if login == "" || len(login) > 25 {
		return false
	}
	for _, r := range login {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}

// Setup stores the announcement channel and optional ping role
func (s *TwitchService) Setup(ctx context.Context, actorID, guildID, channelID string, roleID *string) error {
	if err := s.repo.UpsertSettings(ctx, guildID, channelID, roleID); err != nil {
		return err
	}
	logging.Info("Twitch announcements configured",
		"guild_id", guildID,
		"actor_id", actorID,
		"channel_id", channelID,
	)
	return nil
}

// Lookup resolves a raw username to its Twitch profile so the caller can
// ask for confirmation. Nothing is stored.
func (s *TwitchService) Lookup(ctx context.Context, guildID, raw string) (*providers.StreamUser, error) {
	login := NormalizeUsername(raw)
	if !validLogin(login) {
		return nil, ErrInvalidUsername
	}
	if err := s.requireSettings(ctx, guildID); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, ErrTwitchUnavailable
	}

	watches, err := s.repo.ListWatches(ctx, guildID)
	if err != nil {
		return nil, err
	}
	for _, w := range watches {
		if w.TwitchUsername == login {
			return nil, repositories.ErrDuplicate
		}
	}

	user, err := s.provider.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrStreamerNotFound
	}
	return user, nil
}

// Add stores a watch for a login the caller already confirmed
func (s *TwitchService) Add(ctx context.Context, actorID, guildID, raw string) (string, error) {
	login := NormalizeUsername(raw)
	if !validLogin(login) {
		return "", ErrInvalidUsername
	}
	if err := s.requireSettings(ctx, guildID); err != nil {
		return "", err
	}
	if err := s.repo.AddWatch(ctx, guildID, login); err != nil {
		return "", err
	}
	logging.Info("Streamer watch added", "guild_id", guildID, "actor_id", actorID, "login", login)
	return login, nil
}

// Remove deletes a watch; false when the login was not watched
func (s *TwitchService) Remove(ctx context.Context, actorID, guildID, raw string) (string, bool, error) {
	login := NormalizeUsername(raw)
	removed, err := s.repo.RemoveWatch(ctx, guildID, login)
	if err != nil {
		return login, false, err
	}
	if removed {
		logging.Info("Streamer watch removed", "guild_id", guildID, "actor_id", actorID, "login", login)
	}
	return login, removed, nil
}

func (s *TwitchService) List(ctx context.Context, guildID string) ([]gormModels.StreamerWatch, error) {
	return s.repo.ListWatches(ctx, guildID)
}

// Overview returns ErrNotConfigured when setup never ran
func (s *TwitchService) Overview(ctx context.Context, guildID string) (*TwitchOverview, error) {
	settings, err := s.repo.GetSettings(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotConfigured
	}
	count, err := s.repo.CountWatches(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return &TwitchOverview{Settings: settings, Watching: count}, nil
}

// Disable removes the settings and every watch of the guild. It returns
// false when announcements were never enabled.
func (s *TwitchService) Disable(ctx context.Context, actorID, guildID string) (bool, error) {
	existed, err := s.repo.DisableGuild(ctx, guildID)
	if err != nil {
		return false, err
	}
	if existed {
		logging.Info("Twitch announcements disabled", "guild_id", guildID, "actor_id", actorID)
	}
	return existed, nil
}

func (s *TwitchService) requireSettings(ctx context.Context, guildID string) error {
	settings, err := s.repo.GetSettings(ctx, guildID)
	if err != nil {
		return err
	}
	if settings == nil {
		return ErrNotConfigured
	}
	return nil
}
