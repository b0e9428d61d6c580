package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pinkslip-racing/pinkslip/internal/constants"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
)

// RegistrationNotifier posts review traffic to guild channels. Failures
// are logged by the caller and never undo the store mutation.
type RegistrationNotifier interface {
	RequestReview(ctx context.Context, channelID string, v *gormModels.Vehicle) error
	NotifyApproved(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID string) error
	NotifyDenied(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID, reason string) error
	NotifyInfoRequested(ctx context.Context, channelID string, v *gormModels.Vehicle, staffID, message string) error
}

// RegistrationService drives submission and staff review of vehicles
type RegistrationService struct {
	vehicles *repositories.VehicleRepository
	settings *repositories.SettingsRepository
	notifier RegistrationNotifier
	metrics  *metrics.MetricsRegistry
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	vehicles *repositories.VehicleRepository,
	settings *repositories.SettingsRepository,
	notifier RegistrationNotifier,
	metricsReg *metrics.MetricsRegistry,
) *RegistrationService {
	return &RegistrationService{
		vehicles: vehicles,
		settings: settings,
		notifier: notifier,
		metrics:  metricsReg,
	}
}

// Submit validates the form and stores a pending registration. Invalid
// forms return *ValidationError and duplicates repositories.ErrDuplicate;
// neither creates a row.
func (s *RegistrationService) Submit(ctx context.Context, userID, guildID string, form RegistrationForm) (*gormModels.Vehicle, error) {
	clean, err := ValidateForm(form)
	if err != nil {
		s.metrics.ObserveRegistration("invalid")
		return nil, err
	}

	v := &gormModels.Vehicle{
		UserID:       userID,
		GuildID:      guildID,
		MakeModel:    clean.MakeModel,
		Year:         clean.Year,
		EngineSpec:   clean.EngineSpec,
		Transmission: clean.Transmission,
		SteamID:      clean.SteamID,
	}
	if _, err := s.vehicles.Create(ctx, v); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			s.metrics.ObserveRegistration("duplicate")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	s.metrics.ObserveRegistration("submitted")

	logging.Info("Registration submitted",
		"guild_id", guildID,
		"user_id", userID,
		"slip_id", v.SlipID,
	)

	channelID, err := s.channel(ctx, guildID, func(gs *gormModels.GuildSettings) string { return gs.ReviewChannelID })
	if err != nil {
		logging.Error("Settings lookup failed, review request skipped", "guild_id", guildID, "error", err)
		return v, nil
	}
	if channelID == "" {
		logging.Warn("No review channel configured, review request skipped", "guild_id", guildID, "slip_id", v.SlipID)
		return v, nil
	}
	if err := s.notifier.RequestReview(ctx, channelID, v); err != nil {
		logging.Error("Failed to post review request", "guild_id", guildID, "slip_id", v.SlipID, "error", err)
	}
	return v, nil
}

// Approve moves a pending registration to approved.
func (s *RegistrationService) Approve(ctx context.Context, staffID, guildID, slipID string) (*gormModels.Vehicle, error) {
	v, err := s.pendingTarget(ctx, guildID, slipID)
	if err != nil {
		return nil, err
	}

	ok, err := s.vehicles.SetStatusBySlip(ctx, slipID, guildID, constants.VehicleStatusPending, constants.VehicleStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to approve registration: %w", err)
	}
	if !ok {
		// another reviewer got there first
		return nil, ErrReviewDesync
	}
	v.Status = constants.VehicleStatusApproved
	s.metrics.ObserveRegistration("approved")

	logging.Info("Registration approved", "guild_id", guildID, "staff_id", staffID, "slip_id", slipID, "user_id", v.UserID)

	s.notify(ctx, guildID, slipID, func(channelID string) error {
		return s.notifier.NotifyApproved(ctx, channelID, v, staffID)
	})
	return v, nil
}

// Deny deletes a pending registration. reason must be non-empty.
func (s *RegistrationService) Deny(ctx context.Context, staffID, guildID, slipID, reason string) (*gormModels.Vehicle, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	v, err := s.pendingTarget(ctx, guildID, slipID)
	if err != nil {
		return nil, err
	}

	ok, err := s.vehicles.DeleteBySlip(ctx, slipID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to deny registration: %w", err)
	}
	if !ok {
		return nil, ErrReviewDesync
	}
	s.metrics.ObserveRegistration("denied")

	logging.Info("Registration denied", "guild_id", guildID, "staff_id", staffID, "slip_id", slipID, "user_id", v.UserID)

	s.notify(ctx, guildID, slipID, func(channelID string) error {
		return s.notifier.NotifyDenied(ctx, channelID, v, staffID, reason)
	})
	return v, nil
}

// RequestInfo pings the submitter without touching the registration.
func (s *RegistrationService) RequestInfo(ctx context.Context, staffID, guildID, slipID, message string) (*gormModels.Vehicle, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrReasonRequired
	}

	v, err := s.pendingTarget(ctx, guildID, slipID)
	if err != nil {
		return nil, err
	}

	logging.Info("More information requested", "guild_id", guildID, "staff_id", staffID, "slip_id", slipID)

	s.notify(ctx, guildID, slipID, func(channelID string) error {
		return s.notifier.NotifyInfoRequested(ctx, channelID, v, staffID, message)
	})
	return v, nil
}

// pendingTarget re-reads the registration a review button points at.
func (s *RegistrationService) pendingTarget(ctx context.Context, guildID, slipID string) (*gormModels.Vehicle, error) {
	v, err := s.vehicles.GetBySlipID(ctx, slipID)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}
	if v == nil || v.GuildID != guildID || v.Status != constants.VehicleStatusPending {
		logging.Warn("Review action does not match a pending registration", "guild_id", guildID, "slip_id", slipID)
		return nil, ErrReviewDesync
	}
	return v, nil
}

func (s *RegistrationService) channel(ctx context.Context, guildID string, pick func(*gormModels.GuildSettings) string) (string, error) {
	gs, err := s.settings.Get(ctx, guildID)
	if err != nil {
		return "", err
	}
	if gs == nil {
		return "", nil
	}
	return pick(gs), nil
}

// notify posts to the notification channel, skipping when none is set.
func (s *RegistrationService) notify(ctx context.Context, guildID, slipID string, send func(channelID string) error) {
	channelID, err := s.channel(ctx, guildID, func(gs *gormModels.GuildSettings) string { return gs.NotificationChannelID })
	if err != nil {
		logging.Error("Settings lookup failed, notification skipped", "guild_id", guildID, "error", err)
		return
	}
	if channelID == "" {
		logging.Warn("No notification channel configured, notification skipped", "guild_id", guildID, "slip_id", slipID)
		return
	}
	if err := send(channelID); err != nil {
		logging.Error("Failed to post notification", "guild_id", guildID, "slip_id", slipID, "error", err)
	}
}

// Setup stores the review and notification channels for a guild
func (s *RegistrationService) Setup(ctx context.Context, staffID, guildID, reviewChannelID, notificationChannelID string) error {
	if err := s.settings.Upsert(ctx, guildID, reviewChannelID, notificationChannelID); err != nil {
		return err
	}
	logging.Info("Guild channels configured",
		"guild_id", guildID,
		"staff_id", staffID,
		"review_channel_id", reviewChannelID,
		"notification_channel_id", notificationChannelID,
	)
	return nil
}
