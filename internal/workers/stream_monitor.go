package workers

import (
	"context"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	gormModels "github.com/pinkslip-racing/pinkslip/internal/models/gorm"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
)

// Announcer posts a go-live message to a target's channel
type Announcer interface {
	AnnounceLive(ctx context.Context, target gormModels.WatchTarget, user providers.StreamUser, stream providers.Stream) error
}

// PollStats summarises one monitor pass
type PollStats struct {
	Checked     int
	Announced   int
	WentOffline int
	Skipped     int
}

// StreamMonitor polls every watched login and announces offline to live
// edges. The persisted is_live flag and last stream id make repeated
// polls of the same broadcast a no-op.
type StreamMonitor struct {
	repo      *repositories.TwitchRepository
	provider  providers.StreamProvider
	announcer Announcer
	metrics   *metrics.MetricsRegistry
}

// NewStreamMonitor creates a new live-stream monitor
func NewStreamMonitor(repo *repositories.TwitchRepository, provider providers.StreamProvider, announcer Announcer, metricsReg *metrics.MetricsRegistry) *StreamMonitor {
	return &StreamMonitor{
		repo:      repo,
		provider:  provider,
		announcer: announcer,
		metrics:   metricsReg,
	}
}

// Start polls immediately and then every interval until ctx is cancelled
func (m *StreamMonitor) Start(ctx context.Context, interval time.Duration) {
	logging.Info("Stream monitor starting", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.run(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Stream monitor shutting down")
			return
		case <-ticker.C:
			m.run(ctx)
		}
	}
}

func (m *StreamMonitor) run(ctx context.Context) {
	started := time.Now()
	stats, err := m.Poll(ctx)
	m.metrics.ObserveWorkerRun("stream_monitor", time.Since(started).Seconds())
	if err != nil {
		logging.Error("Stream monitor pass failed", "error", err)
		return
	}
	if stats.Announced > 0 || stats.WentOffline > 0 || stats.Skipped > 0 {
		logging.Info("Stream monitor pass complete",
			"checked", stats.Checked,
			"announced", stats.Announced,
			"went_offline", stats.WentOffline,
			"skipped", stats.Skipped,
		)
	}
}

// Poll checks every watch once. Per-streamer failures are logged and
// counted as skipped; only a failure to list the watches is returned.
func (m *StreamMonitor) Poll(ctx context.Context) (PollStats, error) {
	var stats PollStats

	targets, err := m.repo.ListTargets(ctx)
	if err != nil {
		return stats, err
	}

	for _, target := range targets {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		stats.Checked++

		switch outcome := m.check(ctx, target); outcome {
		case outcomeAnnounced:
			stats.Announced++
		case outcomeOffline:
			stats.WentOffline++
		case outcomeSkipped:
			stats.Skipped++
		}
	}
	return stats, nil
}

type checkOutcome int

const (
	outcomeUnchanged checkOutcome = iota
	outcomeAnnounced
	outcomeOffline
	outcomeSkipped
)

func (m *StreamMonitor) check(ctx context.Context, target gormModels.WatchTarget) checkOutcome {
	log := logging.GetLogger().With("guild_id", target.GuildID, "login", target.TwitchUsername)

	userID, err := m.provider.ResolveUserID(ctx, target.TwitchUsername)
	if err != nil {
		log.Warnw("Could not resolve streamer", "error", err)
		return outcomeSkipped
	}

	stream, err := m.provider.GetStream(ctx, userID)
	if err != nil {
		log.Warnw("Stream status lookup failed", "error", err)
		return outcomeSkipped
	}

	live := stream != nil
	switch {
	case live && !target.IsLive:
		if stream.ID == target.LastStreamID {
			return outcomeUnchanged
		}

		user, err := m.provider.GetUserByID(ctx, userID)
		if err != nil || user == nil {
			log.Warnw("Profile lookup failed, announcement deferred", "error", err)
			return outcomeSkipped
		}

		if err := m.announcer.AnnounceLive(ctx, target, *user, *stream); err != nil {
			// the stream is still recorded so a broken channel is not retried every pass
			log.Errorw("Failed to post live announcement", "channel_id", target.ChannelID, "error", err)
		} else {
			m.metrics.ObserveAnnouncement()
		}

		if err := m.repo.SetLive(ctx, target.ID, stream.ID); err != nil {
			log.Errorw("Failed to persist live state", "error", err)
			return outcomeSkipped
		}
		return outcomeAnnounced

	case !live && target.IsLive:
		if err := m.repo.SetOffline(ctx, target.ID); err != nil {
			log.Errorw("Failed to persist offline state", "error", err)
			return outcomeSkipped
		}
		return outcomeOffline
	}
	return outcomeUnchanged
}
