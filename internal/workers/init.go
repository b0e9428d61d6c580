package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type WorkersContainer struct {
	// StreamMonitor is nil when Twitch credentials are not configured
	StreamMonitor *StreamMonitor
	ClaimExpiry   *ClaimExpiryWorker

	TwitchPollInterval time.Duration
	ClaimSweepInterval time.Duration
}

func InitWorkers(
	monitor *StreamMonitor,
	claimExpiry *ClaimExpiryWorker,
	twitchPoll time.Duration,
	claimSweep time.Duration,
) *WorkersContainer {
	return &WorkersContainer{
		StreamMonitor:      monitor,
		ClaimExpiry:        claimExpiry,
		TwitchPollInterval: twitchPoll,
		ClaimSweepInterval: claimSweep,
	}
}

// Start runs every configured worker on g until ctx is cancelled
func (c *WorkersContainer) Start(ctx context.Context, g *errgroup.Group) {
	if c.StreamMonitor != nil {
		g.Go(func() error {
			c.StreamMonitor.Start(ctx, c.TwitchPollInterval)
			return nil
		})
	}
	g.Go(func() error {
		c.ClaimExpiry.Start(ctx, c.ClaimSweepInterval)
		return nil
	})
}
