// Package app builds the bot's dependency graph from config and runs
// the Discord gateway, background workers and ops HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/pinkslip-racing/pinkslip/internal/api"
	"github.com/pinkslip-racing/pinkslip/internal/common"
	"github.com/pinkslip-racing/pinkslip/internal/config"
	"github.com/pinkslip-racing/pinkslip/internal/db"
	"github.com/pinkslip-racing/pinkslip/internal/db/repositories"
	"github.com/pinkslip-racing/pinkslip/internal/discord"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
	"github.com/pinkslip-racing/pinkslip/internal/metrics"
	"github.com/pinkslip-racing/pinkslip/internal/providers"
	"github.com/pinkslip-racing/pinkslip/internal/routes"
	"github.com/pinkslip-racing/pinkslip/internal/services"
	"github.com/pinkslip-racing/pinkslip/internal/workers"
)

const (
	cacheDefaultTTL     = 10 * time.Minute
	cacheCleanup        = 15 * time.Minute
	redisKeyPrefix      = "pinkslip"
	httpShutdownTimeout = 5 * time.Second
)

type Repositories struct {
	Vehicles    *repositories.VehicleRepository
	Stats       *repositories.StatsRepository
	Settings    *repositories.SettingsRepository
	Twitch      *repositories.TwitchRepository
	Leaderboard *repositories.LeaderboardRepository
}

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	SQLX    *sqlx.DB
	Cache   common.CacheInterface
	Metrics *metrics.MetricsRegistry

	Repo     *Repositories
	Services discord.Services

	Session *discordgo.Session
	Bot     *discord.Bot
	Workers *workers.WorkersContainer
	HTTP    *http.Server
}

// New opens the store and cache and wires every service. The Discord
// gateway is not connected until Run.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBPath, cfg.DBDsn)
	if err != nil {
		return nil, err
	}
	a.DB = gormDB
	if err := db.Migrate(gormDB); err != nil {
		return nil, err
	}
	if a.SQLX, err = db.NewSQLX(gormDB); err != nil {
		return nil, err
	}

	a.Cache = newCache(ctx, cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.NewMetricsRegistry(reg)

	// the provider stays a nil interface when Twitch is disabled
	var streams providers.StreamProvider
	if cfg.TwitchEnabled() {
		streams = providers.NewTwitchProvider(ctx, providers.TwitchConfig{
			ClientID:     cfg.TwitchClientID,
			ClientSecret: cfg.TwitchClientSecret,
		}, a.Cache, a.Metrics)
	} else {
		logging.Warn("TWITCH_CLIENT_ID or TWITCH_CLIENT_SECRET not set, stream monitor disabled")
	}

	if a.Session, err = discord.NewSession(cfg.DiscordToken); err != nil {
		return nil, err
	}
	notifier := discord.NewNotifier(a.Session)

	a.Repo = &Repositories{
		Vehicles:    repositories.NewVehicleRepository(gormDB),
		Stats:       repositories.NewStatsRepository(gormDB),
		Settings:    repositories.NewSettingsRepository(gormDB),
		Twitch:      repositories.NewTwitchRepository(gormDB),
		Leaderboard: repositories.NewLeaderboardRepository(a.SQLX),
	}

	races := services.NewRaceService(gormDB, notifier, a.Metrics)
	a.Services = discord.Services{
		Registration: services.NewRegistrationService(a.Repo.Vehicles, a.Repo.Settings, notifier, a.Metrics),
		Races:        races,
		Admin:        services.NewAdminService(a.Repo.Vehicles, a.Repo.Stats),
		Profiles:     services.NewProfileService(a.Repo.Vehicles, a.Repo.Stats, a.Repo.Leaderboard),
		Twitch:       services.NewTwitchService(a.Repo.Twitch, streams),
	}

	a.Bot = discord.NewBot(a.Session, cfg.DiscordGuildID, a.Services, a.Metrics)

	var monitor *workers.StreamMonitor
	if streams != nil {
		monitor = workers.NewStreamMonitor(a.Repo.Twitch, streams, notifier, a.Metrics)
	}
	a.Workers = workers.InitWorkers(
		monitor,
		workers.NewClaimExpiryWorker(races, a.Metrics),
		cfg.TwitchPollInterval,
		cfg.ClaimSweepInterval,
	)

	a.HTTP = &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: routes.RegisterRoutes(routes.Dependencies{
			Profiles:  a.Services.Profiles,
			Health:    a.healthChecks(),
			Metrics:   a.Metrics,
			JWTSecret: []byte(cfg.APIJWTSecret),
			UpSince:   time.Now(),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

// newCache prefers Redis when configured and falls back to memory if it
// cannot be reached at startup.
func newCache(ctx context.Context, cfg *config.Config) common.CacheInterface {
	if cfg.RedisEnabled() {
		redisCache, err := common.NewRedisCacheService(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, redisKeyPrefix)
		if err == nil {
			logging.Info("Using Redis cache", "host", cfg.RedisHost, "port", cfg.RedisPort)
			return redisCache
		}
		logging.Warn("Redis unavailable, falling back to in-memory cache", "error", err.Error())
	}
	return common.NewCacheService(cacheDefaultTTL, cacheCleanup)
}

func (a *App) healthChecks() map[string]api.Pinger {
	checks := map[string]api.Pinger{
		"database": a.Repo.Leaderboard,
	}
	if pinger, ok := a.Cache.(api.Pinger); ok {
		checks["cache"] = pinger
	}
	return checks
}

// Run blocks until ctx is cancelled or any component fails, then stops
// the rest.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Bot.Run(ctx)
	})

	a.Workers.Start(ctx, g)

	g.Go(func() error {
		logging.Info("Ops HTTP server starting", "addr", a.HTTP.Addr)
		if err := a.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return a.HTTP.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close releases the cache and database pool
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}
