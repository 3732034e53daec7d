package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/travel-booking/internal/artifact"
	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/database"
	"github.com/iliyamo/travel-booking/internal/logging"
	"github.com/iliyamo/travel-booking/internal/metrics"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	"github.com/iliyamo/travel-booking/internal/router"
	"github.com/iliyamo/travel-booking/internal/search"
	"github.com/iliyamo/travel-booking/internal/service"
	"github.com/iliyamo/travel-booking/internal/utils"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.Env, os.Stdout)

	metrics.Register()
	metrics.SetEphemeralKey(cfg.EphemeralSecret)
	if cfg.EphemeralSecret {
		log.Warn().Msg("JWT_SECRET not set; using a random signing key, tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	users, bookings, closeDB := openStores(ctx, cfg, log)
	defer closeDB()

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	auth := service.NewAuthService(users, tokens, cfg.BcryptCost, log)
	if _, err := auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	files, err := artifact.NewFileStore(cfg.UploadDir, "/api/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("prepare upload dir")
	}

	var events service.EventPublisher = queue.NopPublisher{}
	if cfg.AMQPURL != "" {
		events = queue.NewAMQPPublisher(cfg.AMQPURL)
		consumer := &queue.Consumer{URL: cfg.AMQPURL, LogPath: cfg.BookingLogPath, Log: log}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("booking event consumer stopped")
			}
		}()
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn().Msg("redis unavailable; search cache off, rate limiting in-process")
	} else {
		defer rdb.Close()
	}

	e := router.New(router.Deps{
		Auth:         auth,
		Bookings:     service.NewBookingService(bookings, files, events, log),
		Files:        files,
		Search:       search.NewTimeSeeded(),
		Redis:        rdb,
		RateLimit:    config.LoadRateLimitConfig(),
		Cache:        config.LoadCacheConfig(),
		EphemeralKey: cfg.EphemeralSecret,
		Log:          log,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("db", cfg.DBDriver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openStores returns SQL-backed stores for mysql and sqlite3, or the
// in-process store for DB_DRIVER=memory.
func openStores(ctx context.Context, cfg config.Config, log zerolog.Logger) (service.UserStore, service.BookingStore, func()) {
	if cfg.DBDriver == "memory" {
		mem := repository.NewMemoryStore()
		return mem.Users, mem.Bookings, func() {}
	}
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	return repository.NewUserRepo(db), repository.NewBookingRepo(db), func() { _ = db.Close() }
}
