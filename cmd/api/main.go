package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/cache"
	"github.com/mentorlink/api/internal/config"
	"github.com/mentorlink/api/internal/database"
	"github.com/mentorlink/api/internal/handler"
	"github.com/mentorlink/api/internal/logger"
	"github.com/mentorlink/api/internal/mail"
	middlewarepkg "github.com/mentorlink/api/internal/middleware"
	"github.com/mentorlink/api/internal/repository"
	"github.com/mentorlink/api/internal/router"
	"github.com/mentorlink/api/internal/service"
	"github.com/mentorlink/api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(os.Stderr, "info", false)
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	if cfg.MigrateOnBoot {
		if err := database.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	var mentorCache cache.Cache = cache.Noop{}
	var cacheHealth router.CacheHealth
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL, "mentors:", cfg.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer redisCache.Close()
		mentorCache = redisCache
		cacheHealth = redisCache
	}

	store, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	var mailer mail.Sender = mail.NewLogSender(log)
	if cfg.ResendAPIKey != "" {
		mailer = mail.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	mentorsRepo := repository.NewPGXMentorsRepository(pool)
	testimoniesRepo := repository.NewPGXTestimoniesRepository(pool)

	authService := service.NewAuthService(usersRepo, mentorsRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	testimonyService := service.NewTestimonyService(testimoniesRepo)
	mentorService := service.NewMentorService(mentorsRepo, mailer, store, mentorCache, log, service.MentorOptions{
		FrontendURL:  cfg.FrontendURL,
		PublicURL:    cfg.PublicURL,
		MaxImageSize: cfg.MaxImageSize,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Mentors:     handler.NewMentorHandler(mentorService),
		Users:       handler.NewUserHandler(userService),
		Testimonies: handler.NewTestimonyHandler(testimonyService),
		Files:       handler.NewFilesHandler(store),
		Cache:       cacheHealth,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openStore uses the JetStream object store when NATS is configured and the upload directory otherwise.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.ObjectStore, func()) {
	if cfg.NATSURL != "" {
		js, err := storage.NewJetStreamObjectStore(ctx, cfg.NATSURL, cfg.ImageBucket)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open object store")
		}
		return js, func() {
			if err := js.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close object store")
			}
		}
	}

	disk, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open upload directory")
	}
	return disk, func() {}
}
