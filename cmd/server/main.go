package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/enbat/horizon-server-go/internal/audit"
	"github.com/enbat/horizon-server-go/internal/cache"
	"github.com/enbat/horizon-server-go/internal/config"
	"github.com/enbat/horizon-server-go/internal/content"
	"github.com/enbat/horizon-server-go/internal/database"
	"github.com/enbat/horizon-server-go/internal/handler"
	"github.com/enbat/horizon-server-go/internal/identity"
	"github.com/enbat/horizon-server-go/internal/jobs"
	"github.com/enbat/horizon-server-go/internal/middleware"
	"github.com/enbat/horizon-server-go/internal/redis"
	"github.com/enbat/horizon-server-go/internal/repository"
	"github.com/enbat/horizon-server-go/internal/session"
	"github.com/enbat/horizon-server-go/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	accountRepo := repository.NewAccountRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)
	serviceRepo := repository.NewServiceRepository(db.DB)
	serviceTypeRepo := repository.NewServiceTypeRepository(db.DB)
	memberRepo := repository.NewMemberRepository(db.DB)

	lists := cache.NewLists(redisClient.Client, cfg.ListCacheTTL())

	identityClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey)
	sessions := session.NewManager(identityClient, accountRepo, cfg.SuperAdminEmail)
	sessions.Subscribe(func(state session.State) {
		email := ""
		if state.Email != nil {
			email = *state.Email
		}
		audit.Log(context.Background(), audit.Event{
			Type:  audit.EventSessionChange,
			Email: email,
			Details: map[string]interface{}{
				"loggedIn":  state.IsLoggedIn,
				"confirmed": state.IsConfirmed,
			},
		})
	})

	s3Client, err := storage.NewS3Client(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create storage client")
	}
	uploader := storage.NewUploader(s3Client, cfg.UploadBucket, cfg.AssetBaseURL, cfg.MaxUploadBytes())

	projectService := content.NewProjectService(projectRepo, lists)
	serviceService := content.NewServiceService(serviceRepo, lists)
	serviceTypeService := content.NewServiceTypeService(serviceTypeRepo, lists)
	memberService := content.NewMemberService(memberRepo, lists)
	accountService := content.NewAccountService(accountRepo, cfg.SuperAdminEmail)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions)
	loginRateLimiter := middleware.NewLoginRateLimiter(redisClient.Client)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(cfg.MaxUploadBytes() * 2)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	publicHandler := handler.NewPublicHandler(projectService, serviceService, serviceTypeService, memberService)
	authHandler := handler.NewAuthHandler(sessions, loginRateLimiter)
	adminHandler := handler.NewAdminHandler(
		projectService, serviceService, serviceTypeService, memberService,
		accountService, uploader, sessionMiddleware.Handler, cfg.MaxUploadBytes(),
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)
	r.Use(securityHeadersMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", publicHandler.Routes())
		r.Route("/auth", func(r chi.Router) {
			r.Use(sessionMiddleware.Handler)
			r.Mount("/", authHandler.Routes())
		})
	})

	r.Mount("/admin/api", adminHandler.Routes())

	r.NotFound(handler.NotFound)

	warmJob := jobs.NewWarmJob(config.CacheWarmInterval,
		jobs.Warmer{Name: "projects", Fn: func(ctx context.Context) error {
			_, err := projectService.List(ctx)
			return err
		}},
		jobs.Warmer{Name: "services", Fn: func(ctx context.Context) error {
			_, err := serviceService.List(ctx)
			return err
		}},
		jobs.Warmer{Name: "service types", Fn: func(ctx context.Context) error {
			_, err := serviceTypeService.List(ctx)
			return err
		}},
		jobs.Warmer{Name: "members", Fn: func(ctx context.Context) error {
			_, err := memberService.List(ctx)
			return err
		}},
	)
	warmJob.Start()
	defer warmJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
