package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sipcrew/partyround/internal/common/clock"
	"github.com/sipcrew/partyround/internal/common/uuid"
	"github.com/sipcrew/partyround/internal/config"
	"github.com/sipcrew/partyround/internal/random"
	"github.com/sipcrew/partyround/internal/repositories/questionbank"
	sessionRepo "github.com/sipcrew/partyround/internal/repositories/session"
	"github.com/sipcrew/partyround/internal/scheduler"
	"github.com/sipcrew/partyround/internal/services/round"
	"github.com/sipcrew/partyround/internal/transport/ws"
)

// NewServeCmd builds the CLI subcommand that starts the game server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the party-round server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisAddr := cfg.Redis.Addr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return err
	}

	bank, err := buildBank(ctx, cfg, redisClient, log)
	if err != nil {
		return err
	}

	hub := ws.NewHub(log)

	svc, err := round.New(&round.Config{
		StartDelay:    config.Duration(cfg.Game.StartDelay, 0),
		AnswerGrace:   config.Duration(cfg.Game.AnswerGrace, 0),
		EarlyFire:     config.Duration(cfg.Game.EarlyFire, 0),
		CodeLength:    cfg.Game.CodeLength,
		SessionRepo:   sessions,
		QuestionBank:  bank,
		Scheduler:     scheduler.New(),
		Broadcaster:   hub,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Sampler:       random.New(&random.Config{}),
		Logger:        log,
	})
	if err != nil {
		return err
	}

	handler := ws.NewHandler(svc, hub, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", handler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting party-round server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildBank wires the question bank: Postgres behind a Redis cache when
// configured, the built-in starter pack otherwise.
func buildBank(ctx context.Context, cfg config.Config, redisClient *redis.Client, log *logrus.Logger) (questionbank.Repository, error) {
	if cfg.Postgres.URL == "" {
		log.Info("no postgres configured, serving the starter question pack from memory")
		return questionbank.NewMemory(starterQuestions())
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return nil, err
	}

	db, err := openBun(cfg)
	if err != nil {
		return nil, err
	}

	loader, err := questionbank.NewPostgres(&questionbank.PostgresConfig{DB: db})
	if err != nil {
		return nil, err
	}

	return questionbank.NewCached(&questionbank.CacheConfig{
		RedisClient: redisClient,
		Loader:      loader,
		TTL:         config.Duration(cfg.Redis.QuestionTTL, 10*time.Minute),
	})
}
