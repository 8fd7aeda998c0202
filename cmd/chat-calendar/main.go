package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/api"
	"github.com/SergeyKozhin/chat-calendar/internal/business/chat"
	"github.com/SergeyKozhin/chat-calendar/internal/business/command"
	"github.com/SergeyKozhin/chat-calendar/internal/business/dates"
	events_service "github.com/SergeyKozhin/chat-calendar/internal/business/events"
	"github.com/SergeyKozhin/chat-calendar/internal/config"
	"github.com/SergeyKozhin/chat-calendar/internal/database"
	"github.com/SergeyKozhin/chat-calendar/internal/database/events"
	"github.com/SergeyKozhin/chat-calendar/internal/filestore"
	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/jwt"
	"github.com/SergeyKozhin/chat-calendar/internal/pkg/ollama"
	"github.com/SergeyKozhin/chat-calendar/internal/redis"
	"github.com/SergeyKozhin/chat-calendar/internal/session"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type calendarStore interface {
	Load(ctx context.Context, userID string) (*model.Calendar, error)
	Save(ctx context.Context, userID string, cal *model.Calendar) error
}

type sessionStore interface {
	History(ctx context.Context, userID string) ([]model.Message, error)
	Append(ctx context.Context, userID string, msgs ...model.Message) error
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	loc, err := config.Location()
	if err != nil {
		logger.Fatalw("unable to load timezone", "err", err)
	}
	now := func() time.Time { return time.Now().In(loc) }

	store, err := initCalendarStore(ctx, logger)
	if err != nil {
		logger.Fatalw("unable to initialize calendar store", "err", err)
	}

	sessions := initSessionStore(ctx, logger)

	llm := ollama.NewClient(config.OllamaURL(), config.OllamaModel(), config.OllamaTimeout())

	eventsService := events_service.NewService(store, logger)
	parser := command.NewParser(dates.NewNormalizer(logger), now, logger)
	chatService := chat.NewService(logger, sessions, llm, parser, eventsService, now)

	var a *api.Api
	if config.AuthEnabled() {
		a, err = api.NewApi(logger, config.AllowedOrigins(), jwt.NewManager(config.Secret(), config.JwtTTL()), chatService, eventsService)
	} else {
		logger.Warnw("SECRET is not set, user ids are taken from requests")
		a, err = api.NewApi(logger, config.AllowedOrigins(), nil, chatService, eventsService)
	}
	if err != nil {
		logger.Fatalw("unable to initialize api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  a,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port(), "store", config.StoreBackend(), "sessions", config.SessionBackend())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initCalendarStore(ctx context.Context, logger *zap.SugaredLogger) (calendarStore, error) {
	switch config.StoreBackend() {
	case config.StoreBackendPostgres:
		db, err := database.NewPGX(ctx, config.PostgresURL())
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return events.NewStore(db), nil
	default:
		return filestore.NewStore(config.DataDir(), config.CalendarFileSuffix(), logger), nil
	}
}

func initSessionStore(ctx context.Context, logger *zap.SugaredLogger) sessionStore {
	switch config.SessionBackend() {
	case config.SessionBackendRedis:
		pool := redis.NewRedisPool(logger)
		return redis.NewSessionRepository(pool, config.SessionTTl(), config.SessionMaxMessages(), logger)
	default:
		s := session.NewStore(config.SessionTTl(), config.SessionMaxMessages(), logger)
		go s.Start(ctx, config.SessionCleanupPeriod())
		return s
	}
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
