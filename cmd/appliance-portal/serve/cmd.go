package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/lumenhub/appliance-portal/internal/api"
	"github.com/lumenhub/appliance-portal/internal/api/handler"
	"github.com/lumenhub/appliance-portal/internal/api/middleware"
	"github.com/lumenhub/appliance-portal/internal/core/domain"
	"github.com/lumenhub/appliance-portal/internal/core/ports"
	"github.com/lumenhub/appliance-portal/internal/core/service"
	"github.com/lumenhub/appliance-portal/internal/infrastructure/credentials"
	mongodb "github.com/lumenhub/appliance-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/lumenhub/appliance-portal/internal/infrastructure/db/redis"
	"github.com/lumenhub/appliance-portal/internal/infrastructure/iothub"
	"github.com/lumenhub/appliance-portal/internal/pkg/config"
	"github.com/lumenhub/appliance-portal/internal/pkg/passhash"
	"github.com/lumenhub/appliance-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web front-end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Listen port, overrides PORT",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load(ctx.Context)
			if err != nil {
				return err
			}
			if p := ctx.String("port"); p != "" {
				cfg.Port = p
			}
			return run(ctx.Context, cfg)
		},
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "appliance-portal",
	})

	ready := map[string]handler.Pinger{}

	users, closeMongo, err := loadUsers(ctx, cfg, ready)
	if err != nil {
		return err
	}
	defer closeMongo()

	store, err := credentials.NewStaticStore(users)
	if err != nil {
		return fmt.Errorf("credentials: %w", err)
	}
	log.Info().Int("users", store.Len()).Str("source", cfg.Credentials.Source).Msg("credentials loaded")

	throttle, closeRedis, err := loginThrottle(ctx, cfg, ready, log)
	if err != nil {
		return err
	}
	defer closeRedis()

	relay, err := deviceRelay(cfg, log)
	if err != nil {
		return err
	}

	e, err := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(store, passhash.New()),
		Sessions:  service.NewSessionService([]byte(cfg.Session.Secret)),
		Throttle:  throttle,
		Appliance: service.NewApplianceService(relay, log),
		Cookie:    middleware.SessionCookie{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		Hash:      cfg.HashEndpoint,
		Ready:     ready,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loadUsers(ctx context.Context, cfg *config.Config, ready map[string]handler.Pinger) ([]domain.User, func(), error) {
	if cfg.Credentials.Source != config.CredentialsFromMongo {
		users, err := credentials.LoadFile(cfg.Credentials.File)
		return users, func() {}, err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = client.Disconnect(context.Background()) }

	users, err := mongodb.NewUserRepository(db, cfg.Mongo.Collection).LoadAll(ctx)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	ready["mongodb"] = mongodb.Pinger{Client: client}
	return users, closeFn, nil
}

func loginThrottle(ctx context.Context, cfg *config.Config, ready map[string]handler.Pinger, log zerolog.Logger) (ports.LoginThrottle, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
		return nil, func() {}, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, nil, err
	}
	ready["redis"] = redisdb.Pinger{Client: client}
	return redisdb.NewLoginThrottle(client, cfg.Redis.MaxFailures, cfg.Redis.LockoutAfter),
		func() { _ = client.Close() },
		nil
}

func deviceRelay(cfg *config.Config, log zerolog.Logger) (ports.DeviceRelay, error) {
	if !cfg.DeviceConfigured() {
		log.Warn().Msg("device relay not configured, status will always be unknown")
		return iothub.Unconfigured{}, nil
	}
	creds, err := iothub.ParseConnectionString(cfg.Device.ConnectionString)
	if err != nil {
		return nil, err
	}
	return iothub.NewClient(creds, cfg.Device.DeviceID, cfg.Device.Timeout), nil
}
