package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	extprovider1 "github.com/riskibarqy/esport-datanal/external/provider1"
	extprovider2 "github.com/riskibarqy/esport-datanal/external/provider2"
	"github.com/riskibarqy/esport-datanal/external/providerhttp"
	"github.com/riskibarqy/esport-datanal/internal/config"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/settings"
	"github.com/riskibarqy/esport-datanal/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/esport-datanal/internal/platform/id"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/platform/resilience"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/provider/provider1"
	"github.com/riskibarqy/esport-datanal/internal/provider/provider2"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

// Watch limit changes made by another instance show up within this delay.
const watchLimitCacheTTL = 30 * time.Second

// Services groups the usecases shared by the api and scheduler processes.
type Services struct {
	Watcher  *usecase.WatcherService
	Grabber  *usecase.GrabberService
	Analyzer *usecase.AnalyzerService
	Monitor  *usecase.MonitorService
	Cycle    *usecase.CycleService
	Settings *usecase.SettingsService
}

type App struct {
	Config   config.Config
	Services Services

	logger  *logging.Logger
	closers []func() error
}

// New wires storage, provider clients and usecases from cfg. Close releases
// every resource New opened.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{Config: cfg, logger: logger}

	tx, err := a.transactor(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	gameConfigs, err := settings.LoadGameConfigs(cfg.SettingsDir)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load game configs: %w", err)
	}

	limits, err := a.watchLimitStore()
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	settingsSvc := usecase.NewSettingsService(
		limits,
		cache.NewTournamentRepository(settings.NewFileTournamentRepository(cfg.SettingsDir), 0),
		gameConfigs,
		cfg.WatchLimitMinutes,
	)

	registry, err := newRegistry(cfg, gameConfigs, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	ids := idgen.NewUUIDGenerator()
	watcher := usecase.NewWatcherService(registry, tx, settingsSvc, ids, cfg.PassTimeout, logger)
	a.Services = Services{
		Watcher:  watcher,
		Grabber:  usecase.NewGrabberService(registry, tx, settingsSvc, ids, cfg.GrabPassTimeout, logger),
		Analyzer: usecase.NewAnalyzerService(registry, tx, settingsSvc, logger),
		Monitor:  usecase.NewMonitorService(registry, cfg.ProviderTimeout, logger),
		Cycle:    usecase.NewCycleService(watcher, registry, settingsSvc, cfg.CycleWorkers, logger),
		Settings: settingsSvc,
	}
	return a, nil
}

func (a *App) transactor(ctx context.Context) (usecase.Transactor, error) {
	switch a.Config.StorageDriver {
	case config.StorageMemory:
		a.logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, a.Config)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewStore(db, a.logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", a.Config.StorageDriver)
	}
}

func (a *App) watchLimitStore() (usecase.WatchLimitStore, error) {
	if a.Config.RedisURL == "" {
		return settings.NewFileWatchLimitStore(a.Config.SettingsDir), nil
	}

	opts, err := redis.ParseURL(a.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client.Close)
	return cache.NewWatchLimitStore(
		settings.NewRedisWatchLimitStore(client, settings.DefaultWatchLimitKey),
		watchLimitCacheTTL,
	), nil
}

func newRegistry(cfg config.Config, games esport.GameConfigs, logger *logging.Logger) (*provider.Registry, error) {
	transport := providerhttp.Config{
		Timeout:    cfg.ProviderTimeout,
		MaxRetries: cfg.ProviderMaxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ProviderCircuitEnabled,
			FailureThreshold: cfg.ProviderCircuitFailureCount,
			OpenTimeout:      cfg.ProviderCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ProviderCircuitHalfOpenMaxReqs,
		},
	}

	one := extprovider1.NewClient(extprovider1.ClientConfig{
		Transport:         transport,
		BaseURL:           cfg.Provider1BaseURL,
		ClientID:          cfg.Provider1ClientID,
		ClientSecret:      cfg.Provider1ClientSecret,
		RequestsPerSecond: cfg.Provider1RequestsPerSecond,
		Logger:            logger,
	})
	two := extprovider2.NewClient(extprovider2.ClientConfig{
		Transport:         transport,
		BaseURL:           cfg.Provider2BaseURL,
		Token:             cfg.Provider2Token,
		RequestsPerSecond: cfg.Provider2RequestsPerSecond,
		Logger:            logger,
	})

	registry, err := provider.NewRegistry(
		provider.Adapter{
			Provider:    esport.ProviderOne,
			Source:      one,
			Reader:      provider1.NewReader(),
			Validator:   provider1.NewValidator(games),
			Transformer: provider1.NewTransformer(games),
		},
		provider.Adapter{
			Provider:    esport.ProviderTwo,
			Source:      two,
			Reader:      provider2.NewReader(),
			Validator:   provider2.NewValidator(),
			Transformer: provider2.NewTransformer(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("build provider registry: %w", err)
	}
	return registry, nil
}

// NewHTTPServer builds the api server on top of a's services.
func (a *App) NewHTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(
		a.Services.Watcher,
		a.Services.Grabber,
		a.Services.Analyzer,
		a.Services.Monitor,
		a.Services.Cycle,
		a.Services.Settings,
		a.logger,
	)

	return &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, a.logger, a.Config.InternalJobToken),
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}, nil
}

func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}
