package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/ai"
	"github.com/MrSnakeDoc/linkvault/internal/chat"
	"github.com/MrSnakeDoc/linkvault/internal/config"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/pipeline"
	"github.com/MrSnakeDoc/linkvault/internal/redis"
	"github.com/MrSnakeDoc/linkvault/internal/scheduler"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	badgerstore "github.com/MrSnakeDoc/linkvault/internal/store/badger"
	"github.com/MrSnakeDoc/linkvault/internal/store/memory"
	mongostore "github.com/MrSnakeDoc/linkvault/internal/store/mongo"
	redisstore "github.com/MrSnakeDoc/linkvault/internal/store/redis"
	"github.com/MrSnakeDoc/linkvault/internal/taxonomy"
	"github.com/MrSnakeDoc/linkvault/internal/utils"
	"github.com/MrSnakeDoc/linkvault/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    store.Repository
	reloader *scheduler.TaxonomyReloader // nil without a taxonomy file
	gc       *scheduler.GarbageCollector // nil unless the store reclaims space
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Open the store early - fail fast if unavailable
	repo, err := openStore(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.StoreDriver, err)
		os.Exit(1)
	}
	loggerClient.Info("store initialized", logger.String("driver", cfg.StoreDriver))

	m := metrics.New()

	// Taxonomy: built-in dictionaries, replaced by the file when configured
	registry := taxonomy.NewRegistry(nil)
	var reloader *scheduler.TaxonomyReloader
	var reloadTrigger chan struct{}
	if cfg.TaxonomyFile != "" {
		loggerClient.Info("taxonomy file configured, initializing taxonomy reloader",
			logger.String("file", cfg.TaxonomyFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewTaxonomyReloader(
			cfg.TaxonomyFile,
			registry,
			loggerClient,
			cfg.TaxonomyReloadInterval,
			cfg.TaxonomyWatch,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("taxonomy file not configured, using built-in dictionaries")
	}

	var gc *scheduler.GarbageCollector
	if c, ok := repo.(scheduler.Collectable); ok {
		gc = scheduler.NewGarbageCollector(c, loggerClient, cfg.BadgerGCInterval)
	}

	aiClient := ai.NewOpenAI(ai.Config{
		APIKey:        cfg.OpenAIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		Model:         cfg.OpenAIModel,
		PromptID:      cfg.PromptID,
		PromptVersion: cfg.PromptVersion,
	}, loggerClient, m)

	classifier := pipeline.NewClassifier(cfg.Classifier, aiClient, registry, loggerClient, m)
	extractor := pipeline.New(aiClient, classifier, registry, loggerClient, m)

	d := deps.Deps{
		Logger:              loggerClient,
		StartTime:           time.Now(),
		Version:             version.Version,
		Commit:              version.Commit,
		BuildDate:           version.BuildDate,
		GoVersion:           version.GoVersion,
		StoreDriver:         cfg.StoreDriver,
		AllowedHosts:        cfg.AllowedHosts,
		AllowedCIDRS:        cfg.AllowedCIDRS,
		TrustProxy:          cfg.TrustProxy,
		Links:               links.NewService(repo, extractor, loggerClient),
		Chat:                chat.NewService(aiClient, loggerClient, m),
		Store:               repo,
		Taxonomy:            registry,
		Metrics:             m,
		ReloadTrigger:       reloadTrigger,
		CORSOrigins:         cfg.CORSOrigins,
		RateLimitBurst:      cfg.RateLimitBurst,
		RateLimitRefillPerM: cfg.RateLimitRefillPerM,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   server,
		store:    repo,
		reloader: reloader,
		gc:       gc,
	}
}

// openStore connects the configured driver.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Repository, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, log), nil

	case config.DriverMongo:
		log.Info("Connecting to MongoDB", logger.String("database", cfg.MongoDatabase))
		s, err := mongostore.Connect(ctx, mongostore.Options{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.MongoConnectTimeout,
		}, log)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.DriverBadger:
		log.Info("Opening badger", logger.String("dir", cfg.BadgerDir))
		r, err := badgerstore.Open(cfg.BadgerDir, log)
		if err != nil {
			return nil, err
		}
		return r, nil

	case config.DriverMemory:
		log.Warn("memory store selected, links are lost on restart")
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting linkvault v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			utils.CloseLogged(a.store, "store", a.logger)
			return fmt.Errorf("failed to start taxonomy reloader: %w", err)
		}
		a.logger.Info("taxonomy reloader started",
			logger.Duration("interval", a.cfg.TaxonomyReloadInterval),
			logger.Bool("watch", a.cfg.TaxonomyWatch))
	}

	if a.gc != nil {
		if err := a.gc.Start(ctx); err != nil {
			if a.reloader != nil {
				a.reloader.Stop()
			}
			utils.CloseLogged(a.store, "store", a.logger)
			return fmt.Errorf("failed to start garbage collector: %w", err)
		}
		a.logger.Info("garbage collector started",
			logger.Duration("interval", a.cfg.BadgerGCInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.gc != nil {
		a.gc.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	// Close the store last, in-flight requests may still use it.
	utils.CloseLogged(a.store, "store", a.logger)

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ linkvault stopped cleanly")
	return nil
}
