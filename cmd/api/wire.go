package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/application/ocr"
	appreport "github.com/bryanwahyu/leadscope/internal/application/report"
	"github.com/bryanwahyu/leadscope/internal/config"
	"github.com/bryanwahyu/leadscope/internal/domain/ai"
	"github.com/bryanwahyu/leadscope/internal/domain/cache"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
	anthropicai "github.com/bryanwahyu/leadscope/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/leadscope/internal/infra/ai/gemini"
	openaiai "github.com/bryanwahyu/leadscope/internal/infra/ai/openai"
	rediscache "github.com/bryanwahyu/leadscope/internal/infra/cache/redis"
	mysqlp "github.com/bryanwahyu/leadscope/internal/infra/db/mysql"
	"github.com/bryanwahyu/leadscope/internal/infra/db/postgres"
	"github.com/bryanwahyu/leadscope/internal/infra/db/sqlite"
	"github.com/bryanwahyu/leadscope/internal/infra/fetch"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper/browser"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper/demo"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper/web"
	minioStore "github.com/bryanwahyu/leadscope/internal/infra/storage"
	"github.com/bryanwahyu/leadscope/internal/middleware"
)

// stores holds the persistence side; it is enough for migrate and history.
type stores struct {
	db      *sql.DB
	cache   cache.Repository
	records history.Repository
	checks  map[string]middleware.HealthChecker
	closers []func() error
}

func (s *stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	s := &stores{checks: map[string]middleware.HealthChecker{}}

	var (
		db      *sql.DB
		err     error
		migrate func(context.Context, *sql.DB) error
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		migrate = mysqlp.Migrate
	case "postgres":
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
		migrate = postgres.Migrate
	case "sqlite":
		// Open already migrates
		db, err = sqlite.Open(ctx, cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connect error: %w", cfg.Database.Driver, err)
	}
	s.db = db
	s.closers = append(s.closers, db.Close)
	s.checks["database"] = &middleware.DatabaseHealthChecker{DB: db}

	if migrate != nil {
		if err := migrate(ctx, db); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	if cfg.Database.Driver == "postgres" {
		s.cache = postgres.NewCacheRepository(db)
		s.records = postgres.NewHistoryRepository(db)
	} else {
		// sqlite shares the mysql "?" dialect
		s.cache = mysqlp.NewCacheRepository(db)
		s.records = mysqlp.NewHistoryRepository(db)
	}

	if cfg.Redis.URL != "" {
		rdb, err := rediscache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("redis connect error: %w", err)
		}
		rc := rediscache.New(rdb)
		s.cache = rc
		s.closers = append(s.closers, rdb.Close)
		s.checks["redis"] = middleware.CheckFunc(rc.Ping)
		log.Info("using redis for the profile cache")
	}
	return s, nil
}

func newAIClient(ctx context.Context, cfg *config.Config) (ai.Client, error) {
	switch cfg.AI.Provider {
	case "openai":
		c, err := openaiai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "anthropic":
		var opts []option.RequestOption
		if cfg.AI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.AI.BaseURL))
		}
		c, err := anthropicai.NewClient(cfg.AI.APIKey, cfg.AI.Model, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		c, err := gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func newScraper(cfg *config.Config, log *zap.Logger) profile.Scraper {
	var primary profile.Scraper
	switch cfg.Scraper.Mode {
	case "browser":
		primary = browser.New(cfg.Scraper.Headless, cfg.Scraper.Timeout)
	case "web":
		primary = web.New(cfg.Scraper.Timeout)
	default:
		return demo.New()
	}
	if cfg.Scraper.DemoFallback {
		return &scraper.Fallback{Primary: primary, Secondary: demo.New(), Logger: log}
	}
	return primary
}

// buildService wires the pipeline. The AI provider key is checked here, at startup.
func buildService(ctx context.Context, cfg *config.Config, log *zap.Logger, st *stores) (*analysis.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ai client: %w", err)
	}
	clock := application.SystemClock{}

	svc := &analysis.Service{
		Scraper: newScraper(cfg, log),
		Cache:   st.cache,
		Records: st.records,
		Reports: &appreport.Generator{
			AI:       client,
			Clock:    clock,
			Logger:   log.Named("report"),
			OnReport: func(src report.Source) { middleware.RecordReport(string(src)) },
		},
		OCR: &ocr.Extractor{
			AI:     client,
			Images: fetch.NewImages(0),
			Clock:  clock,
			Logger: log.Named("ocr"),
		},
		Clock:  clock,
		Logger: log.Named("analysis"),
		Options: analysis.Options{
			OCRCap:      cfg.Pipeline.OCRCap,
			SingleTTL:   cfg.Pipeline.SingleTTL,
			BatchTTL:    cfg.Pipeline.BatchTTL,
			BatchPacing: cfg.Pipeline.BatchPacing,
			MaxBatch:    cfg.Pipeline.MaxBatch,
		},
		OnAnalysis: middleware.RecordAnalysis,
	}

	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return nil, fmt.Errorf("minio init error: %w", err)
		}
		svc.Archive = store
	}
	return svc, nil
}
