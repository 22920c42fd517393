// Package core wires configuration, logging and the pipeline components
// into an App shared by the command-line front ends.
package core

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vrsandeep/comicdl/internal/config"
	"github.com/vrsandeep/comicdl/internal/downloader"
	"github.com/vrsandeep/comicdl/internal/downloader/providers"
	"github.com/vrsandeep/comicdl/internal/downloader/providers/getcomics"
	"github.com/vrsandeep/comicdl/internal/fetcher"
	"github.com/vrsandeep/comicdl/internal/logging"
	"github.com/vrsandeep/comicdl/internal/models"
	"github.com/vrsandeep/comicdl/internal/search"
)

// App holds the components of one comicdl session.
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	Fetcher   *fetcher.Fetcher
	Provider  models.Provider
	Paginator *search.Paginator
}

// New builds an App from cfg. A nil logger is replaced by one at
// cfg.LogLevel.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		var err error
		log, err = logging.New(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	if err := registerProviders(cfg.BaseURL); err != nil {
		return nil, err
	}
	provider, err := providers.Lookup(cfg.Provider)
	if err != nil {
		return nil, err
	}

	f, err := fetcher.New(fetcher.Options{
		UserAgent:         cfg.Fetch.UserAgent,
		Timeout:           cfg.Fetch.Timeout,
		MaxAttempts:       cfg.Fetch.MaxAttempts,
		InitialBackoff:    cfg.Fetch.InitialBackoff,
		MaxBackoff:        cfg.Fetch.MaxBackoff,
		RequestsPerSecond: cfg.Fetch.RequestsPerSecond,
	}, log.Named("fetch"))
	if err != nil {
		return nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	log.Debug("session ready",
		zap.String("provider", provider.GetInfo().Name),
		zap.String("base_url", cfg.BaseURL),
		zap.String("output_dir", cfg.OutputDir),
	)
	return &App{
		Config:    cfg,
		Log:       log,
		Fetcher:   f,
		Provider:  provider,
		Paginator: search.NewPaginator(f, provider, cfg.Search.MaxPages, log.Named("search")),
	}, nil
}

// Dispatcher returns a dispatcher writing into outputDir.
func (a *App) Dispatcher(outputDir string, options ...downloader.Option) *downloader.Dispatcher {
	return downloader.NewDispatcher(a.Fetcher, a.Provider, downloader.Options{
		OutputDir: outputDir,
		Workers:   a.Config.Download.Workers,
		Locker: downloader.LockerOptions{
			Command: a.Config.Download.Locker.Command,
			Args:    a.Config.Download.Locker.Args,
		},
	}, a.Log.Named("download"), options...)
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Log.Sync()
}

// registerProviders rebuilds the provider registry for baseURL.
func registerProviders(baseURL string) error {
	providers.UnregisterAll()
	gc, err := getcomics.NewWithBaseURL(baseURL)
	if err != nil {
		return err
	}
	providers.Register(gc)
	return nil
}
