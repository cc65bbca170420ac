// Command modelcached runs the official-model cache as a small daemon:
// a periodic refresh loop over the configured providers plus an HTTP
// surface for lookups, drafts, and health.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gopkg.in/yaml.v3"

	"github.com/capsohq/modelcache/catalog"
	"github.com/capsohq/modelcache/configstore"
	"github.com/capsohq/modelcache/providers"
	"github.com/capsohq/modelcache/schemas"
	"github.com/capsohq/modelcache/secrets"
	"github.com/capsohq/modelcache/transports/handlers"
	"github.com/capsohq/modelcache/transports/lib"
)

type providerConfig struct {
	Name          string            `yaml:"name"`
	Kind          string            `yaml:"kind"`
	BaseURL       string            `yaml:"base_url"`
	CredentialEnv string            `yaml:"credential_env"`
	ExtraHeaders  map[string]string `yaml:"extra_headers"`
	AutoFetch     bool              `yaml:"auto_fetch"`
}

type daemonConfig struct {
	Listen      string           `yaml:"listen"`
	SQLitePath  string           `yaml:"sqlite_path"`
	RefreshTick string           `yaml:"refresh_tick"`
	LogLevel    string           `yaml:"log_level"`
	Providers   []providerConfig `yaml:"providers"`
}

func loadConfig(path string) (*daemonConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &daemonConfig{
		Listen:   ":8402",
		LogLevel: "info",
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *daemonConfig) refreshTick() (time.Duration, error) {
	if c.RefreshTick == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(c.RefreshTick)
}

func (p providerConfig) toParams() schemas.ProviderParams {
	credential := schemas.NoCredential()
	if p.CredentialEnv != "" {
		credential = schemas.SecretCredential(p.CredentialEnv)
	}
	return schemas.ProviderParams{
		Name:                    p.Name,
		Kind:                    schemas.ModelProvider(p.Kind),
		BaseURL:                 p.BaseURL,
		Credential:              credential,
		ExtraHeaders:            p.ExtraHeaders,
		AutoFetchOfficialModels: p.AutoFetch,
	}
}

func main() {
	configPath := flag.String("config", "modelcached.yaml", "path to the daemon config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := schemas.NewDefaultLogger(level)
	lib.SetLogger(logger)

	var store configstore.ConfigStore
	if cfg.SQLitePath != "" {
		sqliteStore, err := configstore.NewSQLiteStore(cfg.SQLitePath, logger)
		if err != nil {
			logger.Error("failed to open config store: %v", err)
			os.Exit(1)
		}
		store = sqliteStore
	} else {
		logger.Warn("no sqlite_path configured, fetch state will not survive restarts")
		store = configstore.NewMemoryStore()
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.New(ctx, catalog.Config{}, catalog.Deps{
		ConfigStore: store,
		Listers:     providers.NewRegistry(logger),
		Secrets:     secrets.EnvResolver{},
		Logger:      logger,
	})
	if err != nil {
		logger.Error("failed to initialize catalog: %v", err)
		os.Exit(1)
	}

	params := make([]schemas.ProviderParams, 0, len(cfg.Providers))
	byName := make(map[string]schemas.ProviderParams, len(cfg.Providers))
	for _, p := range cfg.Providers {
		converted := p.toParams()
		params = append(params, converted)
		byName[converted.Name] = converted
	}

	tick, err := cfg.refreshTick()
	if err != nil {
		logger.Error("invalid refresh_tick: %v", err)
		os.Exit(1)
	}
	go cat.RunRefreshLoop(ctx, tick, func() []schemas.ProviderParams {
		return params
	})

	transportConfig := &lib.Config{
		Catalog:     cat,
		ConfigStore: store,
		LookupProvider: func(name string) (schemas.ProviderParams, bool) {
			p, ok := byName[name]
			return p, ok
		},
		ListProviders: func() []schemas.ProviderParams { return params },
	}

	r := router.New()
	handlers.NewModelsHandler(transportConfig).RegisterRoutes(r)
	handlers.NewHealthHandler(transportConfig).RegisterRoutes(r)

	server := &fasthttp.Server{
		Handler: r.Handler,
		Name:    "modelcached",
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Warn("server shutdown: %v", err)
		}
	}()

	logger.Info("modelcached listening on %s (%d providers)", cfg.Listen, len(params))
	if err := server.ListenAndServe(cfg.Listen); err != nil {
		logger.Error("server error: %v", err)
		os.Exit(1)
	}
}
