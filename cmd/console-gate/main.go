// Package main provides the entry point for console-gate.
//
// console-gate is the session and authentication front door for the
// cloud management console. It dispatches browser actions, keeps the
// in-memory session store and delegates credential checks to the
// cloud controller.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cloudward/console-gate/internal/auth"
	"github.com/cloudward/console-gate/internal/core/service"
	"github.com/cloudward/console-gate/internal/infra/buildinfo"
	"github.com/cloudward/console-gate/internal/infra/confloader"
	"github.com/cloudward/console-gate/internal/infra/shutdown"
	"github.com/cloudward/console-gate/internal/server/config"
	"github.com/cloudward/console-gate/internal/server/httpserver"
	"github.com/cloudward/console-gate/internal/server/httpserver/handler"
	"github.com/cloudward/console-gate/internal/storage/memory"
	"github.com/cloudward/console-gate/internal/telemetry/logger"
	"github.com/cloudward/console-gate/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "console-gate",
		Usage:   "session and authentication front door for the cloud console",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"CONSOLE_GATE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "listen",
				Usage: "listen address, overrides the configured one",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level, overrides the configured one",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	configFile := c.String("config")

	cfg, err := loadConfig(configFile, c.String("listen"), c.String("log-level"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	log.Info("starting console-gate",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", configFile,
		"mock_auth", cfg.Auth.UseMock)

	configs := config.NewStore(cfg)
	metrics := metric.New()
	store := memory.New(memory.WithLogger(log))

	authenticator := auth.New(auth.Config{
		UseMock:        cfg.Auth.UseMock,
		CLCHost:        cfg.Server.CLCHost,
		CLCPort:        cfg.Server.CLCPort,
		SessionTimeout: cfg.Session.AbsoluteTimeout,
	})

	sessions := service.NewSessionService(store, authenticator, metrics, log, service.SessionConfig{
		IdleTimeout:  cfg.Session.AbsoluteTimeout,
		ReapInterval: cfg.Session.ReapInterval,
	})
	global := service.NewGlobalInfoService(configs)

	h := handler.New(handler.Config{
		Sessions:    sessions,
		Global:      global,
		Metrics:     metrics,
		Logger:      log,
		RememberFor: cfg.Session.RememberDuration,
		StaticDir:   cfg.Server.StaticPath,
	})

	router := httpserver.NewRouter(h, httpserver.RouterConfig{
		Logger:             log,
		Metrics:            metrics,
		LoginRatePerMinute: cfg.Session.LoginRatePerMinute,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	go sessions.RunReaper(reaperCtx)
	shutdownHandler.OnShutdown(func(context.Context) error {
		stopReaper()
		return nil
	})

	if configFile != "" {
		watcher, err := startConfigWatcher(configFile, configs, log)
		if err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
		shutdownHandler.OnShutdown(func(context.Context) error {
			watcher.Stop()
			return nil
		})
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.HTTP.Addr)

		var err error
		if cfg.Server.HTTP.TLSCertFile != "" && cfg.Server.HTTP.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.HTTP.TLSCertFile, cfg.Server.HTTP.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig merges defaults, the config file, the environment and
// command line overrides, in that order.
func loadConfig(path, listen, logLevel string) (*config.ServerConfig, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithEnvPrefix("CONSOLE_GATE_"),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if listen != "" {
		cfg.Server.HTTP.Addr = listen
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startConfigWatcher reloads the configuration snapshot whenever the
// file changes. A reload that fails verification is logged and
// dropped; the previous snapshot stays in effect.
func startConfigWatcher(path string, configs *config.Store, log *slog.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(path, log)
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(changed string) {
		cfg, err := loadConfig(changed, "", "")
		if err != nil {
			log.Error("config reload failed, keeping previous", "error", err)
			return
		}
		configs.Replace(cfg)
		logger.SetLevel(cfg.Log.Level)
		log.Info("configuration reloaded", "path", changed)
	})

	go watcher.Start()
	return watcher, nil
}
