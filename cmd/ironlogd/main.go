// Command ironlogd runs the ironlog engine as a standalone process:
// it loads a config file, starts the engine, optionally serves the
// admin surface, and shuts down gracefully on SIGINT/SIGTERM. Grounded
// on the teacher's cmd/weblogproxy/main.go (flag parsing, version flag,
// config-test flag, graceful-shutdown signal handling).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironlog/ironlog/internal/admin"
	"github.com/ironlog/ironlog/internal/applog"
	"github.com/ironlog/ironlog/internal/config"
	"github.com/ironlog/ironlog/internal/engine"
	"github.com/ironlog/ironlog/internal/version"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the configuration file")
	testConfigShort := flag.Bool("t", false, "Test configuration and exit (nginx style)")
	testConfigLong := flag.Bool("test", false, "Test configuration and exit (nginx style)")
	showVersion := flag.Bool("version", false, "Show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.VersionInfo())
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("[CRITICAL] Failed to load configuration from '%s': %v\n", *configPath, err)
		os.Exit(1)
	}

	if *testConfigShort || *testConfigLong {
		fmt.Printf("Configuration '%s' is valid.\n", *configPath)
		os.Exit(0)
	}

	appLogger := applog.Get()
	if err := appLogger.SetLevelFromString(cfg.MinLevel); err != nil {
		fmt.Printf("[WARN] Invalid log level '%s', using default\n", cfg.MinLevel)
	}
	appLogger.Warn("%s", version.VersionInfo())

	opts, err := config.BuildOptions(cfg)
	if err != nil {
		appLogger.Fatal("Failed to build engine options: %v", err)
	}

	eng, err := engine.New(opts)
	if err != nil {
		appLogger.Fatal("Failed to construct engine: %v", err)
	}
	if err := eng.Init(); err != nil {
		appLogger.Fatal("Failed to initialize engine: %v", err)
	}

	var adminSrv *admin.Server
	if cfg.Admin.Enabled {
		adminSrv = admin.NewServer(eng, admin.Config{Host: cfg.Admin.Host, Port: cfg.Admin.Port})
		go func() {
			if err := adminSrv.Start(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Admin server error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Received shutdown signal.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if adminSrv != nil {
		if err := adminSrv.Shutdown(ctx); err != nil {
			appLogger.Error("Admin server forced to shutdown: %v", err)
		}
	}

	if err := eng.Dispose(); err != nil {
		appLogger.Error("Engine disposal error: %v", err)
	}

	appLogger.Info("ironlogd shut down gracefully.")
}
