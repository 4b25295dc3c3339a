// Command sitetrustd runs the website trust scoring service.
// Usage: sitetrustd [-addr :8080] [-data-dir ./data] [-env-file .env]
// Configuration comes from the environment (see app.ConfigFromEnv); flags
// override it for the common knobs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ravik808/sitetrust/internal/app"
	"github.com/ravik808/sitetrust/internal/capture"
	"github.com/ravik808/sitetrust/internal/cli"
	"github.com/ravik808/sitetrust/internal/logging"
	"github.com/ravik808/sitetrust/internal/server"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sitetrustd:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}

	if flags.EnvFile != "" {
		if err := godotenv.Load(flags.EnvFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", flags.EnvFile, err)
		}
	} else {
		// A .env beside the binary is optional.
		_ = godotenv.Load()
	}

	cfg := app.ConfigFromEnv()
	if flags.Addr != "" {
		cfg.Addr = flags.Addr
	}
	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}
	if flags.CaptureBackend != "" {
		cfg.CaptureCfg.Backend = capture.Backend(flags.CaptureBackend)
	}
	if flags.PublicURL != "" {
		cfg.PublicURL = flags.PublicURL
	}

	logger := logging.NewStdoutLogger("sitetrustd")

	capture.RegisterDefaultBackends()

	comps, err := app.NewComponents(cfg, logger)
	if err != nil {
		return err
	}

	orch := app.NewOrchestrator(cfg, comps, logger)

	srvCfg := server.Config{ListenAddr: cfg.Addr}
	if comps.Screenshots != nil {
		srvCfg.ScreenshotDir = comps.Screenshots.Dir()
	}
	srv := server.NewServer(srvCfg, orch, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.NewApplication(cfg, logger, comps, srv.HTTPServer()).Run(ctx)
}
