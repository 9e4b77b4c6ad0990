package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/kiosk-gate/internal/adapter"
	"github.com/MKhiriev/kiosk-gate/internal/app"
	"github.com/MKhiriev/kiosk-gate/internal/client"
	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "kioskctl: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewFileLogger("kioskctl", cfg.LogFile)
	log.Debug().
		Str("build_version", buildVersion).
		Str("build_date", buildDate).
		Str("build_commit", buildCommit).
		Str("server", cfg.Adapter.HTTPAddress).
		Str("device_id", cfg.Adapter.DeviceID).
		Msg("kioskctl started")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Err(err).Msg("create server adapter")
		fmt.Fprintf(os.Stderr, "kioskctl: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kioskctl := client.NewApp(serverAdapter, tui.New(serverAdapter, log), os.Stdout, log)
	if err = kioskctl.Run(ctx, args, os.Stdin); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return
		}
		log.Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "kioskctl: %s\n", app.Describe(err))
		stop()
		os.Exit(1)
	}
}
