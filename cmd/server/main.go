package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/crypto"
	"github.com/MKhiriev/kiosk-gate/internal/handler"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/server"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/internal/workers"
	"github.com/MKhiriev/kiosk-gate/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("kiosk-gate-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("state_file", cfg.Storage.StateFile).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	hasher := crypto.NewCredentialHasher(cfg.App.HashConcurrency)

	services, err := service.NewServices(storages, hasher, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bgWorkers := workers.NewWorkers(services, cfg.Workers, log)

	srv, err := server.NewServer(handlers, cfg.Server, log,
		server.OnShutdown(bgWorkers.Stop),
		server.OnShutdown(func() {
			if err := storages.Close(); err != nil {
				log.Err(err).Msg("error closing storages")
			}
		}),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bgWorkers.Start(ctx)
	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
