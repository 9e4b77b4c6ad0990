package http

import (
	"time"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/service"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
)

type Handler struct {
	services *service.Services

	limiter        *deviceLimiter
	requestTimeout time.Duration
	clock          utils.Clock

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limiter:        newDeviceLimiter(cfg.RateLimit, cfg.RateBurst),
		requestTimeout: cfg.RequestTimeout,
		clock:          utils.SystemClock{},
		logger:         logger,
	}
}
