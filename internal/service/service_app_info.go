package service

import (
	"context"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/models"
)

type appInfoService struct {
	build models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports build metadata. A build without a linker-set
// version falls back to cfg.Version, which must not be empty.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	if build.BuildVersion() == "" || build.BuildVersion() == "N/A" {
		build = models.NewAppBuildInfo(cfg.Version, build.BuildDate(), build.BuildCommit())
	}

	return &appInfoService{
		build:  build,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.build.BuildVersion()
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.build
}
