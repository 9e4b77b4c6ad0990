package service

import (
	"errors"

	"github.com/MKhiriev/kiosk-gate/internal/config"
	"github.com/MKhiriev/kiosk-gate/internal/crypto"
	"github.com/MKhiriev/kiosk-gate/internal/logger"
	"github.com/MKhiriev/kiosk-gate/internal/store"
	"github.com/MKhiriev/kiosk-gate/internal/utils"
	"github.com/MKhiriev/kiosk-gate/models"
)

var ErrTokenSignKeyIsNotSpecified = errors.New("token sign key is not specified")

// Services is the service object owning the credential core. Handlers and
// workers reach the stores only through it.
type Services struct {
	Sessions SessionManager
	Signup   SignupService
	Profiles ProfileService
	Lockout  LockoutPolicy
	Audit    AuditLog
	Notifier Notifier
	AppInfo  AppInfoService
}

// Option overrides a collaborator of NewServices.
type Option func(*core)

// WithClock replaces the wall clock.
func WithClock(clock utils.Clock) Option {
	return func(c *core) { c.clock = clock }
}

// WithIDGenerator replaces the UUIDv7 generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(c *core) { c.ids = ids }
}

// WithNotifier replaces the default in-process notifier.
func WithNotifier(n Notifier) Option {
	return func(c *core) { c.notifier = n }
}

func NewServices(
	storage store.Storage,
	hasher crypto.CredentialHasher,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
	opts ...Option,
) (*Services, error) {
	if cfg.App.TokenSignKey == "" {
		return nil, ErrTokenSignKeyIsNotSpecified
	}

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	c := &core{
		storage:      storage,
		hasher:       hasher,
		clock:        utils.SystemClock{},
		ids:          utils.NewUUIDGenerator(),
		profileLocks: newKeyedMutex(),
		tokenSignKey: cfg.App.TokenSignKey,
		tokenIssuer:  cfg.App.TokenIssuer,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = NewNotifier(logger)
	}
	c.audit = newAuditLog(storage, c.ids, c.clock, logger)
	c.lockout = newLockoutPolicy(storage, logger)

	resetPIN := cfg.App.ResetPIN
	if resetPIN == "" {
		resetPIN = DefaultResetPIN
	}

	return &Services{
		Sessions: &sessionManager{core: c},
		Signup:   &signupValidator{core: c, nameLocks: newKeyedMutex()},
		Profiles: &profileService{core: c, resetPIN: resetPIN},
		Lockout:  c.lockout,
		Audit:    c.audit,
		Notifier: c.notifier,
		AppInfo:  appInfo,
	}, nil
}
