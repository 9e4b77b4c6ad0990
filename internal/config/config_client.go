package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ClientConfig is the configuration of the kioskctl command-line client.
type ClientConfig struct {
	// Adapter contains the server address, timeout and device identity.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// LogFile is where kioskctl writes its logs. Empty means stderr.
	LogFile string `env:"KIOSKCTL_LOG_FILE"`
}

// GetClientConfig builds and validates the kioskctl configuration from the
// environment and the global flags in args. It returns the arguments left
// after the flags (the subcommand and its operands).
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("kioskctl", flag.ContinueOnError)
	flagCfg := &ClientConfig{}
	var timeout time.Duration
	fs.StringVar(&flagCfg.Adapter.HTTPAddress, "server", "", "kiosk-gate server base URL")
	fs.StringVar(&flagCfg.Adapter.DeviceID, "device", "", "device identifier of this kiosk")
	fs.DurationVar(&timeout, "timeout", 0, "request timeout (e.g., 10s)")
	fs.StringVar(&flagCfg.LogFile, "log-file", "", "log file path")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}
	flagCfg.Adapter.RequestTimeout = timeout

	defaults := &ClientConfig{Adapter: defaultConfig().Adapter}

	cfg := new(ClientConfig)
	var err error
	for _, src := range []*ClientConfig{flagCfg, envCfg, defaults} {
		err = errors.Join(err, mergo.Merge(cfg, src))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error merging configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}
