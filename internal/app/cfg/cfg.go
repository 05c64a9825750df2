// Package cfg implements functionality to configure an app.
//
// The configuration objects defined here need only be implemented once,
// but can be applied to multiple types.
//
// In order to add support for a new type, the configuration
// need only implement an ApplyX method.
package cfg

import (
	"net"
	"strconv"

	"github.com/JovannMC/tracker-emulation-go/internal"
	"github.com/JovannMC/tracker-emulation-go/internal/app/apps"

	"github.com/pkg/errors"
)

// ConfigPathCfg is configuration for the fleet config file location.
type ConfigPathCfg struct {
	path string
}

// NewConfigPathCfg creates a new ConfigPathCfg from the given path.
func NewConfigPathCfg(path string) *ConfigPathCfg {
	return &ConfigPathCfg{path: path}
}

// ConfigPathFromEnv creates a new ConfigPathCfg from the current environment.
func ConfigPathFromEnv() *ConfigPathCfg {
	return &ConfigPathCfg{path: internal.ConfigPath}
}

// ApplyRunApp applies the ConfigPathCfg to a RunApp.
func (cfg ConfigPathCfg) ApplyRunApp(app *apps.RunApp) error {
	app.ConfigPath = cfg.path
	return nil
}

// ServerAddressCfg is configuration for the server endpoint override.
type ServerAddressCfg struct {
	address string
}

// ServerAddressFromEnv creates a new ServerAddressCfg from the current
// environment. An empty address leaves the fleet config untouched.
func ServerAddressFromEnv() *ServerAddressCfg {
	return &ServerAddressCfg{address: internal.ServerAddress}
}

// ApplyRunApp applies the ServerAddressCfg to a RunApp.
func (cfg ServerAddressCfg) ApplyRunApp(app *apps.RunApp) error {
	app.ServerAddress = cfg.address
	return nil
}

// ApplyFakeServerApp applies the ServerAddressCfg to a FakeServerApp,
// taking only the port component.
func (cfg ServerAddressCfg) ApplyFakeServerApp(app *apps.FakeServerApp) error {
	if cfg.address == "" {
		return nil
	}
	_, portStr, err := net.SplitHostPort(cfg.address)
	if err != nil {
		return errors.Wrapf(err, "split server address %q failed", cfg.address)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.Wrapf(err, "parse server port %q failed", portStr)
	}
	app.Port = port
	return nil
}
