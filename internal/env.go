// Package internal holds process-wide settings sourced from flags and the
// environment. Flags win over environment variables, which win over
// defaults.
package internal

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Settings populated by RegisterCommandFlags before command execution.
var (
	Env           = "dev"
	LogLevel      = "info"
	ConfigPath    = "trackemu.yaml"
	ServerAddress = ""
)

// Flag binds one string setting to a cobra flag and an environment variable.
type Flag struct {
	Name    string
	EnvVar  string
	Default string
	Usage   string
	Target  *string
}

var (
	EnvFlag = Flag{
		Name:    "env",
		EnvVar:  "TRACKEMU_ENV",
		Default: "dev",
		Usage:   "deployment environment (dev or prod)",
		Target:  &Env,
	}
	LogLevelFlag = Flag{
		Name:    "log-level",
		EnvVar:  "TRACKEMU_LOG_LEVEL",
		Default: "info",
		Usage:   "log level (trace, debug, info, warn, error)",
		Target:  &LogLevel,
	}
	ConfigPathFlag = Flag{
		Name:    "config",
		EnvVar:  "TRACKEMU_CONFIG",
		Default: "trackemu.yaml",
		Usage:   "path to the fleet configuration file",
		Target:  &ConfigPath,
	}
	ServerAddressFlag = Flag{
		Name:    "server",
		EnvVar:  "TRACKEMU_SERVER",
		Default: "",
		Usage:   "override the server address from the fleet configuration",
		Target:  &ServerAddress,
	}
)

// RegisterCommandFlags wires the given flags onto a command.
func RegisterCommandFlags(cmd *cobra.Command, flags []*Flag) error {
	for _, f := range flags {
		if f.Target == nil {
			return errors.Errorf("flag %s has no target", f.Name)
		}
		def := f.Default
		if v, ok := os.LookupEnv(f.EnvVar); ok {
			def = v
		}
		cmd.PersistentFlags().StringVar(f.Target, f.Name, def, f.Usage)
	}
	return nil
}

// ValidateEnv checks the populated settings for obvious misconfiguration.
func ValidateEnv() error {
	switch Env {
	case "dev", "prod":
	default:
		return errors.Errorf("invalid env %q", Env)
	}
	switch strings.ToLower(LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log level %q", LogLevel)
	}
	return nil
}
