// Package main is the tracker emulator entrypoint.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/JovannMC/tracker-emulation-go/internal"
	"github.com/JovannMC/tracker-emulation-go/internal/app/apps"
	"github.com/JovannMC/tracker-emulation-go/internal/app/cfg"
	"github.com/JovannMC/tracker-emulation-go/internal/pkg/log"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CLI command definitions.
var (
	logger logrus.FieldLogger = logrus.StandardLogger()

	rootCmd = &cobra.Command{
		Use: "trackemu",
		RunE: func(*cobra.Command, []string) error {
			return nil
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "Emulates a fleet of trackers against a server.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			if _, err := os.Stat(args[0]); err != nil {
				return errors.Wrapf(err, "config file %q not usable", args[0])
			}
			return nil
		},
		RunE: runE,
	}

	serveCmd = &cobra.Command{
		Use:   "serve-fake",
		Short: "Runs a fake aggregation server for local testing.",
		RunE:  runE,
	}
)

func newApp(_ context.Context, cmd *cobra.Command, args []string) (apps.App, []string, error) {
	var err error
	var app apps.App
	switch cmd.Name() {
	case "run":
		app, err = apps.NewRunApp(cfg.ConfigPathFromEnv(), cfg.ServerAddressFromEnv())
		if err != nil {
			return nil, nil, errors.Wrap(err, "new run app failed")
		}
		args = append([]string{cmd.Name()}, args...)
		return app, args, nil
	case "serve-fake":
		app, err = apps.NewFakeServerApp(cfg.ServerAddressFromEnv())
		if err != nil {
			return nil, nil, errors.Wrap(err, "new fake server app failed")
		}
		args = append([]string{cmd.Name()}, args...)
		return app, args, nil
	default:
		return nil, nil, fmt.Errorf("unknown command: %s", cmd.Name())
	}
}

func runE(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := chainedCheck(
		ctx,
		envCheck,
	); err != nil {
		return errors.Wrap(err, "chained check failed")
	}
	app, args, err := newApp(cmd.Context(), cmd, args)
	if err != nil {
		return errors.Wrapf(err, "new %s app failed", cmd.Name())
	}
	return errors.Wrap(app.Run(ctx, args), "run app failed")
}

func envCheck(ctx context.Context) error {
	err := internal.ValidateEnv()
	if err != nil {
		return errors.Wrap(err, "validate env failed")
	}
	log.SetLogger(internal.LogLevel)
	return nil
}

func chainedCheck(ctx context.Context, checks ...func(context.Context) error) error {
	for _, check := range checks {
		err := check(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	err := internal.RegisterCommandFlags(rootCmd, []*internal.Flag{
		&internal.EnvFlag,
		&internal.LogLevelFlag,

		&internal.ConfigPathFlag,
		&internal.ServerAddressFlag,
	})
	if err != nil {
		logger.Fatalln(err)
	}

	rootCmd.AddCommand(
		runCmd,
		serveCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(errors.Wrap(err, "execute root command failed"))
	}
}
