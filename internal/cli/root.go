package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jimdowning-cyclops/semver-next-go/internal/logging"
	"github.com/jimdowning-cyclops/semver-next-go/internal/version"
)

const name = "semver-next"

// NewCommand returns the root command. buildVersion is shown by --version
// and attached to log records.
func NewCommand(buildVersion string) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Parse, compare and increment semantic versions",
		Version:               buildVersion,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: string(logging.FormatText),
				Usage: "log format (text, json)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging, same as --log-level=debug",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject numeric components with leading zeros",
			},
			formatFlag(),
		},
		Before: setup,
		Commands: []*cli.Command{
			bumpCmd(),
			compareCmd(),
			sortCmd(),
			validateCmd(),
			nextCmd(),
		},
	}
}

// setup validates the global flags and installs the default logger.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if _, err := outputFormat(cmd); err != nil {
		return ctx, err
	}

	logFormat := logging.Format(cmd.String("log-format"))
	if logFormat != logging.FormatText && logFormat != logging.FormatJSON {
		return ctx, fmt.Errorf("unknown log format: %q", logFormat)
	}

	level := cmd.String("log-level")
	if cmd.Bool("verbose") || isTruthy(os.Getenv("verbose")) {
		level = "debug"
	}

	logger := logging.SetDefaultStructuredLoggerWithLevel(errWriter(cmd), logFormat, name, cmd.Root().Version, level)
	logger.Debug("starting", "command", cmd.Args().First())

	return ctx, nil
}

func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// writer returns where results go.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// parseVersion honors the global --strict flag.
func parseVersion(cmd *cli.Command, s string) (version.Version, error) {
	if cmd.Bool("strict") {
		return version.ParseStrict(s)
	}
	return version.Parse(s)
}

func wantArgs(cmd *cli.Command, n int, usage string) error {
	if got := cmd.NArg(); got != n {
		return fmt.Errorf("%s: expected %d argument(s) %s, got %d", cmd.Name, n, usage, got)
	}
	return nil
}
