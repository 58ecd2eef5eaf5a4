package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/logging"
)

const (
	name           = "enablement"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 2
)

// newRootCmd returns the root command writing to out and errOut.
func newRootCmd(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Generate IBM Cloud delivery toolchain and Kubernetes deployment artifacts",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Writer:                out,
		ErrWriter:             errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (json, text)",
				Value: logging.FormatJSON,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logFormat := cmd.String("log-format")
			if logFormat != logging.FormatJSON && logFormat != logging.FormatText {
				return ctx, fmt.Errorf("--log-format must be %q or %q, got %q",
					logging.FormatJSON, logging.FormatText, logFormat)
			}
			logging.SetDefaultLogger(name, version, cmd.String("log-level"), logFormat)
			return ctx, nil
		},
		Commands: []*cli.Command{
			generateCmd(),
			languagesCmd(),
			verifyCmd(),
		},
	}
}

// Execute runs the CLI with os.Args and exits with a status reflecting
// the outcome. It is called once by main.main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout, os.Stderr).Run(ctx, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("Error: ")+err.Error())
	}
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case stderrors.Is(err, context.Canceled),
		stderrors.Is(err, context.DeadlineExceeded),
		errors.IsCode(err, errors.ErrCodeTimeout):
		return exitCancelled
	default:
		return exitError
	}
}
