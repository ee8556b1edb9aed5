package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/gotex/cmd/gotex/check"
	"github.com/walteh/gotex/cmd/gotex/expansions"
	"github.com/walteh/gotex/cmd/gotex/scan"
	texdebug "github.com/walteh/gotex/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "gotex",
		Short: "A front end for TeX dialects: tokenize sources, check definitions, dump expansions",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(scan.NewScanCommand())
	rootCmd.AddCommand(check.NewCheckCommand())
	rootCmd.AddCommand(expansions.NewExpansionsCommand())

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// The logger has to wait for flag parsing, so it is attached in
	// PersistentPreRun rather than up front.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}

		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().
			Str("run_id", uuid.New().String()).
			Logger().
			Level(level).
			Hook(texdebug.CustomTimeHook{WithColor: true}).
			Hook(texdebug.CustomCallerHook{WithColor: true})

		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
