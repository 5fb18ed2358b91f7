// Command euonymus serves, renders and publishes the euonymus demo app.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "euonymus",
		Short: "Reactive cells and components, served live",
		Long: `euonymus runs the todo demo built on reactive cells and
declarative components.

  serve     run the live server
  render    write the initial page as static HTML
  publish   upload the rendered page to S3`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (.json, .toml, .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		serveCmd(flags),
		renderCmd(flags),
		publishCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// load returns the configuration named by --config, or the defaults.
func (f *globalFlags) load() (*config.Config, error) {
	if f.configPath == "" {
		return config.New(), nil
	}
	return config.Load(f.configPath)
}

func (f *globalFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
