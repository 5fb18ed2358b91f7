package main

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kyu49/euonymus/internal/config"
	"github.com/kyu49/euonymus/internal/demo"
	"github.com/kyu49/euonymus/internal/errors"
	"github.com/kyu49/euonymus/pkg/dom"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the initial page as static HTML",
		Long: `Compose the demo app once and write the resulting HTML.

Examples:
  euonymus render
  euonymus render --out=dist/index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			page, err := snapshot(cfg, flags.logger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return errors.New("E051").Wrap(err)
			}
			success(cmd.ErrOrStderr(), "Wrote %s (%d bytes)", out, len(page))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

// snapshot composes a fresh app and renders its page without element ids.
func snapshot(cfg *config.Config, logger *slog.Logger) ([]byte, error) {
	doc := dom.NewDocument(cfg.Name)
	app, err := demo.New(doc, cfg, logger, nil)
	if err != nil {
		return nil, errors.FromBinding(err)
	}
	defer app.Close()

	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
