package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/app"
	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/importer"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func importCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "import <file>",
		Short: "Import bookmarks from a YAML, Homepage or Netscape HTML file",
		Long: `Imports bookmarks into the configured store. Entries whose URL is already
registered are skipped, invalid entries are counted as failed.

The format is detected from the extension (.html/.htm => html, otherwise
yaml) unless --format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg := config.Load()
			log := logger.New(cfg.LogLevel, cfg.PrettyLog)

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Import(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	c.Flags().StringVarP(&format, "format", "f", "", "File format: yaml, homepage or html (default: detect from extension)")
	return c
}
