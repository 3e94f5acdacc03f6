package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marks/internal/app"
	"github.com/MrSnakeDoc/marks/internal/config"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (configured through MARKS_* environment variables)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg.LogLevel, cfg.PrettyLog)

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("failed to start", logger.Error(err))
				return err
			}
			defer a.Close()

			return a.Run()
		},
	}
}
