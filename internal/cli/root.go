package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := serveCmd()

	cmd := &cobra.Command{
		Use:          "marks",
		Short:        "marks: bookmark manager API",
		SilenceUsage: true,
		// bare `marks` behaves like `marks serve`
		RunE: serve.RunE,
	}

	cmd.AddCommand(serve, importCmd(), versionCmd())
	return cmd
}
