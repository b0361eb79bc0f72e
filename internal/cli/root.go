package cli

import (
	"log/slog"

	"github.com/safar/teebay/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the teebay command tree. Running it without a
// subcommand starts the API server.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "teebay",
		Short:         "teebay marketplace API",
		Long:          "Buy, sell and rent products between users over a GraphQL API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Log.Logger()
	slog.SetDefault(logger)
	return cfg, logger, nil
}
