package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/safar/teebay/internal/account"
	"github.com/safar/teebay/internal/auth"
	"github.com/safar/teebay/internal/booking"
	"github.com/safar/teebay/internal/catalog"
	"github.com/safar/teebay/internal/database"
	"github.com/safar/teebay/internal/draft"
	"github.com/safar/teebay/internal/graph"
	"github.com/safar/teebay/internal/server"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("connected to database")

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	resolver := graph.NewResolver(
		account.NewService(account.NewPostgresRepo(db), issuer, cfg.Auth.BcryptCost, logger),
		catalog.NewService(catalog.NewPostgresRepo(db), logger),
		draft.NewManager(draft.NewPostgresStore(db), logger),
		booking.NewEngine(booking.NewPostgresStore(db), logger),
		logger,
	)

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return err
	}

	return server.New(cfg.Server, schema, issuer, logger).Run(ctx)
}
