package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/collections_app/internal/core/ports/services"
	"github.com/SscSPs/collections_app/internal/core/services"
	"github.com/SscSPs/collections_app/internal/platform/config"
	"github.com/SscSPs/collections_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/collections_app/pkg/database"
	"github.com/SscSPs/collections_app/pkg/rabbitmq"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		agencyID int64
		clientID int64
	)

	cmd := &cobra.Command{
		Use:   "import [file.csv]",
		Short: "Import accounts and consumers from a CSV file",
		Long: `Reconcile accounts and consumers from a CSV file, exactly as the upload endpoint does.
The import is all-or-nothing; the resulting counts are printed as JSON.

Examples:
  collectionsctl import --agency-id 1 --client-id 4 accounts.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			pool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL, true)
			if err != nil {
				return err
			}
			defer pool.Close()

			publisher := eventPublisher(cfg)
			defer publisher.Close()

			svc := services.NewServiceContainer(pgsql.NewRepositoryProvider(pool), publisher)
			result, err := svc.Import.ImportAccountsCSV(cmd.Context(), agencyID, clientID, file)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().Int64Var(&agencyID, "agency-id", 0, "collection agency ID")
	cmd.Flags().Int64Var(&clientID, "client-id", 0, "client ID (must belong to the agency)")
	_ = cmd.MarkFlagRequired("agency-id")
	_ = cmd.MarkFlagRequired("client-id")

	return cmd
}

func eventPublisher(cfg *config.Config) portssvc.EventPublisher {
	if cfg.AMQPURL == "" {
		return rabbitmq.NoopPublisher{}
	}
	producer, err := rabbitmq.NewEventProducer(cfg.AMQPURL, cfg.EventsExchange)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, import event will not be published", slog.String("error", err.Error()))
		return rabbitmq.NoopPublisher{}
	}
	return producer
}
