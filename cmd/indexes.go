package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/finito-app/expense-tracker/internal"
	expenseMongo "github.com/finito-app/expense-tracker/internal/expense/mongo"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The document store has no migration files; indexes are bootstrapped
// explicitly by this command.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes for the expenses collection",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		ctx, cancel := internal.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			log.Fatalf("failed to connect to mongodb: %v", err)
		}
		defer func() { _ = client.Disconnect(ctx) }()

		db := client.Database(cfg.Mongo.Database)
		if err := expenseMongo.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("failed to create indexes: %v", err)
		}

		fmt.Println("expense indexes created")
	},
}
