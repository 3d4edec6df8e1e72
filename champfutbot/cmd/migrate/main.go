package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/champfut/champfutbot/champfutbot/database"
	"github.com/champfut/champfutbot/champfutbot/migration"
)

func main() {
	var (
		dataDir   = flag.String("data", "./data", "directory holding the legacy BSON dumps")
		batchSize = flag.Int("batch", 1000, "insert batch size")
	)
	flag.Parse()

	ctx := context.Background()

	db, err := database.New(ctx, database.DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "root",
		Database: "postgres",
		PoolSize: 10,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	migrator := migration.NewMigrator(db.BunDB(), *dataDir)
	migrator.SetBatchSize(*batchSize)

	if err := migrator.MigrateAll(ctx); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Migration completed successfully!")
}
