package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"riskstat/adapters/ingest"
	"riskstat/adapters/postgres"
	"riskstat/api"
	"riskstat/app"
	"riskstat/domain/sample"
	"riskstat/internal/config"
	"riskstat/internal/errors"
	"riskstat/internal/migration"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	defaultMode, err := sample.ParseVarianceMode(appConfig.Stats.DefaultMode)
	if err != nil {
		log.Fatalf("Invalid VARIANCE_MODE: %v", err)
	}

	reader := ingest.NewDataReader(
		ingest.WithSheet(appConfig.Ingest.Sheet),
		ingest.WithMaxRows(appConfig.Ingest.MaxRows),
	)
	repo := postgres.NewSeriesRepository(db)

	sweepService := app.NewSweepService(reader, repo, appConfig.Stats.SweepWorkers)
	seriesService := app.NewSeriesService(repo)

	server := api.NewServer(api.Config{DefaultMode: defaultMode}, sweepService, seriesService)
	if err := server.ListenAndServe(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
