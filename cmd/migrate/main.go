package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"skinrisk/adapters/classifier/logistic"
	"skinrisk/adapters/postgres"
	"skinrisk/domain/survey"
	"skinrisk/internal/migration"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <model_json>... (DATABASE_URL from the environment)")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema at version %s", runner.Version())

	repo := postgres.NewModelRepository(db)
	schema := survey.DefaultSchema()

	imported, skipped := 0, 0
	for _, file := range os.Args[1:] {
		m, err := logistic.ReadModelFile(file)
		if err != nil {
			log.Printf("Failed to read %s: %v", file, err)
			skipped++
			continue
		}
		if m.Version == "" {
			m.Version = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}
		if err := m.Validate(schema); err != nil {
			log.Printf("Model in %s does not fit the survey schema: %v", file, err)
			skipped++
			continue
		}
		if err := repo.Save(ctx, m); err != nil {
			log.Printf("Failed to save %s: %v", m.Label(), err)
			skipped++
			continue
		}
		log.Printf("Imported %s (%s) as active", m.Label(), m.Fingerprint().Short())
		imported++
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
	if skipped > 0 {
		os.Exit(1)
	}
}
