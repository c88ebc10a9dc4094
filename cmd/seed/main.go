package main

import (
	"context"
	"log"
	"time"

	"github.com/Kokatesrushti/Testbook/internal/catalog"
	"github.com/Kokatesrushti/Testbook/internal/config"
	"github.com/Kokatesrushti/Testbook/internal/db"
	"github.com/Kokatesrushti/Testbook/internal/seed"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	if err := seed.Run(ctx, dbh, catalog.NewSQLStore(dbh)); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seed complete (db=%s)", cfg.DBDriver)
}
