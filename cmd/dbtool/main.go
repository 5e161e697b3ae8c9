package main

import (
	"context"
	"flag"
	"log"
	"roadtrip-planner-service/internal/adapters/repositories"
	"roadtrip-planner-service/internal/config"
	"roadtrip-planner-service/internal/platform/db"
	"roadtrip-planner-service/internal/services"
)

// dbtool prepares the remote Postgres trip store: it creates the schema and
// either seeds it from JSON or pushes the local SQLite trip.
func main() {
	cfg := config.Load()
	fromLocal := flag.Bool("from-local", false, "copy the local SQLite trip instead of the JSON seed")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	remote := repositories.NewPostgresTripRepository(conn)

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *fromLocal {
		if err := pushLocal(ctx, cfg.DBPath, remote); err != nil {
			log.Fatalf("sync failed: %v", err)
		}
		return
	}

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, remote, cfg.SeedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func pushLocal(ctx context.Context, dbPath string, remote *repositories.SQLTripRepository) error {
	local, err := db.OpenSqlite(dbPath)
	if err != nil {
		return err
	}
	defer local.Close()

	res, err := services.SyncTrip(ctx, repositories.NewSqliteTripRepository(local), remote)
	if err != nil {
		return err
	}
	log.Printf("Synced activities=%d days=%d", res.Activities, res.Days)
	return nil
}
