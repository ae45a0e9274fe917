package main

import (
	"context"
	"log"
	"time"

	"dramahub/internal/genres"
	"dramahub/internal/tmdb"
	"dramahub/pkg/database"
	"dramahub/pkg/utils"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	provider := tmdb.New(utils.LoadTMDBConfig())
	syncer := genres.NewSyncer(genres.NewRepo(db), provider)

	res, err := syncer.Sync(ctx)
	if err != nil {
		log.Fatalf("genre sync failed: %v", err)
	}

	if res.Changed {
		log.Printf("genre mirror replaced: %d genres", len(res.Genres))
	} else {
		log.Printf("genre mirror already current: %d genres", len(res.Genres))
	}
}
