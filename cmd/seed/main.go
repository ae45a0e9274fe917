package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dramahub/internal/actors"
	"dramahub/internal/auth"
	"dramahub/internal/genres"
	"dramahub/internal/shows"
	"dramahub/internal/tmdb"
	"dramahub/pkg/database"
	"dramahub/pkg/models"
	"dramahub/pkg/utils"
)

// Seeds a fresh database for demos: a couple of users, the genre mirror,
// the popular show cache and a starter actor set.
func main() {
	withUsers := flag.Bool("users", true, "create demo users")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	provider := tmdb.New(utils.LoadTMDBConfig())

	if *withUsers {
		seedUsers(ctx, db)
	}

	// Genre mirror
	syncer := genres.NewSyncer(genres.NewRepo(db), provider)
	if _, err := syncer.Sync(ctx); err != nil {
		log.Printf("genre sync failed, continuing: %v", err)
	} else {
		log.Println("genre mirror synced")
	}

	// Popular show cache
	showResolver := shows.NewResolver(shows.NewRepo(db), provider)
	popular, err := showResolver.Popular(ctx, 20)
	if err != nil {
		log.Fatalf("popular show warm-up failed: %v", err)
	}
	log.Printf("cached %d popular shows", len(popular))

	// Actor cache: popular people straight from the provider, then the
	// credit-derived sweep fills in anyone the listing missed.
	actorRepo := actors.NewRepo(db)
	people, err := provider.PopularPeople(ctx)
	if err != nil {
		log.Printf("popular people fetch failed, continuing: %v", err)
	} else {
		for _, p := range people {
			if _, err := actorRepo.Upsert(ctx, models.Actor{
				TMDBID:     p.ID,
				Name:       p.Name,
				PhotoURL:   provider.ImageURL("w500", p.ProfilePath),
				Popularity: p.Popularity,
			}); err != nil {
				log.Fatalf("actor upsert failed: %v", err)
			}
		}
		log.Printf("cached %d popular actors", len(people))
	}

	actorResolver := actors.NewResolver(actorRepo, provider)
	if _, err := actorResolver.Popular(ctx, 20); err != nil {
		log.Printf("actor sweep failed, continuing: %v", err)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, db *sql.DB) {
	repo := auth.NewRepo(db)

	demo := []struct {
		username, email, password string
	}{
		{"drama_fan", "fan@example.com", "password123"},
		{"kmovie_critic", "critic@example.com", "password123"},
	}

	for _, d := range demo {
		if u, _ := repo.GetByUsername(ctx, d.username); u != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if err := repo.CreateUser(ctx, auth.User{
			ID:           uuid.NewString(),
			Username:     d.username,
			Email:        d.email,
			PasswordHash: string(hash),
		}); err != nil {
			log.Fatalf("create user %s: %v", d.username, err)
		}
		log.Printf("created demo user %s", d.username)
	}
}
