package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("DRAMAHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("DRAMAHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "dramahub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("DRAMAHUB_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			duration = time.Duration(h) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

// TMDBConfig carries everything the provider client needs. Image URLs are
// built server-side by joining ImageBaseURL with the provider's relative
// path, so clients never see raw poster paths.
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
}

func LoadTMDBConfig() TMDBConfig {
	base := os.Getenv("TMDB_BASE_URL")
	if base == "" {
		base = "https://api.themoviedb.org/3"
	}

	imageBase := os.Getenv("TMDB_IMAGE_BASE_URL")
	if imageBase == "" {
		imageBase = "https://image.tmdb.org/t/p"
	}

	return TMDBConfig{
		APIKey:       os.Getenv("TMDB_API_KEY"),
		BaseURL:      base,
		ImageBaseURL: imageBase,
	}
}
