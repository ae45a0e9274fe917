package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"dramahub/internal/actors"
	"dramahub/internal/auth"
	"dramahub/internal/comments"
	"dramahub/internal/feed"
	"dramahub/internal/follows"
	"dramahub/internal/genres"
	"dramahub/internal/likes"
	"dramahub/internal/reviews"
	"dramahub/internal/shows"
	"dramahub/internal/tmdb"
	"dramahub/internal/users"
	"dramahub/internal/watchlist"
	"dramahub/pkg/database"
	"dramahub/pkg/utils"
)

func main() {
	cfg := database.DefaultConfig()
	db := database.MustOpen(cfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Live feed: TCP + WebSocket fan-out
	hub := feed.NewHub()
	router.GET("/ws", feed.WSHandler(hub))
	tcpSrv := feed.NewServer(":7070", hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": cfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":          cfg.Path,
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	// Auth
	authCfg := utils.LoadAuthConfig()
	tokenSvc := auth.TokenService{
		Secret:   []byte(authCfg.JWTSecret),
		Issuer:   authCfg.JWTIssuer,
		Duration: authCfg.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	authHandler := auth.NewHandler(authRepo, tokenSvc)
	authHandler.RegisterRoutes(router.Group("/auth"))

	// TMDB provider
	provider := tmdb.New(utils.LoadTMDBConfig())

	// Catalog (public)
	showRepo := shows.NewRepo(db)
	showResolver := shows.NewResolver(showRepo, provider)
	shows.NewHandler(showResolver).RegisterRoutes(router.Group("/shows"))

	genreRepo := genres.NewRepo(db)
	genreSyncer := genres.NewSyncer(genreRepo, provider)
	genres.NewHandler(genreRepo, genreSyncer).RegisterRoutes(router.Group("/genres"))

	// Actors personalize follow state when a valid token is present.
	followRepo := follows.NewRepo(db)
	actorRepo := actors.NewRepo(db)
	actorResolver := actors.NewResolver(actorRepo, provider)
	actorGroup := router.Group("/actors")
	actorGroup.Use(auth.OptionalMiddleware(tokenSvc, authRepo))
	actors.NewHandler(actorResolver, followRepo).RegisterRoutes(actorGroup)

	// Social surface: readable anonymously, writable with a token.
	public := router.Group("")
	protected := router.Group("")
	protected.Use(auth.Middleware(tokenSvc, authRepo))

	watchlistRepo := watchlist.NewRepo(db)
	watchlist.NewHandler(watchlistRepo, hub).RegisterRoutes(protected)

	reviewRepo := reviews.NewRepo(db)
	reviews.NewHandler(reviewRepo, hub).RegisterRoutes(public, protected)

	commentRepo := comments.NewRepo(db)
	comments.NewHandler(commentRepo).RegisterRoutes(public, protected)

	likes.NewHandler(likes.NewRepo(db)).RegisterRoutes(protected)

	follows.NewHandler(followRepo, actorResolver).RegisterRoutes(public, protected)

	users.NewHandler(authRepo, followRepo, watchlistRepo, reviewRepo).RegisterRoutes(public, protected)

	feed.NewHandler(feed.NewRepo(db), hub).RegisterRoutes(public, protected)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	httpSrv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
