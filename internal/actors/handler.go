package actors

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dramahub/internal/auth"
	"dramahub/internal/tmdb"
	"dramahub/pkg/models"
	"dramahub/pkg/utils"
)

// FollowStore is the bit of the follows repo the actor detail page needs.
type FollowStore interface {
	IsFollowingActor(ctx context.Context, userID string, actorID int64) (bool, error)
}

type Handler struct {
	Resolver *Resolver
	Follows  FollowStore
}

func NewHandler(resolver *Resolver, follows FollowStore) *Handler {
	return &Handler{Resolver: resolver, Follows: follows}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/popular", h.popular) // GET /actors/popular?limit=
	rg.GET("/:id", h.getByID)     // GET /actors/:id (TMDB person id)
}

func (h *Handler) popular(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 20)

	actors, err := h.Resolver.Popular(c.Request.Context(), limit)
	if err != nil {
		failResolve(c, err)
		return
	}
	utils.OK(c, "Popular actors retrieved", actors)
}

func (h *Handler) getByID(c *gin.Context) {
	tmdbID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || tmdbID <= 0 {
		utils.Fail(c, http.StatusBadRequest, "Invalid actor id")
		return
	}

	ctx := c.Request.Context()

	actor, err := h.Resolver.Resolve(ctx, tmdbID)
	if err != nil {
		failResolve(c, err)
		return
	}

	detail := models.ActorDetail{
		Actor:    *actor,
		KnownFor: h.Resolver.KnownFor(ctx, tmdbID),
	}

	// Follow state only exists for authenticated callers.
	if claims := auth.MustGetClaims(c); claims != nil && h.Follows != nil {
		following, err := h.Follows.IsFollowingActor(ctx, claims.UserID, actor.ID)
		if err == nil {
			detail.IsFollowing = following
		}
	}

	utils.OK(c, "Actor details retrieved", detail)
}

func failResolve(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.Fail(c, http.StatusNotFound, "Actor not found")
	case errors.Is(err, tmdb.ErrUpstream):
		utils.Fail(c, http.StatusBadRequest, "Failed to fetch from external provider")
	default:
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
