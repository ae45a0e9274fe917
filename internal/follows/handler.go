package follows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dramahub/internal/actors"
	"dramahub/internal/auth"
	"dramahub/internal/tmdb"
	"dramahub/pkg/utils"
)

type Handler struct {
	Repo   *Repo
	Actors *actors.Resolver
}

func NewHandler(repo *Repo, actorResolver *actors.Resolver) *Handler {
	return &Handler{Repo: repo, Actors: actorResolver}
}

// RegisterRoutes mounts follow endpoints. Follower lists are public; the
// follow and unfollow actions require auth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/users/:id/follow", h.followUser)
	protected.DELETE("/users/:id/follow", h.unfollowUser)
	public.GET("/users/:id/followers", h.followers)
	public.GET("/users/:id/following", h.following)

	protected.POST("/actors/:id/follow", h.followActor)
	protected.DELETE("/actors/:id/follow", h.unfollowActor)
}

func (h *Handler) followUser(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	targetID := c.Param("id")

	if err := h.Repo.Follow(c.Request.Context(), claims.UserID, targetID); err != nil {
		switch err {
		case ErrSelfFollow:
			utils.Fail(c, http.StatusBadRequest, "You cannot follow yourself")
		case ErrAlreadyExists:
			utils.Fail(c, http.StatusBadRequest, "Already following this user")
		case ErrUserNotFound:
			utils.Fail(c, http.StatusNotFound, "User not found")
		default:
			utils.Fail(c, http.StatusInternalServerError, "Failed to follow user")
		}
		return
	}
	utils.OK(c, "User followed", nil)
}

func (h *Handler) unfollowUser(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	targetID := c.Param("id")

	if err := h.Repo.Unfollow(c.Request.Context(), claims.UserID, targetID); err != nil {
		if err == ErrNotFollowing {
			utils.Fail(c, http.StatusNotFound, "Not following this user")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to unfollow user")
		return
	}
	utils.OK(c, "User unfollowed", nil)
}

func (h *Handler) followers(c *gin.Context) {
	users, err := h.Repo.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load followers")
		return
	}
	utils.OK(c, "Followers retrieved", gin.H{"users": users, "count": len(users)})
}

func (h *Handler) following(c *gin.Context) {
	users, err := h.Repo.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load following")
		return
	}
	utils.OK(c, "Following retrieved", gin.H{"users": users, "count": len(users)})
}

// followActor takes a TMDB person id and resolves it through the actor cache
// first, so following works even for actors never browsed before.
func (h *Handler) followActor(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	tmdbID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		utils.Fail(c, http.StatusBadRequest, "Invalid actor id")
		return
	}

	actor, err := h.Actors.Resolve(c.Request.Context(), tmdbID)
	if err != nil {
		switch {
		case errors.Is(err, actors.ErrNotFound):
			utils.Fail(c, http.StatusNotFound, "Actor not found")
		case errors.Is(err, tmdb.ErrUpstream):
			utils.Fail(c, http.StatusBadRequest, "Failed to fetch from external provider")
		default:
			utils.Fail(c, http.StatusInternalServerError, "Failed to follow actor")
		}
		return
	}

	if err := h.Repo.FollowActor(c.Request.Context(), claims.UserID, actor.ID); err != nil {
		if err == ErrAlreadyExists {
			utils.Fail(c, http.StatusBadRequest, "Already following this actor")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to follow actor")
		return
	}
	utils.OK(c, "Actor followed", actor)
}

func (h *Handler) unfollowActor(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	tmdbID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || tmdbID <= 0 {
		utils.Fail(c, http.StatusBadRequest, "Invalid actor id")
		return
	}

	actor, err := h.Actors.Repo.FindByTMDBID(c.Request.Context(), tmdbID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to unfollow actor")
		return
	}
	if actor == nil {
		utils.Fail(c, http.StatusNotFound, "Actor not found")
		return
	}

	if err := h.Repo.UnfollowActor(c.Request.Context(), claims.UserID, actor.ID); err != nil {
		if err == ErrNotFollowing {
			utils.Fail(c, http.StatusNotFound, "Not following this actor")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to unfollow actor")
		return
	}
	utils.OK(c, "Actor unfollowed", nil)
}
