package users

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dramahub/internal/auth"
	"dramahub/internal/follows"
	"dramahub/internal/reviews"
	"dramahub/internal/watchlist"
	"dramahub/pkg/utils"
)

// Handler serves user profiles. It composes the auth user store with the
// social repos rather than owning tables of its own.
type Handler struct {
	Users     *auth.Repo
	Follows   *follows.Repo
	Watchlist *watchlist.Repo
	Reviews   *reviews.Repo
}

func NewHandler(users *auth.Repo, fl *follows.Repo, wl *watchlist.Repo, rv *reviews.Repo) *Handler {
	return &Handler{Users: users, Follows: fl, Watchlist: wl, Reviews: rv}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/users/me", h.me)
	protected.PUT("/users/profile", h.updateProfile)
	public.GET("/users/:id", h.profile)
	public.GET("/users/:id/watchlist", h.userWatchlist)
	public.GET("/users/:id/reviews", h.userReviews)
}

func (h *Handler) me(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	h.renderProfile(c, claims.UserID, true)
}

func (h *Handler) profile(c *gin.Context) {
	h.renderProfile(c, c.Param("id"), false)
}

func (h *Handler) renderProfile(c *gin.Context, userID string, includeEmail bool) {
	ctx := c.Request.Context()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if u == nil {
		utils.Fail(c, http.StatusNotFound, "User not found")
		return
	}

	followers, following, err := h.Follows.Counts(ctx, userID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	resp := gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"bio":        u.Bio,
		"avatar_url": u.AvatarURL,
		"followers":  followers,
		"following":  following,
		"joined_at":  u.CreatedAt,
	}
	if includeEmail {
		resp["email"] = u.Email
	}
	utils.OK(c, "Profile retrieved", resp)
}

func (h *Handler) updateProfile(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req struct {
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Bio == nil && req.AvatarURL == nil {
		utils.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		utils.Fail(c, http.StatusBadRequest, "Bio must be at most 500 characters")
		return
	}
	if req.AvatarURL != nil && len(*req.AvatarURL) > 2048 {
		utils.Fail(c, http.StatusBadRequest, "Avatar URL is too long")
		return
	}

	if err := h.Users.UpdateProfile(c.Request.Context(), claims.UserID, req.Bio, req.AvatarURL); err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	h.renderProfile(c, claims.UserID, true)
}

// userWatchlist shows another user's list. Same repo the owner uses, so the
// same status filter and paging apply.
func (h *Handler) userWatchlist(c *gin.Context) {
	userID := c.Param("id")

	status := strings.TrimSpace(c.Query("status"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.Watchlist.List(c.Request.Context(), userID, status, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}
	utils.OK(c, "Watchlist retrieved", gin.H{"items": items, "total": total})
}

func (h *Handler) userReviews(c *gin.Context) {
	userID := c.Param("id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	revs, err := h.Reviews.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	utils.OK(c, "Reviews retrieved", gin.H{"reviews": revs, "count": len(revs)})
}
