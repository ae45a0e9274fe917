package feed

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dramahub/internal/auth"
	"dramahub/pkg/utils"
)

type Handler struct {
	Repo *Repo
	Hub  *Hub
}

func NewHandler(repo *Repo, hub *Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

// RegisterRoutes mounts the feed endpoints. The personal feed requires auth;
// the global feed and hub stats do not.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.GET("/feed", h.followed)
	public.GET("/feed/global", h.global)
	public.GET("/feed/stats", h.stats)
}

func (h *Handler) followed(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Repo.FollowedFeed(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load feed")
		return
	}
	utils.OK(c, "Feed retrieved", gin.H{"items": items, "count": len(items)})
}

func (h *Handler) global(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Repo.GlobalFeed(c.Request.Context(), limit)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load feed")
		return
	}
	utils.OK(c, "Feed retrieved", gin.H{"items": items, "count": len(items)})
}

func (h *Handler) stats(c *gin.Context) {
	utils.OK(c, "Hub stats", h.Hub.Stats())
}
