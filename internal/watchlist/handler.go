package watchlist

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dramahub/internal/auth"
	"dramahub/internal/feed"
	"dramahub/pkg/models"
	"dramahub/pkg/utils"
)

type Handler struct {
	Repo *Repo
	Hub  *feed.Hub
}

func NewHandler(repo *Repo, hub *feed.Hub) *Handler {
	return &Handler{Repo: repo, Hub: hub}
}

// RegisterRoutes mounts the watchlist endpoints on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/watchlist", h.list)
	rg.POST("/watchlist", h.upsert)
	rg.PATCH("/watchlist/:showID", h.update)
	rg.DELETE("/watchlist/:showID", h.remove)
}

type upsertRequest struct {
	ShowID         int64  `json:"show_id" binding:"required"`
	Status         string `json:"status" binding:"required"`
	CurrentEpisode int    `json:"current_episode"`
	Rating         *int   `json:"rating"`
	Notes          string `json:"notes"`
}

func validStatus(s string) bool {
	switch s {
	case models.StatusToWatch, models.StatusWatching, models.StatusCompleted, models.StatusDropped:
		return true
	}
	return false
}

func (h *Handler) upsert(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "show_id and status are required")
		return
	}
	if !validStatus(req.Status) {
		utils.Fail(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		utils.Fail(c, http.StatusBadRequest, "Rating must be between 1 and 10")
		return
	}
	if req.CurrentEpisode < 0 {
		utils.Fail(c, http.StatusBadRequest, "current_episode must not be negative")
		return
	}

	item := models.WatchlistItem{
		UserID:         claims.UserID,
		ShowID:         req.ShowID,
		Status:         req.Status,
		CurrentEpisode: req.CurrentEpisode,
		Rating:         req.Rating,
		Notes:          req.Notes,
	}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		if err == ErrShowNotFound {
			utils.Fail(c, http.StatusNotFound, "Show not found")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to save watchlist item")
		return
	}

	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, req.ShowID)
	if err != nil || saved == nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load watchlist item")
		return
	}

	h.broadcast(claims, saved)
	utils.OK(c, "Watchlist updated", saved)
}

func (h *Handler) update(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	showID, err := strconv.ParseInt(c.Param("showID"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}

	var req struct {
		Status         *string `json:"status"`
		CurrentEpisode *int    `json:"current_episode"`
		Rating         *int    `json:"rating"`
		Notes          *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == nil && req.CurrentEpisode == nil && req.Rating == nil && req.Notes == nil {
		utils.Fail(c, http.StatusBadRequest, "No fields to update")
		return
	}
	if req.Status != nil && !validStatus(*req.Status) {
		utils.Fail(c, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		utils.Fail(c, http.StatusBadRequest, "Rating must be between 1 and 10")
		return
	}
	if req.CurrentEpisode != nil && *req.CurrentEpisode < 0 {
		utils.Fail(c, http.StatusBadRequest, "current_episode must not be negative")
		return
	}

	fields := UpdateFields{
		Status:         req.Status,
		CurrentEpisode: req.CurrentEpisode,
		Rating:         req.Rating,
		Notes:          req.Notes,
	}
	if err := h.Repo.Update(c.Request.Context(), claims.UserID, showID, fields); err != nil {
		if err == ErrItemNotFound {
			utils.Fail(c, http.StatusNotFound, "Watchlist item not found")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to update watchlist item")
		return
	}

	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, showID)
	if err != nil || saved == nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load watchlist item")
		return
	}

	if req.Status != nil {
		h.broadcast(claims, saved)
	}
	utils.OK(c, "Watchlist updated", saved)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	showID, err := strconv.ParseInt(c.Param("showID"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), claims.UserID, showID)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to remove watchlist item")
		return
	}
	if !removed {
		utils.Fail(c, http.StatusNotFound, "Watchlist item not found")
		return
	}
	utils.OK(c, "Watchlist item removed", nil)
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	status := c.Query("status")
	if status != "" && !validStatus(status) {
		utils.Fail(c, http.StatusBadRequest, "Invalid status")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load watchlist")
		return
	}
	utils.OK(c, "Watchlist retrieved", gin.H{"items": items, "total": total})
}

func (h *Handler) broadcast(claims *auth.Claims, item *models.WatchlistItem) {
	if h.Hub == nil {
		return
	}
	ev := feed.Event{
		Type:      feed.EventWatchlistUpdated,
		UserID:    claims.UserID,
		Username:  claims.Username,
		ShowID:    item.ShowID,
		ShowTitle: item.Title,
		Status:    item.Status,
		At:        time.Now().UTC(),
	}
	if item.Rating != nil {
		ev.Rating = *item.Rating
	}
	h.Hub.Broadcast(ev)
}
