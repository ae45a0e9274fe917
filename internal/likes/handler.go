package likes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dramahub/internal/auth"
	"dramahub/pkg/utils"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/shows/:id/like", h.toggleShow)
	rg.POST("/reviews/:id/like", h.toggleReview)
	rg.GET("/likes", h.listShows)
}

func (h *Handler) toggleShow(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	showID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}

	liked, count, err := h.Repo.ToggleShow(c.Request.Context(), claims.UserID, showID)
	if err != nil {
		if err == ErrShowNotFound {
			utils.Fail(c, http.StatusNotFound, "Show not found")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	msg := "Show unliked"
	if liked {
		msg = "Show liked"
	}
	utils.OK(c, msg, gin.H{"liked": liked, "like_count": count})
}

func (h *Handler) toggleReview(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid review id")
		return
	}

	liked, count, err := h.Repo.ToggleReview(c.Request.Context(), claims.UserID, reviewID)
	if err != nil {
		if err == ErrReviewNotFound {
			utils.Fail(c, http.StatusNotFound, "Review not found")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to toggle like")
		return
	}

	msg := "Review unliked"
	if liked {
		msg = "Review liked"
	}
	utils.OK(c, msg, gin.H{"liked": liked, "like_count": count})
}

func (h *Handler) listShows(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	shows, err := h.Repo.ListShows(c.Request.Context(), claims.UserID, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load liked shows")
		return
	}
	utils.OK(c, "Liked shows retrieved", gin.H{"shows": shows, "count": len(shows)})
}
