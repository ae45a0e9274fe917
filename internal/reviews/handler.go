package reviews

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

// RegisterRoutes mounts review endpoints. Reading reviews is public, writing
// requires auth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/shows/:id/reviews", h.listByShow)
	protected.POST("/shows/:id/reviews", h.create)
	protected.PUT("/reviews/:id", h.update)
	protected.DELETE("/reviews/:id", h.remove)
}

type reviewRequest struct {
	Rating           int    `json:"rating" binding:"required"`
	Content          string `json:"content" binding:"required"`
	ContainsSpoilers bool   `json:"contains_spoilers"`
}

func (req *reviewRequest) validate(c *gin.Context) bool {
	if req.Rating < 1 || req.Rating > 10 {
		utils.Fail(c, http.StatusBadRequest, "Rating must be between 1 and 10")
		return false
	}
	if len(req.Content) > 5000 {
		utils.Fail(c, http.StatusBadRequest, "Review is too long")
		return false
	}
	return true
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	showID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "rating and content are required")
		return
	}
	if !req.validate(c) {
		return
	}

	rev, err := h.Repo.Create(c.Request.Context(), &models.Review{
		UserID:           claims.UserID,
		ShowID:           showID,
		Rating:           req.Rating,
		Content:          req.Content,
		ContainsSpoilers: req.ContainsSpoilers,
	})
	if err != nil {
		switch err {
		case ErrShowNotFound:
			utils.Fail(c, http.StatusNotFound, "Show not found")
		case ErrDuplicate:
			utils.Fail(c, http.StatusBadRequest, "You have already reviewed this show")
		default:
			utils.Fail(c, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(feed.Event{
			Type:     feed.EventReviewCreated,
			UserID:   claims.UserID,
			Username: claims.Username,
			ShowID:   showID,
			Rating:   rev.Rating,
			At:       time.Now().UTC(),
		})
	}
	utils.Created(c, "Review created", rev)
}

func (h *Handler) listByShow(c *gin.Context) {
	showID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	revs, total, err := h.Repo.ListByShow(c.Request.Context(), showID, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	utils.OK(c, "Reviews retrieved", gin.H{"reviews": revs, "total": total})
}

func (h *Handler) update(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid review id")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "rating and content are required")
		return
	}
	if !req.validate(c) {
		return
	}

	rev, err := h.Repo.Update(c.Request.Context(), id, claims.UserID, req.Rating, req.Content, req.ContainsSpoilers)
	if err != nil {
		h.failMutate(c, err, "Failed to update review")
		return
	}
	utils.OK(c, "Review updated", rev)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		h.failMutate(c, err, "Failed to delete review")
		return
	}
	utils.OK(c, "Review deleted", nil)
}

func (h *Handler) failMutate(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrNotFound:
		utils.Fail(c, http.StatusNotFound, "Review not found")
	case ErrNotOwner:
		utils.Fail(c, http.StatusForbidden, "You can only modify your own reviews")
	default:
		utils.Fail(c, http.StatusInternalServerError, fallback)
	}
}
