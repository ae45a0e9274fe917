package comments

import (
	"net/http"
	"strconv"
	"strings"

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/reviews/:id/comments", h.list)
	protected.POST("/reviews/:id/comments", h.create)
	protected.DELETE("/comments/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid review id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, http.StatusBadRequest, "content is required")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" || len(req.Content) > 1000 {
		utils.Fail(c, http.StatusBadRequest, "Comment must be between 1 and 1000 characters")
		return
	}

	cm, err := h.Repo.Create(c.Request.Context(), reviewID, claims.UserID, req.Content)
	if err != nil {
		if err == ErrReviewNotFound {
			utils.Fail(c, http.StatusNotFound, "Review not found")
			return
		}
		utils.Fail(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}
	utils.Created(c, "Comment created", cm)
}

func (h *Handler) list(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid review id")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	cms, err := h.Repo.ListByReview(c.Request.Context(), reviewID, limit, offset)
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Failed to load comments")
		return
	}
	utils.OK(c, "Comments retrieved", gin.H{"comments": cms, "count": len(cms)})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.Fail(c, http.StatusBadRequest, "Invalid comment id")
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		switch err {
		case ErrNotFound:
			utils.Fail(c, http.StatusNotFound, "Comment not found")
		case ErrNotOwner:
			utils.Fail(c, http.StatusForbidden, "You can only delete your own comments")
		default:
			utils.Fail(c, http.StatusInternalServerError, "Failed to delete comment")
		}
		return
	}
	utils.OK(c, "Comment deleted", nil)
}
