package shows

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dramahub/internal/tmdb"
	"dramahub/pkg/utils"
)

type Handler struct {
	Resolver *Resolver
}

func NewHandler(resolver *Resolver) *Handler {
	return &Handler{Resolver: resolver}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/popular", h.popular) // GET /shows/popular?limit=
	rg.GET("/search", h.search)   // GET /shows/search?q=
	rg.GET("/:id", h.getByID)     // GET /shows/:id (local or TMDB id)
}

func (h *Handler) popular(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 20)

	items, err := h.Resolver.Popular(c.Request.Context(), limit)
	if err != nil {
		failResolve(c, err)
		return
	}
	utils.OK(c, "Popular shows retrieved", items)
}

func (h *Handler) search(c *gin.Context) {
	results, err := h.Resolver.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		failResolve(c, err)
		return
	}
	utils.OK(c, "Search results", results)
}

func (h *Handler) getByID(c *gin.Context) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		utils.Fail(c, http.StatusBadRequest, "Invalid show id")
		return
	}

	detail, err := h.Resolver.Resolve(c.Request.Context(), id)
	if err != nil {
		failResolve(c, err)
		return
	}
	utils.OK(c, "Show details", detail)
}

// failResolve maps resolution failures onto the envelope: a provider outage
// is a 400-class failure that never leaks transport detail, an exhausted
// lookup is a plain 404.
func failResolve(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.Fail(c, http.StatusNotFound, "Show not found")
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
