package genres

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dramahub/internal/tmdb"
	"dramahub/pkg/utils"
)

type Handler struct {
	Repo   *Repo
	Syncer *Syncer
}

func NewHandler(repo *Repo, syncer *Syncer) *Handler {
	return &Handler{Repo: repo, Syncer: syncer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list) // GET /genres
}

// list serves the mirror cache-first; an empty mirror triggers a sync so the
// first request self-heals the table.
func (h *Handler) list(c *gin.Context) {
	genres, err := h.Repo.ListMirror(c.Request.Context())
	if err != nil {
		utils.Fail(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if len(genres) == 0 {
		res, err := h.Syncer.Sync(c.Request.Context())
		if err != nil {
			if errors.Is(err, tmdb.ErrUpstream) {
				utils.Fail(c, http.StatusBadRequest, "Failed to fetch from external provider")
				return
			}
			utils.Fail(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		genres = res.Genres
	}

	utils.OK(c, "All genres retrieved", genres)
}
