package redirect

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sniplink/snip/pkg/snip/shorturls"
)

// Handler handles redirect requests
type Handler struct {
	svc *shorturls.Service
}

// NewHandler creates a new redirect handler
func NewHandler(svc *shorturls.Service) *Handler {
	return &Handler{svc: svc}
}

// Redirect handles short URL redirects. Resolution is anonymous; the click
// counter is bumped atomically as part of the lookup.
// @Summary Redirect a short code
// @Description Resolve a short code and redirect to its original URL
// @Tags redirect
// @Param code path string true "Short code"
// @Success 302 "Redirect to original URL"
// @Failure 404 {object} map[string]string "Short URL not found"
// @Router /{code} [get]
func (h *Handler) Redirect(c *gin.Context) {
	code := c.Param("code")

	originalURL, err := h.svc.Resolve(code)
	if err != nil {
		if errors.Is(err, shorturls.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Short URL not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve short URL"})
		return
	}

	c.Redirect(http.StatusFound, originalURL)
}

// RegisterRoutes registers redirect routes on the root router.
// This should be called AFTER all other routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/:code", h.Redirect)
}
