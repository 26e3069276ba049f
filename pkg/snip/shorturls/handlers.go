package shorturls

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sniplink/snip/pkg/snip/auth"
	"github.com/sniplink/snip/pkg/snip/models"
)

// Handler handles short URL requests
type Handler struct {
	svc *Service
}

// NewHandler creates a new short URL handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ShortenRequest represents the request to shorten a URL
type ShortenRequest struct {
	OriginalURL string `json:"original_url" binding:"required,url"`
}

// ShortenResponse represents the shorten response
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// UpdateRequest represents the request to update a short URL's target
type UpdateRequest struct {
	OriginalURL string `json:"original_url" binding:"required,url"`
}

// ShortURLResponse represents a short URL in API responses
type ShortURLResponse struct {
	ID          uint   `json:"id"`
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	ClickCount  uint64 `json:"click_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ListResponse represents a paginated list of short URLs
type ListResponse struct {
	Data []ShortURLResponse `json:"data"`
	Meta ListMeta           `json:"meta"`
}

func toResponse(u models.ShortURL) ShortURLResponse {
	return ShortURLResponse{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		OriginalURL: u.OriginalURL,
		ClickCount:  u.ClickCount,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   u.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Shorten creates a new short URL
// @Summary Shorten a URL
// @Description Create a short code for a URL, attributed to the caller when authenticated
// @Tags short-urls
// @Accept json
// @Produce json
// @Param request body ShortenRequest true "URL to shorten"
// @Success 201 {object} ShortenResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /shorten [post]
func (h *Handler) Shorten(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Anonymous shortening is allowed; the optional auth middleware only
	// sets an identity when a valid token was presented.
	var userID *uint
	if id, ok := auth.GetUserID(c); ok {
		userID = &id
	}

	shortURL, err := h.svc.Shorten(req.OriginalURL, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to shorten URL"})
		return
	}

	c.JSON(http.StatusCreated, ShortenResponse{ShortURL: shortURL})
}

// ListOwned returns the caller's short URLs with pagination
// @Summary List own short URLs
// @Description Get the authenticated user's active short URLs, newest first
// @Tags short-urls
// @Produce json
// @Param limit query int false "Page size (default 10)"
// @Param offset query int false "Offset for pagination"
// @Success 200 {object} ListResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Security BearerAuth
// @Router /user/urls [get]
func (h *Handler) ListOwned(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	limit := DefaultLimit
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		parsed, err := strconv.Atoi(o)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = parsed
	}

	page, err := h.svc.ListOwned(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch short URLs"})
		return
	}

	data := make([]ShortURLResponse, len(page.Data))
	for i, u := range page.Data {
		data[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, ListResponse{Data: data, Meta: page.Meta})
}

// Update changes the target URL of an owned mapping
// @Summary Update a short URL
// @Description Overwrite the original URL of a mapping owned by the caller
// @Tags short-urls
// @Accept json
// @Produce json
// @Param id path int true "Short URL ID"
// @Param request body UpdateRequest true "New target URL"
// @Success 200 {object} ShortURLResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Short URL not found"
// @Security BearerAuth
// @Router /{id} [patch]
func (h *Handler) Update(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid short URL ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.svc.Update(uint(id), userID, req.OriginalURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Short URL not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update short URL"})
		return
	}

	c.JSON(http.StatusOK, toResponse(updated))
}

// Delete soft-deletes an owned mapping
// @Summary Delete a short URL
// @Description Soft-delete a mapping owned by the caller; its code stops resolving
// @Tags short-urls
// @Produce json
// @Param id path int true "Short URL ID"
// @Success 200 {object} map[string]string "Short URL deleted"
// @Failure 404 {object} map[string]string "Short URL not found"
// @Security BearerAuth
// @Router /{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid short URL ID"})
		return
	}

	if err := h.svc.SoftDelete(uint(id), userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Short URL not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete short URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Short URL deleted"})
}

// RegisterRoutes registers owner-scoped routes; callers must wrap the group
// with the mandatory auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/urls", h.ListOwned)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
