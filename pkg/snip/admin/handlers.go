package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sniplink/snip/pkg/snip/models"
	"gorm.io/gorm"
)

// Handler handles admin requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new admin handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ShortURLRecord represents a short URL in admin responses, including
// audit fields hidden from regular callers.
type ShortURLRecord struct {
	ID          uint   `json:"id"`
	ShortCode   string `json:"short_code"`
	OriginalURL string `json:"original_url"`
	ClickCount  uint64 `json:"click_count"`
	UserID      *uint  `json:"user_id,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	DeletedAt   string `json:"deleted_at,omitempty"`
}

// StatsResponse represents system statistics
type StatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalURLs     int64 `json:"total_urls"`
	ActiveURLs    int64 `json:"active_urls"`
	DeletedURLs   int64 `json:"deleted_urls"`
	AnonymousURLs int64 `json:"anonymous_urls"`
	TotalClicks   int64 `json:"total_clicks"`
}

// ListURLs returns all short URLs, soft-deleted rows included (admin only).
// This is the one read path that sees deleted mappings.
func (h *Handler) ListURLs(c *gin.Context) {
	query := h.db.Unscoped().Order("created_at DESC")

	// Optional filter on lifecycle state
	switch c.Query("state") {
	case "deleted":
		query = query.Where("deleted_at IS NOT NULL")
	case "active":
		query = query.Where("deleted_at IS NULL")
	}

	var urls []models.ShortURL
	if err := query.Find(&urls).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch short URLs"})
		return
	}

	records := make([]ShortURLRecord, len(urls))
	for i, u := range urls {
		record := ShortURLRecord{
			ID:          u.ID,
			ShortCode:   u.ShortCode,
			OriginalURL: u.OriginalURL,
			ClickCount:  u.ClickCount,
			UserID:      u.UserID,
			CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z"),
			UpdatedAt:   u.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if u.DeletedAt.Valid {
			record.DeletedAt = u.DeletedAt.Time.Format("2006-01-02T15:04:05Z")
		}
		records[i] = record
	}

	c.JSON(http.StatusOK, records)
}

// Stats returns system statistics (admin only)
func (h *Handler) Stats(c *gin.Context) {
	var stats StatsResponse

	h.db.Model(&models.User{}).Count(&stats.TotalUsers)
	h.db.Unscoped().Model(&models.ShortURL{}).Count(&stats.TotalURLs)
	h.db.Model(&models.ShortURL{}).Count(&stats.ActiveURLs)
	stats.DeletedURLs = stats.TotalURLs - stats.ActiveURLs
	h.db.Unscoped().Model(&models.ShortURL{}).Where("user_id IS NULL").Count(&stats.AnonymousURLs)

	h.db.Unscoped().Model(&models.ShortURL{}).
		Select("COALESCE(SUM(click_count), 0)").Scan(&stats.TotalClicks)

	c.JSON(http.StatusOK, stats)
}

// RegisterRoutes registers admin routes; callers must wrap the group with
// the auth and admin-role middlewares.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/urls", h.ListURLs)
	rg.GET("/stats", h.Stats)
}
