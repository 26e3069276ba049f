package shorturls

import (
	"errors"
	"strings"
	"time"

	"github.com/sniplink/snip/pkg/snip/codegen"
	"github.com/sniplink/snip/pkg/snip/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound covers unknown codes, soft-deleted mappings, and
	// ownership misses alike. Callers cannot tell "doesn't exist" from
	// "not yours".
	ErrNotFound = errors.New("short URL does not exist or has been removed")

	// ErrCodeExhausted is returned when code generation keeps colliding
	// with existing rows and the retry budget runs out.
	ErrCodeExhausted = errors.New("could not allocate a unique short code")
)

const (
	// maxCodeAttempts bounds the generate-and-insert retry loop.
	maxCodeAttempts = 5

	// DefaultLimit is the page size used when the caller passes none.
	DefaultLimit = 10
)

// Service implements shortening, resolution, and owner-scoped management of
// short URLs. The database's unique index on short_code arbitrates code
// collisions, and click counting is a storage-level atomic add, so the
// service itself needs no locking.
type Service struct {
	db      *gorm.DB
	gen     codegen.Generator
	baseURL string
	now     func() time.Time
}

// NewService creates a short URL service. baseURL is the public prefix of
// generated short links.
func NewService(db *gorm.DB, gen codegen.Generator, baseURL string) *Service {
	return &Service{
		db:      db,
		gen:     gen,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Shorten allocates a new mapping for originalURL, owned by userID when
// non-nil, and returns the fully qualified short link. Generated codes that
// collide with an existing row are retried up to maxCodeAttempts times.
func (s *Service) Shorten(originalURL string, userID *uint) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return "", err
		}

		shortURL := models.ShortURL{
			ShortCode:   code,
			OriginalURL: originalURL,
			UserID:      userID,
		}

		err = s.db.Create(&shortURL).Error
		if err == nil {
			return s.baseURL + "/" + code, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", err
		}
	}

	return "", ErrCodeExhausted
}

// Resolve returns the original URL for an active code and bumps its click
// counter. The increment is an atomic add in the database, not a
// read-modify-write, so concurrent resolutions never lose updates.
func (s *Service) Resolve(code string) (string, error) {
	var shortURL models.ShortURL
	if err := s.db.Where("short_code = ?", code).First(&shortURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	// UpdateColumn keeps updated_at untouched; only owner mutations move it.
	if err := s.db.Model(&models.ShortURL{}).Where("id = ?", shortURL.ID).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error; err != nil {
		return "", err
	}

	return shortURL.OriginalURL, nil
}

// ListMeta describes a page of results.
type ListMeta struct {
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	HasNextPage bool  `json:"has_next_page"`
}

// Page is one page of a user's short URLs.
type Page struct {
	Data []models.ShortURL `json:"data"`
	Meta ListMeta          `json:"meta"`
}

// ListOwned returns the caller's active mappings, newest first (ties in
// insertion order), with limit/offset applied in the database. Out-of-range
// pagination values are clamped here rather than trusted to the transport.
func (s *Service) ListOwned(userID uint, limit, offset int) (Page, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.Model(&models.ShortURL{}).Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return Page{}, err
	}

	urls := []models.ShortURL{}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Limit(limit).Offset(offset).
		Find(&urls).Error; err != nil {
		return Page{}, err
	}

	return Page{
		Data: urls,
		Meta: ListMeta{
			Total:       total,
			Limit:       limit,
			Offset:      offset,
			HasNextPage: total > int64(offset+limit),
		},
	}, nil
}

// Update overwrites the original URL of a mapping owned by userID and
// refreshes its updated_at. Short code and owner are immutable. The update
// writes only the URL column, so it can never clobber a concurrent click
// increment.
func (s *Service) Update(id, userID uint, newOriginalURL string) (models.ShortURL, error) {
	var shortURL models.ShortURL
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).
		First(&shortURL).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ShortURL{}, ErrNotFound
		}
		return models.ShortURL{}, err
	}

	if err := s.db.Model(&shortURL).Update("original_url", newOriginalURL).Error; err != nil {
		return models.ShortURL{}, err
	}

	// Re-read so the returned record carries the refreshed updated_at and
	// current counter.
	if err := s.db.First(&shortURL, shortURL.ID).Error; err != nil {
		return models.ShortURL{}, err
	}

	return shortURL, nil
}

// SoftDelete marks a mapping owned by userID as deleted. The row stays in
// storage (codes are never recycled) but disappears from every non-admin
// read, so deleting the same id twice reports ErrNotFound the second time.
func (s *Service) SoftDelete(id, userID uint) error {
	// The soft-delete callback scopes this to active rows, making the
	// predicate "id AND owner AND not deleted" in a single statement.
	res := s.db.Model(&models.ShortURL{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("deleted_at", s.now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
