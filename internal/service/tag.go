package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/colors"
	"github.com/receptorium/backend/internal/models"
)

// TagService serves the tag reference data. The hex code is always derived
// from the color name at save time, never accepted from a caller.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// List returns all tags ordered by name; the tag collection is small and not
// paginated.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create inserts a tag, deriving the hex code from the CSS3 color name.
// Unknown color names are rejected.
func (s *TagService) Create(ctx context.Context, name, colorName, slug string) (*models.Tag, error) {
	colorName = strings.ToLower(strings.TrimSpace(colorName))
	hex, err := colors.Hex(colorName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, colorName)
	}
	tag := models.Tag{
		Name:      name,
		ColorName: colorName,
		Color:     hex,
		Slug:      slug,
	}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
