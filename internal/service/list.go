package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// ListService manages the user-to-object association rows: favorites, shopping
// cart entries and follows. Adding a row that exists or removing one that does
// not is signaled with ErrAlreadyInList / ErrNotInList and leaves the store
// untouched.
type ListService struct {
	db *gorm.DB
}

func NewListService(db *gorm.DB) *ListService {
	return &ListService{db: db}
}

// isUniqueViolation reports whether err is the store rejecting a duplicate row.
// Postgres signals class 23505; the sqlite driver used in tests only exposes
// the message text.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value")
}

// addRow inserts row unless a row matching cond already exists. A concurrent
// insert losing the race against the unique index is reported the same way as
// a pre-existing row.
func addRow[T any](db *gorm.DB, row *T, cond string, args ...any) error {
	var count int64
	if err := db.Model(new(T)).Where(cond, args...).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyInList
	}
	if err := db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyInList
		}
		return err
	}
	return nil
}

// removeRow deletes the row matching cond, reporting ErrNotInList when no row
// was there to delete.
func removeRow[T any](db *gorm.DB, cond string, args ...any) error {
	res := db.Where(cond, args...).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotInList
	}
	return nil
}

func (s *ListService) findRecipe(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// AddFavorite marks a recipe as a favorite of the user and returns the recipe
// for the response body.
func (s *ListService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	row := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := addRow(s.db.WithContext(ctx), &row, "user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *ListService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}
	return removeRow[models.Favorite](s.db.WithContext(ctx), "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// AddToCart puts a recipe into the user's shopping cart.
func (s *ListService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	row := models.ShoppingList{UserID: userID, RecipeID: recipeID}
	if err := addRow(s.db.WithContext(ctx), &row, "user_id = ? AND recipe_id = ?", userID, recipeID); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *ListService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(ctx, recipeID); err != nil {
		return err
	}
	return removeRow[models.ShoppingList](s.db.WithContext(ctx), "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// Follow subscribes the user to an author. Self-follow is rejected before any
// lookup or existence check.
func (s *ListService) Follow(ctx context.Context, userID, authorID uuid.UUID) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return nil, err
	}
	row := models.Follow{UserID: userID, AuthorID: authorID}
	if err := addRow(s.db.WithContext(ctx), &row, "user_id = ? AND author_id = ?", userID, authorID); err != nil {
		return nil, err
	}
	return &author, nil
}

func (s *ListService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		return err
	}
	return removeRow[models.Follow](s.db.WithContext(ctx), "user_id = ? AND author_id = ?", userID, authorID)
}

// IsFollowing reports whether user follows author.
func (s *ListService) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}
