package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// UserService serves user profiles and the subscription feed.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users with the total count.
func (s *UserService) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Subscription is one followed author with their recent recipes. Recipes is
// capped by the recipes_limit query parameter; RecipesCount is the author's
// full total.
type Subscription struct {
	Author       models.User
	Recipes      []models.Recipe
	RecipesCount int64
}

// Subscriptions returns one page of the authors the user follows, each with
// up to recipesLimit of their newest recipes (0 means uncapped).
func (s *UserService) Subscriptions(ctx context.Context, userID uuid.UUID, page, limit, recipesLimit int) ([]Subscription, int64, error) {
	followed := s.db.Model(&models.Follow{}).
		Select("author_id").Where("user_id = ?", userID)

	var total int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN (?)", followed).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err = s.db.WithContext(ctx).
		Where("id IN (?)", followed).
		Order("created_at").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	subs := make([]Subscription, 0, len(authors))
	for _, author := range authors {
		sub, err := s.AuthorPreview(ctx, author.ID, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, *sub)
	}
	return subs, total, nil
}

// AuthorPreview loads one author with up to recipesLimit newest recipes and
// their recipe total, the shape the subscribe response carries.
func (s *UserService) AuthorPreview(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*Subscription, error) {
	author, err := s.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	q := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if recipesLimit > 0 {
		q = q.Limit(recipesLimit)
	}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	return &Subscription{Author: *author, Recipes: recipes, RecipesCount: count}, nil
}

// FollowedSet returns the ids among authorIDs that viewer follows. A nil
// viewer yields an empty set.
func (s *UserService) FollowedSet(ctx context.Context, viewer *uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	followed := make(map[uuid.UUID]bool, len(authorIDs))
	if viewer == nil || len(authorIDs) == 0 {
		return followed, nil
	}
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id IN ?", *viewer, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}
