package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// RecipeService handles recipe reads and the composer logic: validating and
// persisting the tag and ingredient associations of a submission.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// IngredientAmount is one (ingredient reference, amount) pair of a submission.
type IngredientAmount struct {
	ID     uuid.UUID
	Amount float64
}

// RecipeInput carries the write shape of a recipe: scalar fields, tag
// references and ingredient pairs. On update, nil scalar pointers keep the
// stored values while the tag and ingredient sets are always replaced in full.
type RecipeInput struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	TagIDs      []uuid.UUID
	Ingredients []IngredientAmount
}

// RecipeFlags are the viewer-relative booleans of the read representation.
type RecipeFlags struct {
	IsFavorited      bool
	IsInShoppingCart bool
}

// RecipeFilter narrows a recipe listing. Favorited and InCart are relative to
// Viewer and ignored for anonymous requests.
type RecipeFilter struct {
	AuthorID  *uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
	Viewer    *uuid.UUID
}

// checkSubmission rejects duplicate tag or ingredient references and
// out-of-range amounts before anything is written.
func (s *RecipeService) checkSubmission(in *RecipeInput) error {
	seenTags := make(map[uuid.UUID]bool, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if seenTags[id] {
			return &DuplicateEntryError{Entry: "tag " + id.String()}
		}
		seenTags[id] = true
	}
	seenIngredients := make(map[uuid.UUID]bool, len(in.Ingredients))
	for _, entry := range in.Ingredients {
		if seenIngredients[entry.ID] {
			return &DuplicateEntryError{Entry: "ingredient " + entry.ID.String()}
		}
		seenIngredients[entry.ID] = true
		if entry.Amount < 0.1 {
			return ErrAmountTooSmall
		}
	}
	return nil
}

// resolveTags loads every referenced tag, failing with gorm.ErrRecordNotFound
// when a reference does not resolve.
func resolveTags(tx *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(ids))
	for _, id := range ids {
		var tag models.Tag
		if err := tx.First(&tag, "id = ?", id).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// buildIngredientRows resolves every ingredient reference and builds the join
// rows for a bulk insert.
func buildIngredientRows(tx *gorm.DB, recipeID uuid.UUID, entries []IngredientAmount) ([]models.RecipeIngredient, error) {
	rows := make([]models.RecipeIngredient, 0, len(entries))
	for _, entry := range entries {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, "id = ?", entry.ID).Error; err != nil {
			return nil, err
		}
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredient.ID,
			Amount:       entry.Amount,
		})
	}
	return rows, nil
}

// Create validates the submission and persists the recipe row, its tag set and
// one RecipeIngredient row per entry inside a single transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	if err := s.checkSubmission(in); err != nil {
		return nil, err
	}

	recipe := models.Recipe{AuthorID: authorID}
	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.Text != nil {
		recipe.Text = *in.Text
	}
	if in.CookingTime != nil {
		recipe.CookingTime = *in.CookingTime
	}
	if in.Image != nil {
		recipe.Image = *in.Image
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		rows, err := buildIngredientRows(tx, recipe.ID, in.Ingredients)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID)
}

// Update applies the supplied scalar fields and replaces the tag set and all
// RecipeIngredient rows with the submitted ones. Unsupplied scalars keep their
// stored values.
func (s *RecipeService) Update(ctx context.Context, recipeID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	if err := s.checkSubmission(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			return err
		}

		if in.Name != nil {
			recipe.Name = *in.Name
		}
		if in.Text != nil {
			recipe.Text = *in.Text
		}
		if in.CookingTime != nil {
			recipe.CookingTime = *in.CookingTime
		}
		if in.Image != nil {
			recipe.Image = *in.Image
		}

		tags, err := resolveTags(tx, in.TagIDs)
		if err != nil {
			return err
		}
		rows, err := buildIngredientRows(tx, recipe.ID, in.Ingredients)
		if err != nil {
			return err
		}

		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID)
}

// Get loads a recipe with its nested tags, ingredients and author.
func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Delete removes the recipe together with its association rows.
func (s *RecipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		for _, m := range []any{&models.RecipeIngredient{}, &models.Favorite{}, &models.ShoppingList{}} {
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
}

func (s *RecipeService) listQuery(ctx context.Context, f *RecipeFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})
	if f.AuthorID != nil {
		q = q.Where("author_id = ?", *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		tagged := s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if f.Favorited && f.Viewer != nil {
		favorited := s.db.Model(&models.Favorite{}).
			Select("recipe_id").Where("user_id = ?", *f.Viewer)
		q = q.Where("recipes.id IN (?)", favorited)
	}
	if f.InCart && f.Viewer != nil {
		inCart := s.db.Model(&models.ShoppingList{}).
			Select("recipe_id").Where("user_id = ?", *f.Viewer)
		q = q.Where("recipes.id IN (?)", inCart)
	}
	return q
}

// List returns one page of recipes matching the filter, newest first, together
// with the total match count.
func (s *RecipeService) List(ctx context.Context, f *RecipeFilter, page, limit int) ([]models.Recipe, int64, error) {
	var total int64
	if err := s.listQuery(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := s.listQuery(ctx, f).
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ByAuthor returns the author's recipes, newest first, capped at limit when
// limit > 0.
func (s *RecipeService) ByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error) {
	q := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Flags computes the viewer-relative booleans for a set of recipes. A nil
// viewer yields all-false flags without touching the store.
func (s *RecipeService) Flags(ctx context.Context, viewer *uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]RecipeFlags, error) {
	flags := make(map[uuid.UUID]RecipeFlags, len(recipeIDs))
	for _, id := range recipeIDs {
		flags[id] = RecipeFlags{}
	}
	if viewer == nil || len(recipeIDs) == 0 {
		return flags, nil
	}

	var favorited []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", *viewer, recipeIDs).
		Pluck("recipe_id", &favorited).Error
	if err != nil {
		return nil, err
	}
	for _, id := range favorited {
		f := flags[id]
		f.IsFavorited = true
		flags[id] = f
	}

	var inCart []uuid.UUID
	err = s.db.WithContext(ctx).Model(&models.ShoppingList{}).
		Where("user_id = ? AND recipe_id IN ?", *viewer, recipeIDs).
		Pluck("recipe_id", &inCart).Error
	if err != nil {
		return nil, err
	}
	for _, id := range inCart {
		f := flags[id]
		f.IsInShoppingCart = true
		flags[id] = f
	}
	return flags, nil
}
