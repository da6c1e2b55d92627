package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/models"
)

// ShoppingService builds the consolidated shopping list from a user's cart.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

// IngredientTotal is one aggregated line of the shopping list.
type IngredientTotal struct {
	Name            string
	MeasurementUnit string
	Total           float64
}

// Totals sums ingredient amounts across every recipe in the user's shopping
// cart, grouped by (name, measurement unit) and ordered by name.
func (s *ShoppingService) Totals(ctx context.Context, userID uuid.UUID) ([]IngredientTotal, error) {
	var rows []IngredientTotal
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_lists ON shopping_lists.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_lists.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Document renders the aggregated cart as a plain-text download, one
// "<name> - <amount> <unit>" line per ingredient. An empty cart yields an
// empty document.
func (s *ShoppingService) Document(ctx context.Context, userID uuid.UUID) (string, error) {
	totals, err := s.Totals(ctx, userID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, t := range totals {
		amount := strconv.FormatFloat(t.Total, 'f', -1, 64)
		fmt.Fprintf(&b, "%s - %s %s\r\n", t.Name, amount, t.MeasurementUnit)
	}
	return b.String(), nil
}
