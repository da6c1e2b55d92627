package testhelpers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/receptorium/backend/internal/middleware"
	"github.com/receptorium/backend/internal/models"
)

// TestPassword is the known password of every user created by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with a unique email and username and a
// bcrypt hash of TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
	require.NoError(t, err)

	id := uuid.New()
	user := &models.User{
		ID:           id,
		Email:        fmt.Sprintf("user+%s@example.com", id),
		Username:     fmt.Sprintf("user_%s", id),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestTag creates a tag with a unique name, slug and color name.
func CreateTestTag(t *testing.T, db *gorm.DB, name, colorName, color string) *models.Tag {
	t.Helper()

	tag := &models.Tag{
		Name:      name,
		ColorName: colorName,
		Color:     color,
		Slug:      name,
	}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

// CreateTestIngredient creates one ingredient reference row.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// CreateTestRecipe creates a recipe by the given author with no tags or
// ingredients attached.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, name string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "Test instructions",
		CookingTime: 30,
		Image:       "/media/recipes/test.jpg",
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// AttachIngredient links an ingredient to a recipe with the given amount.
func AttachIngredient(t *testing.T, db *gorm.DB, recipeID, ingredientID uuid.UUID, amount float64) {
	t.Helper()

	row := &models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		Amount:       amount,
	}
	require.NoError(t, db.Create(row).Error)
}

// MockTokenValidator returns fixed claims, or a fixed error, for every token.
type MockTokenValidator struct {
	Claims *middleware.TokenClaims
	Error  error
}

func (m *MockTokenValidator) ValidateToken(token string) (*middleware.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}

// JSONMarshal marshals v, failing the test on error.
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal JSON: %v", err)
	}
	return data
}
