package api

import (
	"github.com/google/uuid"

	"github.com/receptorium/backend/internal/models"
	"github.com/receptorium/backend/internal/service"
)

// UserResponse is the public user shape; is_subscribed is relative to the
// requesting identity and always false for anonymous callers.
type UserResponse struct {
	Email        string    `json:"email"`
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// RecipeIngredientResponse flattens the join row with the ingredient it
// references; ID is the ingredient's id.
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          float64   `json:"amount"`
}

// RecipeResponse is the nested read representation.
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ShortRecipeResponse is the flat shape used inside favorites, cart and
// subscription payloads.
type ShortRecipeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// SubscriptionResponse is a followed author with their recent recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

type ingredientAmountRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount float64   `json:"amount" binding:"required,min=0.1"`
}

type createRecipeRequest struct {
	Ingredients []ingredientAmountRequest `json:"ingredients" binding:"required,min=1,dive"`
	Tags        []uuid.UUID               `json:"tags" binding:"required,min=1"`
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1"`
	Image       string                    `json:"image" binding:"required"`
}

// updateRecipeRequest replaces the tag and ingredient sets in full; nil scalar
// fields keep their stored values.
type updateRecipeRequest struct {
	Ingredients []ingredientAmountRequest `json:"ingredients" binding:"required,min=1,dive"`
	Tags        []uuid.UUID               `json:"tags" binding:"required,min=1"`
	Name        *string                   `json:"name" binding:"omitempty,max=200"`
	Text        *string                   `json:"text"`
	CookingTime *int                      `json:"cooking_time" binding:"omitempty,min=1"`
	Image       *string                   `json:"image"`
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=150"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type setPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=8,max=150"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

func buildUserResponse(user *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

func buildTagResponse(tag *models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func buildShortRecipeResponse(recipe *models.Recipe) ShortRecipeResponse {
	return ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// buildRecipeResponse assembles the nested read shape from a recipe loaded
// with its tags, ingredients and author.
func buildRecipeResponse(recipe *models.Recipe, flags service.RecipeFlags, authorFollowed bool) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for i := range recipe.Tags {
		tags = append(tags, buildTagResponse(&recipe.Tags[i]))
	}
	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, row := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              row.Ingredient.ID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           buildUserResponse(&recipe.Author, authorFollowed),
		Ingredients:      ingredients,
		IsFavorited:      flags.IsFavorited,
		IsInShoppingCart: flags.IsInShoppingCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func buildSubscriptionResponse(sub *service.Subscription) SubscriptionResponse {
	recipes := make([]ShortRecipeResponse, 0, len(sub.Recipes))
	for i := range sub.Recipes {
		recipes = append(recipes, buildShortRecipeResponse(&sub.Recipes[i]))
	}
	return SubscriptionResponse{
		UserResponse: buildUserResponse(&sub.Author, true),
		Recipes:      recipes,
		RecipesCount: sub.RecipesCount,
	}
}
