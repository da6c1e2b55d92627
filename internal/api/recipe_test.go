package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptorium/backend/internal/api"
	"github.com/receptorium/backend/internal/service"
	"github.com/receptorium/backend/internal/testhelpers"
)

func createRecipeBody(t *testing.T, tagID, ingredientID uuid.UUID) map[string]any {
	return map[string]any{
		"name":         "Pancakes",
		"text":         "Mix and fry.",
		"cooking_time": 20,
		"image":        pngDataURI(t),
		"tags":         []uuid.UUID{tagID},
		"ingredients": []map[string]any{
			{"id": ingredientID, "amount": 200},
		},
	}
}

func TestCreateRecipeEndpoint(t *testing.T) {
	env := setupAPITest(t)
	_, token := env.userWithToken(t)

	tag := testhelpers.CreateTestTag(t, env.db, "breakfast", "orange", "#ffa500")
	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")

	w := env.request(t, "POST", "/api/recipes", token, createRecipeBody(t, tag.ID, flour.ID))
	requireStatus(t, w, http.StatusCreated)

	var resp api.RecipeResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Pancakes", resp.Name)
	assert.True(t, strings.HasPrefix(resp.Image, "/media/recipes/"))
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "#ffa500", resp.Tags[0].Color)
	require.Len(t, resp.Ingredients, 1)
	assert.Equal(t, flour.ID, resp.Ingredients[0].ID)
	assert.Equal(t, 200.0, resp.Ingredients[0].Amount)
	assert.False(t, resp.IsFavorited)
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	env := setupAPITest(t)

	tag := testhelpers.CreateTestTag(t, env.db, "breakfast", "orange", "#ffa500")
	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")

	w := env.request(t, "POST", "/api/recipes", "", createRecipeBody(t, tag.ID, flour.ID))
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestCreateRecipeDuplicateIngredientEndpoint(t *testing.T) {
	env := setupAPITest(t)
	_, token := env.userWithToken(t)

	tag := testhelpers.CreateTestTag(t, env.db, "breakfast", "orange", "#ffa500")
	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")

	body := createRecipeBody(t, tag.ID, flour.ID)
	body["ingredients"] = []map[string]any{
		{"id": flour.ID, "amount": 200},
		{"id": flour.ID, "amount": 100},
	}
	w := env.request(t, "POST", "/api/recipes", token, body)
	requireStatus(t, w, http.StatusBadRequest)

	var resp map[string]string
	decodeJSON(t, w, &resp)
	assert.Contains(t, resp["errors"], "listed more than once")
}

func TestGetRecipeAnonymousFlags(t *testing.T) {
	env := setupAPITest(t)
	user, _ := env.userWithToken(t)
	lists := service.NewListService(env.db)

	recipe := testhelpers.CreateTestRecipe(t, env.db, user.ID, "Borscht")
	_, err := lists.AddFavorite(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	// Anonymous reads always see all-false viewer flags.
	w := env.request(t, "GET", "/api/recipes/"+recipe.ID.String(), "", nil)
	requireStatus(t, w, http.StatusOK)

	var resp api.RecipeResponse
	decodeJSON(t, w, &resp)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
}

func TestGetRecipeNotFound(t *testing.T) {
	env := setupAPITest(t)

	w := env.request(t, "GET", "/api/recipes/"+uuid.NewString(), "", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = env.request(t, "GET", "/api/recipes/not-a-uuid", "", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestUpdateRecipeAuthorOnly(t *testing.T) {
	env := setupAPITest(t)
	author, _ := env.userWithToken(t)
	_, intruderToken := env.userWithToken(t)

	tag := testhelpers.CreateTestTag(t, env.db, "dinner", "navy", "#000080")
	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")
	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID, "Borscht")

	body := map[string]any{
		"name": "Hijacked",
		"tags": []uuid.UUID{tag.ID},
		"ingredients": []map[string]any{
			{"id": flour.ID, "amount": 50},
		},
	}
	w := env.request(t, "PATCH", "/api/recipes/"+recipe.ID.String(), intruderToken, body)
	requireStatus(t, w, http.StatusForbidden)
}

func TestDeleteRecipe(t *testing.T) {
	env := setupAPITest(t)
	author, token := env.userWithToken(t)

	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID, "Borscht")

	w := env.request(t, "DELETE", "/api/recipes/"+recipe.ID.String(), token, nil)
	requireStatus(t, w, http.StatusNoContent)

	w = env.request(t, "GET", "/api/recipes/"+recipe.ID.String(), "", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupAPITest(t)
	author, _ := env.userWithToken(t)
	_, token := env.userWithToken(t)

	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID, "Borscht")
	path := fmt.Sprintf("/api/recipes/%s/favorite", recipe.ID)

	w := env.request(t, "POST", path, token, nil)
	requireStatus(t, w, http.StatusCreated)

	var short api.ShortRecipeResponse
	decodeJSON(t, w, &short)
	assert.Equal(t, recipe.ID, short.ID)
	assert.Equal(t, "Borscht", short.Name)

	// Second add conflicts, remove succeeds once.
	w = env.request(t, "POST", path, token, nil)
	requireStatus(t, w, http.StatusBadRequest)

	w = env.request(t, "DELETE", path, token, nil)
	requireStatus(t, w, http.StatusNoContent)

	w = env.request(t, "DELETE", path, token, nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestDownloadShoppingCart(t *testing.T) {
	env := setupAPITest(t)
	author, _ := env.userWithToken(t)
	_, token := env.userWithToken(t)

	flour := testhelpers.CreateTestIngredient(t, env.db, "flour", "g")
	recipe := testhelpers.CreateTestRecipe(t, env.db, author.ID, "Bread")
	testhelpers.AttachIngredient(t, env.db, recipe.ID, flour.ID, 150)

	w := env.request(t, "POST", fmt.Sprintf("/api/recipes/%s/shopping_cart", recipe.ID), token, nil)
	requireStatus(t, w, http.StatusCreated)

	w = env.request(t, "GET", "/api/recipes/download_shopping_cart", token, nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "attachment; filename=shopping.txt", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "flour - 150 g\r\n", w.Body.String())
}

func TestListRecipesPagination(t *testing.T) {
	env := setupAPITest(t)
	author, _ := env.userWithToken(t)

	for i := 0; i < 8; i++ {
		testhelpers.CreateTestRecipe(t, env.db, author.ID, fmt.Sprintf("Recipe %d", i))
	}

	w := env.request(t, "GET", "/api/recipes", "", nil)
	requireStatus(t, w, http.StatusOK)

	var env1 paginatedEnvelope
	decodeJSON(t, w, &env1)
	assert.Equal(t, int64(8), env1.Count)
	require.NotNil(t, env1.Next)
	assert.Nil(t, env1.Previous)

	var results []json.RawMessage
	require.NoError(t, json.Unmarshal(env1.Results, &results))
	assert.Len(t, results, testPageSize)

	w = env.request(t, "GET", "/api/recipes?page=2", "", nil)
	requireStatus(t, w, http.StatusOK)

	var env2 paginatedEnvelope
	decodeJSON(t, w, &env2)
	assert.Nil(t, env2.Next)
	require.NotNil(t, env2.Previous)
	require.NoError(t, json.Unmarshal(env2.Results, &results))
	assert.Len(t, results, 2)
}

func TestListRecipesFavoritedFilter(t *testing.T) {
	env := setupAPITest(t)
	author, _ := env.userWithToken(t)
	fan, token := env.userWithToken(t)
	lists := service.NewListService(env.db)

	liked := testhelpers.CreateTestRecipe(t, env.db, author.ID, "Liked")
	testhelpers.CreateTestRecipe(t, env.db, author.ID, "Other")
	_, err := lists.AddFavorite(context.Background(), fan.ID, liked.ID)
	require.NoError(t, err)

	w := env.request(t, "GET", "/api/recipes?is_favorited=1", token, nil)
	requireStatus(t, w, http.StatusOK)

	var envlp paginatedEnvelope
	decodeJSON(t, w, &envlp)
	assert.Equal(t, int64(1), envlp.Count)

	// Anonymous callers get the unfiltered listing.
	w = env.request(t, "GET", "/api/recipes?is_favorited=1", "", nil)
	requireStatus(t, w, http.StatusOK)
	decodeJSON(t, w, &envlp)
	assert.Equal(t, int64(2), envlp.Count)
}
