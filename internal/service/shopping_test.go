package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptorium/backend/internal/service"
	"github.com/receptorium/backend/internal/testhelpers"
)

func TestShoppingTotals(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingService(db)
	lists := service.NewListService(db)

	user := testhelpers.CreateTestUser(t, db)
	author := testhelpers.CreateTestUser(t, db)

	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateTestIngredient(t, db, "milk", "ml")

	pancakes := testhelpers.CreateTestRecipe(t, db, author.ID, "Pancakes")
	testhelpers.AttachIngredient(t, db, pancakes.ID, flour.ID, 100)
	testhelpers.AttachIngredient(t, db, pancakes.ID, milk.ID, 250)

	bread := testhelpers.CreateTestRecipe(t, db, author.ID, "Bread")
	testhelpers.AttachIngredient(t, db, bread.ID, flour.ID, 50)

	// Only what is actually in the cart counts.
	notInCart := testhelpers.CreateTestRecipe(t, db, author.ID, "Cake")
	testhelpers.AttachIngredient(t, db, notInCart.ID, flour.ID, 999)

	_, err := lists.AddToCart(context.Background(), user.ID, pancakes.ID)
	require.NoError(t, err)
	_, err = lists.AddToCart(context.Background(), user.ID, bread.ID)
	require.NoError(t, err)

	totals, err := svc.Totals(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	assert.Equal(t, "flour", totals[0].Name)
	assert.Equal(t, "g", totals[0].MeasurementUnit)
	assert.Equal(t, 150.0, totals[0].Total)
	assert.Equal(t, "milk", totals[1].Name)
	assert.Equal(t, 250.0, totals[1].Total)
}

func TestShoppingTotalsSameNameDifferentUnit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingService(db)
	lists := service.NewListService(db)

	user := testhelpers.CreateTestUser(t, db)
	author := testhelpers.CreateTestUser(t, db)

	sugarG := testhelpers.CreateTestIngredient(t, db, "sugar", "g")
	sugarTbsp := testhelpers.CreateTestIngredient(t, db, "sugar", "tbsp")

	recipe := testhelpers.CreateTestRecipe(t, db, author.ID, "Jam")
	testhelpers.AttachIngredient(t, db, recipe.ID, sugarG.ID, 500)
	testhelpers.AttachIngredient(t, db, recipe.ID, sugarTbsp.ID, 2)

	_, err := lists.AddToCart(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	// Same name in different units must stay on separate lines.
	totals, err := svc.Totals(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, totals, 2)
}

func TestShoppingDocument(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingService(db)
	lists := service.NewListService(db)

	user := testhelpers.CreateTestUser(t, db)
	author := testhelpers.CreateTestUser(t, db)

	flour := testhelpers.CreateTestIngredient(t, db, "flour", "g")
	milk := testhelpers.CreateTestIngredient(t, db, "milk", "ml")

	recipe := testhelpers.CreateTestRecipe(t, db, author.ID, "Pancakes")
	testhelpers.AttachIngredient(t, db, recipe.ID, flour.ID, 100.5)
	testhelpers.AttachIngredient(t, db, recipe.ID, milk.ID, 250)

	_, err := lists.AddToCart(context.Background(), user.ID, recipe.ID)
	require.NoError(t, err)

	doc, err := svc.Document(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "flour - 100.5 g\r\nmilk - 250 ml\r\n", doc)
}

func TestShoppingDocumentEmptyCart(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewShoppingService(db)

	user := testhelpers.CreateTestUser(t, db)

	doc, err := svc.Document(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
