package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptorium/backend/internal/models"
	"github.com/receptorium/backend/internal/service"
	"github.com/receptorium/backend/internal/testhelpers"
)

func TestIngredientSearch(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	testhelpers.CreateTestIngredient(t, db, "flour", "g")
	testhelpers.CreateTestIngredient(t, db, "flaxseed", "g")
	testhelpers.CreateTestIngredient(t, db, "milk", "ml")

	got, err := svc.Search(context.Background(), "fl")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "flaxseed", got[0].Name)
	assert.Equal(t, "flour", got[1].Name)

	all, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestIngredientCreateLowercases(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	got, err := svc.Create(context.Background(), " Flour ", "G")
	require.NoError(t, err)
	assert.Equal(t, "flour", got.Name)
	assert.Equal(t, "g", got.MeasurementUnit)
}

func TestImportCSV(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	csv := "Flour,g\nmilk,ml\nsugar,g\n"
	created, err := svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var flour models.Ingredient
	require.NoError(t, db.First(&flour, "name = ?", "flour").Error)
	assert.Equal(t, "g", flour.MeasurementUnit)

	// Re-import is a no-op.
	created, err = svc.ImportCSV(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestImportCSVShortRow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewIngredientService(db)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("flour\n"))
	assert.Error(t, err)
}
