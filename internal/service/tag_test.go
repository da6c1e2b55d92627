package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptorium/backend/internal/service"
	"github.com/receptorium/backend/internal/testhelpers"
)

func TestTagCreateDerivesColor(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewTagService(db)

	tag, err := svc.Create(context.Background(), "Breakfast", "Orange", "breakfast")
	require.NoError(t, err)
	assert.Equal(t, "orange", tag.ColorName)
	assert.Equal(t, "#ffa500", tag.Color)
	assert.Equal(t, "breakfast", tag.Slug)
}

func TestTagCreateUnknownColor(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewTagService(db)

	_, err := svc.Create(context.Background(), "Dinner", "not-a-color", "dinner")
	assert.ErrorIs(t, err, service.ErrUnknownColor)
}

func TestTagListOrdered(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewTagService(db)

	_, err := svc.Create(context.Background(), "dinner", "navy", "dinner")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "breakfast", "orange", "breakfast")
	require.NoError(t, err)

	tags, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "dinner", tags[1].Name)
}
