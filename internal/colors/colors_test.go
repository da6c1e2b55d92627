package colors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receptorium/backend/internal/colors"
)

func TestHex(t *testing.T) {
	hex, err := colors.Hex("red")
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", hex)

	hex, err = colors.Hex(" DodgerBlue ")
	require.NoError(t, err)
	assert.Equal(t, "#1e90ff", hex)

	_, err = colors.Hex("not-a-color")
	assert.Error(t, err)
}

func TestIsValid(t *testing.T) {
	assert.True(t, colors.IsValid("orange"))
	assert.True(t, colors.IsValid("DarkSlateGray"))
	assert.False(t, colors.IsValid(""))
	assert.False(t, colors.IsValid("#ff0000"))
}
