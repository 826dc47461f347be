package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconLoadsEmbeddedSVG(t *testing.T) {
	icon, err := Icon(IconFileName)

	require.NoError(t, err)
	assert.Equal(t, "icon/kiosk.svg", icon.Name())
	assert.Contains(t, string(icon.Content()), "<svg")
}

func TestIconIsCached(t *testing.T) {
	first := MustIcon(IconFileName)
	second := MustIcon(IconFileName)

	assert.Same(t, first, second)
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
