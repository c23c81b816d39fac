package styles

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHasSevenThemes(t *testing.T) {
	assert.Len(t, Themes, 7)
	assert.Len(t, ThemeOrder, 7)
	for _, key := range ThemeOrder {
		theme, ok := Get(key)
		require.True(t, ok, "theme %q missing", key)
		assert.Equal(t, key, theme.Key)
		require.NotNil(t, theme.Style)
		assert.Equal(t, 8, theme.Style.Version)
		assert.NotEmpty(t, theme.Style.Sources)
		assert.NotEmpty(t, theme.Style.Layers)
	}
}

func TestGetUnknownTheme(t *testing.T) {
	_, ok := Get("sepia")
	assert.False(t, ok)
}

func TestDefaultThemeCarriesWaveStack(t *testing.T) {
	theme, ok := Get("default")
	require.True(t, ok)

	ids := make(map[string]bool)
	for _, layer := range theme.Style.Layers {
		ids[layer.ID] = true
	}
	assert.True(t, ids[WaterLayerIDs.Base])
	assert.True(t, ids[WaterLayerIDs.Wave1])
	assert.True(t, ids[WaterLayerIDs.Wave2])
	assert.True(t, ids[WaterLayerIDs.Highlight])
}

func TestLayerIDsUniqueWithinEachStyle(t *testing.T) {
	for _, key := range ThemeOrder {
		theme, _ := Get(key)
		seen := make(map[string]bool)
		for _, layer := range theme.Style.Layers {
			assert.False(t, seen[layer.ID], "theme %q repeats layer %q", key, layer.ID)
			seen[layer.ID] = true
		}
	}
}

func TestStyleSerializesWithVendorKeys(t *testing.T) {
	theme, _ := Get("dark")
	raw, err := json.Marshal(theme.Style)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 8.0, doc["version"])

	layers, ok := doc["layers"].([]any)
	require.True(t, ok)
	foundSourceLayer := false
	for _, l := range layers {
		if m, ok := l.(map[string]any); ok {
			if _, has := m["source-layer"]; has {
				foundSourceLayer = true
			}
		}
	}
	assert.True(t, foundSourceLayer, "vector layers should carry source-layer")
}
