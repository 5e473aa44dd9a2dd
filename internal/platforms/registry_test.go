package platforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/lyrahq/lyra-backend/configs"
)

func TestRegistryGet(t *testing.T) {
	registry := Default(config.Config{})

	adapter, err := registry.Get("instagram")
	require.NoError(t, err)
	assert.Equal(t, "instagram", adapter.Name())
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := Default(config.Config{})

	_, err := registry.Get("myspace")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.Contains(t, err.Error(), "myspace")
}

func TestRegistryNames(t *testing.T) {
	registry := Default(config.Config{})

	assert.Equal(t, []string{"facebook", "instagram", "linkedin", "tiktok"}, registry.Names())
}

func TestCaption(t *testing.T) {
	content := contentFixture()
	assert.Equal(t, "Launch day!\n\n#launch #startup", caption(content))

	content.Hashtags = ""
	assert.Equal(t, "Launch day!", caption(content))
}
