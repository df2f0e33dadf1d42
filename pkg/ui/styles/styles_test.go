package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	require.NoError(t, LoadStylesFromData(embeddedStyles))

	for _, name := range []string{"Header", "Name", "Visible", "Hidden", "FilePath", "Error"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "missing style %s", name)
	}
	assert.Contains(t, colors, "accent")
}

func TestBuildStyle(t *testing.T) {
	require.NoError(t, LoadStylesFromData([]byte(`
colors:
  primary:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Title:
    bold: true
    foreground: primary
    width: 10
`)))

	style := GetStyle("Title")
	assert.True(t, style.GetBold())
	assert.Equal(t, 10, style.GetWidth())

	t.Cleanup(func() { _ = LoadStylesFromData(embeddedStyles) })
}

func TestGetStyle_Unknown(t *testing.T) {
	assert.Equal(t, "plain", GetStyle("DoesNotExist").Render("plain"))
}

func TestLoadStylesFromData_Invalid(t *testing.T) {
	err := LoadStylesFromData([]byte("colors: [unclosed"))
	assert.Error(t, err)
	require.NoError(t, LoadStylesFromData(embeddedStyles))
}
