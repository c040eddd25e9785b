package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeader_UnderlineMatchesAccentedTitle(t *testing.T) {
	out := Header("Memòria")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, len([]rune("MEMÒRIA")), len([]rune(lines[1])))
}

func TestTemplateBadge(t *testing.T) {
	assert.Contains(t, TemplateBadge(true), "plantilla")
	assert.Empty(t, TemplateBadge(false))
}
