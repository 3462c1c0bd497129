package icons_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardenbot/warden/internal/icons"
)

func TestResolve(t *testing.T) {
	t.Run("known names resolve to stable glyphs", func(t *testing.T) {
		person, err := icons.Resolve("person")
		require.NoError(t, err)
		assert.Equal(t, "\U0001F464", person)

		ban, err := icons.Resolve("ban")
		require.NoError(t, err)
		assert.Equal(t, "\U0001F528", ban)

		// Resolution is pure: same name, same glyph.
		again, err := icons.Resolve("person")
		require.NoError(t, err)
		assert.Equal(t, person, again)
	})

	t.Run("unknown name fails with ErrNotFound", func(t *testing.T) {
		_, err := icons.Resolve("not-a-real-icon")
		require.Error(t, err)
		assert.ErrorIs(t, err, icons.ErrNotFound)
		assert.Contains(t, err.Error(), "not-a-real-icon")
	})

	t.Run("covers every name the producers emit", func(t *testing.T) {
		for _, name := range []string{"person", "item_add", "item_remove", "item_clear", "warning", "journal"} {
			_, err := icons.Resolve(name)
			assert.NoError(t, err, "icon %q", name)
		}
	})
}

func TestNames(t *testing.T) {
	names := icons.Names()
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "ban")
}

func TestAllReturnsACopy(t *testing.T) {
	all := icons.All()
	require.NotEmpty(t, all)

	all["person"] = "tampered"

	glyph, err := icons.Resolve("person")
	require.NoError(t, err)
	assert.Equal(t, "\U0001F464", glyph)
}
