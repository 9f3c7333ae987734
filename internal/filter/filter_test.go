package filter

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid patterns", func(t *testing.T) {
		t.Parallel()
		f, err := New([]string{"vendor/", `\.pb\.c$`})
		require.NoError(t, err)
		assert.Equal(t, []string{"vendor/", `\.pb\.c$`}, f.Patterns())
	})

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		f, err := New(nil)
		require.NoError(t, err)
		assert.Empty(t, f.Patterns())
	})

	t.Run("every invalid pattern is reported", func(t *testing.T) {
		t.Parallel()
		_, err := New([]string{"ok/", "(unclosed", "also[bad", "fine"})
		require.Error(t, err)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 2)

		var first *InvalidPatternError
		require.ErrorAs(t, merr.Errors[0], &first)
		assert.Equal(t, 1, first.Index)
		assert.Equal(t, "(unclosed", first.Pattern)
		assert.Contains(t, err.Error(), `exclusion pattern #2 "also[bad"`)
	})
}

func TestFilter_Included(t *testing.T) {
	t.Parallel()

	f, err := New([]string{"vendor/", "/third_party/", `_generated\.h$`})
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"plain source", "/repo/src/foo.c", true},
		{"vendor substring anywhere", "/repo/vendor/bar.c", false},
		{"nested vendor", "/repo/libs/vendor/x/y.h", false},
		{"anchored suffix", "/repo/include/api_generated.h", false},
		{"suffix only counts at end", "/repo/include/api_generated.h.in", true},
		{"third party", "/repo/third_party/zlib/inflate.c", false},
		{"name containing pattern text without slash", "/repo/src/vendors.c", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Included(tt.path))
			assert.Equal(t, !tt.want, f.Excluded(tt.path))
		})
	}
}

func TestFilter_FirstMatchWins(t *testing.T) {
	t.Parallel()

	f, err := New([]string{"src/", "foo"})
	require.NoError(t, err)
	assert.Equal(t, "src/", f.Match("/repo/src/foo.c"))
	assert.Equal(t, "foo", f.Match("/repo/lib/foo.c"))
	assert.Empty(t, f.Match("/repo/lib/bar.c"))
}

func TestFilter_SeparatorIndependence(t *testing.T) {
	t.Parallel()

	f, err := New([]string{"vendor/"})
	require.NoError(t, err)

	path := filepath.Join(string(filepath.Separator)+"repo", "vendor", "bar.c")
	slashed := filepath.ToSlash(path)
	assert.Equal(t, f.Included(path), f.Included(slashed))
	assert.False(t, f.Included(path))

	if filepath.Separator != '/' {
		native := strings.ReplaceAll(slashed, "/", string(filepath.Separator))
		assert.False(t, f.Included(native))
	}
}

func TestFilter_NilAndEmptyIncludeEverything(t *testing.T) {
	t.Parallel()

	var nilFilter *Filter
	assert.True(t, nilFilter.Included("/any/path.c"))
	assert.Nil(t, nilFilter.Patterns())

	empty, err := New([]string{})
	require.NoError(t, err)
	assert.True(t, empty.Included("/any/path.c"))
}
