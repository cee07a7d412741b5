package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSet_MatchesPath(t *testing.T) {
	set, err := NewDirSet("node_modules", ".git")
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"main.go", false},
		{"node_modules/left-pad/index.js", true},
		{"web/node_modules/x.js", true},
		{".git/config", true},
		{"src/.gitignore", false},
		{"node_modules", false}, // a file literally named like an ignored dir
		{"src/pkg/main.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, set.MatchesPath(tt.path))
		})
	}
}

func TestDirSet_ZeroValue(t *testing.T) {
	var set DirSet
	assert.False(t, set.MatchesPath("build/out.txt"))
	assert.Equal(t, 0, set.Len())
}

func TestDefaults(t *testing.T) {
	set := Defaults()
	assert.Equal(t, len(DefaultDirs), set.Len())
	assert.True(t, set.MatchesPath("target/debug/app.d"))
	assert.True(t, set.MatchesPath("a/__pycache__/m.pyc"))
}

func TestNewDirSet_RejectsPaths(t *testing.T) {
	_, err := NewDirSet("a/b")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = NewDirSet("")
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = NewDirSet("..")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestDirSet_WithDoesNotMutate(t *testing.T) {
	base, err := NewDirSet("vendor")
	require.NoError(t, err)

	extended, err := base.With("fixtures")
	require.NoError(t, err)

	assert.False(t, base.Contains("fixtures"))
	assert.True(t, extended.Contains("fixtures"))
	assert.Equal(t, []string{"fixtures", "vendor"}, extended.Names())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "ignore.txt")
	require.NoError(t, os.WriteFile(fpath, []byte("# generated\n\nvendor\n  coverage  \n"), 0644))

	names, err := LoadFile(fpath, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor", "coverage"}, names)
}

func TestLoadFile_InvalidLine(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "ignore.txt")
	require.NoError(t, os.WriteFile(fpath, []byte("ok\nsrc/gen\n"), 0644))

	_, err := LoadFile(fpath, nil)
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Contains(t, err.Error(), ":2:")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope"), nil)
	require.Error(t, err)
}
