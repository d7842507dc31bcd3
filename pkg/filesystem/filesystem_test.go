package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	t.Helper()

	subDir := filepath.Join(root, "sub", "dir")
	require.NoError(t, fsys.MkdirAll(subDir, 0755))

	testFile := filepath.Join(subDir, "out.json")
	testContent := []byte("{\n  \"a\": 1\n}\n")
	require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "out.json", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	// Overwrite replaces previous content
	require.NoError(t, fsys.WriteFile(testFile, []byte("{}\n"), 0644))
	content, err = fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))

	_, err = fsys.ReadFile(filepath.Join(root, "missing"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewMemory(t *testing.T) {
	fsys := NewMemory()
	exerciseFS(t, fsys, "/virtual")

	_, err := fsys.ReadFile("/virtual/sub")
	assert.Error(t, err, "reading a directory fails")
}
