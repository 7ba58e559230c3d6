package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileService tests existence checks and reads.
func TestFileService(t *testing.T) {
	fs := NewFileService()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: station\nqos: 1\n"), 0600))

	exists, err := fs.IsFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fs.IsFileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)

	raw, err := fs.ReadFileRaw(path)
	require.NoError(t, err)
	assert.Equal(t, "name: station\nqos: 1\n", string(raw))

	var v struct {
		Name string `yaml:"name"`
		QOS  int    `yaml:"qos"`
	}
	require.NoError(t, fs.ReadYamlFile(path, &v))
	assert.Equal(t, "station", v.Name)
	assert.Equal(t, 1, v.QOS)

	assert.Error(t, fs.ReadYamlFile(filepath.Join(dir, "missing"), &v))
}
