package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	return path
}

func TestClassify_SentinelKeyWithTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := writeFile(t, home, "backup.zip")

	c, err := Classify(Payload{"archive": "~/backup.zip"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"archive": path}, c.Files)
	assert.Empty(t, c.Fields)
}

func TestClassify_PlainField(t *testing.T) {
	c, err := Classify(Payload{"name": "Test Recipe"})

	require.NoError(t, err)
	assert.Empty(t, c.Files)
	assert.Equal(t, map[string]any{"name": "Test Recipe"}, c.Fields)
}

func TestClassify_MixedPartition(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "import.csv")

	p := Payload{
		"migration_type": "nextcloud",
		"upload":         path,
		"dryRun":         true,
	}
	c, err := Classify(p)

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"upload": path}, c.Files)
	assert.Equal(t, map[string]any{"migration_type": "nextcloud", "dryRun": true}, c.Fields)

	// File and plain fields together cover every key, with no overlap.
	assert.Len(t, c.Files, 1)
	assert.Len(t, c.Fields, 2)
	for k := range c.Files {
		assert.NotContains(t, c.Fields, k)
	}
}

func TestClassify_MissingFileFailsFast(t *testing.T) {
	_, err := Classify(Payload{"archive": "/nonexistent/backup.zip"})

	require.Error(t, err)
	var notFound *FileNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "archive", notFound.Field)
	assert.Equal(t, "/nonexistent/backup.zip", notFound.Path)
}

func TestClassify_DirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Classify(Payload{"file": dir + "/"})

	var notFound *FileNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestIsFileReference(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  bool
	}{
		{"sentinel key archive", "archive", "anything", true},
		{"sentinel key uppercase", "FILE", "anything", true},
		{"sentinel key attachment", "attachment", "photo", true},
		{"home-relative path", "data", "~/photo.jpg", true},
		{"absolute path", "data", "/etc/hosts", true},
		{"bare filename with extension", "data", "photo.jpg", true},
		{"nested path with extension", "data", "imports/photo.jpg", true},
		{"plain text value", "name", "Test Recipe", false},
		{"path without extension in last segment", "data", "some/dir", false},
		{"non-string value", "file", 42, false},
		{"boolean value", "upload", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFileReference(tt.key, tt.value))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, "backup.zip"), ExpandPath("~/backup.zip"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/path.zip", ExpandPath("/abs/path.zip"))
	assert.Equal(t, "relative.zip", ExpandPath("relative.zip"))
}

func TestClassified_StableNames(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.zip")
	b := writeFile(t, dir, "b.zip")

	c, err := Classify(Payload{"upload": b, "archive": a, "name": "x", "kind": "y"})
	require.NoError(t, err)

	assert.Equal(t, []string{"archive", "upload"}, c.FileNames())
	assert.Equal(t, []string{"kind", "name"}, c.FieldNames())
}
