package http

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealie-tools/mealie-api/packages/core/config"
	"github.com/mealie-tools/mealie-api/packages/payload"
)

func testCreds() *config.Credentials {
	return &config.Credentials{
		BaseURL: "https://mealie.example.com",
		Token:   "supersecrettoken123",
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"recipes", "https://mealie.example.com/api/recipes"},
		{"recipes/123", "https://mealie.example.com/api/recipes/123"},
		{"/users/self", "https://mealie.example.com/api/users/self"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL("https://mealie.example.com", tt.endpoint))
		})
	}
}

func TestInferMethod(t *testing.T) {
	tests := []struct {
		name     string
		p        payload.Payload
		explicit string
		want     string
	}{
		{"explicit wins", payload.Payload{"name": "x"}, "put", "PUT"},
		{"explicit without payload", nil, "delete", "DELETE"},
		{"payload implies POST", payload.Payload{"name": "x"}, "", "POST"},
		{"no payload implies GET", nil, "", "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferMethod(tt.p, tt.explicit))
		})
	}
}

func TestBuildRequest_GET(t *testing.T) {
	req, err := BuildRequest(testCreds(), "recipes", nil, "", false)

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "https://mealie.example.com/api/recipes", req.URL)
	assert.Equal(t, "Bearer supersecrettoken123", req.Headers["Authorization"])
	assert.Equal(t, "application/json", req.Headers["Accept"])
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
	assert.NotEmpty(t, req.Headers["X-Request-ID"])
	assert.Nil(t, req.Body)
	assert.False(t, req.Multipart())
}

func TestBuildRequest_PostWithPayload(t *testing.T) {
	req, err := BuildRequest(testCreds(), "recipes", payload.Payload{"name": "Test Recipe"}, "", false)

	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.JSONEq(t, `{"name":"Test Recipe"}`, string(req.Body))
}

func TestBuildRequest_BodyOnlyForWriteMethods(t *testing.T) {
	// A payload alongside an explicit DELETE is not transmitted.
	req, err := BuildRequest(testCreds(), "recipes/123", payload.Payload{"name": "x"}, "DELETE", false)

	require.NoError(t, err)
	assert.Equal(t, "DELETE", req.Method)
	assert.Nil(t, req.Body)
	assert.False(t, req.Multipart())
}

func TestBuildRequest_MultipartOmitsContentType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.zip")
	require.NoError(t, os.WriteFile(path, []byte("zipdata"), 0o644))

	p := payload.Payload{"archive": path, "migration_type": "nextcloud"}
	req, err := BuildRequest(testCreds(), "groups/migrations", p, "POST", true)

	require.NoError(t, err)
	assert.NotContains(t, req.Headers, "Content-Type")
	assert.Equal(t, map[string]string{"archive": path}, req.Files)
	assert.Equal(t, map[string]any{"migration_type": "nextcloud"}, req.Fields)
	assert.True(t, req.Multipart())
	assert.Equal(t, []string{"archive"}, req.FileNames())
}

func TestBuildRequest_MultipartMissingFile(t *testing.T) {
	p := payload.Payload{"archive": "/nonexistent/backup.zip"}

	_, err := BuildRequest(testCreds(), "groups/migrations", p, "POST", true)

	require.Error(t, err)
	var notFound *payload.FileNotFoundError
	assert.True(t, errors.As(err, &notFound))
}
