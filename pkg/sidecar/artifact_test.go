package sidecar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_PackagingContract(t *testing.T) {
	a := layout("/opt/app/resources")

	assert.Equal(t, "/opt/app/resources", a.Root)
	assert.Equal(t, filepath.FromSlash("/opt/app/resources/sidecar"), a.Dir)
	assert.Equal(t, filepath.FromSlash("/opt/app/resources/sidecar/dist/index.js"), a.Entry)
}

func TestResolveArtifact(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		root    string
		wantErr bool
	}{
		{name: "existing directory", root: root},
		{name: "empty path", root: "", wantErr: true},
		{name: "missing directory", root: filepath.Join(root, "missing"), wantErr: true},
		{name: "regular file", root: file, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ResolveArtifact(tt.root)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsResourceRootError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(tt.root, "sidecar", "dist", "index.js"), a.Entry)
		})
	}
}

func TestArtifactPath_Exists(t *testing.T) {
	root := t.TempDir()
	a, err := ResolveArtifact(root)
	require.NoError(t, err)
	assert.False(t, a.Exists())

	writeArtifact(t, root, "")
	assert.True(t, a.Exists())
}

func writeArtifact(t *testing.T, root, content string) string {
	t.Helper()
	entry := filepath.Join(root, "sidecar", "dist", "index.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(entry), 0755))
	require.NoError(t, os.WriteFile(entry, []byte(content), 0644))
	return entry
}
