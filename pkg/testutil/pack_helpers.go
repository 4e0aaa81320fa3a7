// Package testutil provides fixture helpers shared by package tests
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MakePack creates a pack directory under a temp dir with a minimal
// module.json declaring name and version, and returns its path.
func MakePack(t *testing.T, name, version string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	manifest := fmt.Sprintf("{\n  \"name\": %q,\n  \"version\": %q\n}\n", name, version)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module.json"), []byte(manifest), 0644))

	return dir
}

// WriteFile creates a file (and any parent directories) inside a pack
func WriteFile(t *testing.T, packDir, rel, content string) {
	t.Helper()

	path := filepath.Join(packDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
