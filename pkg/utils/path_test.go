package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDataPath(t *testing.T) {
	// 绝对路径原样返回
	abs := filepath.Join(t.TempDir(), "badger")
	assert.Equal(t, abs, ResolveDataPath(abs))

	// 相对路径基于项目根目录
	root := t.TempDir()
	t.Setenv("CONTRIBUTOR_PROJECT_ROOT", root)
	assert.Equal(t, filepath.Join(root, "data", "badger"), ResolveDataPath("data/badger"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	require.DirExists(t, dir)
}
