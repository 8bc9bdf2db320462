package badger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	configtypes "github.com/weisyn/contributor/pkg/types"
)

func TestNew_DataRootAndFlags(t *testing.T) {
	root := t.TempDir()
	inMemory := true
	sync := false

	cfg := New(&configtypes.UserStorageConfig{DataRoot: &root, InMemory: &inMemory, SyncWrites: &sync})

	assert.Equal(t, filepath.Join(root, "badger"), cfg.GetPath())
	assert.True(t, cfg.IsInMemory())
	assert.False(t, cfg.IsSyncWritesEnabled())
	assert.Equal(t, int64(defaultMemTableSize), cfg.GetMemTableSize())
}

func TestNewInMemory(t *testing.T) {
	cfg := NewInMemory()
	assert.True(t, cfg.IsInMemory())
	assert.Empty(t, cfg.GetPath())
}
