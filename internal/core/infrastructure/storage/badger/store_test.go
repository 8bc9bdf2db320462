package badger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	badgerconfig "github.com/weisyn/contributor/internal/config/storage/badger"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
	configtypes "github.com/weisyn/contributor/pkg/types"
)

// newTestStore 创建内存存储
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// put 在单独的读写事务中写入
func put(t *testing.T, store *Store, key, value string) {
	t.Helper()
	require.NoError(t, store.RunInTransaction(context.Background(), func(tx storage.BadgerTransaction) error {
		return tx.Set([]byte(key), []byte(value))
	}))
}

// get 在只读事务中读取
func get(t *testing.T, store *Store, key string) []byte {
	t.Helper()
	var v []byte
	require.NoError(t, store.View(context.Background(), func(tx storage.BadgerTransaction) error {
		var err error
		v, err = tx.Get([]byte(key))
		return err
	}))
	return v
}

func TestStore_BasicOperations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// 不存在的键返回 nil, nil
	assert.Nil(t, get(t, store, "missing"))
	exists, err := store.Exists(ctx, []byte("sale/2"))
	require.NoError(t, err)
	assert.False(t, exists)

	put(t, store, "sale/1", "a")
	put(t, store, "sale/2", "b")

	assert.Equal(t, []byte("a"), get(t, store, "sale/1"))
	exists, err = store.Exists(ctx, []byte("sale/2"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_RunInTransaction_CancelledContextDiscards(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		cancel()
		return tx.Set([]byte("k"), []byte("v"))
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, get(t, store, "k"))
}

func TestStore_RunInTransaction_Rollback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		require.NoError(t, tx.Set([]byte("k"), []byte("v")))
		// 事务内可见
		v, err := tx.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// 回滚后不可见
	assert.Nil(t, get(t, store, "k"))
}

func TestTransaction_PrefixScanSeesOwnWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	put(t, store, "buyer/1/a", "1")
	put(t, store, "buyer/2/a", "x")

	var keys []string
	require.NoError(t, store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		if err := tx.Set([]byte("buyer/1/b"), []byte("2")); err != nil {
			return err
		}
		return tx.PrefixScan([]byte("buyer/1/"), func(key, _ []byte) error {
			keys = append(keys, string(key))
			return nil
		})
	}))
	assert.Equal(t, []string{"buyer/1/a", "buyer/1/b"}, keys)
}

func TestStore_ViewIsReadOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	put(t, store, "k", "v")

	err := store.View(ctx, func(tx storage.BadgerTransaction) error {
		v, err := tx.Get([]byte("k"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), v)
		return tx.Set([]byte("k"), []byte("w"))
	})
	assert.Error(t, err)
	assert.Equal(t, []byte("v"), get(t, store, "k"))
}

func TestStore_BackupRestore(t *testing.T) {
	src := newTestStore(t)
	ctx := context.Background()
	put(t, src, "custodian", "owner")

	var buf bytes.Buffer
	_, err := src.Backup(ctx, &buf)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, dst.Restore(ctx, &buf))

	assert.Equal(t, []byte("owner"), get(t, dst, "custodian"))
}

func TestStore_ClosedRejectsWrites(t *testing.T) {
	store, err := New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	// 重复关闭无副作用
	require.NoError(t, store.Close())

	err = store.RunInTransaction(context.Background(), func(tx storage.BadgerTransaction) error { return nil })
	assert.ErrorIs(t, err, ErrStoreClosing)
}

func TestStore_OnDisk(t *testing.T) {
	root := t.TempDir()
	store, err := New(badgerconfig.New(&configtypes.UserStorageConfig{DataRoot: &root}), nil)
	require.NoError(t, err)
	put(t, store, "k", "v")
	require.NoError(t, store.Close())

	// 重新打开后数据仍在
	store, err = New(badgerconfig.New(&configtypes.UserStorageConfig{DataRoot: &root}), nil)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, []byte("v"), get(t, store, "k"))
}
