package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheconfig "github.com/weisyn/contributor/internal/config/cache"
	badgerconfig "github.com/weisyn/contributor/internal/config/storage/badger"
	"github.com/weisyn/contributor/internal/core/contributor/testutil"
	"github.com/weisyn/contributor/internal/core/infrastructure/storage/badger"
	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/types"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	store, err := badger.New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cache, err := NewSaleCache(cacheconfig.NewFromOptions(&cacheconfig.CacheOptions{
		Enabled:    true,
		LifeWindow: time.Minute,
		MaxSizeMB:  8,
		Shards:     8,
	}), &testutil.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return New(store, cache, &testutil.MockLogger{})
}

func sampleSale(id types.SaleID) *types.Sale {
	return &types.Sale{
		ID:          id,
		SaleToken:   testutil.SaleToken,
		TokenAmount: uint256.NewInt(1000),
		MinRaise:    uint256.NewInt(1),
		MaxRaise:    uint256.NewInt(10),
		AcceptedAssets: []types.AcceptedAsset{
			{Index: 0, Asset: testutil.USDC, ConversionRate: uint256.NewInt(2), Cap: uint256.NewInt(1000)},
		},
		Status: types.SaleStatusOpen,
		Totals: []*uint256.Int{uint256.NewInt(7)},
		Swept:  []bool{false},
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	id := testutil.SaleID(1)

	require.NoError(t, repo.Update(ctx, func(es contributoriface.EntityStore) error {
		if err := es.PutSale(sampleSale(id)); err != nil {
			return err
		}
		if err := es.PutCustodian(&types.Custodian{Owner: testutil.Custody}); err != nil {
			return err
		}
		return es.PutBuyer(&types.Buyer{SaleID: id, Owner: testutil.Addr(2), Contributions: []*uint256.Int{uint256.NewInt(7)}})
	}))

	require.NoError(t, repo.View(ctx, func(es contributoriface.EntityStore) error {
		sale, err := es.GetSale(id)
		require.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, types.SaleStatusOpen, sale.Status)
		assert.Equal(t, uint64(7), sale.Totals[0].Uint64())

		buyer, err := es.GetBuyer(id, testutil.Addr(2))
		require.NoError(t, err)
		require.NotNil(t, buyer)
		assert.Equal(t, uint64(7), buyer.Contribution(0).Uint64())

		missing, err := es.GetBuyer(id, testutil.Addr(3))
		require.NoError(t, err)
		assert.Nil(t, missing)

		c, err := es.GetCustodian()
		require.NoError(t, err)
		assert.Equal(t, testutil.Custody, c.Owner)
		return nil
	}))

	// 提交后缓存可命中
	assert.Equal(t, 1, repo.cache.Len())
	cached, err := repo.CachedSale(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cached.Totals[0].Uint64())
}

func TestRepository_FailedUpdateLeavesNoTrace(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	id := testutil.SaleID(2)
	boom := errors.New("boom")

	err := repo.Update(ctx, func(es contributoriface.EntityStore) error {
		if err := es.PutSale(sampleSale(id)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	sale, err := repo.CachedSale(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sale)
	assert.Equal(t, 0, repo.cache.Len())
}

func TestRepository_CacheMissDoesNotRefill(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	id := testutil.SaleID(5)

	require.NoError(t, repo.Update(ctx, func(es contributoriface.EntityStore) error {
		return es.PutSale(sampleSale(id))
	}))
	repo.cache.Invalidate(id)

	sale, err := repo.CachedSale(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, uint64(7), sale.Totals[0].Uint64())
	assert.Nil(t, repo.cache.Get(id))
}

func TestRepository_ConcurrentReadsSeeLatestCommit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	id := testutil.SaleID(6)
	require.NoError(t, repo.Update(ctx, func(es contributoriface.EntityStore) error {
		return es.PutSale(sampleSale(id))
	}))

	// 读方不断淘汰并回读缓存，与写方交错
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				repo.cache.Invalidate(id)
				_, _ = repo.CachedSale(ctx, id)
			}
		}()
	}

	for total := uint64(8); total <= 60; total++ {
		next := sampleSale(id)
		next.Totals[0] = uint256.NewInt(total)
		require.NoError(t, repo.Update(ctx, func(es contributoriface.EntityStore) error {
			return es.PutSale(next)
		}))
		got, err := repo.CachedSale(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, total, got.Totals[0].Uint64())
	}
	close(stop)
	wg.Wait()

	got, err := repo.CachedSale(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), got.Totals[0].Uint64())
}

func TestRepository_ListBuyers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	id, other := testutil.SaleID(3), testutil.SaleID(4)

	require.NoError(t, repo.Update(ctx, func(es contributoriface.EntityStore) error {
		for _, b := range []byte{3, 1, 2} {
			if err := es.PutBuyer(&types.Buyer{SaleID: id, Owner: testutil.Addr(b)}); err != nil {
				return err
			}
		}
		return es.PutBuyer(&types.Buyer{SaleID: other, Owner: testutil.Addr(9)})
	}))

	require.NoError(t, repo.View(ctx, func(es contributoriface.EntityStore) error {
		buyers, err := es.ListBuyers(id)
		require.NoError(t, err)
		require.Len(t, buyers, 3)
		assert.Equal(t, testutil.Addr(1), buyers[0].Owner)
		assert.Equal(t, testutil.Addr(3), buyers[2].Owner)
		return nil
	}))
}

func TestNewSaleCache_Disabled(t *testing.T) {
	cache, err := NewSaleCache(cacheconfig.NewFromOptions(&cacheconfig.CacheOptions{Enabled: false}), nil)
	require.NoError(t, err)
	assert.Nil(t, cache)

	// nil 缓存的方法均为空操作
	cache.Put(sampleSale(testutil.SaleID(1)))
	assert.Nil(t, cache.Get(testutil.SaleID(1)))
	assert.Equal(t, 0, cache.Len())
	assert.NoError(t, cache.Close())
}
