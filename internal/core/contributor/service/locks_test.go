package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/contributor/internal/core/contributor/testutil"
)

func TestSaleLocks_SerializesSameSale(t *testing.T) {
	locks := newSaleLocks()
	id := testutil.SaleID(1)

	unlock := locks.lock(id)
	acquired := make(chan struct{})
	go func() {
		u := locks.lock(id)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("同一销售的第二个持有者不应立即获得锁")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-acquired
	assert.Equal(t, 0, locks.size())
}

func TestSaleLocks_IndependentSales(t *testing.T) {
	locks := newSaleLocks()
	a := locks.lock(testutil.SaleID(1))
	b := locks.lock(testutil.SaleID(2))
	assert.Equal(t, 2, locks.size())
	a()
	b()
	assert.Equal(t, 0, locks.size())
}

func TestSaleLocks_ReleasesEntries(t *testing.T) {
	locks := newSaleLocks()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(b byte) {
			defer wg.Done()
			locks.lock(testutil.SaleID(b % 5))()
		}(byte(i))
	}
	wg.Wait()
	assert.Equal(t, 0, locks.size())
}
