package service

import (
	"sync"

	"github.com/weisyn/contributor/pkg/types"
)

// saleLocks 按销售ID串行化写操作，不同销售互不阻塞
type saleLocks struct {
	mu    sync.Mutex
	locks map[types.SaleID]*saleLock
}

type saleLock struct {
	mu   sync.Mutex
	refs int
}

func newSaleLocks() *saleLocks {
	return &saleLocks{locks: make(map[types.SaleID]*saleLock)}
}

// lock 获取销售的写锁，返回释放函数
func (l *saleLocks) lock(id types.SaleID) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &saleLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// size 当前持有或等待中的销售锁数量
func (l *saleLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
