// Package testutil 出资方核心的测试替身
package testutil

import (
	"bytes"
	"sort"
	"sync"

	"go.uber.org/zap"

	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

// MockLogger 不输出任何内容的日志实现
type MockLogger struct{}

func (m *MockLogger) Debug(msg string)                          {}
func (m *MockLogger) Debugf(format string, args ...interface{}) {}
func (m *MockLogger) Info(msg string)                           {}
func (m *MockLogger) Infof(format string, args ...interface{})  {}
func (m *MockLogger) Warn(msg string)                           {}
func (m *MockLogger) Warnf(format string, args ...interface{})  {}
func (m *MockLogger) Error(msg string)                          {}
func (m *MockLogger) Errorf(format string, args ...interface{}) {}
func (m *MockLogger) Fatal(msg string)                          {}
func (m *MockLogger) Fatalf(format string, args ...interface{}) {}
func (m *MockLogger) With(args ...interface{}) log.Logger       { return m }
func (m *MockLogger) Sync() error                               { return nil }
func (m *MockLogger) GetZapLogger() *zap.Logger                 { return zap.NewNop() }

var _ contributoriface.EntityStore = (*MemoryEntityStore)(nil)

type buyerKey struct {
	sale  types.SaleID
	owner types.Address32
}

// MemoryEntityStore 基于map的实体视图，存取时深拷贝，行为与仓储事务一致
type MemoryEntityStore struct {
	mu        sync.Mutex
	sales     map[types.SaleID]*types.Sale
	buyers    map[buyerKey]*types.Buyer
	custodian *types.Custodian
}

// NewMemoryEntityStore 创建空的实体视图
func NewMemoryEntityStore() *MemoryEntityStore {
	return &MemoryEntityStore{
		sales:  make(map[types.SaleID]*types.Sale),
		buyers: make(map[buyerKey]*types.Buyer),
	}
}

func (m *MemoryEntityStore) GetSale(id types.SaleID) (*types.Sale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales[id].Clone(), nil
}

func (m *MemoryEntityStore) PutSale(sale *types.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale.Clone()
	return nil
}

func (m *MemoryEntityStore) GetBuyer(id types.SaleID, owner types.Address32) (*types.Buyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buyers[buyerKey{id, owner}].Clone(), nil
}

func (m *MemoryEntityStore) PutBuyer(buyer *types.Buyer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buyers[buyerKey{buyer.SaleID, buyer.Owner}] = buyer.Clone()
	return nil
}

func (m *MemoryEntityStore) ListBuyers(id types.SaleID) ([]*types.Buyer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*types.Buyer
	for k, b := range m.buyers {
		if k.sale == id {
			out = append(out, b.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Owner[:], out[j].Owner[:]) < 0
	})
	return out, nil
}

func (m *MemoryEntityStore) GetCustodian() (*types.Custodian, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.custodian == nil {
		return nil, nil
	}
	c := *m.custodian
	return &c, nil
}

func (m *MemoryEntityStore) PutCustodian(custodian *types.Custodian) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *custodian
	m.custodian = &c
	return nil
}
