// Package repository 基于BadgerDB的出资方实体仓储
//
// 每个 Update 对应一个badger读写事务：回调返回错误时全部写入被丢弃，
// 实体保持调用前的字节内容。实体以JSON编码保存。
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	contributoriface "github.com/weisyn/contributor/pkg/interfaces/contributor"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/storage"
	"github.com/weisyn/contributor/pkg/types"
)

var _ contributoriface.Repository = (*Repository)(nil)

// Repository 实体仓储
type Repository struct {
	store  storage.BadgerStore
	cache  *SaleCache
	logger log.Logger
}

// New 创建实体仓储，cache 可为nil
func New(store storage.BadgerStore, cache *SaleCache, logger log.Logger) *Repository {
	return &Repository{store: store, cache: cache, logger: logger}
}

// View 在只读事务中访问实体
func (r *Repository) View(ctx context.Context, fn func(store contributoriface.EntityStore) error) error {
	return r.store.View(ctx, func(tx storage.BadgerTransaction) error {
		return fn(&entityStore{tx: tx})
	})
}

// Update 在读写事务中访问实体，提交成功后刷新销售缓存
func (r *Repository) Update(ctx context.Context, fn func(store contributoriface.EntityStore) error) error {
	var touched []*types.Sale
	err := r.store.RunInTransaction(ctx, func(tx storage.BadgerTransaction) error {
		es := &entityStore{tx: tx}
		if err := fn(es); err != nil {
			return err
		}
		touched = es.writtenSales
		return nil
	})
	if err != nil {
		return err
	}
	for _, sale := range touched {
		r.cache.Put(sale)
	}
	return nil
}

// CachedSale 读取销售，优先命中缓存
//
// 缓存只由 Update 在提交后写入；未命中时直接返回存储中的值，
// 读路径回填可能覆盖并发写入刚放入的新状态。
func (r *Repository) CachedSale(ctx context.Context, id types.SaleID) (*types.Sale, error) {
	if sale := r.cache.Get(id); sale != nil {
		return sale, nil
	}

	var sale *types.Sale
	err := r.View(ctx, func(store contributoriface.EntityStore) error {
		var err error
		sale, err = store.GetSale(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// entityStore 绑定单个事务的实体视图
type entityStore struct {
	tx           storage.BadgerTransaction
	writtenSales []*types.Sale
}

func (s *entityStore) GetSale(id types.SaleID) (*types.Sale, error) {
	var sale types.Sale
	ok, err := s.get(SaleKey(id), &sale)
	if err != nil || !ok {
		return nil, err
	}
	return &sale, nil
}

func (s *entityStore) PutSale(sale *types.Sale) error {
	if err := s.put(SaleKey(sale.ID), sale); err != nil {
		return err
	}
	s.writtenSales = append(s.writtenSales, sale.Clone())
	return nil
}

func (s *entityStore) GetBuyer(id types.SaleID, owner types.Address32) (*types.Buyer, error) {
	var buyer types.Buyer
	ok, err := s.get(BuyerKey(id, owner), &buyer)
	if err != nil || !ok {
		return nil, err
	}
	return &buyer, nil
}

func (s *entityStore) PutBuyer(buyer *types.Buyer) error {
	return s.put(BuyerKey(buyer.SaleID, buyer.Owner), buyer)
}

func (s *entityStore) ListBuyers(id types.SaleID) ([]*types.Buyer, error) {
	var buyers []*types.Buyer
	err := s.tx.PrefixScan(BuyerPrefix(id), func(key, value []byte) error {
		var b types.Buyer
		if err := json.Unmarshal(value, &b); err != nil {
			return fmt.Errorf("解码出资记录%s失败: %w", key, err)
		}
		buyers = append(buyers, &b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buyers, nil
}

func (s *entityStore) GetCustodian() (*types.Custodian, error) {
	var c types.Custodian
	ok, err := s.get(CustodianKey(), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (s *entityStore) PutCustodian(custodian *types.Custodian) error {
	return s.put(CustodianKey(), custodian)
}

func (s *entityStore) get(key []byte, v interface{}) (bool, error) {
	data, err := s.tx.Get(key)
	if err != nil {
		return false, fmt.Errorf("读取%s失败: %w", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("解码%s失败: %w", key, err)
	}
	return true, nil
}

func (s *entityStore) put(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("编码%s失败: %w", key, err)
	}
	if err := s.tx.Set(key, data); err != nil {
		return fmt.Errorf("写入%s失败: %w", key, err)
	}
	return nil
}
