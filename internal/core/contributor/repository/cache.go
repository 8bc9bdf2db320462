package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/allegro/bigcache/v3"

	cacheconfig "github.com/weisyn/contributor/internal/config/cache"
	"github.com/weisyn/contributor/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/contributor/pkg/types"
)

// SaleCache 已提交销售状态的只读缓存
//
// 只在事务提交成功后写入，读路径命中时不进入存储事务。
// 缓存与存储不一致时以存储为准：写事务始终从存储读取。
type SaleCache struct {
	cache  *bigcache.BigCache
	logger log.Logger
}

// NewSaleCache 创建销售缓存，配置未启用时返回nil
func NewSaleCache(config *cacheconfig.Config, logger log.Logger) (*SaleCache, error) {
	if config == nil || !config.IsEnabled() {
		return nil, nil
	}

	bigCacheConfig := bigcache.DefaultConfig(config.GetLifeWindow())
	bigCacheConfig.Shards = config.GetShards()
	bigCacheConfig.HardMaxCacheSize = config.GetMaxSizeMB()
	// 销售数量有限，按小窗口预分配
	bigCacheConfig.MaxEntriesInWindow = 1024
	bigCacheConfig.MaxEntrySize = 4096
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("创建销售缓存失败: %w", err)
	}
	return &SaleCache{cache: cache, logger: logger}, nil
}

// Get 读取缓存的销售，未命中返回nil
func (c *SaleCache) Get(id types.SaleID) *types.Sale {
	if c == nil {
		return nil
	}
	data, err := c.cache.Get(id.Hex())
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) && c.logger != nil {
			c.logger.Warnf("读取销售缓存失败: %v", err)
		}
		return nil
	}
	var sale types.Sale
	if err := json.Unmarshal(data, &sale); err != nil {
		c.Invalidate(id)
		return nil
	}
	return &sale
}

// Put 写入已提交的销售
func (c *SaleCache) Put(sale *types.Sale) {
	if c == nil || sale == nil {
		return
	}
	data, err := json.Marshal(sale)
	if err != nil {
		return
	}
	if err := c.cache.Set(sale.ID.Hex(), data); err != nil && c.logger != nil {
		c.logger.Warnf("写入销售缓存失败: %v", err)
	}
}

// Invalidate 删除缓存条目
func (c *SaleCache) Invalidate(id types.SaleID) {
	if c == nil {
		return
	}
	if err := c.cache.Delete(id.Hex()); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) && c.logger != nil {
		c.logger.Warnf("删除销售缓存失败: %v", err)
	}
}

// Len 缓存条目数
func (c *SaleCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Close 释放缓存
func (c *SaleCache) Close() error {
	if c == nil {
		return nil
	}
	return c.cache.Close()
}
