package badger

import (
	"github.com/weisyn/contributor/pkg/utils"
)

// getDefaultPath 获取默认数据库路径
func getDefaultPath() string {
	return utils.ResolveDataPath("./data/badger")
}

const (
	// defaultSyncWrites 默认启用同步写入
	// 托管账本要求提交后即持久
	defaultSyncWrites = true

	// defaultMemTableSize 默认内存表大小为64MB
	defaultMemTableSize = 64 << 20
)
