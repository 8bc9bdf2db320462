package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logconfig "github.com/weisyn/contributor/internal/config/log"
	"github.com/weisyn/contributor/pkg/types"
)

// newFileLogger 创建只写文件的日志记录器
func newFileLogger(t *testing.T, level string) (*Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	cfg := logconfig.NewFromOptions(&logconfig.LogOptions{
		Level:      level,
		FilePath:   logPath,
		Format:     "json",
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	})
	logger, err := New(cfg)
	require.NoError(t, err)
	return logger.(*Logger), logPath
}

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

// TestStructuredLogging 测试结构化日志字段
func TestStructuredLogging(t *testing.T) {
	logger, path := newFileLogger(t, InfoLevel)

	logger.With("module", "ledger", "asset_index", 3).Info("出资入账")
	require.NoError(t, logger.Sync())

	entries := readLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "出资入账", entries[0]["message"])
	assert.Equal(t, "ledger", entries[0]["module"])
	assert.Equal(t, float64(3), entries[0]["asset_index"])
}

// TestLogLevels 测试级别过滤
func TestLogLevels(t *testing.T) {
	logger, path := newFileLogger(t, WarnLevel)

	logger.Debug("调试日志")
	logger.Info("信息日志")
	logger.Warn("警告日志")
	logger.Errorf("错误日志 %d", 1)
	require.NoError(t, logger.Sync())

	entries := readLines(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "错误日志 1", entries[1]["message"])
}

// TestWith_OddArgs 落单的键被丢弃
func TestWith_OddArgs(t *testing.T) {
	logger, path := newFileLogger(t, InfoLevel)

	logger.With("k", "v", "dangling").Info("odd")
	require.NoError(t, logger.Sync())

	entries := readLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "v", entries[0]["k"])
	assert.NotContains(t, entries[0], "dangling")
}

// TestWith_StringerValues 销售ID与地址以十六进制输出
func TestWith_StringerValues(t *testing.T) {
	logger, path := newFileLogger(t, InfoLevel)

	id := types.SaleID{31: 0x07}
	logger.With("sale", id, "buyer", types.Address32{0: 0xab}).Info("结算")
	require.NoError(t, logger.Sync())

	entries := readLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, id.Hex(), entries[0]["sale"])
	assert.Contains(t, entries[0]["buyer"], "0xab00")
}

// TestNew_NoOutputs 关闭控制台且无文件时不输出
func TestNew_NoOutputs(t *testing.T) {
	cfg := logconfig.NewFromOptions(&logconfig.LogOptions{Level: InfoLevel})
	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("nothing")
	assert.NotNil(t, logger.GetZapLogger())
}
