package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	configtypes "github.com/weisyn/contributor/pkg/types"
)

func TestNew(t *testing.T) {
	cfg := New(nil)
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, defaultBufferSize, cfg.GetBufferSize())

	disabled := false
	size := 0
	cfg = New(&configtypes.UserEventConfig{Enabled: &disabled, BufferSize: &size})
	assert.False(t, cfg.IsEnabled())
	// 非法缓冲区大小保持默认值
	assert.Equal(t, defaultBufferSize, cfg.GetBufferSize())
}
