package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	configtypes "github.com/weisyn/contributor/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New(nil)
	assert.False(t, cfg.IsEnabled())
	assert.Equal(t, defaultStream, cfg.GetStream())
	assert.Equal(t, defaultTimeout, cfg.GetOptions().Timeout)
}

func TestNew_UserOverrides(t *testing.T) {
	enabled := true
	addr := "redis:6380"
	stream := "icco:out"
	timeout := "2s"
	bad := -1
	cfg := New(&configtypes.UserRelayConfig{
		Enabled:  &enabled,
		Addr:     &addr,
		Stream:   &stream,
		Timeout:  &timeout,
		PoolSize: &bad,
	})

	opts := cfg.GetOptions()
	assert.True(t, opts.Enabled)
	assert.Equal(t, "redis:6380", opts.Addr)
	assert.Equal(t, "icco:out", cfg.GetStream())
	assert.Equal(t, 2*time.Second, opts.Timeout)
	// 非法连接池大小保持默认值
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
}
