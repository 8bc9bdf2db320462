package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	configtypes "github.com/weisyn/contributor/pkg/types"
)

func TestNew_LifeWindow(t *testing.T) {
	window := "90s"
	cfg := New(&configtypes.UserCacheConfig{LifeWindow: &window})
	assert.Equal(t, 90*time.Second, cfg.GetOptions().LifeWindow)

	// 无法解析时保留默认值
	bad := "soon"
	cfg = New(&configtypes.UserCacheConfig{LifeWindow: &bad})
	assert.Equal(t, defaultLifeWindow, cfg.GetOptions().LifeWindow)
}
