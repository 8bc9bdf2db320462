package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weisyn/contributor/pkg/types"
)

const testConfigJSON = `{
  "environment": "dev",
  "contributor": {
    "chain_id": 2,
    "conductor_chain_id": 1,
    "conductor_address": "0x000000000000000000000000000000000000000000000000000000000000c0de"
  },
  "storage": {"in_memory": true},
  "api": {"http_port": 9090},
  "relay": {"enabled": true, "addr": "redis:6379", "stream": "icco:outbound"}
}`

func TestLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(testConfigJSON), 0600))

	appConfig, err := LoadAppConfig(path)
	require.NoError(t, err)

	provider := NewProvider(appConfig)
	require.NoError(t, provider.Validate())

	assert.Equal(t, "dev", provider.GetEnvironment())
	assert.Equal(t, types.ChainID(2), provider.GetContributor().ChainID)
	assert.Equal(t, 9090, provider.GetAPI().HTTP.Port)
	assert.True(t, provider.GetBadger().InMemory)
	// dev 环境默认 debug 级别
	assert.Equal(t, "debug", provider.GetLog().Level)
	assert.True(t, provider.GetRelay().Enabled)
	assert.Equal(t, "icco:outbound", provider.GetRelay().Stream)
}

func TestLoadAppConfig_Errors(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err = LoadAppConfig(path)
	assert.Error(t, err)
}

func TestProvider_Validate(t *testing.T) {
	// 未配置指挥合约
	assert.Error(t, NewProvider(nil).Validate())

	env := "staging"
	assert.Error(t, NewProvider(&types.AppConfig{Environment: &env}).Validate())

	// 默认环境为 prod
	assert.Equal(t, "prod", NewProvider(nil).GetEnvironment())
}
