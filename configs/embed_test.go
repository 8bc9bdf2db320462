package configs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/contributor/pkg/types"
)

func TestForEnvironment(t *testing.T) {
	for _, env := range Environments {
		raw, err := ForEnvironment(env)
		require.NoError(t, err, env)

		var cfg types.AppConfig
		require.NoError(t, json.Unmarshal(raw, &cfg), env)
		require.NotNil(t, cfg.Environment)
		assert.Equal(t, env, *cfg.Environment)
		require.NotNil(t, cfg.Contributor)
		assert.NotNil(t, cfg.Contributor.ConductorAddress)
	}

	_, err := ForEnvironment("staging")
	assert.Error(t, err)
}
