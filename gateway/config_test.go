package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinecosystem/solana-gateway/env"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(env.ClusterEnvVar, "")

	config, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, string(env.ClusterDevnet), config.Cluster)
	assert.Equal(t, env.ClusterDevnet.RPCEndpoint(), config.RPCEndpoint)
	assert.Equal(t, 10*time.Second, config.RPCTimeout)
	assert.Equal(t, "confirmed", config.Commitment)
	assert.EqualValues(t, lamportsPerSOL, config.AirdropLamports)
	assert.Equal(t, []string{"http://localhost:5173"}, config.CORSAllowedOrigins)
	assert.EqualValues(t, 1<<20, config.MaxBodyBytes)
	assert.Zero(t, config.AirdropRateLimit)
	assert.Equal(t, 1, config.AirdropBurst)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv(env.ClusterEnvVar, string(env.ClusterTestnet))

	config, err := LoadConfig(map[string]interface{}{
		"rpc_timeout":          "3s",
		"commitment":           "finalized",
		"airdrop_lamports":     "500",
		"airdrop_rate_limit":   0.5,
		"airdrop_burst":        0,
		"cors_allowed_origins": "https://a.example,https://b.example",
		"static_dir":           "./dist",
	})
	require.NoError(t, err)

	assert.Equal(t, string(env.ClusterTestnet), config.Cluster)
	assert.Equal(t, env.ClusterTestnet.RPCEndpoint(), config.RPCEndpoint)
	assert.Equal(t, 3*time.Second, config.RPCTimeout)
	assert.Equal(t, "finalized", config.Commitment)
	assert.EqualValues(t, 500, config.AirdropLamports)
	assert.Equal(t, 0.5, config.AirdropRateLimit)
	assert.Equal(t, 1, config.AirdropBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.CORSAllowedOrigins)
	assert.Equal(t, "./dist", config.StaticDir)

	config, err = LoadConfig(map[string]interface{}{
		"cluster":      "localnet",
		"rpc_endpoint": "http://validator:8899",
	})
	require.NoError(t, err)
	assert.Equal(t, "localnet", config.Cluster)
	assert.Equal(t, "http://validator:8899", config.RPCEndpoint)

	config, err = LoadConfig(map[string]interface{}{"rpc_timeout": "PT1M"})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, config.RPCTimeout)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv(env.ClusterEnvVar, "")

	for _, raw := range []map[string]interface{}{
		{"cluster": "moon"},
		{"commitment": "max"},
		{"rpc_timeout": "0s"},
		{"rpc_timeout": "soon"},
		{"airdrop_lamports": 0},
	} {
		_, err := LoadConfig(raw)
		assert.Error(t, err, "%v", raw)
	}
}

func TestLoadConfig_InvalidClusterEnv(t *testing.T) {
	t.Setenv(env.ClusterEnvVar, "moon")

	_, err := LoadConfig(nil)
	assert.Equal(t, env.ErrBadEnvironmentVariableSet, err)
}
