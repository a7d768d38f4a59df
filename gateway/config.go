package gateway

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/kinecosystem/solana-gateway/env"
	"github.com/kinecosystem/solana-gateway/solana"
	"github.com/kinecosystem/solana-gateway/timeutil"
)

// Config is the gateway's section of the application config.
type Config struct {
	// Cluster selects the default RPC endpoint. When empty, SOLANA_CLUSTER is
	// consulted, falling back to devnet.
	Cluster string `mapstructure:"cluster"`

	// RPCEndpoint overrides the cluster's public endpoint.
	RPCEndpoint string `mapstructure:"rpc_endpoint"`
	// RPCTimeout bounds each ledger call. Both Go ("10s") and ISO-8601
	// ("PT10S") durations are accepted.
	RPCTimeout time.Duration `mapstructure:"rpc_timeout"`
	Commitment string        `mapstructure:"commitment"`

	AirdropLamports uint64 `mapstructure:"airdrop_lamports"`

	// AirdropRateLimit is the number of airdrop requests per second accepted
	// across all callers. Zero disables limiting.
	AirdropRateLimit float64 `mapstructure:"airdrop_rate_limit"`
	AirdropBurst     int     `mapstructure:"airdrop_burst"`

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// StaticDir, if set, is served for every path that is not an API route.
	StaticDir string `mapstructure:"static_dir"`

	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	// MetricsClient is the metrics.Client type to export request metrics to.
	MetricsClient string `mapstructure:"metrics_client"`
}

// DefaultConfig returns the configuration used for unset keys.
func DefaultConfig() Config {
	return Config{
		RPCTimeout:         solana.DefaultTimeout,
		Commitment:         solana.CommitmentConfirmed.Commitment,
		AirdropLamports:    lamportsPerSOL,
		AirdropBurst:       1,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		MaxBodyBytes:       1 << 20,
	}
}

// LoadConfig decodes raw (typically app.Config) over DefaultConfig and
// resolves the RPC endpoint.
func LoadConfig(raw map[string]interface{}) (Config, error) {
	config := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeutil.StringToDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           &config,
	})
	if err != nil {
		return config, errors.Wrap(err, "failed to create config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return config, errors.Wrap(err, "failed to decode gateway config")
	}

	if config.Cluster == "" {
		cluster, err := env.FromEnvVariable()
		if err != nil {
			return config, err
		}
		config.Cluster = string(cluster)
	}
	if !env.Cluster(config.Cluster).IsValid() {
		return config, errors.Errorf("invalid cluster: %s", config.Cluster)
	}
	if config.RPCEndpoint == "" {
		config.RPCEndpoint = env.Cluster(config.Cluster).RPCEndpoint()
	}

	if _, err := solana.ParseCommitment(config.Commitment); err != nil {
		return config, err
	}
	if config.RPCTimeout <= 0 {
		return config, errors.New("rpc_timeout must be positive")
	}
	if config.AirdropLamports == 0 {
		return config, errors.New("airdrop_lamports must be positive")
	}
	if config.AirdropBurst < 1 {
		config.AirdropBurst = 1
	}

	return config, nil
}
