package env

import (
	"os"

	"github.com/pkg/errors"
)

// Cluster identifies the Solana cluster the gateway talks to.
type Cluster string

const (
	ClusterMainnet  Cluster = "mainnet-beta"
	ClusterTestnet  Cluster = "testnet"
	ClusterDevnet   Cluster = "devnet"
	ClusterLocalnet Cluster = "localnet"
)

// ClusterEnvVar is the environment variable holding the cluster name.
const ClusterEnvVar = "SOLANA_CLUSTER"

var (
	// ErrBadEnvironmentVariableSet occurs when the SOLANA_CLUSTER environment variable is set to an invalid value
	ErrBadEnvironmentVariableSet = errors.New("environment variable SOLANA_CLUSTER was not 'mainnet-beta', 'testnet', 'devnet', or 'localnet'")
)

// FromEnvVariable returns the cluster named by SOLANA_CLUSTER, defaulting to
// devnet when it is unset.
func FromEnvVariable() (Cluster, error) {
	v, ok := os.LookupEnv(ClusterEnvVar)
	if !ok || v == "" {
		return ClusterDevnet, nil
	}

	c := Cluster(v)
	if !c.IsValid() {
		return "", ErrBadEnvironmentVariableSet
	}
	return c, nil
}

// IsValid returns true if the Cluster is valid.
func (c Cluster) IsValid() bool {
	switch c {
	case ClusterMainnet, ClusterTestnet, ClusterDevnet, ClusterLocalnet:
		return true
	default:
		return false
	}
}

// RPCEndpoint returns the public JSON-RPC endpoint of the cluster.
func (c Cluster) RPCEndpoint() string {
	switch c {
	case ClusterMainnet:
		return "https://api.mainnet-beta.solana.com"
	case ClusterTestnet:
		return "https://api.testnet.solana.com"
	case ClusterLocalnet:
		return "http://localhost:8899"
	default:
		return "https://api.devnet.solana.com"
	}
}

// SupportsAirdrop reports whether the cluster runs a faucet.
func (c Cluster) SupportsAirdrop() bool {
	return c != ClusterMainnet
}
