package solana

import (
	"crypto/ed25519"
	"encoding/base64"
	"net/http"
	"strconv"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/kinecosystem/solana-gateway/metrics"
)

// DefaultTimeout bounds a single RPC round trip when no timeout is configured.
const DefaultTimeout = 10 * time.Second

var (
	rpcCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "solana_rpc",
		Help:      "Number of Solana RPCs made",
	}, []string{"rpc_method"})

	rpcErrorCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "solana_rpc_error",
		Help:      "Number of Solana RPC errors",
	}, []string{"rpc_method", "error_code"})
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

var (
	CommitmentProcessed = Commitment{Commitment: "processed"}
	CommitmentConfirmed = Commitment{Commitment: "confirmed"}
	CommitmentFinalized = Commitment{Commitment: "finalized"}
)

// ParseCommitment returns the Commitment with the given name.
func ParseCommitment(s string) (Commitment, error) {
	switch s {
	case CommitmentProcessed.Commitment:
		return CommitmentProcessed, nil
	case CommitmentConfirmed.Commitment, "":
		return CommitmentConfirmed, nil
	case CommitmentFinalized.Commitment:
		return CommitmentFinalized, nil
	default:
		return Commitment{}, errors.Errorf("unknown commitment: %s", s)
	}
}

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Every call is a single round trip. Failures are returned to the caller
// without being retried.
//
// Reference: https://docs.solana.com/developing/clients/jsonrpc-api
type Client interface {
	GetBalance(ed25519.PublicKey, Commitment) (uint64, error)
	GetAccountInfo(ed25519.PublicKey, Commitment) (AccountInfo, error)
	RequestAirdrop(ed25519.PublicKey, uint64, Commitment) (Signature, error)
}

type client struct {
	log    *logrus.Entry
	client jsonrpc.RPCClient
}

func init() {
	rpcCounterVec = metrics.Register(rpcCounterVec).(*prometheus.CounterVec)
	rpcErrorCounterVec = metrics.Register(rpcErrorCounterVec).(*prometheus.CounterVec)
}

// New returns a client using the specified endpoint and DefaultTimeout.
func New(endpoint string) Client {
	return NewWithTimeout(endpoint, DefaultTimeout)
}

// NewWithTimeout returns a client whose calls fail once timeout has elapsed.
func NewWithTimeout(endpoint string, timeout time.Duration) Client {
	return NewWithRPCOptions(endpoint, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: timeout},
	})
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	rpcCounterVec.WithLabelValues(method).Inc()

	err := c.client.CallFor(out, method, params...)
	if err == nil {
		return nil
	}

	switch e := err.(type) {
	case *jsonrpc.RPCError:
		rpcErrorCounterVec.WithLabelValues(method, strconv.Itoa(e.Code)).Inc()
	case *jsonrpc.HTTPError:
		rpcErrorCounterVec.WithLabelValues(method, "http_"+strconv.Itoa(e.Code)).Inc()
	default:
		rpcErrorCounterVec.WithLabelValues(method, "").Inc()
	}

	c.log.WithError(err).WithField("method", method).Debug("rpc failed")
	return err
}

func (c *client) GetBalance(account ed25519.PublicKey, commitment Commitment) (uint64, error) {
	var resp struct {
		Value uint64 `json:"value"`
	}
	if err := c.call(&resp, "getBalance", base58.Encode(account), commitment); err != nil {
		return 0, errors.Wrap(err, "failed to send request")
	}

	return resp.Value, nil
}

func (c *client) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	type rpcResponse struct {
		Value *struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	}

	rpcConfig := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}

	var resp rpcResponse
	if err := c.call(&resp, "getAccountInfo", base58.Encode(account), rpcConfig); err != nil {
		return accountInfo, errors.Wrap(err, "failed to send request")
	}

	if resp.Value == nil {
		return accountInfo, ErrNoAccountInfo
	}

	accountInfo.Owner, err = base58.Decode(resp.Value.Owner)
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(resp.Value.Data) == 0 {
		return accountInfo, errors.New("missing account data")
	}
	accountInfo.Data, err = base64.StdEncoding.DecodeString(resp.Value.Data[0])
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base64 encoded data")
	}

	accountInfo.Lamports = resp.Value.Lamports
	accountInfo.Executable = resp.Value.Executable

	return accountInfo, nil
}

func (c *client) RequestAirdrop(account ed25519.PublicKey, lamports uint64, commitment Commitment) (Signature, error) {
	var sigStr string
	if err := c.call(&sigStr, "requestAirdrop", base58.Encode(account), lamports, commitment); err != nil {
		return Signature{}, errors.Wrap(err, "failed to send request")
	}

	sigBytes, err := base58.Decode(sigStr)
	if err != nil {
		return Signature{}, errors.Wrap(err, "invalid signature in response")
	}
	if len(sigBytes) != len(Signature{}) {
		return Signature{}, errors.Errorf("invalid signature length in response: %d", len(sigBytes))
	}

	var sig Signature
	copy(sig[:], sigBytes)

	if sig == (Signature{}) {
		return Signature{}, errors.New("empty signature returned")
	}

	return sig, nil
}
