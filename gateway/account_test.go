package gateway

import (
	"crypto/ed25519"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kinecosystem/solana-gateway/solana"
	"github.com/kinecosystem/solana-gateway/solana/token"
)

func TestBalance(t *testing.T) {
	env := setup(t)

	account := generateKey(t)
	env.client.On("GetBalance", account, solana.CommitmentConfirmed).Return(uint64(42), nil)

	r := env.do(t, http.MethodGet, "/balance?public_key="+base58.Encode(account), nil)
	assert.Equal(t, http.StatusOK, r.status)
	assertEnvelope(t, r)

	var resp balanceResponse
	r.data(t, &resp)
	assert.Equal(t, base58.Encode(account), resp.PublicKey)
	assert.EqualValues(t, 42, resp.Lamports)

	// Hex input is rendered back as base58.
	r = env.do(t, http.MethodPost, "/balance", map[string]string{"public_key": "0x" + hex.EncodeToString(account)})
	assert.Equal(t, http.StatusOK, r.status)
	r.data(t, &resp)
	assert.Equal(t, base58.Encode(account), resp.PublicKey)

	env.client.AssertNumberOfCalls(t, "GetBalance", 2)
}

func TestBalance_Invalid(t *testing.T) {
	env := setup(t)

	r := env.do(t, http.MethodGet, "/balance", nil)
	assertFailure(t, r, http.StatusBadRequest, "missing required field: public_key")

	r = env.do(t, http.MethodPost, "/balance", map[string]string{"public_key": ""})
	assertFailure(t, r, http.StatusBadRequest, "missing required field: public_key")

	r = env.do(t, http.MethodGet, "/balance?public_key=abc", nil)
	assertFailure(t, r, http.StatusBadRequest, "invalid public_key")

	r = env.do(t, http.MethodGet, "/balance?public_key=0x1234", nil)
	assertFailure(t, r, http.StatusBadRequest, "hex key must be 64 characters, got 4")

	env.client.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
}

func TestBalance_RPCFailure(t *testing.T) {
	env := setup(t)

	account := generateKey(t)
	env.client.On("GetBalance", account, solana.CommitmentConfirmed).Return(0, errors.New("connection refused"))

	r := env.do(t, http.MethodGet, "/balance?public_key="+base58.Encode(account), nil)
	assertFailure(t, r, http.StatusInternalServerError, "failed to get balance")
	assert.NotContains(t, r.resp.Error, "connection refused")
}

func TestKeypair(t *testing.T) {
	env := setup(t)

	r := env.do(t, http.MethodPost, "/keypair", nil)
	assert.Equal(t, http.StatusOK, r.status)
	assertEnvelope(t, r)

	var resp keypairResponse
	r.data(t, &resp)

	priv, err := solana.ParsePrivateKey(resp.Secret)
	require.NoError(t, err)
	assert.Equal(t, resp.PublicKey, base58.Encode(priv.Public().(ed25519.PublicKey)))

	pub, err := solana.ParsePublicKey(resp.PublicKey)
	require.NoError(t, err)
	assert.Len(t, pub, ed25519.PublicKeySize)

	var other keypairResponse
	env.do(t, http.MethodPost, "/keypair", nil).data(t, &other)
	assert.NotEqual(t, resp.PublicKey, other.PublicKey)
}

func TestAirdrop(t *testing.T) {
	env := setup(t, func(c *Config) {
		c.AirdropLamports = 5000
	})

	sig := solana.Signature{1, 2, 3}
	env.client.On("RequestAirdrop", mock.Anything, uint64(5000), solana.CommitmentConfirmed).Return(sig, nil)

	r := env.do(t, http.MethodGet, "/airdrop", nil)
	assert.Equal(t, http.StatusOK, r.status)
	assertEnvelope(t, r)

	var resp airdropResponse
	r.data(t, &resp)
	assert.Equal(t, sig.String(), resp.Signature)
	assert.EqualValues(t, 5000, resp.Lamports)

	require.Len(t, env.client.Calls, 1)
	funded := env.client.Calls[0].Arguments.Get(0).(ed25519.PublicKey)
	assert.Equal(t, base58.Encode(funded), resp.PublicKey)
}

func TestAirdrop_FaucetFailure(t *testing.T) {
	env := setup(t)

	env.client.On("RequestAirdrop", mock.Anything, mock.Anything, mock.Anything).Return(solana.Signature{}, errors.New("faucet exhausted"))

	r := env.do(t, http.MethodGet, "/airdrop", nil)
	assertFailure(t, r, http.StatusBadRequest, "airdrop request failed")
	assert.NotContains(t, r.resp.Error, "exhausted")
}

func TestAirdrop_RateLimited(t *testing.T) {
	env := setup(t, func(c *Config) {
		c.AirdropRateLimit = 0.001
		c.AirdropBurst = 1
	})

	env.client.On("RequestAirdrop", mock.Anything, mock.Anything, mock.Anything).Return(solana.Signature{}, nil)

	r := env.do(t, http.MethodGet, "/airdrop", nil)
	assert.Equal(t, http.StatusOK, r.status)

	r = env.do(t, http.MethodGet, "/airdrop", nil)
	assertFailure(t, r, http.StatusTooManyRequests, "too many requests")
	env.client.AssertNumberOfCalls(t, "RequestAirdrop", 1)

	// Other routes are not limited.
	r = env.do(t, http.MethodGet, "/hello", nil)
	assert.Equal(t, http.StatusOK, r.status)
}

func TestTokenAccount(t *testing.T) {
	env := setup(t)

	address := generateKey(t)
	account := token.Account{
		Mint:   generateKey(t),
		Owner:  generateKey(t),
		Amount: 10,
		State:  token.AccountStateInitialized,
	}
	env.client.On("GetAccountInfo", address, solana.CommitmentConfirmed).Return(solana.AccountInfo{
		Owner: token.ProgramKey,
		Data:  account.Marshal(),
	}, nil)

	r := env.do(t, http.MethodGet, "/token/account?address="+base58.Encode(address), nil)
	assert.Equal(t, http.StatusOK, r.status)
	assertEnvelope(t, r)

	var resp tokenAccountResponse
	r.data(t, &resp)
	assert.Equal(t, base58.Encode(address), resp.Address)
	assert.Equal(t, base58.Encode(account.Mint), resp.Mint)
	assert.Equal(t, base58.Encode(account.Owner), resp.Owner)
	assert.EqualValues(t, 10, resp.Amount)
	assert.Equal(t, "initialized", resp.State)

	r = env.do(t, http.MethodPost, "/token/account", map[string]string{"address": base58.Encode(address)})
	assert.Equal(t, http.StatusOK, r.status)
}

func TestTokenAccount_Invalid(t *testing.T) {
	env := setup(t)

	missing := generateKey(t)
	notToken := generateKey(t)
	broken := generateKey(t)

	env.client.On("GetAccountInfo", missing, mock.Anything).Return(solana.AccountInfo{}, solana.ErrNoAccountInfo)
	env.client.On("GetAccountInfo", notToken, mock.Anything).Return(solana.AccountInfo{Owner: make([]byte, 32)}, nil)
	env.client.On("GetAccountInfo", broken, mock.Anything).Return(solana.AccountInfo{}, errors.New("timeout"))

	r := env.do(t, http.MethodGet, "/token/account", nil)
	assertFailure(t, r, http.StatusBadRequest, "missing required field: address")

	r = env.do(t, http.MethodGet, "/token/account?address="+base58.Encode(missing), nil)
	assertFailure(t, r, http.StatusBadRequest, "account not found")

	r = env.do(t, http.MethodGet, "/token/account?address="+base58.Encode(notToken), nil)
	assertFailure(t, r, http.StatusBadRequest, "not a token account")

	r = env.do(t, http.MethodGet, "/token/account?address="+base58.Encode(broken), nil)
	assertFailure(t, r, http.StatusInternalServerError, "failed to get account info")
}
