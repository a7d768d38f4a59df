package gateway

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinecosystem/solana-gateway/solana"
)

func TestSignAndVerify(t *testing.T) {
	env := setup(t)

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r := env.do(t, http.MethodPost, "/message/sign", map[string]string{
		"message": "hello, world",
		"secret":  solana.EncodePrivateKey(priv),
	})
	assert.Equal(t, http.StatusOK, r.status)
	assertEnvelope(t, r)

	var signed signMessageResponse
	r.data(t, &signed)
	assert.Equal(t, base58.Encode(pub), signed.PublicKey)
	assert.Equal(t, "hello, world", signed.Message)

	sig, err := base64.StdEncoding.DecodeString(signed.Signature)
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, []byte("hello, world"), sig))

	r = env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message":   "hello, world",
		"signature": signed.Signature,
		"pubkey":    signed.PublicKey,
	})
	var verified verifyMessageResponse
	r.data(t, &verified)
	assert.True(t, verified.Valid)
	assert.Equal(t, signed.PublicKey, verified.PublicKey)

	// A well-formed but wrong signature is a successful request with valid=false.
	r = env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message":   "goodbye, world",
		"signature": signed.Signature,
		"pubkey":    signed.PublicKey,
	})
	assert.Equal(t, http.StatusOK, r.status)
	r.data(t, &verified)
	assert.False(t, verified.Valid)
}

func TestSignMessage_Invalid(t *testing.T) {
	env := setup(t)

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, other, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	r := env.do(t, http.MethodPost, "/message/sign", map[string]string{"secret": solana.EncodePrivateKey(priv)})
	assertFailure(t, r, http.StatusBadRequest, "missing required field: message")

	r = env.do(t, http.MethodPost, "/message/sign", map[string]string{"message": "hi"})
	assertFailure(t, r, http.StatusBadRequest, "missing required field: secret")

	r = env.do(t, http.MethodPost, "/message/sign", map[string]string{
		"message": "hi",
		"secret":  base58.Encode(priv.Seed()),
	})
	assertFailure(t, r, http.StatusBadRequest, "invalid secret")

	// Seed of one key with the public half of another.
	mismatched := append(append([]byte{}, priv.Seed()...), other.Public().(ed25519.PublicKey)...)
	r = env.do(t, http.MethodPost, "/message/sign", map[string]string{
		"message": "hi",
		"secret":  base58.Encode(mismatched),
	})
	assertFailure(t, r, http.StatusBadRequest, "invalid secret")
}

func TestVerifyMessage_Invalid(t *testing.T) {
	env := setup(t)

	pub := generateAddress(t)

	r := env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message": "hi",
		"pubkey":  pub,
	})
	assertFailure(t, r, http.StatusBadRequest, "missing required field: signature")

	r = env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message":   "hi",
		"signature": "***",
		"pubkey":    pub,
	})
	assertFailure(t, r, http.StatusBadRequest, "invalid signature: not base64")

	r = env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message":   "hi",
		"signature": base64.StdEncoding.EncodeToString(make([]byte, 32)),
		"pubkey":    pub,
	})
	assertFailure(t, r, http.StatusBadRequest, "must be 64 bytes, got 32")

	r = env.do(t, http.MethodPost, "/message/verify", map[string]string{
		"message":   "hi",
		"signature": base64.StdEncoding.EncodeToString(make([]byte, 64)),
		"pubkey":    "0xzz",
	})
	assertFailure(t, r, http.StatusBadRequest, "invalid pubkey")
}
