package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

const hexKeyLength = 2 * ed25519.PublicKeySize

// Signature is an ed25519 signature over a transaction or message.
type Signature [ed25519.SignatureSize]byte

// String returns the base58 encoding of the signature.
func (s Signature) String() string {
	return base58.Encode(s[:])
}

// ParsePublicKey parses an account address encoded as either base58 or 64
// hexadecimal characters (with an optional 0x prefix).
//
// Base58 is always attempted first, so a valid base58 address is never read as
// hex. Any failure has ErrInvalidKeyFormat as its cause.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	reason := "invalid base58 encoding"
	if b, err := base58.Decode(s); err == nil {
		if len(b) == ed25519.PublicKeySize {
			return b, nil
		}
		reason = "base58 key must decode to 32 bytes"
	}

	h := s
	prefixed := strings.HasPrefix(h, "0x") || strings.HasPrefix(h, "0X")
	if prefixed {
		h = h[2:]
	}

	// Only report hex problems for inputs that were plausibly meant as hex.
	if !prefixed && !isHex(h) && len(h) != hexKeyLength {
		return nil, keyFormatError(reason)
	}
	if len(h) != hexKeyLength {
		return nil, keyFormatError("hex key must be %d characters, got %d", hexKeyLength, len(h))
	}
	if !isHex(h) {
		return nil, keyFormatError("hex key contains non-hex characters")
	}

	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, keyFormatError("invalid hex key: %v", err)
	}

	return b, nil
}

// ParsePrivateKey parses a base58 encoded 64-byte keypair (seed followed by the
// public key), as produced by EncodePrivateKey.
func ParsePrivateKey(s string) (ed25519.PrivateKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return nil, keyFormatError("secret key is not valid base58")
	}
	if len(b) != ed25519.PrivateKeySize {
		return nil, keyFormatError("secret key must decode to %d bytes, got %d", ed25519.PrivateKeySize, len(b))
	}

	priv := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !bytes.Equal(priv[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
		return nil, keyFormatError("secret key does not match its public key")
	}

	return priv, nil
}

// EncodePrivateKey returns the base58 encoding of a keypair.
func EncodePrivateKey(priv ed25519.PrivateKey) string {
	return base58.Encode(priv)
}

func isHex(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, c := range s {
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}

	return true
}
