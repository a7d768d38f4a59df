package solana

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNoAccountInfo = errors.New("no account info")

	// ErrInvalidKeyFormat is the cause of every error returned by ParsePublicKey
	// and ParsePrivateKey.
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrInvalidPublicKey is returned when a derived program address lands on
	// the ed25519 curve.
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
)

// KeyFormatError describes why an encoded key could not be parsed.
type KeyFormatError struct {
	Reason string
}

func keyFormatError(format string, args ...interface{}) error {
	return &KeyFormatError{Reason: fmt.Sprintf(format, args...)}
}

func (e *KeyFormatError) Error() string {
	return e.Reason
}

// Cause allows errors.Cause to resolve to ErrInvalidKeyFormat.
func (e *KeyFormatError) Cause() error {
	return ErrInvalidKeyFormat
}
