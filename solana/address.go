package solana

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/agl/ed25519/edwards25519"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

// CreateProgramAddress derives a program address from the provided seeds.
// The result is guaranteed not to lie on the ed25519 curve, so no private
// key exists for it.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}

		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte("ProgramDerivedAddress"))

	addr := h.Sum(nil)
	if isOnCurve(addr) {
		return nil, ErrInvalidPublicKey
	}

	return addr, nil
}

// FindProgramAddress returns the first valid program address, searching bump
// seeds from 255 down to 0.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	bumpSeed := []byte{255}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for i := 0; i < 256; i++ {
		withBump[len(seeds)] = bumpSeed

		addr, err := CreateProgramAddress(program, withBump...)
		if err == nil {
			return addr, nil
		}
		if err != ErrInvalidPublicKey {
			return nil, err
		}

		bumpSeed[0]--
	}

	return nil, ErrInvalidPublicKey
}

func isOnCurve(b []byte) bool {
	var in [32]byte
	copy(in[:], b)

	var p edwards25519.ExtendedGroupElement
	return p.FromBytes(&in)
}
