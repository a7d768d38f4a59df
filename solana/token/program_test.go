package token

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinecosystem/solana-gateway/solana"
	"github.com/kinecosystem/solana-gateway/solana/system"
)

func TestProgramKey(t *testing.T) {
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", base58.Encode(ProgramKey))
	assert.Equal(t, "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL", base58.Encode(AssociatedTokenAccountProgramKey))
}

func TestInitializeMint(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := InitializeMint(keys[0], 6, keys[1], nil)

	assert.Equal(t, ProgramKey, instruction.Program)
	require.Len(t, instruction.Data, 35)
	assert.EqualValues(t, 0, instruction.Data[0])
	assert.EqualValues(t, 6, instruction.Data[1])
	assert.EqualValues(t, keys[1], instruction.Data[2:34])
	assert.EqualValues(t, 0, instruction.Data[34])

	require.Len(t, instruction.Accounts, 2)
	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.Equal(t, system.RentSysVar, instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)

	instruction = InitializeMint(keys[0], 9, keys[1], keys[2])
	require.Len(t, instruction.Data, 67)
	assert.EqualValues(t, 9, instruction.Data[1])
	assert.EqualValues(t, 1, instruction.Data[34])
	assert.EqualValues(t, keys[2], instruction.Data[35:])
}

func TestMintTo(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := MintTo(keys[0], keys[1], keys[2], 123456789)

	assert.EqualValues(t, 7, instruction.Data[0])
	assert.EqualValues(t, 123456789, binary.LittleEndian.Uint64(instruction.Data[1:]))
	assertMintAccounts(t, keys, instruction)

	checked := MintToChecked(keys[0], keys[1], keys[2], 123456789, 6)
	require.Len(t, checked.Data, 10)
	assert.EqualValues(t, 14, checked.Data[0])
	assert.EqualValues(t, 123456789, binary.LittleEndian.Uint64(checked.Data[1:]))
	assert.EqualValues(t, 6, checked.Data[9])
	assertMintAccounts(t, keys, checked)
}

func TestTransfer(t *testing.T) {
	keys := generateKeys(t, 3)

	instruction := Transfer(keys[0], keys[1], keys[2], 123456789)

	expectedAmount := make([]byte, 8)
	binary.LittleEndian.PutUint64(expectedAmount, 123456789)

	assert.EqualValues(t, 3, instruction.Data[0])
	assert.EqualValues(t, expectedAmount, instruction.Data[1:])

	require.Len(t, instruction.Accounts, 3)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)
}

func TestTransferChecked(t *testing.T) {
	keys := generateKeys(t, 4)

	instruction := TransferChecked(keys[0], keys[1], keys[2], keys[3], 42, 9)

	require.Len(t, instruction.Data, 10)
	assert.EqualValues(t, 12, instruction.Data[0])
	assert.EqualValues(t, 42, binary.LittleEndian.Uint64(instruction.Data[1:]))
	assert.EqualValues(t, 9, instruction.Data[9])

	require.Len(t, instruction.Accounts, 4)
	for i, expected := range []struct {
		key        ed25519.PublicKey
		isSigner   bool
		isWritable bool
	}{
		{keys[0], false, true},
		{keys[1], false, false},
		{keys[2], false, true},
		{keys[3], true, false},
	} {
		assert.Equal(t, expected.key, instruction.Accounts[i].PublicKey)
		assert.Equal(t, expected.isSigner, instruction.Accounts[i].IsSigner)
		assert.Equal(t, expected.isWritable, instruction.Accounts[i].IsWritable)
	}
}

func assertMintAccounts(t *testing.T, keys []ed25519.PublicKey, instruction solana.Instruction) {
	require.Len(t, instruction.Accounts, 3)

	assert.Equal(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.False(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)

	assert.Equal(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.False(t, instruction.Accounts[1].IsSigner)
	assert.True(t, instruction.Accounts[1].IsWritable)

	assert.Equal(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.True(t, instruction.Accounts[2].IsSigner)
	assert.False(t, instruction.Accounts[2].IsWritable)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = pub
	}

	return keys
}
