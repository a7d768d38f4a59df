package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// Source: https://github.com/solana-labs/solana/tree/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar
var (
	ClockSysVar             ed25519.PublicKey
	EpochScheduleSysVar     ed25519.PublicKey
	FeesSysVar              ed25519.PublicKey
	InstructionsSysVar      ed25519.PublicKey
	RecentBlockhashesSysVar ed25519.PublicKey
	RentSysVar              ed25519.PublicKey
	RewardsSysVar           ed25519.PublicKey
	SlotHashesSysVar        ed25519.PublicKey
	SlotHistorySysVar       ed25519.PublicKey
	StakeHistorySysVar      ed25519.PublicKey
)

// SysVars returns the addresses of every sysvar account.
func SysVars() []ed25519.PublicKey {
	return []ed25519.PublicKey{
		ClockSysVar,
		EpochScheduleSysVar,
		FeesSysVar,
		InstructionsSysVar,
		RecentBlockhashesSysVar,
		RentSysVar,
		RewardsSysVar,
		SlotHashesSysVar,
		SlotHistorySysVar,
		StakeHistorySysVar,
	}
}

func init() {
	ClockSysVar = mustDecode("SysvarC1ock11111111111111111111111111111111")
	EpochScheduleSysVar = mustDecode("SysvarEpochSchedu1e111111111111111111111111")
	FeesSysVar = mustDecode("SysvarFees111111111111111111111111111111111")
	InstructionsSysVar = mustDecode("Sysvar1nstructions1111111111111111111111111")
	RecentBlockhashesSysVar = mustDecode("SysvarRecentB1ockHashes11111111111111111111")
	RentSysVar = mustDecode("SysvarRent111111111111111111111111111111111")
	RewardsSysVar = mustDecode("SysvarRewards111111111111111111111111111111")
	SlotHashesSysVar = mustDecode("SysvarS1otHashes111111111111111111111111111")
	SlotHistorySysVar = mustDecode("SysvarS1otHistory11111111111111111111111111")
	StakeHistorySysVar = mustDecode("SysvarStakeHistory1111111111111111111111111")
}

func mustDecode(s string) ed25519.PublicKey {
	b, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	if len(b) != ed25519.PublicKeySize {
		panic("invalid sysvar length: " + s)
	}

	return b
}
