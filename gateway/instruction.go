package gateway

import (
	"encoding/base64"

	"github.com/mr-tron/base58"

	"github.com/kinecosystem/solana-gateway/solana"
)

// AccountMeta is the wire form of solana.AccountMeta.
type AccountMeta struct {
	PublicKey  string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

// Instruction describes an unsigned instruction. The gateway never signs or
// submits it.
type Instruction struct {
	ProgramID       string        `json:"program_id"`
	Accounts        []AccountMeta `json:"accounts"`
	InstructionData string        `json:"instruction_data"`
}

func newInstruction(i solana.Instruction) Instruction {
	accounts := make([]AccountMeta, len(i.Accounts))
	for idx, a := range i.Accounts {
		accounts[idx] = AccountMeta{
			PublicKey:  base58.Encode(a.PublicKey),
			IsSigner:   a.IsSigner,
			IsWritable: a.IsWritable,
		}
	}

	return Instruction{
		ProgramID:       base58.Encode(i.Program),
		Accounts:        accounts,
		InstructionData: base64.StdEncoding.EncodeToString(i.Data),
	}
}
