package gateway

import (
	"bytes"
	"net/http"

	"github.com/kinecosystem/solana-gateway/solana/token"
)

type createTokenRequest struct {
	MintAuthority string `json:"mintAuthority" validate:"required"`
	Mint          string `json:"mint" validate:"required"`
	Decimals      *uint8 `json:"decimals" validate:"required,max=9"`
}

type mintTokenRequest struct {
	Mint          string  `json:"mint" validate:"required"`
	MintAuthority string  `json:"mintAuthority" validate:"required"`
	TokenAccount  string  `json:"tokenAccount" validate:"required"`
	Amount        *uint64 `json:"amount" validate:"required"`
	Decimals      *uint8  `json:"decimals" validate:"omitempty,max=9"`
}

type sendTokenRequest struct {
	Destination string  `json:"destination" validate:"required"`
	Mint        string  `json:"mint" validate:"required"`
	Owner       string  `json:"owner" validate:"required"`
	Amount      *uint64 `json:"amount" validate:"required"`
	Decimals    *uint8  `json:"decimals" validate:"omitempty,max=9"`
}

func (s *Server) createToken(r *http.Request) (interface{}, *Error) {
	var req createTokenRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	authority, err := parseKey("mintAuthority", req.MintAuthority)
	if err != nil {
		return nil, err
	}
	mint, err := parseKey("mint", req.Mint)
	if err != nil {
		return nil, err
	}

	return newInstruction(token.InitializeMint(mint, *req.Decimals, authority, nil)), nil
}

func (s *Server) mintToken(r *http.Request) (interface{}, *Error) {
	var req mintTokenRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	mint, err := parseKey("mint", req.Mint)
	if err != nil {
		return nil, err
	}
	authority, err := parseKey("mintAuthority", req.MintAuthority)
	if err != nil {
		return nil, err
	}
	dest, err := parseKey("tokenAccount", req.TokenAccount)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("amount", *req.Amount, 0); err != nil {
		return nil, err
	}

	return newInstruction(token.MintToChecked(
		mint,
		dest,
		authority,
		*req.Amount,
		decimalsOrDefault(req.Decimals),
	)), nil
}

// sendToken transfers between the associated token accounts of owner and
// destination for mint.
func (s *Server) sendToken(r *http.Request) (interface{}, *Error) {
	var req sendTokenRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	dest, err := parseKey("destination", req.Destination)
	if err != nil {
		return nil, err
	}
	mint, err := parseKey("mint", req.Mint)
	if err != nil {
		return nil, err
	}
	owner, err := parseKey("owner", req.Owner)
	if err != nil {
		return nil, err
	}
	// Token amounts are in base units of an arbitrary mint, so only the
	// MaxUint64/2 ceiling applies; the lamport cap is specific to /send/sol.
	if err := checkAmount("amount", *req.Amount, 0); err != nil {
		return nil, err
	}

	source, deriveErr := token.GetAssociatedAccount(owner, mint)
	if deriveErr != nil {
		return nil, collaboratorFailure("failed to derive source token account", deriveErr)
	}
	destAccount, deriveErr := token.GetAssociatedAccount(dest, mint)
	if deriveErr != nil {
		return nil, collaboratorFailure("failed to derive destination token account", deriveErr)
	}
	if bytes.Equal(source, destAccount) {
		return nil, semanticViolation("source and destination token accounts must differ")
	}

	if req.Decimals != nil {
		return newInstruction(token.TransferChecked(source, mint, destAccount, owner, *req.Amount, *req.Decimals)), nil
	}
	return newInstruction(token.Transfer(source, destAccount, owner, *req.Amount)), nil
}
