package gateway

import (
	"crypto/ed25519"
	"crypto/rand"
	"net/http"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/kinecosystem/solana-gateway/solana"
	"github.com/kinecosystem/solana-gateway/solana/token"
)

type balanceRequest struct {
	PublicKey string `json:"public_key" validate:"required"`
}

type balanceResponse struct {
	PublicKey string `json:"public_key"`
	Lamports  uint64 `json:"lamports"`
}

type keypairResponse struct {
	PublicKey string `json:"pubkey"`
	Secret    string `json:"secret"`
}

type airdropResponse struct {
	PublicKey string `json:"pubkey"`
	Lamports  uint64 `json:"lamports"`
	Signature string `json:"signature"`
}

type tokenAccountRequest struct {
	Address string `json:"address" validate:"required"`
}

type tokenAccountResponse struct {
	Address string `json:"address"`
	Mint    string `json:"mint"`
	Owner   string `json:"owner"`
	Amount  uint64 `json:"amount"`
	State   string `json:"state"`
}

func (s *Server) balance(r *http.Request) (interface{}, *Error) {
	var req balanceRequest
	if r.Method == http.MethodGet {
		req.PublicKey = r.URL.Query().Get("public_key")
	} else if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	account, err := parseKey("public_key", req.PublicKey)
	if err != nil {
		return nil, err
	}

	lamports, rpcErr := s.client.GetBalance(account, s.commitment)
	if rpcErr != nil {
		return nil, collaboratorFailure("failed to get balance", rpcErr)
	}

	return balanceResponse{
		PublicKey: base58.Encode(account),
		Lamports:  lamports,
	}, nil
}

func (s *Server) keypair(_ *http.Request) (interface{}, *Error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, collaboratorFailure("failed to generate keypair", err)
	}

	return keypairResponse{
		PublicKey: base58.Encode(pub),
		Secret:    solana.EncodePrivateKey(priv),
	}, nil
}

// airdrop funds a freshly generated account from the cluster faucet. The
// secret is discarded, so the account is only useful as a demonstration.
func (s *Server) airdrop(_ *http.Request) (interface{}, *Error) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, collaboratorFailure("failed to generate keypair", err)
	}

	sig, err := s.client.RequestAirdrop(pub, s.config.AirdropLamports, s.commitment)
	if err != nil {
		return nil, faucetFailure("airdrop request failed", err)
	}

	return airdropResponse{
		PublicKey: base58.Encode(pub),
		Lamports:  s.config.AirdropLamports,
		Signature: sig.String(),
	}, nil
}

func (s *Server) tokenAccount(r *http.Request) (interface{}, *Error) {
	var req tokenAccountRequest
	if r.Method == http.MethodGet {
		req.Address = r.URL.Query().Get("address")
	} else if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	address, err := parseKey("address", req.Address)
	if err != nil {
		return nil, err
	}

	info, rpcErr := s.client.GetAccountInfo(address, s.commitment)
	if rpcErr == solana.ErrNoAccountInfo {
		return nil, semanticViolation("account not found")
	} else if rpcErr != nil {
		return nil, collaboratorFailure("failed to get account info", rpcErr)
	}

	account, decodeErr := token.AccountFromInfo(info)
	if decodeErr != nil {
		if errors.Cause(decodeErr) == token.ErrInvalidTokenAccount {
			return nil, semanticViolation("not a token account")
		}
		return nil, collaboratorFailure("failed to decode token account", decodeErr)
	}

	return tokenAccountResponse{
		Address: base58.Encode(address),
		Mint:    base58.Encode(account.Mint),
		Owner:   base58.Encode(account.Owner),
		Amount:  account.Amount,
		State:   account.State.String(),
	}, nil
}
