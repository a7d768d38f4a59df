package gateway

import (
	"crypto/ed25519"
	"encoding/base64"
	"net/http"

	"github.com/mr-tron/base58"

	"github.com/kinecosystem/solana-gateway/solana"
)

type signMessageRequest struct {
	Message string `json:"message" validate:"required"`
	Secret  string `json:"secret" validate:"required"`
}

type signMessageResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
}

type verifyMessageRequest struct {
	Message   string `json:"message" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	PublicKey string `json:"pubkey" validate:"required"`
}

type verifyMessageResponse struct {
	Valid     bool   `json:"valid"`
	Message   string `json:"message"`
	PublicKey string `json:"pubkey"`
}

// signMessage signs the UTF-8 bytes of the message. The secret is used for
// this request only.
func (s *Server) signMessage(r *http.Request) (interface{}, *Error) {
	var req signMessageRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	priv, err := solana.ParsePrivateKey(req.Secret)
	if err != nil {
		return nil, invalidFormat("invalid secret: %s", err.Error())
	}

	sig := ed25519.Sign(priv, []byte(req.Message))

	return signMessageResponse{
		Signature: base64.StdEncoding.EncodeToString(sig),
		PublicKey: base58.Encode(priv.Public().(ed25519.PublicKey)),
		Message:   req.Message,
	}, nil
}

func (s *Server) verifyMessage(r *http.Request) (interface{}, *Error) {
	var req verifyMessageRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	pub, err := parseKey("pubkey", req.PublicKey)
	if err != nil {
		return nil, err
	}

	sig, decodeErr := base64.StdEncoding.DecodeString(req.Signature)
	if decodeErr != nil {
		return nil, invalidFormat("invalid signature: not base64")
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, invalidFormat("invalid signature: must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}

	return verifyMessageResponse{
		Valid:     ed25519.Verify(pub, []byte(req.Message), sig),
		Message:   req.Message,
		PublicKey: base58.Encode(pub),
	}, nil
}
