package gateway

import (
	"bytes"
	"net/http"

	"github.com/kinecosystem/solana-gateway/solana/system"
)

type sendSolRequest struct {
	From     string  `json:"from" validate:"required"`
	To       string  `json:"to" validate:"required"`
	Lamports *uint64 `json:"lamports" validate:"required"`
}

func (s *Server) sendSol(r *http.Request) (interface{}, *Error) {
	var req sendSolRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if err := validateRequest(&req); err != nil {
		return nil, err
	}

	from, err := parseKey("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseKey("to", req.To)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("lamports", *req.Lamports, maxLamports); err != nil {
		return nil, err
	}

	if bytes.Equal(from, to) {
		return nil, semanticViolation("cannot transfer to the same account")
	}
	if isZeroKey(from) || isZeroKey(to) {
		return nil, semanticViolation("cannot transfer to or from the zero address")
	}
	if isReservedKey(to) {
		return nil, semanticViolation("cannot transfer to a reserved program address")
	}

	return newInstruction(system.Transfer(from, to, *req.Lamports)), nil
}
