package gateway

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/kinecosystem/solana-gateway/solana"
	"github.com/kinecosystem/solana-gateway/solana/system"
	"github.com/kinecosystem/solana-gateway/solana/token"
)

const (
	lamportsPerSOL = 1_000_000_000

	// maxSafeAmount keeps amounts well clear of the u64 limit so downstream
	// arithmetic cannot overflow. It is a heuristic rather than a protocol limit.
	maxSafeAmount uint64 = math.MaxUint64 / 2

	// maxLamports is one billion SOL, above the total supply.
	maxLamports uint64 = 1_000_000_000 * lamportsPerSOL

	defaultDecimals = token.MaxDecimals
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by the name callers use on the wire.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// decodeBody decodes a JSON request body into dst. An empty body decodes to
// the zero request, leaving presence checks to validateRequest.
func decodeBody(r *http.Request, dst interface{}) *Error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || err == io.EOF {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return bodyTooLarge(tooLarge.Limit)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalidFormat("invalid value for field %s", typeErr.Field)
	}

	return invalidFormat("invalid JSON request body")
}

// validateRequest runs the struct tag checks on req. Missing fields are
// reported before any range violation.
func validateRequest(req interface{}) *Error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidFormat("invalid request")
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return missingField(fe.Field())
		}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "max", "lte":
		return invalidRange("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return invalidFormat("invalid value for field %s", fe.Field())
	}
}

func parseKey(field, value string) (ed25519.PublicKey, *Error) {
	key, err := solana.ParsePublicKey(value)
	if err != nil {
		return nil, invalidFormat("invalid %s: %s", field, err.Error())
	}
	return key, nil
}

// checkAmount enforces amount > 0 and the overflow margin, plus an optional
// absolute ceiling (zero means none).
func checkAmount(field string, amount, ceiling uint64) *Error {
	if amount == 0 {
		return semanticViolation("%s must be greater than 0", field)
	}
	if amount > maxSafeAmount {
		return semanticViolation("%s is too large", field)
	}
	if ceiling > 0 && amount > ceiling {
		return semanticViolation("%s must not exceed %d", field, ceiling)
	}
	return nil
}

func isZeroKey(key ed25519.PublicKey) bool {
	return bytes.Equal(key, system.ProgramKey[:])
}

// isReservedKey reports whether key is a program or sysvar address that can
// never be the recipient of a transfer.
func isReservedKey(key ed25519.PublicKey) bool {
	if isZeroKey(key) ||
		bytes.Equal(key, token.ProgramKey) ||
		bytes.Equal(key, token.AssociatedTokenAccountProgramKey) {
		return true
	}

	for _, sysvar := range system.SysVars() {
		if bytes.Equal(key, sysvar) {
			return true
		}
	}

	return false
}

func decimalsOrDefault(decimals *uint8) uint8 {
	if decimals == nil {
		return defaultDecimals
	}
	return *decimals
}
