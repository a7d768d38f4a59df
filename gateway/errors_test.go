package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	for _, tc := range []struct {
		err    *Error
		status int
	}{
		{missingField("mint"), http.StatusBadRequest},
		{invalidFormat("bad"), http.StatusBadRequest},
		{invalidRange("bad"), http.StatusBadRequest},
		{semanticViolation("bad"), http.StatusBadRequest},
		{collaboratorFailure("bad", nil), http.StatusInternalServerError},
		{faucetFailure("bad", nil), http.StatusBadRequest},
		{bodyTooLarge(10), http.StatusRequestEntityTooLarge},
		{&Error{Kind: KindRateLimited}, http.StatusTooManyRequests},
		{&Error{Kind: KindNotFound}, http.StatusNotFound},
	} {
		assert.Equal(t, tc.status, tc.err.Status(), tc.err.Kind.String())
	}

	assert.Equal(t, "missing required field: mint", missingField("mint").Error())
	assert.Equal(t, KindCollaboratorFailure, faucetFailure("bad", nil).Kind)
}

func TestCheckAmount(t *testing.T) {
	assert.Nil(t, checkAmount("amount", 1, 0))
	assert.Nil(t, checkAmount("amount", maxSafeAmount, 0))
	assert.Nil(t, checkAmount("lamports", maxLamports, maxLamports))

	assert.Equal(t, KindSemanticViolation, checkAmount("amount", 0, 0).Kind)
	assert.Contains(t, checkAmount("amount", maxSafeAmount+1, 0).Message, "too large")
	assert.Contains(t, checkAmount("lamports", maxLamports+1, maxLamports).Message, "must not exceed")
}

func TestIsReservedKey(t *testing.T) {
	assert.True(t, isReservedKey(make([]byte, 32)))
	assert.False(t, isReservedKey(generateKey(t)))
}
