package solana

import (
	"crypto/ed25519"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock implementing Client.
type MockClient struct {
	sync.Mutex
	mock.Mock
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) GetBalance(account ed25519.PublicKey, commitment Commitment) (uint64, error) {
	m.Lock()
	defer m.Unlock()

	args := m.Called(account, commitment)
	switch t := args.Get(0).(type) {
	case int:
		return uint64(t), args.Error(1)
	case uint64:
		return t, args.Error(1)
	default:
		panic("invalid balance parameter")
	}
}

func (m *MockClient) GetAccountInfo(account ed25519.PublicKey, commitment Commitment) (AccountInfo, error) {
	m.Lock()
	defer m.Unlock()

	args := m.Called(account, commitment)
	return args.Get(0).(AccountInfo), args.Error(1)
}

func (m *MockClient) RequestAirdrop(account ed25519.PublicKey, lamports uint64, commitment Commitment) (Signature, error) {
	m.Lock()
	defer m.Unlock()

	args := m.Called(account, lamports, commitment)
	return args.Get(0).(Signature), args.Error(1)
}
