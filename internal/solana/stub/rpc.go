package stub

import (
	"context"
	"fmt"
	"sync"

	"solana-token-info/internal/solana"
)

// AccountReader implements solana.AccountReader for testing.
type AccountReader struct {
	mu       sync.Mutex
	Accounts map[solana.PublicKey][]byte
	Errors   map[solana.PublicKey]error
	calls    []solana.PublicKey
}

// NewAccountReader creates a new stub account reader.
func NewAccountReader() *AccountReader {
	return &AccountReader{
		Accounts: make(map[solana.PublicKey][]byte),
		Errors:   make(map[solana.PublicKey]error),
	}
}

// GetAccountData returns the stored account bytes, the configured error,
// or solana.ErrAccountNotFound.
func (r *AccountReader) GetAccountData(_ context.Context, address solana.PublicKey) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, address)

	if err, ok := r.Errors[address]; ok {
		return nil, err
	}

	data, ok := r.Accounts[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", solana.ErrAccountNotFound, address)
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Calls returns the addresses requested so far, in call order.
func (r *AccountReader) Calls() []solana.PublicKey {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]solana.PublicKey, len(r.calls))
	copy(out, r.calls)
	return out
}
