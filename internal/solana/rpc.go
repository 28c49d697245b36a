package solana

import "context"

// AccountReader reads raw account data from a Solana cluster.
type AccountReader interface {
	// GetAccountData returns the decoded data bytes of an account.
	// Returns ErrAccountNotFound if the account does not exist.
	GetAccountData(ctx context.Context, address PublicKey) ([]byte, error)
}

// AccountInfo represents Solana account information.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Data       []byte
	Executable bool
	RentEpoch  uint64
}
