package domain

import "solana-token-info/internal/solana"

// TokenReport aggregates everything resolved for one mint.
// Optional fields stay nil until rendering.
type TokenReport struct {
	Mint            solana.PublicKey
	Name            string
	Symbol          string
	Supply          uint64
	Decimals        uint8
	MintAuthority   *solana.PublicKey
	FreezeAuthority *solana.PublicKey

	// Off-chain fields
	Description *string
	Image       *string
	Website     *string

	// DNSRecords is nil when the website could not be resolved.
	DNSRecords *int
}
