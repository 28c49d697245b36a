package domain

import "solana-token-info/internal/solana"

// MintRecord represents an SPL Token mint account.
// Authorities are nil when the on-chain COption is None.
type MintRecord struct {
	MintAuthority   *solana.PublicKey
	Supply          uint64 // raw base units, not scaled by decimals
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority *solana.PublicKey
}

// MetadataRecord represents the fields read from a Metaplex metadata account.
// String fields have their fixed-width NUL padding removed.
type MetadataRecord struct {
	Key             uint8
	UpdateAuthority solana.PublicKey
	Mint            solana.PublicKey
	Name            string
	Symbol          string
	URI             string
}

// OffChainMetadata is the JSON document referenced by MetadataRecord.URI.
// Every field is optional.
type OffChainMetadata struct {
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	Website     *string `json:"external_url,omitempty"`
}
