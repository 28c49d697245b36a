package token

import (
	"context"
	"fmt"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/solana"
)

// Reader fetches and decodes token accounts through an AccountReader.
type Reader struct {
	rpc solana.AccountReader
}

// NewReader creates a new Reader.
func NewReader(rpc solana.AccountReader) *Reader {
	return &Reader{rpc: rpc}
}

// ReadMint fetches and decodes the mint account at address.
func (r *Reader) ReadMint(ctx context.Context, address solana.PublicKey) (*domain.MintRecord, error) {
	data, err := r.rpc.GetAccountData(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("load mint account: %w", err)
	}

	mint, err := DecodeMint(data)
	if err != nil {
		return nil, fmt.Errorf("parse mint account: %w", err)
	}
	return mint, nil
}

// ReadMetadata fetches and decodes the Metaplex metadata account at address.
func (r *Reader) ReadMetadata(ctx context.Context, address solana.PublicKey) (*domain.MetadataRecord, error) {
	data, err := r.rpc.GetAccountData(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("load metadata account: %w", err)
	}

	meta, err := DecodeMetadata(data)
	if err != nil {
		return nil, fmt.Errorf("parse metadata account: %w", err)
	}
	return meta, nil
}
