// Package token decodes SPL Token mint accounts and Metaplex metadata accounts.
package token

import (
	"encoding/binary"
	"errors"
	"fmt"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/solana"
)

// MintLayoutSize is the exact size of an SPL Token mint account.
const MintLayoutSize = 82

// ErrInvalidMintLayout is returned when bytes do not form a valid initialized mint.
var ErrInvalidMintLayout = errors.New("invalid mint layout")

// COption<Pubkey> tag values.
const (
	optionNone uint32 = 0
	optionSome uint32 = 1
)

// DecodeMint decodes an SPL Token mint account.
// Layout (82 bytes, little endian):
//   - mintAuthority: COption<Pubkey> (4 + 32)
//   - supply: u64 (8)
//   - decimals: u8 (1)
//   - isInitialized: bool (1)
//   - freezeAuthority: COption<Pubkey> (4 + 32)
func DecodeMint(data []byte) (*domain.MintRecord, error) {
	if len(data) != MintLayoutSize {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrInvalidMintLayout, len(data), MintLayoutSize)
	}

	mintAuthority, err := decodeOptionalKey(data[0:36])
	if err != nil {
		return nil, fmt.Errorf("mint authority: %w", err)
	}

	supply := binary.LittleEndian.Uint64(data[36:44])
	decimals := data[44]

	var initialized bool
	switch data[45] {
	case 0:
		initialized = false
	case 1:
		initialized = true
	default:
		return nil, fmt.Errorf("%w: is_initialized byte %d", ErrInvalidMintLayout, data[45])
	}

	freezeAuthority, err := decodeOptionalKey(data[46:82])
	if err != nil {
		return nil, fmt.Errorf("freeze authority: %w", err)
	}

	if !initialized {
		return nil, fmt.Errorf("%w: mint is not initialized", ErrInvalidMintLayout)
	}

	return &domain.MintRecord{
		MintAuthority:   mintAuthority,
		Supply:          supply,
		Decimals:        decimals,
		IsInitialized:   initialized,
		FreezeAuthority: freezeAuthority,
	}, nil
}

// decodeOptionalKey decodes a 36-byte COption<Pubkey>.
func decodeOptionalKey(b []byte) (*solana.PublicKey, error) {
	switch tag := binary.LittleEndian.Uint32(b[0:4]); tag {
	case optionNone:
		return nil, nil
	case optionSome:
		pk, err := solana.PublicKeyFromBytes(b[4:36])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMintLayout, err)
		}
		return &pk, nil
	default:
		return nil, fmt.Errorf("%w: option tag %d", ErrInvalidMintLayout, tag)
	}
}
