package token

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"solana-token-info/internal/domain"
)

// MetadataV1Key is the account discriminant of a Metaplex metadata account.
const MetadataV1Key = 4

// Fixed widths Metaplex pads each string to.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

// key(1) + updateAuthority(32) + mint(32) + three u32 length prefixes
const minMetadataSize = 1 + 32 + 32 + 4 + 4 + 4

// ErrInvalidMetadataLayout is returned when bytes do not form a Metaplex metadata account.
var ErrInvalidMetadataLayout = errors.New("invalid metadata layout")

// DecodeMetadata decodes the leading fields of a Metaplex metadata account.
// Layout:
//   - key: u8 (must be 4 for MetadataV1)
//   - updateAuthority: Pubkey (32)
//   - mint: Pubkey (32)
//   - name: String (4 + len, len <= 32)
//   - symbol: String (4 + len, len <= 10)
//   - uri: String (4 + len, len <= 200)
//
// Remaining fields (creators, collection, ...) are ignored.
func DecodeMetadata(data []byte) (*domain.MetadataRecord, error) {
	if len(data) < minMetadataSize {
		return nil, fmt.Errorf("%w: length %d, want at least %d", ErrInvalidMetadataLayout, len(data), minMetadataSize)
	}

	if data[0] != MetadataV1Key {
		return nil, fmt.Errorf("%w: key %d, want %d", ErrInvalidMetadataLayout, data[0], MetadataV1Key)
	}

	rec := &domain.MetadataRecord{Key: data[0]}
	copy(rec.UpdateAuthority[:], data[1:33])
	copy(rec.Mint[:], data[33:65])

	r := borshReader{data: data, offset: 65}

	var err error
	if rec.Name, err = r.readString("name", MaxNameLength); err != nil {
		return nil, err
	}
	if rec.Symbol, err = r.readString("symbol", MaxSymbolLength); err != nil {
		return nil, err
	}
	if rec.URI, err = r.readString("uri", MaxURILength); err != nil {
		return nil, err
	}

	return rec, nil
}

// TrimPadding strips trailing NUL bytes left by fixed-width on-chain encoding.
func TrimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}

// borshReader walks length-prefixed strings.
type borshReader struct {
	data   []byte
	offset int
}

func (r *borshReader) readString(field string, maxLen int) (string, error) {
	if r.offset+4 > len(r.data) {
		return "", fmt.Errorf("%w: %s length prefix out of range", ErrInvalidMetadataLayout, field)
	}
	n := int(binary.LittleEndian.Uint32(r.data[r.offset:]))
	r.offset += 4

	if n > maxLen {
		return "", fmt.Errorf("%w: %s length %d exceeds %d", ErrInvalidMetadataLayout, field, n, maxLen)
	}
	if r.offset+n > len(r.data) {
		return "", fmt.Errorf("%w: %s length %d overruns account", ErrInvalidMetadataLayout, field, n)
	}

	s := TrimPadding(string(r.data[r.offset : r.offset+n]))
	r.offset += n
	return s, nil
}
