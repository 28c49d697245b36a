// Package tokentest builds raw mint and metadata account bytes for tests.
package tokentest

import (
	"encoding/binary"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/solana"
)

// EncodeMint serializes m into the 82-byte SPL Token mint layout.
func EncodeMint(m domain.MintRecord) []byte {
	buf := make([]byte, 82)

	putOptionalKey(buf[0:36], m.MintAuthority)
	binary.LittleEndian.PutUint64(buf[36:44], m.Supply)
	buf[44] = m.Decimals
	if m.IsInitialized {
		buf[45] = 1
	}
	putOptionalKey(buf[46:82], m.FreezeAuthority)

	return buf
}

// EncodeMetadata serializes the leading Metaplex metadata fields, padding
// each string with NUL bytes to its fixed width the way the program does.
// Trailing bytes stand in for the fields the decoder ignores.
func EncodeMetadata(m domain.MetadataRecord) []byte {
	buf := []byte{m.Key}
	buf = append(buf, m.UpdateAuthority[:]...)
	buf = append(buf, m.Mint[:]...)
	buf = appendPadded(buf, m.Name, 32)
	buf = appendPadded(buf, m.Symbol, 10)
	buf = appendPadded(buf, m.URI, 200)

	// seller_fee_basis_points, creators: None, primary_sale_happened, is_mutable
	buf = append(buf, 0xf4, 0x01, 0, 0, 1)
	return buf
}

// NewMetadata returns a MetadataV1 record for mint with the given strings.
func NewMetadata(mint solana.PublicKey, name, symbol, uri string) domain.MetadataRecord {
	return domain.MetadataRecord{
		Key:    4,
		Mint:   mint,
		Name:   name,
		Symbol: symbol,
		URI:    uri,
	}
}

// Key returns a deterministic non-zero PublicKey derived from seed.
func Key(seed byte) solana.PublicKey {
	var pk solana.PublicKey
	for i := range pk {
		pk[i] = seed + byte(i)
	}
	return pk
}

func putOptionalKey(dst []byte, key *solana.PublicKey) {
	if key == nil {
		return
	}
	binary.LittleEndian.PutUint32(dst[0:4], 1)
	copy(dst[4:36], key[:])
}

func appendPadded(buf []byte, s string, width int) []byte {
	field := make([]byte, width)
	copy(field, s)

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(width))
	buf = append(buf, prefix[:]...)
	return append(buf, field...)
}
