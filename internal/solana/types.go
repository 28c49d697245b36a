package solana

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// PublicKeyLength is the size of a Solana account address in bytes.
const PublicKeyLength = 32

// ErrInvalidAddress is returned when text does not decode to a 32-byte address.
var ErrInvalidAddress = errors.New("invalid address")

// PublicKey is a Solana account address.
type PublicKey [PublicKeyLength]byte

// PublicKeyFromBase58 parses a base58 encoded address.
func PublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey

	decoded, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(decoded) != PublicKeyLength {
		return pk, fmt.Errorf("%w: decoded length %d, want %d", ErrInvalidAddress, len(decoded), PublicKeyLength)
	}

	copy(pk[:], decoded)
	return pk, nil
}

// MustPublicKeyFromBase58 is like PublicKeyFromBase58 but panics on error.
// Intended for package-level program ID constants.
func MustPublicKeyFromBase58(s string) PublicKey {
	pk, err := PublicKeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, fmt.Errorf("%w: length %d, want %d", ErrInvalidAddress, len(b), PublicKeyLength)
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the base58 representation.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Bytes returns a copy of the raw address bytes.
func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, pk[:])
	return b
}
