package solana

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

// TokenMetadataProgramID is the Metaplex Token Metadata program.
var TokenMetadataProgramID = MustPublicKeyFromBase58("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")

// Limits enforced by the runtime on program address seeds.
const (
	MaxSeeds      = 16
	MaxSeedLength = 32
)

const pdaMarker = "ProgramDerivedAddress"

// metadataSeed is the first seed of every Metaplex metadata account.
const metadataSeed = "metadata"

// PDA derivation errors.
var (
	ErrMaxSeedLength = errors.New("seed length exceeds limit")
	ErrOnCurve       = errors.New("derived address is on the ed25519 curve")
	ErrNoViableBump  = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress derives a program address from seeds and a program ID.
// sha256(seed_0 || ... || seed_n || programID || "ProgramDerivedAddress")
// The result must not be a valid ed25519 point.
func CreateProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return PublicKey{}, fmt.Errorf("%w: %d seeds", ErrMaxSeedLength, len(seeds))
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return PublicKey{}, fmt.Errorf("%w: %d bytes", ErrMaxSeedLength, len(seed))
		}
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var pk PublicKey
	copy(pk[:], h.Sum(nil))

	if isOnCurve(pk[:]) {
		return PublicKey{}, ErrOnCurve
	}
	return pk, nil
}

// FindProgramAddress searches bump seeds from 255 down to 0 and returns the
// first off-curve address along with its bump.
func FindProgramAddress(seeds [][]byte, programID PublicKey) (PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}

		pk, err := CreateProgramAddress(withBump, programID)
		if err == nil {
			return pk, uint8(bump), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return PublicKey{}, 0, err
		}
	}

	return PublicKey{}, 0, ErrNoViableBump
}

// MetadataAddress derives the Metaplex metadata account for a mint.
// Seeds: ["metadata", metadata_program_id, mint]
func MetadataAddress(mint PublicKey) (PublicKey, error) {
	seeds := [][]byte{
		[]byte(metadataSeed),
		TokenMetadataProgramID.Bytes(),
		mint.Bytes(),
	}

	pda, _, err := FindProgramAddress(seeds, TokenMetadataProgramID)
	if err != nil {
		return PublicKey{}, fmt.Errorf("derive metadata address: %w", err)
	}
	return pda, nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
