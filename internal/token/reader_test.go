package token

import (
	"context"
	"errors"
	"testing"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/solana"
	"solana-token-info/internal/solana/stub"
	"solana-token-info/internal/token/tokentest"
)

func TestReader_ReadMint(t *testing.T) {
	rpc := stub.NewAccountReader()
	mint := tokentest.Key(3)
	rpc.Accounts[mint] = tokentest.EncodeMint(domain.MintRecord{Supply: 1, IsInitialized: true})

	got, err := NewReader(rpc).ReadMint(context.Background(), mint)
	if err != nil {
		t.Fatalf("ReadMint: %v", err)
	}
	if got.Supply != 1 || got.Decimals != 0 {
		t.Errorf("unexpected mint record: %+v", got)
	}
}

func TestReader_ReadMint_NotFound(t *testing.T) {
	rpc := stub.NewAccountReader()

	_, err := NewReader(rpc).ReadMint(context.Background(), tokentest.Key(3))
	if !errors.Is(err, solana.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestReader_ReadMint_WrongAccountType(t *testing.T) {
	rpc := stub.NewAccountReader()
	addr := tokentest.Key(3)
	// A metadata blob at a mint address must not decode as a mint.
	rpc.Accounts[addr] = tokentest.EncodeMetadata(tokentest.NewMetadata(addr, "x", "y", "z"))

	_, err := NewReader(rpc).ReadMint(context.Background(), addr)
	if !errors.Is(err, ErrInvalidMintLayout) {
		t.Fatalf("expected ErrInvalidMintLayout, got %v", err)
	}
}

func TestReader_ReadMetadata(t *testing.T) {
	rpc := stub.NewAccountReader()
	mint := tokentest.Key(3)
	addr := tokentest.Key(100)
	rpc.Accounts[addr] = tokentest.EncodeMetadata(tokentest.NewMetadata(mint, "Name", "SYM", "https://x"))

	got, err := NewReader(rpc).ReadMetadata(context.Background(), addr)
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if got.Name != "Name" || got.Symbol != "SYM" || got.URI != "https://x" {
		t.Errorf("unexpected metadata record: %+v", got)
	}
}

func TestReader_ReadMetadata_TransportError(t *testing.T) {
	rpc := stub.NewAccountReader()
	addr := tokentest.Key(100)
	rpc.Errors[addr] = solana.ErrTransport

	_, err := NewReader(rpc).ReadMetadata(context.Background(), addr)
	if !errors.Is(err, solana.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}
