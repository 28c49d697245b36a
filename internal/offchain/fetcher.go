// Package offchain fetches the JSON document a Metaplex metadata URI points to.
package offchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/token"
)

// Fetch errors.
var (
	// ErrEmptyURI is returned when the on-chain URI is empty after trimming.
	ErrEmptyURI = errors.New("metadata uri is empty")

	// ErrFetch is returned when the document cannot be downloaded or decoded.
	ErrFetch = errors.New("fetch off-chain metadata")
)

// Fetcher downloads off-chain metadata documents.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher. A nil client means http.DefaultClient,
// so the transport's default timeout policy applies.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client}
}

// Fetch performs a plain GET on uri and decodes the body.
// Fields missing from the document are left nil.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*domain.OffChainMetadata, error) {
	uri = token.TrimPadding(uri)
	if uri == "" {
		return nil, ErrEmptyURI
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrFetch, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrFetch, uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: load %s: unexpected status %d", ErrFetch, uri, resp.StatusCode)
	}

	var doc domain.OffChainMetadata
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s as JSON: %v", ErrFetch, uri, err)
	}

	return &doc, nil
}
