// Package reporting renders a token report for terminals and documents.
package reporting

import (
	"fmt"
	"strconv"

	"solana-token-info/internal/domain"
	"solana-token-info/internal/solana"
)

// Unavailable is printed for any field that could not be resolved.
const Unavailable = "Not available"

// Format selects a renderer.
type Format string

// Supported output formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// Row is one labelled report line.
type Row struct {
	Label string
	Value string
}

// Rows flattens a report into its labelled lines. Order is part of the
// output contract and must not change.
func Rows(r *domain.TokenReport) []Row {
	return []Row{
		{"Token Name", r.Name},
		{"Token Symbol", r.Symbol},
		{"Total Supply", strconv.FormatUint(r.Supply, 10)},
		{"Decimals", strconv.FormatUint(uint64(r.Decimals), 10)},
		{"Mint Authority", keyOrUnavailable(r.MintAuthority)},
		{"Freeze Authority", keyOrUnavailable(r.FreezeAuthority)},
		{"Token Description", stringOrUnavailable(r.Description)},
		{"Token Image", stringOrUnavailable(r.Image)},
		{"Token Website", stringOrUnavailable(r.Website)},
		{"Number of DNS records", intOrUnavailable(r.DNSRecords)},
	}
}

// Render renders r in the requested format.
func Render(r *domain.TokenReport, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return RenderText(r), nil
	case FormatMarkdown:
		return RenderMarkdown(r), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func keyOrUnavailable(pk *solana.PublicKey) string {
	if pk == nil {
		return Unavailable
	}
	return pk.String()
}

// stringOrUnavailable treats an empty string the same as an absent one.
func stringOrUnavailable(s *string) string {
	if s == nil || *s == "" {
		return Unavailable
	}
	return *s
}

func intOrUnavailable(n *int) string {
	if n == nil {
		return Unavailable
	}
	return strconv.Itoa(*n)
}
