package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-token-info/internal/config"
	"solana-token-info/internal/domain"
	"solana-token-info/internal/orchestrator"
	"solana-token-info/internal/solana"
	"solana-token-info/internal/token/tokentest"
)

const usdcAddress = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// newLedger serves getAccountInfo from accounts, keyed by base58 address.
func newLedger(t *testing.T, accounts map[string][]byte) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64            `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.Method != "getAccountInfo" || len(req.Params) == 0 {
			t.Errorf("unexpected call %s", req.Method)
			return
		}
		var address string
		if err := json.Unmarshal(req.Params[0], &address); err != nil {
			t.Errorf("decode address: %v", err)
			return
		}

		var value interface{}
		if data, ok := accounts[address]; ok {
			value = map[string]interface{}{
				"lamports":   1461600,
				"owner":      "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
				"data":       []string{base64.StdEncoding.EncodeToString(data), "base64"},
				"executable": false,
				"rentEpoch":  361,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  map[string]interface{}{"value": value},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig points a fresh config file at rpcURL.
func writeConfig(t *testing.T, rpcURL string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, config.Save(path, config.Config{RPCURL: rpcURL}))
	return path
}

func usdcAccounts(t *testing.T) map[string][]byte {
	t.Helper()

	mint := solana.MustPublicKeyFromBase58(usdcAddress)
	metaAddr, err := solana.MetadataAddress(mint)
	require.NoError(t, err)

	authority := solana.MustPublicKeyFromBase58("BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG")
	return map[string][]byte{
		usdcAddress: tokentest.EncodeMint(domain.MintRecord{
			MintAuthority:   &authority,
			Supply:          9_999_999_999_000_000,
			Decimals:        6,
			IsInitialized:   true,
			FreezeAuthority: &authority,
		}),
		metaAddr.String(): tokentest.EncodeMetadata(tokentest.NewMetadata(mint, "USD Coin", "USDC", "")),
	}
}

func TestRoot_InvalidAddress(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), config.FileName)

	stdout, _, err := execute(t, "--config", cfgPath, "asdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, solana.ErrInvalidAddress)
	assert.Contains(t, errorMessage(err), `invalid value "asdf" for '<TOKEN_ADDRESS>'`)
	assert.Empty(t, stdout)

	_, statErr := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(statErr), "config must not be touched before the address is valid")
}

func TestRoot_ArgumentCount(t *testing.T) {
	_, _, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one <TOKEN_ADDRESS>")

	_, _, err = execute(t, usdcAddress, usdcAddress)
	require.Error(t, err)
}

func TestRoot_Stablecoin(t *testing.T) {
	srv := newLedger(t, usdcAccounts(t))
	cfgPath := writeConfig(t, srv.URL)
	metricsPath := filepath.Join(t.TempDir(), "tokeninfo.prom")

	stdout, stderr, err := execute(t, "--config", cfgPath, "--metrics-file", metricsPath, usdcAddress)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	want := strings.Join([]string{
		"Token Name: USD Coin",
		"Token Symbol: USDC",
		"Total Supply: 9999999999000000",
		"Decimals: 6",
		"Mint Authority: BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG",
		"Freeze Authority: BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG",
		"Token Description: Not available",
		"Token Image: Not available",
		"Token Website: Not available",
		"Number of DNS records: Not available",
	}, "\n") + "\n"
	assert.Equal(t, want, stdout)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "solana_token_info_pipeline_stage_results_total")
	assert.Contains(t, string(metrics), `method="getAccountInfo"`)
}

func TestRoot_MarkdownFormat(t *testing.T) {
	srv := newLedger(t, usdcAccounts(t))
	cfgPath := writeConfig(t, srv.URL)

	stdout, _, err := execute(t, "--config", cfgPath, "--format", "markdown", usdcAddress)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "# USD Coin\n"))
	assert.Contains(t, stdout, "| Decimals | 6 |")
}

func TestRoot_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", usdcAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}

func TestRoot_WalletAddressFails(t *testing.T) {
	// A valid key with no mint behind it.
	srv := newLedger(t, map[string][]byte{})
	cfgPath := writeConfig(t, srv.URL)

	stdout, _, err := execute(t, "--config", cfgPath, "BJE5MMbqXjVwjAF7oxwPYXnTXDyspzZyt4vwenNw5ruG")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(errorMessage(err),
		"Failed to fetch token data, it's likely because the token address is invalid: "))
	assert.ErrorIs(t, err, solana.ErrAccountNotFound)
	assert.Empty(t, stdout)
}

func TestConfigCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "solana_token_cli", config.FileName)

	stdout, _, err := execute(t, "--config", cfgPath, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Config file: "+cfgPath)
	assert.Contains(t, stdout, "RPC URL: "+config.DefaultRPCURL)

	stdout, _, err = execute(t, "--config", cfgPath, "config", "set-rpc-url", "https://api.devnet.solana.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "RPC URL set to https://api.devnet.solana.com")

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.RPCURL)

	_, _, err = execute(t, "--config", cfgPath, "config", "set-rpc-url", "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Error: boom", errorMessage(errors.New("boom")))

	wrapped := fmt.Errorf("%w: mint: %w", orchestrator.ErrOnChain, solana.ErrAccountNotFound)
	assert.Equal(t,
		"Failed to fetch token data, it's likely because the token address is invalid: on-chain lookup failed: mint: account not found",
		errorMessage(wrapped))
}
