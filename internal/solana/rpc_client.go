package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds a single RPC round trip.
const DefaultTimeout = 30 * time.Second

// RPC client errors.
var (
	// ErrAccountNotFound is returned when getAccountInfo reports a null value.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransport is returned when the RPC endpoint cannot be reached or
	// answers with something other than a JSON-RPC response.
	ErrTransport = errors.New("rpc transport error")
)

// RequestObserver is notified after every RPC call with its method and duration.
type RequestObserver func(method string, elapsed time.Duration, err error)

// HTTPClient implements AccountReader using HTTP JSON-RPC 2.0.
// Calls are attempted once; failures are reported to the caller as-is.
type HTTPClient struct {
	endpoint  string
	client    *http.Client
	observer  RequestObserver
	requestID atomic.Uint64
}

// Compile-time interface check.
var _ AccountReader = (*HTTPClient)(nil)

// ClientOption configures HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// WithRequestObserver registers a callback invoked after each RPC call.
func WithRequestObserver(o RequestObserver) ClientOption {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

// NewHTTPClient creates a new Solana RPC HTTP client.
func NewHTTPClient(endpoint string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the RPC URL the client talks to.
func (c *HTTPClient) Endpoint() string {
	return c.endpoint
}

// rpcRequest represents a JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object returned by the node.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrTransport) match node-side failures too.
func (e *RPCError) Is(target error) bool {
	return target == ErrTransport
}

// call performs a single JSON-RPC call.
func (c *HTTPClient) call(ctx context.Context, method string, params []interface{}, result interface{}) (err error) {
	if c.observer != nil {
		start := time.Now()
		defer func() {
			c.observer(method, time.Since(start), err)
		}()
	}

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: http request: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d: %s", ErrTransport, resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", ErrTransport, err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("%w: unmarshal result: %v", ErrTransport, err)
		}
	}

	return nil
}

// GetAccountInfo retrieves account info by public key.
// Returns ErrAccountNotFound if the node reports no such account.
func (c *HTTPClient) GetAccountInfo(ctx context.Context, address PublicKey) (*AccountInfo, error) {
	params := []interface{}{
		address.String(),
		map[string]interface{}{
			"encoding": "base64",
		},
	}

	var result getAccountInfoResult
	if err := c.call(ctx, "getAccountInfo", params, &result); err != nil {
		return nil, err
	}

	if result.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, address)
	}

	info := &AccountInfo{
		Lamports:   result.Value.Lamports,
		Owner:      result.Value.Owner,
		Executable: result.Value.Executable,
		RentEpoch:  result.Value.RentEpoch,
	}

	if len(result.Value.Data) >= 1 {
		data, err := base64.StdEncoding.DecodeString(result.Value.Data[0])
		if err != nil {
			return nil, fmt.Errorf("%w: decode account data: %v", ErrTransport, err)
		}
		info.Data = data
	}

	return info, nil
}

// GetAccountData returns only the data bytes of an account.
func (c *HTTPClient) GetAccountData(ctx context.Context, address PublicKey) ([]byte, error) {
	info, err := c.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	return info.Data, nil
}

type getAccountInfoResult struct {
	Value *getAccountInfoValue `json:"value"`
}

type getAccountInfoValue struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Data       []string `json:"data"` // [base64_data, encoding]
	Executable bool     `json:"executable"`
	RentEpoch  uint64   `json:"rentEpoch"`
}
