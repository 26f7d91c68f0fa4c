package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nomen-protocol/nomen-go/pkg/tx"
	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Client is a JSON-RPC 2.0 implementation of Source.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client targeting the given endpoint URL.
func NewClient(endpoint string) *Client {
	return NewClientWithTimeout(endpoint, 10*time.Second)
}

// NewClientWithTimeout creates a client with a custom HTTP timeout.
// Per-call deadlines can additionally be set through the context.
func NewClientWithTimeout(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// request is a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int    `json:"id"`
}

// response is a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

// rpcError is a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCError is returned when the server responds with an error.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call invokes a JSON-RPC method and unmarshals the result into result.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return &RPCError{
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
		}
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

// UTXOs returns the current unspent outputs at an address.
func (c *Client) UTXOs(ctx context.Context, addr types.Address) ([]UTXO, error) {
	var utxos []UTXO
	if err := c.call(ctx, "ledger_getUTXOs", []string{addr.String()}, &utxos); err != nil {
		return nil, fmt.Errorf("utxos for %s: %w", addr, err)
	}
	return utxos, nil
}

// History returns the confirmed transaction history of an address.
func (c *Client) History(ctx context.Context, addr types.Address) ([]HistoryItem, error) {
	var items []HistoryItem
	if err := c.call(ctx, "ledger_getHistory", []string{addr.String()}, &items); err != nil {
		return nil, fmt.Errorf("history for %s: %w", addr, err)
	}
	return items, nil
}

// Transaction fetches a transaction by id. The signatures of key-spent
// inputs are verified before the transaction is handed to callers, so a
// misbehaving ledger server cannot feed the engine forged spends.
func (c *Client) Transaction(ctx context.Context, id types.Hash) (*tx.Transaction, error) {
	var transaction tx.Transaction
	if err := c.call(ctx, "ledger_getTransaction", []string{id.String()}, &transaction); err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	if err := transaction.VerifySignatures(); err != nil {
		return nil, fmt.Errorf("transaction %s: %w", id, err)
	}
	return &transaction, nil
}
