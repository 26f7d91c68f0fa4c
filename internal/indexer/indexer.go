// Package indexer is an HTTP client for an external token-state indexer.
// The indexer is optional: everything it answers can also be derived from a
// direct history scan, only slower.
package indexer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// Holder is one address currently holding a token, with the height the
// holding was established at.
type Holder struct {
	Address types.Address `json:"address"`
	Height  uint64        `json:"height"`
}

// Client queries a token-state indexer over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client targeting the given base URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TokenHolders returns the addresses holding tokens of the given category
// whose commitment matches exactly.
func (c *Client) TokenHolders(ctx context.Context, category types.Category, commitment []byte) ([]Holder, error) {
	q := url.Values{}
	q.Set("category", category.String())
	q.Set("commitment", hex.EncodeToString(commitment))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/holders?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("indexer status %d: %s", resp.StatusCode, body)
	}

	var holders []Holder
	if err := json.NewDecoder(resp.Body).Decode(&holders); err != nil {
		return nil, fmt.Errorf("decode holders: %w", err)
	}
	return holders, nil
}
