// Package starsystems implements the client for the star catalog service,
// which resolves reported system names to known galaxy data.
package starsystems

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// SearchResult is one ranked fuzzy match from the catalog.
type SearchResult struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// Lookup resolves system names against the catalog.
type Lookup interface {
	Search(ctx context.Context, name string) ([]SearchResult, error)
	Check(ctx context.Context, name string) (domain.SystemLookup, error)
}

// Client talks to the star catalog service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a catalog service client.
func NewClient(cfg config.SystemsAPIConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.URL,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// Search returns ranked fuzzy matches for a system name.
func (c *Client) Search(ctx context.Context, name string) ([]SearchResult, error) {
	var results []SearchResult
	if err := c.get(ctx, "/search", name, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Check returns catalog metadata for an exact system name.
func (c *Client) Check(ctx context.Context, name string) (domain.SystemLookup, error) {
	var lookup domain.SystemLookup
	if err := c.get(ctx, "/check", name, &lookup); err != nil {
		return domain.SystemLookup{}, err
	}
	return lookup, nil
}

func (c *Client) get(ctx context.Context, path, name string, out any) error {
	endpoint := c.baseURL + path + "?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
