// Package remote implements the client for the case management service, the
// persisted source of truth for rescues.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
)

// Client talks to the remote case service over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a case service client and probes the configured bearer
// token for imminent expiry.
func NewClient(cfg config.CaseAPIConfig, logger *zap.Logger) *Client {
	InspectToken(cfg.Token, logger)
	return &Client{
		baseURL: cfg.URL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// caseDocument is the wire envelope for a rescue.
type caseDocument struct {
	ID         string                  `json:"id"`
	Attributes domain.RescueAttributes `json:"attributes"`
}

// CreateRescue registers a new rescue with the remote service.
func (c *Client) CreateRescue(ctx context.Context, rescue *domain.Rescue) error {
	doc := caseDocument{ID: rescue.ID.String(), Attributes: rescue.Attributes()}
	return c.do(ctx, http.MethodPost, "/cases", doc)
}

// UpdateRescue patches an existing rescue on the remote service.
func (c *Client) UpdateRescue(ctx context.Context, rescue *domain.Rescue) error {
	doc := caseDocument{ID: rescue.ID.String(), Attributes: rescue.Attributes()}
	return c.do(ctx, http.MethodPatch, "/cases/"+rescue.ID.String(), doc)
}

// ListOpenRescues fetches every non-closed rescue for the startup board sync.
func (c *Client) ListOpenRescues(ctx context.Context) ([]*domain.Rescue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cases?status=open", nil)
	if err != nil {
		return nil, err
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("case service returned status %d", resp.StatusCode)
	}

	var docs []caseDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode case list: %w", err)
	}

	rescues := make([]*domain.Rescue, 0, len(docs))
	for _, doc := range docs {
		id, err := parseCaseID(doc.ID)
		if err != nil {
			c.logger.Warn("skipping case with malformed id", zap.String("id", doc.ID))
			continue
		}
		rescues = append(rescues, domain.RescueFromAttributes(id, doc.Attributes))
	}
	return rescues, nil
}

func (c *Client) do(ctx context.Context, method, path string, doc caseDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode case document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.decorate(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("case service returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) decorate(req *http.Request) {
	req.Header.Set("User-Agent", "rescue-dispatch")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
