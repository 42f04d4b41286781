package starsystems

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/rescue-dispatch/internal/config"
	"github.com/spec-kit/rescue-dispatch/internal/domain"
	"github.com/spec-kit/rescue-dispatch/internal/observability"
)

func TestSearchDecodesRankedResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Lave", r.URL.Query().Get("name"))
		require.NoError(t, json.NewEncoder(w).Encode([]SearchResult{
			{Name: "Lave", Distance: 0},
			{Name: "Laveh", Distance: 1},
		}))
	}))
	defer server.Close()

	client := NewClient(config.SystemsAPIConfig{URL: server.URL}, zap.NewNop())
	results, err := client.Search(context.Background(), "Lave")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Lave", results[0].Name)
}

func TestCheckDecodesLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(domain.SystemLookup{
			Name:           "COL 285 SECTOR CD-E F1-2",
			Confirmed:      true,
			PermitRequired: true,
			PermitName:     "Pilots Federation",
			Landmark:       &domain.Landmark{Name: "Sol", Distance: 190.5},
		}))
	}))
	defer server.Close()

	client := NewClient(config.SystemsAPIConfig{URL: server.URL}, zap.NewNop())
	lookup, err := client.Check(context.Background(), "COL 285 SECTOR CD-E F1-2")
	require.NoError(t, err)
	assert.True(t, lookup.Confirmed)
	assert.True(t, lookup.PermitRequired)
	require.NotNil(t, lookup.Landmark)
	assert.Equal(t, "Sol", lookup.Landmark.Name)
}

func TestCheckErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.SystemsAPIConfig{URL: server.URL}, zap.NewNop())
	_, err := client.Check(context.Background(), "Lave")
	assert.Error(t, err)
}

type countingLookup struct {
	checks int
	result domain.SystemLookup
}

func (c *countingLookup) Search(ctx context.Context, name string) ([]SearchResult, error) {
	return nil, nil
}

func (c *countingLookup) Check(ctx context.Context, name string) (domain.SystemLookup, error) {
	c.checks++
	return c.result, nil
}

func TestCachedLookupWithoutRedisDegradesToDirect(t *testing.T) {
	inner := &countingLookup{result: domain.SystemLookup{Name: "Lave", Confirmed: true}}
	cached := NewCachedLookup(inner, nil, 0, zap.NewNop(), observability.NewMetrics())

	for i := 0; i < 3; i++ {
		lookup, err := cached.Check(context.Background(), "Lave")
		require.NoError(t, err)
		assert.True(t, lookup.Confirmed)
	}
	assert.Equal(t, 3, inner.checks)
}

func TestCacheKeyNormalizes(t *testing.T) {
	assert.Equal(t, cacheKey("COL 285 Sector cd-e f1-2"), cacheKey("  col 285 sector CD-E F1-2  "))
}
