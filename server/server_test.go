package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamgraph/feature"
	"scamgraph/graph"
	"scamgraph/risk"
	"scamgraph/typosquat"
)

type stubResolver struct {
	live map[string]string
}

func (r *stubResolver) Lookup(_ context.Context, domain string) (string, bool) {
	addr, ok := r.live[domain]
	return addr, ok
}

func newTestServer() *Server {
	return New(
		&feature.SyntheticExtractor{},
		risk.NewDefaultEngine(),
		graph.NewStore(),
		&stubResolver{live: map[string]string{"paypa1.com": "203.0.113.7"}},
		typosquat.Options{Concurrency: 50, BatchDelay: -1, Seed: 1},
	)
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestServer().Router()

	w := postJSON(t, h, "/api/analyze", analyzeRequest{URL: "https://shady-casino.xyz"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "shady-casino.xyz", resp.Domain)
	assert.GreaterOrEqual(t, resp.RiskScore, 0)
	assert.LessOrEqual(t, resp.RiskScore, 100)
	assert.NotEmpty(t, resp.Tier)
	assert.False(t, resp.Cached)
	assert.Contains(t, resp.Markers, "infrastructure")

	// second request for the same domain is served from cache
	w = postJSON(t, h, "/api/analyze", analyzeRequest{URL: "shady-casino.xyz"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Cached)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	h := newTestServer().Router()

	w := postJSON(t, h, "/api/analyze", analyzeRequest{URL: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, h, "/api/analyze", analyzeRequest{URL: "!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClusterEndpoint(t *testing.T) {
	h := newTestServer().Router()

	// unanalyzed domain falls back to the full seeded ecosystem
	req := httptest.NewRequest(http.MethodGet, "/api/cluster?url=unknown.example", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp clusterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Message)
	assert.GreaterOrEqual(t, resp.WebsiteCount, 10)
	assert.Equal(t, len(resp.Nodes), resp.TotalNodes)

	// a seeded domain has a real cluster
	req = httptest.NewRequest(http.MethodGet, "/api/cluster?url=lucky-spin-777.bet", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CLS-0042", resp.ClusterID)
	assert.Empty(t, resp.Message)
}

func TestBlocklistEndpoint(t *testing.T) {
	h := newTestServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/api/blocklist", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []graph.BlocklistEntry `json:"items"`
		Total int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Items), resp.Total)
	require.GreaterOrEqual(t, resp.Total, 10)
	for i := 1; i < len(resp.Items); i++ {
		assert.GreaterOrEqual(t, resp.Items[i-1].Risk, resp.Items[i].Risk)
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats graph.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.ClustersFound)
}

func TestScanEndpoint(t *testing.T) {
	h := newTestServer().Router()

	w := postJSON(t, h, "/api/scan", scanRequest{Domain: "paypal.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp scanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "paypal.com", resp.Domain)
	assert.Greater(t, resp.Candidates, 100)
	require.Len(t, resp.Found, 1)
	assert.Equal(t, "paypa1.com", resp.Found[0].Domain)
	assert.Equal(t, typosquat.StrategyHomoglyph, resp.Found[0].Strategy)
}

func TestScanRejectsBadInput(t *testing.T) {
	h := newTestServer().Router()
	w := postJSON(t, h, "/api/scan", scanRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer().Router()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "operational")
}
