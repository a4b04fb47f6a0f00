package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"scamgraph/feature"
	"scamgraph/graph"
	"scamgraph/risk"
	"scamgraph/typosquat"
)

const apiVersion = "2.4.1"

var serverStart = time.Now()

type analyzeRequest struct {
	URL string `json:"url"`
}

type analyzeResponse struct {
	URL            string                         `json:"url"`
	Domain         string                         `json:"domain"`
	RiskScore      int                            `json:"risk_score"`
	Category       risk.Category                  `json:"category"`
	Confidence     float64                        `json:"confidence"`
	Probabilities  map[risk.Category]float64      `json:"probabilities"`
	Tier           string                         `json:"tier"`
	Status         string                         `json:"status"`
	Explanations   []risk.Explanation             `json:"explanations"`
	Markers        map[string][]markerEntry       `json:"markers"`
	RedirectChain  []feature.RedirectStep         `json:"redirect_chain"`
	ScanDuration   string                         `json:"scan_duration"`
	ScannedAt      time.Time                      `json:"scanned_at"`
	ClusterID      string                         `json:"cluster_id,omitempty"`
	RulesEvaluated int                            `json:"rules_evaluated"`
	RulesFired     int                            `json:"rules_fired"`
	GraphBoost     bool                           `json:"graph_boost"`
	Cached         bool                           `json:"cached"`
}

type markerEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// handleAnalyze runs the full pipeline for one URL: extract, score, insert
// into the graph, apply the ecosystem boost. Repeat requests for the same
// domain are served from the analysis cache.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	domain := feature.NormalizeDomain(req.URL)
	if !feature.ValidDomain(domain) {
		writeError(w, http.StatusBadRequest, "not a valid domain")
		return
	}

	if cached := s.store.GetAnalysis(domain); cached != nil {
		resp := buildAnalyzeResponse(req.URL, cached.Record, cached.Verdict)
		resp.ScanDuration = scanDuration(start)
		resp.ScannedAt = cached.AnalyzedAt
		resp.ClusterID = s.store.GetClusterID(domain)
		resp.Cached = true
		writeJSON(w, http.StatusOK, resp)
		return
	}

	rec, err := s.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, "feature extraction failed")
		return
	}

	verdict := s.engine.Score(rec)
	s.store.InsertAnalysis(rec.Domain, rec, verdict)
	boosted := graph.ApplyEcosystemBoost(s.store, rec.Domain, &verdict)

	resp := buildAnalyzeResponse(req.URL, rec, verdict)
	resp.ScanDuration = scanDuration(start)
	resp.ScannedAt = rec.ExtractedAt
	resp.ClusterID = s.store.GetClusterID(rec.Domain)
	resp.GraphBoost = boosted
	writeJSON(w, http.StatusOK, resp)
}

func buildAnalyzeResponse(url string, rec *feature.Record, v risk.Verdict) *analyzeResponse {
	return &analyzeResponse{
		URL:            url,
		Domain:         rec.Domain,
		RiskScore:      v.RiskScore,
		Category:       v.Category,
		Confidence:     v.Confidence,
		Probabilities:  v.Probabilities,
		Tier:           v.Tier,
		Status:         v.Status,
		Explanations:   v.Explanations,
		Markers:        formatMarkers(rec),
		RedirectChain:  rec.RedirectChain,
		RulesEvaluated: v.RulesEvaluated,
		RulesFired:     v.RulesFired,
	}
}

// formatMarkers groups the record's observable markers for display.
func formatMarkers(rec *feature.Record) map[string][]markerEntry {
	infra := []markerEntry{
		{"IP Address", rec.DNS.IP},
		{"Hosting / ASN", fmt.Sprintf("%s — %s, %s", rec.Hosting.ASN, rec.Hosting.Provider, rec.Hosting.Country)},
		{"TLS Certificate", fmt.Sprintf("SHA256:%s (%s)", rec.TLS.Fingerprint, rec.TLS.Issuer)},
		{"TLS Self-Signed", yesNo(rec.TLS.SelfSigned)},
		{"Domain Age", fmt.Sprintf("%d days (%s)", rec.Analysis.Age.Days, rec.Analysis.Age.Label)},
		{"DNS Resolution", map[bool]string{true: "Success", false: "Failed"}[rec.DNS.Success]},
	}

	var tracking []markerEntry
	if rec.Trackers.GAID != "" {
		tracking = append(tracking, markerEntry{"Google Analytics", rec.Trackers.GAID})
	}
	if rec.Trackers.FBPixel != "" {
		tracking = append(tracking, markerEntry{"Facebook Pixel", rec.Trackers.FBPixel})
	}
	if rec.Trackers.TTPixel != "" {
		tracking = append(tracking, markerEntry{"TikTok Pixel", rec.Trackers.TTPixel})
	}
	if rec.Trackers.Affiliate != nil {
		tracking = append(tracking, markerEntry{"Affiliate Params",
			fmt.Sprintf("aff_id=%s, subid=%s", rec.Trackers.Affiliate.AffID, rec.Trackers.Affiliate.SubID)})
	}

	var financial []markerEntry
	if rec.Financial.CryptoWallet != "" {
		financial = append(financial, markerEntry{fmt.Sprintf("Crypto Wallet (%s)", rec.Financial.WalletType), rec.Financial.CryptoWallet})
	}
	if rec.Financial.PaymentGateway != "" {
		licensed := "Unlicensed"
		if rec.Financial.GatewayLicensed {
			licensed = "Licensed"
		}
		financial = append(financial, markerEntry{"Payment Gateway", fmt.Sprintf("%s (%s)", rec.Financial.PaymentGateway, licensed)})
	}

	var contacts []markerEntry
	if rec.Contacts.Telegram != "" {
		contacts = append(contacts, markerEntry{"Telegram", rec.Contacts.Telegram})
	}
	if rec.Contacts.WhatsApp != "" {
		contacts = append(contacts, markerEntry{"WhatsApp", rec.Contacts.WhatsApp})
	}
	if rec.Contacts.Email != "" {
		contacts = append(contacts, markerEntry{"Email", rec.Contacts.Email})
	}

	return map[string][]markerEntry{
		"infrastructure": infra,
		"tracking":       tracking,
		"financial":      financial,
		"contacts":       contacts,
	}
}

type clusterResponse struct {
	Domain       string        `json:"domain,omitempty"`
	ClusterID    string        `json:"cluster_id,omitempty"`
	Message      string        `json:"message,omitempty"`
	Nodes        []*graph.Node `json:"nodes"`
	Edges        []graph.Edge  `json:"edges"`
	WebsiteCount int           `json:"website_count"`
	TotalNodes   int           `json:"total_nodes"`
	TotalEdges   int           `json:"total_edges"`
}

// handleCluster returns the 2-hop cluster for ?url=, falling back to the
// full graph when the domain has not been analyzed or no url is given.
func (s *Server) handleCluster(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeJSON(w, http.StatusOK, clusterView("", "", "", s.store.GetFullGraph()))
		return
	}

	domain := feature.NormalizeDomain(url)
	sub := s.store.GetCluster(domain)
	if len(sub.Nodes) == 0 {
		resp := clusterView(domain, "", "Domain not yet analyzed. Showing full threat ecosystem.", s.store.GetFullGraph())
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusOK, clusterView(domain, s.store.GetClusterID(domain), "", sub))
}

func clusterView(domain, clusterID, message string, sub graph.Subgraph) *clusterResponse {
	websites := 0
	for _, n := range sub.Nodes {
		if n.Type == graph.NodeWebsite {
			websites++
		}
	}
	return &clusterResponse{
		Domain:       domain,
		ClusterID:    clusterID,
		Message:      message,
		Nodes:        sub.Nodes,
		Edges:        sub.Edges,
		WebsiteCount: websites,
		TotalNodes:   len(sub.Nodes),
		TotalEdges:   len(sub.Edges),
	}
}

func (s *Server) handleBlocklist(w http.ResponseWriter, r *http.Request) {
	items := s.store.GetBlocklist()
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.GetStats())
}

type scanRequest struct {
	Domain     string `json:"domain"`
	MaxResults int    `json:"max_results,omitempty"`
}

type scanResponse struct {
	Domain     string              `json:"domain"`
	Candidates int                 `json:"candidates"`
	Checked    int                 `json:"checked"`
	Found      []typosquat.Variant `json:"found"`
	Duration   string              `json:"duration"`
}

// handleScan runs a full typosquat scan synchronously and returns the live
// variants. The scan honors request cancellation: a dropped connection
// stops new lookups at the next batch boundary.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Domain == "" {
		writeError(w, http.StatusBadRequest, "domain is required")
		return
	}
	domain := feature.NormalizeDomain(req.Domain)
	if !feature.ValidDomain(domain) {
		writeError(w, http.StatusBadRequest, "not a valid domain")
		return
	}

	opts := s.scanOpts
	opts.MaxResults = req.MaxResults
	scanner := typosquat.NewScanner(s.resolver, nil, opts)

	candidates := typosquat.GenerateCandidates(domain)
	found := make([]typosquat.Variant, 0)
	checked := 0
	for ev := range scanner.ScanCandidates(r.Context(), domain, candidates) {
		if ev.Found != nil {
			found = append(found, *ev.Found)
		}
		if ev.Progress != nil {
			checked = ev.Progress.Checked
		}
	}

	writeJSON(w, http.StatusOK, &scanResponse{
		Domain:     domain,
		Candidates: len(candidates),
		Checked:    checked,
		Found:      found,
		Duration:   scanDuration(start),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "operational",
		"version": apiVersion,
		"uptime":  time.Since(serverStart).Round(time.Second).String(),
	})
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func scanDuration(start time.Time) string {
	return fmt.Sprintf("%.1fs", time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
