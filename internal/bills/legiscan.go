package bills

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	dErrors "civiclink/pkg/domain-errors"
)

const (
	legiscanProviderName = "legiscan"
	legiscanLimit        = 10
	legiscanWindow       = time.Minute
)

// LegiScanClient fetches state bills from the LegiScan API. LegiScan
// multiplexes every operation through a single endpoint selected by the
// "op" query parameter.
type LegiScanClient struct {
	gate       *providerGate
	baseURL    string
	httpClient *http.Client
}

// NewLegiScanClient creates the LegiScan state bill provider.
func NewLegiScanClient(apiKey, baseURL string, metrics *Metrics) *LegiScanClient {
	return &LegiScanClient{
		gate:       newProviderGate(legiscanProviderName, apiKey, legiscanLimit, legiscanWindow, metrics),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newProviderHTTPClient(),
	}
}

// Name implements Provider.
func (c *LegiScanClient) Name() string { return legiscanProviderName }

type legiscanSearchEnvelope struct {
	Status       string          `json:"status"`
	SearchResult json.RawMessage `json:"searchresult"`
}

type legiscanSearchHit struct {
	State          string `json:"state"`
	BillNumber     string `json:"bill_number"`
	BillID         int    `json:"bill_id"`
	Title          string `json:"title"`
	LastAction     string `json:"last_action"`
	LastActionDate string `json:"last_action_date"`
	URL            string `json:"url"`
}

type legiscanBillEnvelope struct {
	Status string       `json:"status"`
	Bill   legiscanBill `json:"bill"`
}

type legiscanBill struct {
	BillID      int    `json:"bill_id"`
	State       string `json:"state"`
	BillNumber  string `json:"bill_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Session     struct {
		SessionName string `json:"session_name"`
	} `json:"session"`
	Sponsors []struct {
		Name string `json:"name"`
	} `json:"sponsors"`
	History []struct {
		Date   string `json:"date"`
		Action string `json:"action"`
	} `json:"history"`
	StateLink string `json:"state_link"`
}

// Search implements Provider.
func (c *LegiScanClient) Search(ctx context.Context, query string, filters SearchFilters) (*SearchResult, error) {
	if !c.gate.configured() {
		return c.gate.unavailableResult(), nil
	}

	state := strings.ToUpper(strings.TrimSpace(filters.State))
	key := cacheKey(query, state, filters.page(), filters.pageSize())
	if cached, ok := c.gate.cachedSearch(key); ok {
		return cached, nil
	}

	if err := c.gate.allow(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("key", c.gate.apiKey)
	q.Set("op", "getSearch")
	q.Set("query", query)
	q.Set("page", strconv.Itoa(filters.page()))
	if state != "" {
		q.Set("state", state)
	}

	var envelope legiscanSearchEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/?"+q.Encode(), &envelope); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable) {
			return &SearchResult{
				Bills:  []NormalizedBill{},
				Notice: "state bill search is temporarily unavailable",
			}, nil
		}
		return nil, err
	}

	hits, err := parseLegiscanHits(envelope.SearchResult)
	if err != nil {
		return nil, err
	}

	bills := make([]NormalizedBill, 0, len(hits))
	for i, hit := range hits {
		if i >= filters.pageSize() {
			break
		}
		bills = append(bills, normalizeLegiscanHit(hit))
	}

	result := &SearchResult{Bills: bills}
	c.gate.cache.set(key, result)
	return result, nil
}

// parseLegiscanHits unpacks LegiScan's searchresult object, which mixes
// numerically keyed bill entries with a "summary" entry that must be
// skipped. Entries come back ordered by their numeric key.
func parseLegiscanHits(raw json.RawMessage) ([]legiscanSearchHit, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode legiscan search result")
	}

	type indexed struct {
		index int
		hit   legiscanSearchHit
	}
	ordered := make([]indexed, 0, len(entries))
	for key, entry := range entries {
		index, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var hit legiscanSearchHit
		if err := json.Unmarshal(entry, &hit); err != nil {
			continue
		}
		ordered = append(ordered, indexed{index: index, hit: hit})
	}

	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j-1].index > ordered[j].index; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}

	hits := make([]legiscanSearchHit, 0, len(ordered))
	for _, entry := range ordered {
		hits = append(hits, entry.hit)
	}
	return hits, nil
}

func normalizeLegiscanHit(hit legiscanSearchHit) NormalizedBill {
	state := strings.ToUpper(hit.State)
	number := FormatBillNumber(hit.BillNumber)
	jurisdiction := state
	if name, ok := StateName(state); ok {
		jurisdiction = name
	}
	return NormalizedBill{
		ID:               state + " " + number,
		Title:            hit.Title,
		Level:            LevelState,
		Jurisdiction:     jurisdiction,
		Chamber:          InferChamber(number),
		LatestAction:     hit.LastAction,
		LatestActionDate: hit.LastActionDate,
		Sponsors:         []string{},
		SourceURL:        hit.URL,
		DetailID:         strconv.Itoa(hit.BillID),
	}
}

// GetByID implements Provider. The id is LegiScan's numeric bill_id.
func (c *LegiScanClient) GetByID(ctx context.Context, id string) (*NormalizedBill, error) {
	if !c.gate.configured() {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "state bill lookup is not configured")
	}
	if _, err := strconv.Atoi(strings.TrimSpace(id)); err != nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "legiscan bill id must be numeric")
	}

	if err := c.gate.allow(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("key", c.gate.apiKey)
	q.Set("op", "getBill")
	q.Set("id", strings.TrimSpace(id))

	var envelope legiscanBillEnvelope
	if err := c.getJSON(ctx, c.baseURL+"/?"+q.Encode(), &envelope); err != nil {
		return nil, err
	}
	if !strings.EqualFold(envelope.Status, "OK") {
		return nil, dErrors.New(dErrors.CodeNotFound, "bill not found")
	}

	bill := normalizeLegiscanBill(envelope.Bill)
	return &bill, nil
}

func normalizeLegiscanBill(b legiscanBill) NormalizedBill {
	state := strings.ToUpper(b.State)
	number := FormatBillNumber(b.BillNumber)
	jurisdiction := state
	if name, ok := StateName(state); ok {
		jurisdiction = name
	}

	sponsors := make([]string, 0, len(b.Sponsors))
	for _, s := range b.Sponsors {
		sponsors = append(sponsors, s.Name)
	}

	latestAction := ""
	latestActionDate := ""
	introduced := ""
	if len(b.History) > 0 {
		introduced = b.History[0].Date
		last := b.History[len(b.History)-1]
		latestAction = last.Action
		latestActionDate = last.Date
	}

	return NormalizedBill{
		ID:               state + " " + number,
		Title:            b.Title,
		Summary:          b.Description,
		Level:            LevelState,
		Jurisdiction:     jurisdiction,
		Session:          b.Session.SessionName,
		Chamber:          InferChamber(number),
		Introduced:       introduced,
		LatestAction:     latestAction,
		LatestActionDate: latestActionDate,
		Sponsors:         sponsors,
		SourceURL:        b.StateLink,
		DetailID:         strconv.Itoa(b.BillID),
	}
}

func (c *LegiScanClient) getJSON(ctx context.Context, rawURL string, target any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build legiscan request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateTransportErr(err, legiscanProviderName)
	}
	defer resp.Body.Close()

	if c.gate.metrics != nil {
		c.gate.metrics.UpstreamLatency.WithLabelValues(legiscanProviderName).Observe(time.Since(start).Seconds())
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("legiscan returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode legiscan response")
	}
	return nil
}
