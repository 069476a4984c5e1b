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
	openstatesProviderName = "openstates"
	openstatesLimit        = 10
	openstatesWindow       = time.Minute
)

// OpenStatesClient fetches state bills from the OpenStates v3 API.
// Authentication rides in the X-API-Key header rather than the query
// string.
type OpenStatesClient struct {
	gate       *providerGate
	baseURL    string
	httpClient *http.Client
}

// NewOpenStatesClient creates the OpenStates state bill provider.
func NewOpenStatesClient(apiKey, baseURL string, metrics *Metrics) *OpenStatesClient {
	return &OpenStatesClient{
		gate:       newProviderGate(openstatesProviderName, apiKey, openstatesLimit, openstatesWindow, metrics),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newProviderHTTPClient(),
	}
}

// Name implements Provider.
func (c *OpenStatesClient) Name() string { return openstatesProviderName }

type openstatesSearchResponse struct {
	Results []openstatesBill `json:"results"`
}

type openstatesBill struct {
	ID           string `json:"id"`
	Identifier   string `json:"identifier"`
	Title        string `json:"title"`
	Session      string `json:"session"`
	Jurisdiction struct {
		Name string `json:"name"`
	} `json:"jurisdiction"`
	FromOrganization struct {
		Name string `json:"name"`
	} `json:"from_organization"`
	FirstActionDate   string `json:"first_action_date"`
	LatestActionDate  string `json:"latest_action_date"`
	LatestActionDescr string `json:"latest_action_description"`
	OpenstatesURL     string `json:"openstates_url"`
	Abstracts         []struct {
		Abstract string `json:"abstract"`
	} `json:"abstracts"`
	Sponsorships []struct {
		Name string `json:"name"`
	} `json:"sponsorships"`
}

// Search implements Provider. OpenStates filters by full jurisdiction
// name, so a postal abbreviation in the filter is expanded first.
func (c *OpenStatesClient) Search(ctx context.Context, query string, filters SearchFilters) (*SearchResult, error) {
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
	q.Set("q", query)
	q.Set("page", strconv.Itoa(filters.page()))
	q.Set("per_page", strconv.Itoa(filters.pageSize()))
	q.Set("sort", "updated_desc")
	if state != "" {
		jurisdiction := state
		if name, ok := StateName(state); ok {
			jurisdiction = name
		}
		q.Set("jurisdiction", jurisdiction)
	}

	var parsed openstatesSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/bills?"+q.Encode(), &parsed); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable) {
			return &SearchResult{
				Bills:  []NormalizedBill{},
				Notice: "state bill search is temporarily unavailable",
			}, nil
		}
		return nil, err
	}

	bills := make([]NormalizedBill, 0, len(parsed.Results))
	for _, b := range parsed.Results {
		bills = append(bills, normalizeOpenstatesBill(b))
	}

	result := &SearchResult{Bills: bills}
	c.gate.cache.set(key, result)
	return result, nil
}

// GetByID implements Provider. The id is an OpenStates ocd-bill
// identifier, e.g. "ocd-bill/6c0f5e6e-...".
func (c *OpenStatesClient) GetByID(ctx context.Context, id string) (*NormalizedBill, error) {
	if !c.gate.configured() {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "state bill lookup is not configured")
	}
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, "ocd-bill/") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "openstates bill id must start with ocd-bill/")
	}

	if err := c.gate.allow(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Add("include", "abstracts")
	q.Add("include", "sponsorships")

	var parsed openstatesBill
	if err := c.getJSON(ctx, c.baseURL+"/bills/"+url.PathEscape(id)+"?"+q.Encode(), &parsed); err != nil {
		return nil, err
	}

	bill := normalizeOpenstatesBill(parsed)
	return &bill, nil
}

func normalizeOpenstatesBill(b openstatesBill) NormalizedBill {
	jurisdiction := b.Jurisdiction.Name
	abbr := jurisdictionAbbr(jurisdiction)
	number := FormatBillNumber(b.Identifier)

	summary := ""
	if len(b.Abstracts) > 0 {
		summary = b.Abstracts[0].Abstract
	}

	sponsors := make([]string, 0, len(b.Sponsorships))
	for _, s := range b.Sponsorships {
		sponsors = append(sponsors, s.Name)
	}

	chamber := InferChamber(number)
	if org := strings.ToLower(b.FromOrganization.Name); strings.Contains(org, "senate") {
		chamber = ChamberSenate
	} else if strings.Contains(org, "house") || strings.Contains(org, "assembly") {
		chamber = ChamberHouse
	}

	return NormalizedBill{
		ID:               abbr + " " + number,
		Title:            b.Title,
		Summary:          summary,
		Level:            LevelState,
		Jurisdiction:     jurisdiction,
		Session:          b.Session,
		Chamber:          chamber,
		Introduced:       b.FirstActionDate,
		LatestAction:     b.LatestActionDescr,
		LatestActionDate: b.LatestActionDate,
		Sponsors:         sponsors,
		SourceURL:        b.OpenstatesURL,
		DetailID:         b.ID,
	}
}

func (c *OpenStatesClient) getJSON(ctx context.Context, rawURL string, target any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build openstates request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.gate.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateTransportErr(err, openstatesProviderName)
	}
	defer resp.Body.Close()

	if c.gate.metrics != nil {
		c.gate.metrics.UpstreamLatency.WithLabelValues(openstatesProviderName).Observe(time.Since(start).Seconds())
	}

	if resp.StatusCode == http.StatusNotFound {
		return dErrors.New(dErrors.CodeNotFound, "bill not found")
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("openstates returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode openstates response")
	}
	return nil
}
