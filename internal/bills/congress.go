package bills

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	dErrors "civiclink/pkg/domain-errors"
)

const (
	congressProviderName = "congress.gov"
	congressLimit        = 100
	congressWindow       = time.Minute

	// federalAbbr prefixes every federal bill identifier.
	federalAbbr         = "US"
	federalJurisdiction = "United States"
)

// CongressClient fetches federal bills from the Congress.gov v3 API.
type CongressClient struct {
	gate       *providerGate
	baseURL    string
	httpClient *http.Client
}

// NewCongressClient creates the federal bill provider.
func NewCongressClient(apiKey, baseURL string, metrics *Metrics) *CongressClient {
	return &CongressClient{
		gate:       newProviderGate(congressProviderName, apiKey, congressLimit, congressWindow, metrics),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newProviderHTTPClient(),
	}
}

// Name implements Provider.
func (c *CongressClient) Name() string { return congressProviderName }

type congressSearchResponse struct {
	Bills []congressBill `json:"bills"`
}

type congressBill struct {
	Congress     int    `json:"congress"`
	Type         string `json:"type"`
	Number       string `json:"number"`
	Title        string `json:"title"`
	LatestAction struct {
		ActionDate string `json:"actionDate"`
		Text       string `json:"text"`
	} `json:"latestAction"`
	IntroducedDate string `json:"introducedDate"`
	URL            string `json:"url"`
	Sponsors       []struct {
		FullName string `json:"fullName"`
	} `json:"sponsors"`
}

type congressDetailResponse struct {
	Bill congressBill `json:"bill"`
}

type congressSummariesResponse struct {
	Summaries []congressSummary `json:"summaries"`
}

type congressSummary struct {
	UpdateDate string `json:"updateDate"`
	Text       string `json:"text"`
}

// Search implements Provider.
func (c *CongressClient) Search(ctx context.Context, query string, filters SearchFilters) (*SearchResult, error) {
	if !c.gate.configured() {
		return c.gate.unavailableResult(), nil
	}

	key := cacheKey(query, federalAbbr, filters.page(), filters.pageSize())
	if cached, ok := c.gate.cachedSearch(key); ok {
		return cached, nil
	}

	if err := c.gate.allow(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("format", "json")
	q.Set("limit", fmt.Sprintf("%d", filters.pageSize()))
	q.Set("offset", fmt.Sprintf("%d", (filters.page()-1)*filters.pageSize()))
	q.Set("api_key", c.gate.apiKey)

	var parsed congressSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/bill?"+q.Encode(), &parsed); err != nil {
		return c.degradeOrFail(err)
	}

	bills := make([]NormalizedBill, 0, len(parsed.Bills))
	for _, b := range parsed.Bills {
		bills = append(bills, c.normalize(b, ""))
	}

	result := &SearchResult{Bills: bills}
	c.gate.cache.set(key, result)
	return result, nil
}

// GetByID implements Provider. The id is "{congress}/{type}/{number}",
// e.g. "118/hr/82". Detail requires a second call for the summary list;
// the entry with the most recent update date wins.
func (c *CongressClient) GetByID(ctx context.Context, id string) (*NormalizedBill, error) {
	if !c.gate.configured() {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "federal bill lookup is not configured")
	}

	congress, billType, number, err := parseCongressID(id)
	if err != nil {
		return nil, err
	}

	if err := c.gate.allow(ctx); err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s/bill/%s/%s/%s", c.baseURL, congress, billType, number)
	keyParam := "?format=json&api_key=" + url.QueryEscape(c.gate.apiKey)

	var detail congressDetailResponse
	if err := c.getJSON(ctx, base+keyParam, &detail); err != nil {
		return nil, err
	}

	summary := ""
	var summaries congressSummariesResponse
	if err := c.getJSON(ctx, base+"/summaries"+keyParam, &summaries); err == nil {
		summary = latestSummary(summaries.Summaries)
	}

	bill := c.normalize(detail.Bill, summary)
	return &bill, nil
}

func (c *CongressClient) normalize(b congressBill, summary string) NormalizedBill {
	sponsors := make([]string, 0, len(b.Sponsors))
	for _, s := range b.Sponsors {
		sponsors = append(sponsors, s.FullName)
	}

	number := FormatBillNumber(b.Type + b.Number)
	return NormalizedBill{
		ID:               federalAbbr + " " + number,
		Title:            b.Title,
		Summary:          summary,
		Level:            LevelFederal,
		Jurisdiction:     federalJurisdiction,
		Session:          fmt.Sprintf("%dth Congress", b.Congress),
		Chamber:          InferChamber(number),
		Introduced:       b.IntroducedDate,
		LatestAction:     b.LatestAction.Text,
		LatestActionDate: b.LatestAction.ActionDate,
		Sponsors:         sponsors,
		SourceURL:        b.URL,
		DetailID:         fmt.Sprintf("%d/%s/%s", b.Congress, strings.ToLower(b.Type), b.Number),
	}
}

// degradeOrFail keeps search an optional feature: upstream non-success
// becomes an empty result with a notice, while timeouts and limits stay
// hard errors.
func (c *CongressClient) degradeOrFail(err error) (*SearchResult, error) {
	if dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable) {
		return &SearchResult{
			Bills:  []NormalizedBill{},
			Notice: "federal bill search is temporarily unavailable",
		}, nil
	}
	return nil, err
}

func (c *CongressClient) getJSON(ctx context.Context, rawURL string, target any) error {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build congress request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return translateTransportErr(err, congressProviderName)
	}
	defer resp.Body.Close()

	if c.gate.metrics != nil {
		c.gate.metrics.UpstreamLatency.WithLabelValues(congressProviderName).Observe(time.Since(start).Seconds())
	}

	if resp.StatusCode == http.StatusNotFound {
		return dErrors.New(dErrors.CodeNotFound, "bill not found")
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("congress.gov returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode congress response")
	}
	return nil
}

// latestSummary picks the summary with the most recent update timestamp.
func latestSummary(summaries []congressSummary) string {
	best := ""
	bestDate := ""
	for _, s := range summaries {
		if s.UpdateDate >= bestDate {
			bestDate = s.UpdateDate
			best = s.Text
		}
	}
	return CleanHTML(best)
}

func parseCongressID(id string) (congress, billType, number string, err error) {
	parts := strings.Split(strings.TrimSpace(id), "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", dErrors.New(dErrors.CodeBadRequest,
			"federal bill id must look like {congress}/{type}/{number}")
	}
	return parts[0], strings.ToLower(parts[1]), parts[2], nil
}

// jurisdictionAbbr resolves a full jurisdiction name to a postal
// abbreviation, falling back to the first two uppercased characters when
// the name is unknown. StateAbbr reports not-found instead of guessing;
// the asymmetry mirrors upstream behavior and is intentional.
func jurisdictionAbbr(name string) string {
	if abbr, ok := StateAbbr(name); ok {
		return abbr
	}
	trimmed := strings.TrimSpace(name)
	if len(trimmed) >= 2 {
		return strings.ToUpper(trimmed[:2])
	}
	return strings.ToUpper(trimmed)
}
