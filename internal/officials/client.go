package officials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	dErrors "civiclink/pkg/domain-errors"
)

const requestTimeout = 10 * time.Second

// Client fetches representative records for a free-text address.
//
// The upstream answers in one of two shapes (indexed offices, or a flat
// representative list); the client detects which and normalizes both into
// []OfficialContact.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a representative lookup client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// combinedResponse holds the union of both upstream variants so one decode
// pass can detect which shape arrived.
type combinedResponse struct {
	civicResponse
	callsResponse
}

// Lookup fetches and normalizes the officials for an address. Lookup is an
// essential feature, so a missing API key is a hard error rather than a
// degraded empty result.
func (c *Client) Lookup(ctx context.Context, address string) (*LookupResult, error) {
	if c.apiKey == "" {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "representative lookup is not configured")
	}

	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/representatives?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build representative request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, dErrors.Wrap(err, dErrors.CodeUpstreamTimeout, "representative lookup timed out, please try again")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "representative lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("representative lookup returned status %d", resp.StatusCode))
	}

	var combined combinedResponse
	if err := json.NewDecoder(resp.Body).Decode(&combined); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode representative response")
	}

	result := &LookupResult{Location: describeLocation(&combined)}
	if len(combined.Representatives) > 0 {
		result.Officials = normalizeCalls(&combined.callsResponse)
		return result, nil
	}
	result.Officials = normalizeCivic(&combined.civicResponse)
	return result, nil
}

func describeLocation(resp *combinedResponse) string {
	if resp.Location != "" {
		return resp.Location
	}
	in := resp.NormalizedInput
	if in.City != "" && in.State != "" {
		return in.City + ", " + in.State
	}
	return in.State
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
