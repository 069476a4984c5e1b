package bills

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "civiclink/pkg/domain-errors"
)

const congressSearchFixture = `{
	"bills": [
		{
			"congress": 118,
			"type": "HR",
			"number": "82",
			"title": "Social Security Fairness Act",
			"latestAction": {"actionDate": "2025-01-05", "text": "Became Public Law"},
			"url": "https://api.congress.gov/v3/bill/118/hr/82"
		},
		{
			"congress": 118,
			"type": "S",
			"number": "0606",
			"title": "A senate bill",
			"latestAction": {"actionDate": "2024-06-01", "text": "Read twice"},
			"url": "https://api.congress.gov/v3/bill/118/s/606"
		}
	]
}`

func TestCongressSearchNormalizesBills(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bill", r.URL.Path)
		assert.Equal(t, "social security", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(congressSearchFixture))
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	result, err := client.Search(context.Background(), "social security", SearchFilters{})
	require.NoError(t, err)
	require.Len(t, result.Bills, 2)

	first := result.Bills[0]
	assert.Equal(t, "US HR 82", first.ID)
	assert.Equal(t, LevelFederal, first.Level)
	assert.Equal(t, "United States", first.Jurisdiction)
	assert.Equal(t, "118th Congress", first.Session)
	assert.Equal(t, ChamberHouse, first.Chamber)
	assert.Equal(t, "Became Public Law", first.LatestAction)
	assert.Equal(t, "118/hr/82", first.DetailID)

	second := result.Bills[1]
	assert.Equal(t, "US S 606", second.ID)
	assert.Equal(t, ChamberSenate, second.Chamber)
}

func TestCongressSearchUnconfiguredReturnsNotice(t *testing.T) {
	client := NewCongressClient("", "http://unused.invalid", nil)

	result, err := client.Search(context.Background(), "anything", SearchFilters{})
	require.NoError(t, err)
	assert.Empty(t, result.Bills)
	assert.Contains(t, result.Notice, "not configured")
}

func TestCongressSearchDegradesOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	result, err := client.Search(context.Background(), "anything", SearchFilters{})
	require.NoError(t, err)
	assert.Empty(t, result.Bills)
	assert.Contains(t, result.Notice, "temporarily unavailable")
}

func TestCongressSearchUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(congressSearchFixture))
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	_, err := client.Search(context.Background(), "social security", SearchFilters{})
	require.NoError(t, err)
	_, err = client.Search(context.Background(), "social security", SearchFilters{})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
}

func TestCongressSearchRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bills": []}`))
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	for i := 0; i < congressLimit; i++ {
		// Distinct queries bypass the search cache.
		_, err := client.Search(context.Background(), strings.Repeat("q", i+1), SearchFilters{})
		require.NoError(t, err)
	}

	_, err := client.Search(context.Background(), "one too many", SearchFilters{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeRateLimited))
}

func TestCongressGetByIDPicksLatestSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bill/118/hr/82":
			w.Write([]byte(`{"bill": {
				"congress": 118, "type": "HR", "number": "82",
				"title": "Social Security Fairness Act",
				"introducedDate": "2023-01-09",
				"latestAction": {"actionDate": "2025-01-05", "text": "Became Public Law"},
				"sponsors": [{"fullName": "Rep. Graves, Garret"}],
				"url": "https://api.congress.gov/v3/bill/118/hr/82"
			}}`))
		case "/bill/118/hr/82/summaries":
			w.Write([]byte(`{"summaries": [
				{"updateDate": "2023-02-01T00:00:00Z", "text": "<p>Old summary</p>"},
				{"updateDate": "2024-12-01T00:00:00Z", "text": "<p>This bill repeals &amp; replaces provisions.</p>"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	bill, err := client.GetByID(context.Background(), "118/hr/82")
	require.NoError(t, err)

	assert.Equal(t, "US HR 82", bill.ID)
	assert.Equal(t, "This bill repeals & replaces provisions.", bill.Summary)
	assert.Equal(t, "2023-01-09", bill.Introduced)
	assert.Equal(t, []string{"Rep. Graves, Garret"}, bill.Sponsors)
}

func TestCongressGetByIDRejectsMalformedID(t *testing.T) {
	client := NewCongressClient("test-key", "http://unused.invalid", nil)

	_, err := client.GetByID(context.Background(), "not-an-id")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestCongressGetByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewCongressClient("test-key", server.URL, nil)
	_, err := client.GetByID(context.Background(), "118/hr/9999")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
