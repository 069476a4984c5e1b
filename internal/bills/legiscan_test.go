package bills

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "civiclink/pkg/domain-errors"
)

const legiscanSearchFixture = `{
	"status": "OK",
	"searchresult": {
		"summary": {"page": "1 of 1", "count": 2, "relevancy": "100%"},
		"1": {
			"state": "NY",
			"bill_number": "A00123",
			"bill_id": 222,
			"title": "Second hit",
			"last_action": "referred to committee",
			"last_action_date": "2026-02-01",
			"url": "https://legiscan.com/NY/bill/A123"
		},
		"0": {
			"state": "CA",
			"bill_number": "SB606",
			"bill_id": 111,
			"title": "First hit",
			"last_action": "Introduced",
			"last_action_date": "2026-01-15",
			"url": "https://legiscan.com/CA/bill/SB606"
		}
	}
}`

func TestLegiscanSearchParsesNumericKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getSearch", r.URL.Query().Get("op"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "CA", r.URL.Query().Get("state"))
		w.Write([]byte(legiscanSearchFixture))
	}))
	defer server.Close()

	client := NewLegiScanClient("test-key", server.URL, nil)
	result, err := client.Search(context.Background(), "housing", SearchFilters{State: "ca"})
	require.NoError(t, err)
	require.Len(t, result.Bills, 2)

	// The "summary" entry is skipped and entries come back in key order.
	first := result.Bills[0]
	assert.Equal(t, "CA SB 606", first.ID)
	assert.Equal(t, "First hit", first.Title)
	assert.Equal(t, LevelState, first.Level)
	assert.Equal(t, "California", first.Jurisdiction)
	assert.Equal(t, ChamberSenate, first.Chamber)
	assert.Equal(t, "111", first.DetailID)

	second := result.Bills[1]
	assert.Equal(t, "NY A 123", second.ID)
	assert.Equal(t, ChamberHouse, second.Chamber)
}

func TestLegiscanSearchUnconfiguredReturnsNotice(t *testing.T) {
	client := NewLegiScanClient("", "http://unused.invalid", nil)

	result, err := client.Search(context.Background(), "anything", SearchFilters{})
	require.NoError(t, err)
	assert.Empty(t, result.Bills)
	assert.Contains(t, result.Notice, "not configured")
}

func TestLegiscanGetByIDNormalizesBill(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getBill", r.URL.Query().Get("op"))
		assert.Equal(t, "111", r.URL.Query().Get("id"))
		w.Write([]byte(`{
			"status": "OK",
			"bill": {
				"bill_id": 111,
				"state": "CA",
				"bill_number": "SB606",
				"title": "An act relating to housing",
				"description": "Requires disclosure of rental fees.",
				"session": {"session_name": "2025-2026 Regular Session"},
				"sponsors": [{"name": "Jane Smith"}, {"name": "Bob Jones"}],
				"history": [
					{"date": "2026-01-10", "action": "Introduced"},
					{"date": "2026-02-03", "action": "Passed Senate"}
				],
				"state_link": "https://leginfo.ca.gov/SB606"
			}
		}`))
	}))
	defer server.Close()

	client := NewLegiScanClient("test-key", server.URL, nil)
	bill, err := client.GetByID(context.Background(), "111")
	require.NoError(t, err)

	assert.Equal(t, "CA SB 606", bill.ID)
	assert.Equal(t, "Requires disclosure of rental fees.", bill.Summary)
	assert.Equal(t, "2025-2026 Regular Session", bill.Session)
	assert.Equal(t, "2026-01-10", bill.Introduced)
	assert.Equal(t, "Passed Senate", bill.LatestAction)
	assert.Equal(t, "2026-02-03", bill.LatestActionDate)
	assert.Equal(t, []string{"Jane Smith", "Bob Jones"}, bill.Sponsors)
	assert.Equal(t, "https://leginfo.ca.gov/SB606", bill.SourceURL)
}

func TestLegiscanGetByIDRejectsNonNumericID(t *testing.T) {
	client := NewLegiScanClient("test-key", "http://unused.invalid", nil)

	_, err := client.GetByID(context.Background(), "ocd-bill/abc")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestLegiscanGetByIDNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ERROR"}`))
	}))
	defer server.Close()

	client := NewLegiScanClient("test-key", server.URL, nil)
	_, err := client.GetByID(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}
