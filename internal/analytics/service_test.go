package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "civiclink/pkg/domain-errors"
)

func seededService(t *testing.T, now time.Time) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store, testLogger(), nil)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestSummaryCountsAndRanks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store := seededService(t, now)
	ctx := context.Background()

	seed := []Event{
		{Type: EventBillSearch, Timestamp: now.Add(-10 * time.Minute), Topic: "Housing", State: "NY"},
		{Type: EventBillSearch, Timestamp: now.Add(-9 * time.Minute), Topic: "Housing", State: "CA"},
		{Type: EventBillView, Timestamp: now.Add(-8 * time.Minute), Topic: "Healthcare", State: "NY"},
		{Type: EventLetterDrafted, Timestamp: now.Add(-5 * time.Minute), Topic: "Housing", State: "NY"},
		{Type: EventAPIError, Timestamp: now.Add(-2 * time.Minute), Error: "upstream_timeout"},
		// Outside the window, must not count.
		{Type: EventBillSearch, Timestamp: now.Add(-2 * time.Hour), Topic: "Guns", State: "TX"},
	}
	for _, event := range seed {
		require.NoError(t, store.Append(ctx, event))
	}

	summary, err := svc.Summary(ctx, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.CountByType[EventBillSearch])
	assert.Equal(t, 1, summary.CountByType[EventLetterDrafted])
	assert.Equal(t, 1, summary.ErrorCount)

	require.NotEmpty(t, summary.TopTopics)
	assert.Equal(t, RankedValue{Value: "Housing", Count: 3}, summary.TopTopics[0])
	assert.Equal(t, RankedValue{Value: "NY", Count: 3}, summary.TopStates[0])
}

func TestSummaryRejectsNonPositiveWindow(t *testing.T) {
	svc, _ := seededService(t, time.Now())

	_, err := svc.Summary(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestTimeSeriesZeroFillsBuckets(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, store := seededService(t, now)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Type: EventBillSearch, Timestamp: now.Add(-25 * time.Minute)}))
	require.NoError(t, store.Append(ctx, Event{Type: EventBillSearch, Timestamp: now.Add(-24 * time.Minute)}))
	require.NoError(t, store.Append(ctx, Event{Type: EventBillSearch, Timestamp: now.Add(-5 * time.Minute)}))
	// A different type never shows up in this series.
	require.NoError(t, store.Append(ctx, Event{Type: EventBillView, Timestamp: now.Add(-5 * time.Minute)}))

	buckets, err := svc.TimeSeries(ctx, EventBillSearch, 10*time.Minute, time.Hour)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	total := 0
	nonZero := 0
	for i, bucket := range buckets {
		if i > 0 {
			assert.Equal(t, 10*time.Minute, bucket.Start.Sub(buckets[i-1].Start))
		}
		total += bucket.Count
		if bucket.Count > 0 {
			nonZero++
		}
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, nonZero)
}

func TestTimeSeriesValidation(t *testing.T) {
	svc, _ := seededService(t, time.Now())
	ctx := context.Background()

	_, err := svc.TimeSeries(ctx, "page_view", time.Minute, time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.TimeSeries(ctx, EventBillSearch, 2*time.Hour, time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.TimeSeries(ctx, EventBillSearch, 0, time.Hour)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestResetPurgesStore(t *testing.T) {
	svc, store := seededService(t, time.Now())
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, Event{Type: EventBillSearch, Timestamp: time.Now()}))
	require.NoError(t, svc.Reset(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestPlatformFrom(t *testing.T) {
	assert.Equal(t, "unknown", PlatformFrom(""))
	assert.Equal(t, "bot", PlatformFrom("Googlebot/2.1 (+http://www.google.com/bot.html)"))
	assert.Equal(t, "mobile", PlatformFrom("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"))
	assert.Equal(t, "desktop", PlatformFrom("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"))
}
