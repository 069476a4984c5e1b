// Package http carries the chi router and request handlers for the
// public API surface.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"civiclink/internal/analytics"
	"civiclink/internal/bills"
	"civiclink/internal/drafts"
	"civiclink/internal/officials"
	platformMW "civiclink/internal/platform/middleware"
	"civiclink/internal/platform/privacy"
	"civiclink/internal/topics"
	"civiclink/internal/voting"
	httpjson "civiclink/internal/transport/http/json"
	dErrors "civiclink/pkg/domain-errors"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	officials *officials.Service
	bills     *bills.Service
	drafts    *drafts.Service
	analytics *analytics.Service
	recorder  *analytics.Recorder
}

// NewHandlers wires the request handlers.
func NewHandlers(
	officialsSvc *officials.Service,
	billsSvc *bills.Service,
	draftsSvc *drafts.Service,
	analyticsSvc *analytics.Service,
	recorder *analytics.Recorder,
) *Handlers {
	return &Handlers{
		officials: officialsSvc,
		bills:     billsSvc,
		drafts:    draftsSvc,
		analytics: analyticsSvc,
		recorder:  recorder,
	}
}

// track records an analytics event without ever blocking or failing the
// request; a nil recorder means analytics is off.
func (h *Handlers) track(r *http.Request, event analytics.Event) {
	if h.recorder == nil {
		return
	}
	ctx := r.Context()
	event.ActorHash = privacy.ActorHash(platformMW.GetClientIP(ctx), r.UserAgent())
	event.Platform = analytics.PlatformFrom(r.UserAgent())
	event.Endpoint = r.URL.Path
	h.recorder.Record(event)
}

func (h *Handlers) trackError(r *http.Request, err error) {
	h.track(r, analytics.Event{
		Type:  analytics.EventAPIError,
		Error: string(dErrors.CodeOf(err)),
	})
}

type lookupOfficialsRequest struct {
	Address string `json:"address"`
}

// HandleOfficialsLookup resolves elected officials for a postal address.
func (h *Handlers) HandleOfficialsLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupOfficialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	result, err := h.officials.Lookup(r.Context(), req.Address)
	if err != nil {
		h.trackError(r, err)
		httpjson.WriteError(w, err)
		return
	}

	h.track(r, analytics.Event{Type: analytics.EventOfficialsLookup})
	httpjson.WriteJSON(w, http.StatusOK, result)
}

// HandleBillSearch searches federal and state bills.
func (h *Handlers) HandleBillSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filters := bills.SearchFilters{
		State:    r.URL.Query().Get("state"),
		Page:     intQuery(r, "page"),
		PageSize: intQuery(r, "page_size"),
	}

	result, err := h.bills.Search(r.Context(), query, filters)
	if err != nil {
		h.trackError(r, err)
		httpjson.WriteError(w, err)
		return
	}

	h.track(r, analytics.Event{
		Type:      analytics.EventBillSearch,
		BillQuery: query,
		State:     filters.State,
		Topic:     topics.Classify(query),
	})
	httpjson.WriteJSON(w, http.StatusOK, result)
}

// HandleBillDetail fetches one bill by provider id.
func (h *Handlers) HandleBillDetail(w http.ResponseWriter, r *http.Request) {
	bill, err := h.bills.GetDetail(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		h.trackError(r, err)
		httpjson.WriteError(w, err)
		return
	}

	h.track(r, analytics.Event{
		Type:  analytics.EventBillView,
		State: bill.Jurisdiction,
		Topic: topics.Classify(bill.Title),
	})
	httpjson.WriteJSON(w, http.StatusOK, bill)
}

type classifyResponse struct {
	Topic string `json:"topic"`
}

// HandleTopicClassify maps a bill title to an issue topic.
func (h *Handlers) HandleTopicClassify(w http.ResponseWriter, r *http.Request) {
	httpjson.WriteJSON(w, http.StatusOK, classifyResponse{
		Topic: topics.Classify(r.URL.Query().Get("title")),
	})
}

type eligibilityRequest struct {
	Role       string `json:"role"`
	BillNumber string `json:"bill_number"`
	State      string `json:"state"`
}

// HandleVotingEligibility reports whether an official votes on a bill.
func (h *Handlers) HandleVotingEligibility(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.Role == "" || req.BillNumber == "" {
		httpjson.WriteError(w, dErrors.New(dErrors.CodeValidation, "role and bill_number are required"))
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, voting.Resolve(req.Role, req.BillNumber, req.State))
}

type draftRequest struct {
	drafts.DraftInput
	Recipient *drafts.Recipient `json:"recipient,omitempty"`
}

type draftResponse struct {
	Draft string `json:"draft"`
}

// HandleDraftLetter generates a constituent letter.
func (h *Handlers) HandleDraftLetter(w http.ResponseWriter, r *http.Request) {
	h.handleDraft(w, r, analytics.EventLetterDrafted, h.drafts.DraftLetter)
}

// HandleDraftPhoneScript generates a call script.
func (h *Handlers) HandleDraftPhoneScript(w http.ResponseWriter, r *http.Request) {
	h.handleDraft(w, r, analytics.EventScriptDrafted, h.drafts.DraftPhoneScript)
}

func (h *Handlers) handleDraft(
	w http.ResponseWriter,
	r *http.Request,
	eventType analytics.EventType,
	generate func(ctx context.Context, input drafts.DraftInput, recipient *drafts.Recipient) (string, error),
) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}

	draft, err := generate(r.Context(), req.DraftInput, req.Recipient)
	if err != nil {
		h.trackError(r, err)
		httpjson.WriteError(w, err)
		return
	}

	h.track(r, analytics.Event{
		Type:  eventType,
		Topic: req.Topic,
		State: req.State,
	})
	httpjson.WriteJSON(w, http.StatusOK, draftResponse{Draft: draft})
}

// HandleAnalyticsSummary serves the admin aggregate view.
func (h *Handlers) HandleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	window := durationQuery(r, "window", 24*time.Hour)
	summary, err := h.analytics.Summary(r.Context(), window)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, summary)
}

type timeSeriesResponse struct {
	Type    string                 `json:"type"`
	Bucket  string                 `json:"bucket"`
	Window  string                 `json:"window"`
	Buckets []analytics.TimeBucket `json:"buckets"`
}

// HandleAnalyticsTimeSeries serves zero-filled event counts over time.
func (h *Handlers) HandleAnalyticsTimeSeries(w http.ResponseWriter, r *http.Request) {
	eventType := analytics.EventType(r.URL.Query().Get("type"))
	bucket := durationQuery(r, "bucket", time.Hour)
	window := durationQuery(r, "window", 24*time.Hour)

	buckets, err := h.analytics.TimeSeries(r.Context(), eventType, bucket, window)
	if err != nil {
		httpjson.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, timeSeriesResponse{
		Type:    string(eventType),
		Bucket:  bucket.String(),
		Window:  window.String(),
		Buckets: buckets,
	})
}

// HandleAnalyticsReset purges the event log.
func (h *Handlers) HandleAnalyticsReset(w http.ResponseWriter, r *http.Request) {
	if err := h.analytics.Reset(r.Context()); err != nil {
		httpjson.WriteError(w, err)
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func intQuery(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}

func durationQuery(r *http.Request, key string, fallback time.Duration) time.Duration {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
