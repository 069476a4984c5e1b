package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"civiclink/internal/platform/kafka/producer"
)

const (
	defaultBufferSize = 256
	appendTimeout     = 5 * time.Second
)

// eventMirror is the slice of the Kafka producer the recorder needs.
type eventMirror interface {
	ProduceAsync(msg *producer.Message) error
}

// Recorder accepts events from request handlers without blocking them.
// Events flow through a buffered channel to a single worker that appends
// to the store and optionally mirrors to Kafka. When the buffer is full
// the event is dropped with a warning; analytics never slows a request
// down and never fails one.
type Recorder struct {
	store   Store
	mirror  eventMirror
	topic   string
	logger  *slog.Logger
	metrics *Metrics

	events chan Event
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool

	now func() time.Time
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithBufferSize overrides the channel buffer.
func WithBufferSize(size int) RecorderOption {
	return func(r *Recorder) {
		if size > 0 {
			r.events = make(chan Event, size)
		}
	}
}

// WithMirror mirrors every stored event onto a Kafka topic.
func WithMirror(mirror eventMirror, topic string) RecorderOption {
	return func(r *Recorder) {
		r.mirror = mirror
		r.topic = topic
	}
}

// WithMetrics attaches collectors.
func WithMetrics(metrics *Metrics) RecorderOption {
	return func(r *Recorder) { r.metrics = metrics }
}

// NewRecorder starts the background worker.
func NewRecorder(store Store, logger *slog.Logger, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		logger: logger,
		events: make(chan Event, defaultBufferSize),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.wg.Add(1)
	go r.run()
	return r
}

// Record enqueues an event. It never blocks: a full buffer drops the
// event, and an unknown type is rejected outright.
func (r *Recorder) Record(event Event) {
	if !event.Valid() {
		r.logger.Warn("analytics_event_rejected", slog.String("type", string(event.Type)))
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = r.now().UTC()
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	select {
	case r.events <- event:
		r.mu.Unlock()
	default:
		r.mu.Unlock()
		if r.metrics != nil {
			r.metrics.Dropped.Inc()
		}
		r.logger.Warn("analytics_event_dropped",
			slog.String("type", string(event.Type)),
			slog.Int("buffer", cap(r.events)))
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for event := range r.events {
		r.persist(event)
	}
}

func (r *Recorder) persist(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := r.store.Append(ctx, event); err != nil {
		if r.metrics != nil {
			r.metrics.StoreFailures.Inc()
		}
		r.logger.Error("analytics_append_failed",
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	if r.metrics != nil {
		r.metrics.Recorded.WithLabelValues(string(event.Type)).Inc()
	}

	if r.mirror != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := r.mirror.ProduceAsync(&producer.Message{
			Topic: r.topic,
			Key:   []byte(event.ActorHash),
			Value: payload,
		}); err != nil {
			r.logger.Warn("analytics_mirror_failed", slog.Any("error", err))
		}
	}
}

// Close stops accepting events, drains the buffer, and waits for the
// worker to finish.
func (r *Recorder) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.events)
	r.wg.Wait()
}
