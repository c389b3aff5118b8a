package helper

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// SpySpanContext implements journal.SpanContext for testing.
type SpySpanContext struct {
	name       string
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

// SetStatus implements journal.SpanContext.
func (c *SpySpanContext) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// AddAttribute implements journal.SpanContext.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attributes[key] = value
}

// Name returns the span name.
func (c *SpySpanContext) Name() string {
	return c.name
}

// Status returns the status the span was finished with.
func (c *SpySpanContext) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status
}

// Attributes returns a copy of all attributes.
func (c *SpySpanContext) Attributes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return maps.Clone(c.attributes)
}

// TracingCollectorSpy captures the spans started and finished through journal.TracingCollector.
type TracingCollectorSpy struct {
	spans       []*SpySpanContext
	mu          sync.Mutex
	recordCalls bool
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy(recordCalls bool) *TracingCollectorSpy {
	return &TracingCollectorSpy{recordCalls: recordCalls}
}

// StartSpan implements journal.TracingCollector.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, journal.SpanContext) {
	span := &SpySpanContext{name: name, attributes: maps.Clone(attrs)}
	if span.attributes == nil {
		span.attributes = make(map[string]string)
	}

	if s.recordCalls {
		s.mu.Lock()
		s.spans = append(s.spans, span)
		s.mu.Unlock()
	}

	return ctx, span
}

// FinishSpan implements journal.TracingCollector.
func (s *TracingCollectorSpy) FinishSpan(spanCtx journal.SpanContext, status string, attrs map[string]string) {
	spySpan, ok := spanCtx.(*SpySpanContext)
	if !ok {
		return
	}

	spySpan.SetStatus(status)
	for key, value := range attrs {
		spySpan.AddAttribute(key, value)
	}
}

// GetSpanRecordCount returns the number of started spans.
func (s *TracingCollectorSpy) GetSpanRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.spans)
}

// LastSpan returns the most recently started span, or nil.
func (s *TracingCollectorSpy) LastSpan() *SpySpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.spans) == 0 {
		return nil
	}

	return s.spans[len(s.spans)-1]
}
