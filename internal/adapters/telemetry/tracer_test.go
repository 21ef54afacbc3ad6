package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/rsym/internal/adapters/telemetry"
	"go.trai.ch/rsym/internal/core/ports"
)

func newRecordingTracer() (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return telemetry.NewOTelTracerWithProvider(tp, "test"), sr
}

func TestOTelTracer_Start(t *testing.T) {
	tracer, sr := newRecordingTracer()

	ctx, parent := tracer.Start(context.Background(), "build", ports.WithRoot())
	_, child := tracer.Start(ctx, "org.smart.test")
	child.SetAttribute("rsym.cached", true)
	child.SetAttribute("rsym.entries", 3)
	child.SetAttribute("rsym.kind", "library")
	child.SetAttribute("rsym.deps", []string{"a", "b"})
	child.SetAttribute("rsym.other", struct{}{})
	child.End()
	parent.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "org.smart.test", spans[0].Name())
	assert.Equal(t, "build", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.True(t, attrs["rsym.cached"].AsBool())
	assert.Equal(t, int64(3), attrs["rsym.entries"].AsInt64())
	assert.Equal(t, "library", attrs["rsym.kind"].AsString())
	assert.Equal(t, []string{"a", "b"}, attrs["rsym.deps"].AsStringSlice())
	assert.Equal(t, "{}", attrs["rsym.other"].AsString())
}

func TestOTelTracer_WithRootIgnoresParent(t *testing.T) {
	tracer, sr := newRecordingTracer()

	ctx, outer := tracer.Start(context.Background(), "outer")
	_, root := tracer.Start(ctx, "build", ports.WithRoot())
	root.End()
	outer.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.False(t, spans[0].Parent().IsValid())
}

func TestOTelTracer_RecordError(t *testing.T) {
	tracer, sr := newRecordingTracer()

	_, span := tracer.Start(context.Background(), "failing")
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	tracer, sr := newRecordingTracer()

	ctx, span := tracer.Start(context.Background(), "build")
	tracer.EmitPlan(ctx, []string{"base", "app"})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "anything")
	assert.Equal(t, ctx, got)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
	tracer.EmitPlan(ctx, nil)
}
