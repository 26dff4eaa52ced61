package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ship/internal/adapters/telemetry"
	"go.trai.ch/zerr"
)

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	shutdown := telemetry.Setup("ship-test")
	defer func() { _ = shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)

	ctx, span := tracer.Start(context.Background(), "cache.lookup")
	require.NotNil(t, ctx)
	require.NotNil(t, span)

	span.SetAttribute("signature", "abc123")
	span.SetAttribute("hit", false)
	span.SetAttribute("entries", 3)
	span.SetAttribute("size_mb", 1.5)
	span.SetAttribute("anything", struct{ X int }{1})
	span.RecordError(zerr.New("lookup failed"))
	span.RecordError(nil)
	span.End()
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx, span := tracer.Start(context.Background(), "discover")
	assert.NotNil(t, ctx)
	span.SetAttribute("modules", 2)
	span.RecordError(nil)
	span.End()
}
