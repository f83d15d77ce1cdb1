package metric

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewSystemMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	m, err := New(meter, func() int64 { return 42 })
	require.NoError(t, err)
	require.NotNil(t, m)

	require.NotPanics(t, func() {
		ctx := context.Background()
		m.ActorStarted(ctx)
		m.ActorRestarted(ctx)
		m.ActorTerminated(ctx)
		m.DeadLetter(ctx)
	})
}

func TestNewSystemMetricsWithoutDepthCallback(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	m, err := New(meter, nil)
	require.NoError(t, err)
	require.NotNil(t, m)
}
