package metrics

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-clock/appcomponents"
	"github.com/vcrobe/nojs-clock/runtime"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	family := FilterMetric(families, name)
	require.NotNil(t, family, "metric %s not found", name)

	var total float64
	for _, m := range family.GetMetric() {
		switch {
		case m.GetCounter() != nil:
			total += m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			total += m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			total += float64(m.GetHistogram().GetSampleCount())
		}
	}
	return total
}

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.Rendered(true, time.Millisecond)
	rec.Rendered(false, 2*time.Millisecond)
	rec.Rendered(false, 3*time.Millisecond)
	rec.Mounted("main/clock")
	rec.Unmounted("main/clock")
	rec.TimerStarted()
	rec.TimerStarted()
	rec.TimerStopped()
	rec.Ticked()
	rec.SessionOpened()

	require.Equal(t, 3.0, gather(t, reg, "nojsclock_renders_total"))
	require.Equal(t, 3.0, gather(t, reg, "nojsclock_render_duration_ms"))
	require.Equal(t, 1.0, gather(t, reg, "nojsclock_component_mounts_total"))
	require.Equal(t, 1.0, gather(t, reg, "nojsclock_component_unmounts_total"))
	require.Equal(t, 1.0, gather(t, reg, "nojsclock_active_timers"))
	require.Equal(t, 1.0, gather(t, reg, "nojsclock_timer_ticks_total"))
	require.Equal(t, 1.0, gather(t, reg, "nojsclock_live_sessions"))

	rec.SessionClosed()
	require.Equal(t, 0.0, gather(t, reg, "nojsclock_live_sessions"))
}

func TestRecorder_ObservesSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	scheduler := runtime.NewScheduler(clockwork.NewFakeClock(), runtime.DiscardDispatcher,
		runtime.WithSchedulerObserver(rec))
	_, err := runtime.Snapshot(appcomponents.NewApp(), scheduler)
	require.NoError(t, err)

	// The clock started its timer on mount and released it on teardown
	require.Equal(t, 0.0, gather(t, reg, "nojsclock_active_timers"))
}
