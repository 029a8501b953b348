package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("discover", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(OutcomeSuccess)
	pr.AddChapters(3)
	pr.IncPageCreated("en")
	pr.IncPageCreated("en")
	pr.IncPageCreated("es")
	pr.IncRedirectCreated()

	require.InDelta(t, 2, counterValue(t, reg, "handbook_pages_created_total", "en"), 0)
	require.InDelta(t, 1, counterValue(t, reg, "handbook_pages_created_total", "es"), 0)
	require.InDelta(t, 1, counterValue(t, reg, "handbook_redirects_created_total", ""), 0)
	require.InDelta(t, 3, counterValue(t, reg, "handbook_chapters_discovered_total", ""), 0)
}

// counterValue finds a counter by name and, when label is set, by its
// single label value.
func counterValue(t *testing.T, reg *prom.Registry, name, label string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label == "" || (len(m.GetLabel()) == 1 && m.GetLabel()[0].GetValue() == label) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRedirectCreated()

	path := filepath.Join(t.TempDir(), "handbook.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "handbook_redirects_created_total 1")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("x", time.Second)
	r.ObserveBuildDuration(time.Second)
	r.IncBuildOutcome(OutcomeFailed)
	r.AddChapters(1)
	r.IncPageCreated("en")
	r.IncRedirectCreated()
}
