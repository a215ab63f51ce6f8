package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiered-sim/tiered-sim/sim"
)

var exportThresholds = sim.Thresholds{Small: 7000, Medium: 15000}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	records := staggeredRecords(2)
	records = append(records, sim.CompletedTaskRecord{TaskID: 9, Status: sim.StatusFailed})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records, DefaultFormulas(), ByLength(exportThresholds)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one row per SUCCESS record")
	assert.Equal(t, strings.Join(resultColumns, ","), lines[0])
	assert.Equal(t, "1,SUCCESS,2,1,10.00,1.00,11.00,Medium,1.00,11.00,10.00,11.00", lines[2])
}

func TestWriteCSV_NilClassifier(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteCSV(&buf, staggeredRecords(1), DefaultFormulas(), nil))
}

func TestExportCSV_RoundTrip(t *testing.T) {
	// GIVEN an exported run
	path := filepath.Join(t.TempDir(), "results.csv")
	records := staggeredRecords(50)
	records[0].Length = 100
	require.NoError(t, ExportCSV(path, records, DefaultFormulas(), ByLength(exportThresholds)))

	// WHEN read back
	loaded, tiers, err := LoadResultsCSV(path)
	require.NoError(t, err)
	require.Len(t, loaded, 50)

	// THEN the recomputed report matches the original
	want, err := Compute(records, DefaultFormulas(), nil)
	require.NoError(t, err)
	got, err := Compute(loaded, DefaultFormulas(), ByTaskID(tiers, sim.TierSmall))
	require.NoError(t, err)
	assert.InDelta(t, want.TotalWaitTime, got.TotalWaitTime, 1e-6)
	assert.InDelta(t, want.Makespan, got.Makespan, 1e-6)
	assert.InDelta(t, want.AverageTurnaroundTime, got.AverageTurnaroundTime, 1e-6)
	assert.Equal(t, sim.TierSmall, tiers[0])
	assert.Equal(t, sim.TierMedium, tiers[1])
	assert.Equal(t, 49, got.Tiers[sim.TierMedium].Count)
}

func TestReadCSV_RejectsBadInput(t *testing.T) {
	header := strings.Join(resultColumns, ",")
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"wrong header", "a,b,c\n"},
		{"renamed column", strings.Replace(header, "Wait Time", "Delay", 1) + "\n"},
		{"bad number", header + "\nx,SUCCESS,0,0,1,1,1,Small,0,0,0,0\n"},
		{"bad size", header + "\n0,SUCCESS,0,0,1,1,1,Huge,0,0,0,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestPrint(t *testing.T) {
	r, err := Compute(staggeredRecords(50), DefaultFormulas(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	Print(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "No of cloudlets      : 50")
	assert.Contains(t, out, "Wait Time            : 1225.00 sec")
	assert.Contains(t, out, "Makespan             : 59.00 sec")
	assert.NotContains(t, out, "NaN")

	buf.Reset()
	Print(&buf, nil)
	assert.Contains(t, buf.String(), "no data")
	assert.NotContains(t, buf.String(), "NaN")
}

func TestNewRegistry_Gauges(t *testing.T) {
	r, err := Compute(staggeredRecords(50), DefaultFormulas(), ByLength(exportThresholds))
	require.NoError(t, err)

	reg, err := NewRegistry(r, prometheus.Labels{"run_id": "abc"})
	require.NoError(t, err)
	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		if len(mf.GetMetric()) == 1 {
			values[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 50.0, values["tieredsim_completed_tasks"])
	assert.Equal(t, 1225.0, values["tieredsim_wait_time_seconds_total"])
	assert.Equal(t, 59.0, values["tieredsim_makespan_seconds"])
}

func TestWriteTextfile(t *testing.T) {
	r, err := Compute(staggeredRecords(5), DefaultFormulas(), nil)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "run.prom")

	require.NoError(t, WriteTextfile(path, r, prometheus.Labels{"placement": "round-robin"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tieredsim_completed_tasks{placement="round-robin"} 5`)

	assert.ErrorIs(t, WriteTextfile(path, nil, nil), sim.ErrEmptyResult)
}
