package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_NilTrace(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalDecisions)
	assert.NotNil(t, s.TierCounts)
	assert.NotNil(t, s.VMDistribution)
}

func TestSummarize_CountsPerVMAndTier(t *testing.T) {
	// GIVEN five decisions across three VMs
	pt := NewPlacementTrace(TraceLevelDecisions, "run", "round-robin")
	for i, vm := range []int{0, 1, 2, 0, 1} {
		tier := "Small"
		if vm == 2 {
			tier = "Large"
		}
		pt.RecordPlacement(PlacementRecord{TaskID: i, VMID: vm, VMTier: tier})
	}

	// WHEN summarized
	s := Summarize(pt)

	// THEN counts reflect the spread
	assert.Equal(t, 5, s.TotalDecisions)
	assert.Equal(t, 3, s.UniqueVMs)
	assert.Equal(t, 2, s.MaxPerVM)
	assert.Equal(t, 1, s.MinPerVM)
	assert.Equal(t, map[string]int{"Small": 4, "Large": 1}, s.TierCounts)
}

func TestPlacementTrace_Enabled(t *testing.T) {
	var nilTrace *PlacementTrace
	assert.False(t, nilTrace.Enabled())
	assert.False(t, NewPlacementTrace(TraceLevelNone, "r", "p").Enabled())
	assert.False(t, NewPlacementTrace("", "r", "p").Enabled())
	assert.True(t, NewPlacementTrace(TraceLevelDecisions, "r", "p").Enabled())

	assert.True(t, IsValidTraceLevel(""))
	assert.True(t, IsValidTraceLevel("decisions"))
	assert.False(t, IsValidTraceLevel("verbose"))
}

func TestPlacementTrace_WriteJSON(t *testing.T) {
	pt := NewPlacementTrace(TraceLevelDecisions, "run-7", "classification")
	pt.RecordPlacement(PlacementRecord{TaskID: 3, Length: 7500, VMID: 12, VMTier: "Medium", Reason: "classification[Medium 2/50]"})
	path := filepath.Join(t.TempDir(), "trace.json")

	require.NoError(t, pt.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got PlacementTrace
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *pt, got)
}
