package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every placement decision.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// PlacementTrace collects placement decision records for one run.
type PlacementTrace struct {
	Level      TraceLevel        `json:"level"`
	RunID      string            `json:"run_id"`
	Policy     string            `json:"policy"`
	Placements []PlacementRecord `json:"placements"`
}

// NewPlacementTrace creates a PlacementTrace ready for recording.
func NewPlacementTrace(level TraceLevel, runID, policy string) *PlacementTrace {
	return &PlacementTrace{
		Level:      level,
		RunID:      runID,
		Policy:     policy,
		Placements: make([]PlacementRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (pt *PlacementTrace) Enabled() bool {
	return pt != nil && pt.Level == TraceLevelDecisions
}

// RecordPlacement appends a placement decision record.
func (pt *PlacementTrace) RecordPlacement(record PlacementRecord) {
	pt.Placements = append(pt.Placements, record)
}

// WriteJSON writes the trace as indented JSON.
func (pt *PlacementTrace) WriteJSON(path string) error {
	data, err := json.MarshalIndent(pt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling placement trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing placement trace: %w", err)
	}
	return nil
}
