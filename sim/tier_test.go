package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholds_Classify_KnownLengths(t *testing.T) {
	// GIVEN thresholds 7000/15000
	th := Thresholds{Small: 7000, Medium: 15000}
	lengths := []int64{100, 7500, 20000}
	want := []Tier{TierSmall, TierMedium, TierLarge}

	// WHEN classified forwards, backwards and repeatedly
	// THEN the result never depends on order or repetition
	for round := 0; round < 3; round++ {
		for i := range lengths {
			assert.Equal(t, want[i], th.Classify(lengths[i]), "forward round %d, length %d", round, lengths[i])
		}
		for i := len(lengths) - 1; i >= 0; i-- {
			assert.Equal(t, want[i], th.Classify(lengths[i]), "reverse round %d, length %d", round, lengths[i])
		}
	}
}

func TestThresholds_Classify_BoundariesInclusive(t *testing.T) {
	th := Thresholds{Small: 7000, Medium: 15000}
	assert.Equal(t, TierSmall, th.Classify(0))
	assert.Equal(t, TierSmall, th.Classify(7000))
	assert.Equal(t, TierMedium, th.Classify(7001))
	assert.Equal(t, TierMedium, th.Classify(15000))
	assert.Equal(t, TierLarge, th.Classify(15001))
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name  string
		th    Thresholds
		field string
	}{
		{"zero small", Thresholds{Small: 0, Medium: 10}, "w.small"},
		{"equal", Thresholds{Small: 10, Medium: 10}, "w.medium"},
		{"inverted", Thresholds{Small: 20, Medium: 10}, "w.medium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.th.Validate("w")
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigurationError, got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
	assert.NoError(t, Thresholds{Small: 7000, Medium: 15000}.Validate("w"))
}

func TestTier_StringAndParse(t *testing.T) {
	for _, tier := range AllTiers {
		parsed, err := ParseTier(tier.String())
		require.NoError(t, err)
		assert.Equal(t, tier, parsed)
	}
	_, err := ParseTier("huge")
	assert.Error(t, err)
}
