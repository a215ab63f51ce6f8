package sim

import (
	"fmt"
	"strings"
)

// Tier is a VM size class and, under classification placement, the bucket of
// task lengths eligible for it.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
)

// AllTiers lists tiers in VM pool construction order.
var AllTiers = []Tier{TierSmall, TierMedium, TierLarge}

// String returns the task-size label used in reports: Small, Medium, Large.
func (t Tier) String() string {
	switch t {
	case TierSmall:
		return "Small"
	case TierMedium:
		return "Medium"
	case TierLarge:
		return "Large"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// ParseTier accepts the report labels case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return TierSmall, nil
	case "medium":
		return TierMedium, nil
	case "large":
		return TierLarge, nil
	}
	return 0, fmt.Errorf("unknown tier %q; valid: small, medium, large", s)
}

// MarshalText implements encoding.TextMarshaler so tiers serialize by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Thresholds are the two task length breakpoints separating the tiers.
type Thresholds struct {
	Small  int64 `yaml:"small" json:"small"`
	Medium int64 `yaml:"medium" json:"medium"`
}

// Classify maps a task length to its tier: length <= Small is Small,
// length <= Medium is Medium, anything longer is Large.
// Pure; generation, placement and reporting all call it.
func (th Thresholds) Classify(length int64) Tier {
	switch {
	case length <= th.Small:
		return TierSmall
	case length <= th.Medium:
		return TierMedium
	default:
		return TierLarge
	}
}

// Validate checks Small < Medium with both positive.
func (th Thresholds) Validate(prefix string) error {
	if th.Small <= 0 {
		return configErr(prefix+".small", th.Small, "must be positive")
	}
	if th.Small >= th.Medium {
		return configErr(prefix+".medium", th.Medium,
			fmt.Sprintf("must be greater than small threshold %d", th.Small))
	}
	return nil
}
