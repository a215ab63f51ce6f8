package sim

import "fmt"

// ResourceProfile describes a host or VM tier. Value type; never mutated
// after creation.
type ResourceProfile struct {
	ProcessingUnits int     `yaml:"processing_units" json:"processing_units"`
	ComputeRate     float64 `yaml:"compute_rate" json:"compute_rate"` // per processing unit
	MemoryMB        int     `yaml:"memory_mb" json:"memory_mb"`
	Bandwidth       int     `yaml:"bandwidth" json:"bandwidth"`
}

// TotalComputeRate is ProcessingUnits × ComputeRate.
func (p ResourceProfile) TotalComputeRate() float64 {
	return float64(p.ProcessingUnits) * p.ComputeRate
}

// Validate requires every field to be positive. name prefixes the field path
// in the returned *ConfigurationError.
func (p ResourceProfile) Validate(name string) error {
	if p.ProcessingUnits <= 0 {
		return configErr(name+".processing_units", p.ProcessingUnits, "must be positive")
	}
	if p.ComputeRate <= 0 {
		return configErr(name+".compute_rate", p.ComputeRate, "must be positive")
	}
	if p.MemoryMB <= 0 {
		return configErr(name+".memory_mb", p.MemoryMB, "must be positive")
	}
	if p.Bandwidth <= 0 {
		return configErr(name+".bandwidth", p.Bandwidth, "must be positive")
	}
	return nil
}

// HostSpec is the per-host build template: a resource profile plus storage.
type HostSpec struct {
	Profile   ResourceProfile `yaml:"profile" json:"profile"`
	StorageMB int64           `yaml:"storage_mb" json:"storage_mb"`
}

// Validate checks the profile and storage.
func (h HostSpec) Validate(name string) error {
	if err := h.Profile.Validate(name + ".profile"); err != nil {
		return err
	}
	if h.StorageMB <= 0 {
		return configErr(name+".storage_mb", h.StorageMB, "must be positive")
	}
	return nil
}

// TierCounts is the number of VMs to create per tier.
type TierCounts struct {
	Small  int `yaml:"small" json:"small"`
	Medium int `yaml:"medium" json:"medium"`
	Large  int `yaml:"large" json:"large"`
}

// For returns the count for a tier.
func (c TierCounts) For(t Tier) int {
	switch t {
	case TierSmall:
		return c.Small
	case TierMedium:
		return c.Medium
	case TierLarge:
		return c.Large
	}
	return 0
}

// Total is the VM pool size.
func (c TierCounts) Total() int {
	return c.Small + c.Medium + c.Large
}

// TierProfiles maps each tier to its VM resource profile.
type TierProfiles struct {
	Small  ResourceProfile `yaml:"small" json:"small"`
	Medium ResourceProfile `yaml:"medium" json:"medium"`
	Large  ResourceProfile `yaml:"large" json:"large"`
}

// For returns the profile for a tier.
func (tp TierProfiles) For(t Tier) ResourceProfile {
	switch t {
	case TierSmall:
		return tp.Small
	case TierMedium:
		return tp.Medium
	case TierLarge:
		return tp.Large
	}
	return ResourceProfile{}
}

// Host tier catalog.
var (
	// HostStandard is the 16-unit, 20000-rate host used by the tiered and
	// small-VM runs.
	HostStandard = ResourceProfile{ProcessingUnits: 16, ComputeRate: 20000, MemoryMB: 64 * 1024, Bandwidth: 10000}
	// HostHighRate doubles the per-unit rate for large-VM runs.
	HostHighRate = ResourceProfile{ProcessingUnits: 16, ComputeRate: 40000, MemoryMB: 64 * 1024, Bandwidth: 16000}
)

// DefaultHostStorageMB is 5 TiB expressed in MB.
const DefaultHostStorageMB int64 = 5 * 1024 * 1024

// VM tier catalog.
var (
	VMSmall  = ResourceProfile{ProcessingUnits: 1, ComputeRate: 7000, MemoryMB: 1024, Bandwidth: 1000}
	VMMedium = ResourceProfile{ProcessingUnits: 1, ComputeRate: 20000, MemoryMB: 4 * 1024, Bandwidth: 1000}
	VMLarge  = ResourceProfile{ProcessingUnits: 2, ComputeRate: 40000, MemoryMB: 8 * 1024, Bandwidth: 1000}
)

// DefaultTierProfiles returns the catalog VM profiles keyed by tier.
func DefaultTierProfiles() TierProfiles {
	return TierProfiles{Small: VMSmall, Medium: VMMedium, Large: VMLarge}
}

// DefaultHostSpec returns the standard host with default storage.
func DefaultHostSpec() HostSpec {
	return HostSpec{Profile: HostStandard, StorageMB: DefaultHostStorageMB}
}

// LookupHostProfile resolves a catalog host profile by name.
func LookupHostProfile(name string) (ResourceProfile, error) {
	switch name {
	case "standard":
		return HostStandard, nil
	case "high-rate":
		return HostHighRate, nil
	}
	return ResourceProfile{}, fmt.Errorf("unknown host profile %q; valid: standard, high-rate", name)
}
