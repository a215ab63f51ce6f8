package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Host is a physical machine inside exactly one Datacenter.
type Host struct {
	ID        int             `json:"id"`
	Profile   ResourceProfile `json:"profile"`
	StorageMB int64           `json:"storage_mb"`
}

// CostModel holds the datacenter pricing characteristics.
type CostModel struct {
	TimezoneOffset float64 `yaml:"timezone_offset" json:"timezone_offset"`
	CostPerSecond  float64 `yaml:"cost_per_second" json:"cost_per_second"`
	CostPerMem     float64 `yaml:"cost_per_mem" json:"cost_per_mem"`
	CostPerStorage float64 `yaml:"cost_per_storage" json:"cost_per_storage"`
	CostPerBw      float64 `yaml:"cost_per_bw" json:"cost_per_bw"`
}

// Datacenter is created once per run and never modified afterwards.
type Datacenter struct {
	Name          string              `json:"name"`
	Arch          string              `json:"arch"`
	OS            string              `json:"os"`
	VMM           string              `json:"vmm"`
	Hosts         []Host              `json:"hosts"`
	Cost          CostModel           `json:"cost"`
	HostSelection HostSelectionPolicy `json:"host_selection"`
}

// VirtualMachine belongs to one broker. IDs are unique across the whole pool.
type VirtualMachine struct {
	ID            int             `json:"id"`
	Tier          Tier            `json:"tier"`
	Profile       ResourceProfile `json:"profile"`
	OwnerBrokerID int             `json:"owner_broker_id"`
	VMM           string          `json:"vmm"`
}

// HostIDCounter hands out host ids. One counter is threaded through every
// BuildDatacenters call of a run so hosts are numbered consecutively across
// datacenters, matching the engine's host addressing.
type HostIDCounter struct {
	next int
}

// NewHostIDCounter starts numbering at start.
func NewHostIDCounter(start int) *HostIDCounter {
	return &HostIDCounter{next: start}
}

// Next returns the next id and advances the counter.
func (c *HostIDCounter) Next() int {
	id := c.next
	c.next++
	return id
}

// Peek returns the id Next would return without advancing.
func (c *HostIDCounter) Peek() int {
	return c.next
}

// Datacenter characteristic defaults.
const (
	DefaultArch = "x86"
	DefaultOS   = "Linux"
	DefaultVMM  = "Xen"
)

// BuildDatacenters creates cfg.Datacenters datacenters of cfg.HostsPerDatacenter
// identical hosts each. Host ids come from counter.
func BuildDatacenters(counter *HostIDCounter, cfg TopologyConfig) ([]Datacenter, error) {
	if counter == nil {
		return nil, fmt.Errorf("BuildDatacenters: nil host id counter")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := ParseHostSelectionPolicy(string(cfg.HostSelection))
	prefix := cfg.NamePrefix
	if prefix == "" {
		prefix = "Datacenter_"
	}

	datacenters := make([]Datacenter, 0, cfg.Datacenters)
	for dc := 0; dc < cfg.Datacenters; dc++ {
		hosts := make([]Host, 0, cfg.HostsPerDatacenter)
		for h := 0; h < cfg.HostsPerDatacenter; h++ {
			hosts = append(hosts, Host{
				ID:        counter.Next(),
				Profile:   cfg.Host.Profile,
				StorageMB: cfg.Host.StorageMB,
			})
		}
		datacenters = append(datacenters, Datacenter{
			Name:          fmt.Sprintf("%s%d", prefix, dc),
			Arch:          DefaultArch,
			OS:            DefaultOS,
			VMM:           DefaultVMM,
			Hosts:         hosts,
			Cost:          cfg.Cost,
			HostSelection: policy,
		})
		logrus.Debugf("built %s with hosts %d..%d", datacenters[dc].Name, hosts[0].ID, hosts[len(hosts)-1].ID)
	}
	return datacenters, nil
}

// BuildVMPool creates the VM pool tier by tier (Small, Medium, Large).
// IDs are consecutive from 0; each tier starts right after the highest id of
// the tiers before it. Tiers with a zero count are skipped and their profile
// is not checked.
func BuildVMPool(counts TierCounts, profiles TierProfiles, brokerID int) ([]VirtualMachine, error) {
	for _, t := range AllTiers {
		n := counts.For(t)
		field := fmt.Sprintf("vms.counts.%s", tierKey(t))
		if n < 0 {
			return nil, configErr(field, n, "must be non-negative")
		}
		if n > 0 {
			if err := profiles.For(t).Validate(fmt.Sprintf("vms.profiles.%s", tierKey(t))); err != nil {
				return nil, err
			}
		}
	}
	if counts.Total() == 0 {
		return nil, configErr("vms.counts", counts, "at least one VM is required")
	}

	pool := make([]VirtualMachine, 0, counts.Total())
	nextID := 0
	for _, t := range AllTiers {
		for i := 0; i < counts.For(t); i++ {
			pool = append(pool, VirtualMachine{
				ID:            nextID,
				Tier:          t,
				Profile:       profiles.For(t),
				OwnerBrokerID: brokerID,
				VMM:           DefaultVMM,
			})
			nextID++
		}
	}
	return pool, nil
}

// VMsByTier partitions a pool, preserving pool order inside each tier.
func VMsByTier(pool []VirtualMachine) map[Tier][]VirtualMachine {
	byTier := make(map[Tier][]VirtualMachine, len(AllTiers))
	for _, vm := range pool {
		byTier[vm.Tier] = append(byTier[vm.Tier], vm)
	}
	return byTier
}

// HostCount sums hosts across datacenters.
func HostCount(datacenters []Datacenter) int {
	n := 0
	for _, dc := range datacenters {
		n += len(dc.Hosts)
	}
	return n
}

func tierKey(t Tier) string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	}
	return fmt.Sprintf("tier%d", int(t))
}
