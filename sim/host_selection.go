package sim

import "fmt"

// HostSelectionPolicy names the strategy the engine uses to pick a host for
// each VM. It is a parameter of the submission and never executes here; its
// only visible effect is whether downstream allocation is reproducible.
type HostSelectionPolicy string

const (
	// HostSelectionFirstFit picks the lowest-id unassigned host.
	// Deterministic, so runs using it are reproducible.
	HostSelectionFirstFit HostSelectionPolicy = "first-fit"
	// HostSelectionRandom picks any unassigned host at random.
	HostSelectionRandom HostSelectionPolicy = "random"
)

// ValidHostSelectionPolicies is the set of recognized host selection names.
var ValidHostSelectionPolicies = map[HostSelectionPolicy]bool{
	HostSelectionFirstFit: true,
	HostSelectionRandom:   true,
}

// ParseHostSelectionPolicy resolves a policy name; "" means first-fit.
func ParseHostSelectionPolicy(name string) (HostSelectionPolicy, error) {
	if name == "" {
		return HostSelectionFirstFit, nil
	}
	p := HostSelectionPolicy(name)
	if !ValidHostSelectionPolicies[p] {
		return "", fmt.Errorf("unknown host selection policy %q; valid: first-fit, random", name)
	}
	return p, nil
}

// Reproducible reports whether engine-side allocation under this policy is
// deterministic.
func (p HostSelectionPolicy) Reproducible() bool {
	return p == HostSelectionFirstFit
}
