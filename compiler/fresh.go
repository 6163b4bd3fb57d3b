package compiler

import (
	"fmt"
	"strings"
)

// FreshNamer generates names unused in a target namespace by linear
// probing with counter suffixes. Counters are kept per base name so
// large generated problems do not rescan the namespace from zero.
type FreshNamer struct {
	used     func(string) bool
	given    map[string]bool
	counters map[string]int
}

// NewFreshNamer wraps a name-existence predicate, typically
// (*model.Problem).HasName of the problem under construction.
func NewFreshNamer(used func(string) bool) *FreshNamer {
	return &FreshNamer{
		used:     used,
		given:    map[string]bool{},
		counters: map[string]int{},
	}
}

func (n *FreshNamer) taken(name string) bool {
	return n.given[name] || n.used(name)
}

// Fresh joins the parts with underscores and disambiguates with a
// numeric suffix until the candidate is unused. Every returned name is
// reserved so later calls cannot collide with it.
func (n *FreshNamer) Fresh(parts ...string) string {
	base := strings.Join(parts, "_")
	name := base
	for n.taken(name) {
		n.counters[base]++
		name = fmt.Sprintf("%s_%d", base, n.counters[base])
	}
	n.given[name] = true
	return name
}
