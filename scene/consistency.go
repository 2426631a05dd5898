package scene

import (
	"math"

	"github.com/runsascoded/shapes/vennerr"
)

// checkConsistency implements spec.md section 4.4 step 7: every shape
// must appear in some region's key, every region's key must enumerate at
// least one shape and its area must be finite, and every component's
// child keys must name existing components. Containment depth is not
// compared between a component and its children.
func checkConsistency(s *Scene) error {
	present := make([]bool, len(s.Shapes))
	for _, c := range s.Components {
		for _, r := range c.Regions {
			for i, ch := range r.Key {
				if ch != '-' {
					present[i] = true
				}
			}
		}
	}
	for i, ok := range present {
		if !ok {
			return vennerr.Scene(vennerr.MissingContainerRegion,
				"shape %d contributes no region to any component", i)
		}
	}

	for _, c := range s.Components {
		for _, r := range c.Regions {
			if !hasAnyMembership(r.Key) {
				return vennerr.Scene(vennerr.MalformedBoundary,
					"region key %q in component %d enumerates no shape", r.Key, c.Key)
			}
			if math.IsNaN(r.Area.V) || math.IsInf(r.Area.V, 0) {
				return vennerr.Scene(vennerr.NumericalInstability,
					"region %q in component %d has non-finite area %v", r.Key, c.Key, r.Area.V)
			}
		}
		for _, childKey := range c.ChildKeys {
			if childKey < 0 || childKey >= len(s.Components) {
				return vennerr.Scene(vennerr.InconsistentDepth,
					"component %d references unknown child component %d", c.Key, childKey)
			}
		}
	}
	return nil
}

func hasAnyMembership(key string) bool {
	for _, c := range key {
		if c != '-' {
			return true
		}
	}
	return false
}
