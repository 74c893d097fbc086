package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// distribute spreads a fluid amount over the members of an assignment and
// returns the fill percentage (0-100) of every member. Tiers fill strictly
// in ascending priority order: a tier is only fed once every tier below it
// is full, and a tier above a partially filled one is always at 0%.
//
// Every member receives an explicit value on every call, so stale
// percentages from a previous distribution are always overwritten.
func distribute(total, capacityPerTank int, a *Assignment) map[cube.Pos]int {
	levels := make(map[cube.Pos]int, a.Len())
	if a.Len() == 0 {
		return levels
	}

	totalCapacity := a.Len() * capacityPerTank
	if total <= 0 || total >= totalCapacity {
		// Empty or full: no per-tier arithmetic needed.
		percentage := 0
		if total > 0 {
			percentage = 100
		}
		for _, pos := range a.Members() {
			levels[pos] = percentage
		}
		return levels
	}

	remaining := total
	for _, priority := range a.Priorities() {
		bucket := a.Bucket(priority)
		capacity := len(bucket) * capacityPerTank

		percentage := clamp(ceilDiv(remaining*100, capacity), 0, 100)
		for _, pos := range bucket {
			levels[pos] = percentage
		}
		remaining -= min(capacity, remaining)
	}
	return levels
}

// ceilDiv returns the ceiling of a/b for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
