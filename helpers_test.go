package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
)

// candidates returns a predicate accepting exactly the given positions.
func candidates(positions ...cube.Pos) func(cube.Pos) bool {
	set := memberSet(positions...)
	return func(pos cube.Pos) bool {
		_, ok := set[pos]
		return ok
	}
}

// memberSet builds a member set from positions.
func memberSet(positions ...cube.Pos) map[cube.Pos]struct{} {
	set := make(map[cube.Pos]struct{}, len(positions))
	for _, pos := range positions {
		set[pos] = struct{}{}
	}
	return set
}

// recorder captures every hook call for inspection.
type recorder struct {
	linked     map[cube.Pos]uuid.UUID
	unlinked   []cube.Pos
	capacities []int
	levels     []map[cube.Pos]int
}

func newRecorder() *recorder {
	return &recorder{linked: make(map[cube.Pos]uuid.UUID)}
}

func (r *recorder) TankLinked(pos cube.Pos, _ cube.Pos, structure uuid.UUID) {
	r.linked[pos] = structure
}

func (r *recorder) TankUnlinked(pos cube.Pos) {
	r.unlinked = append(r.unlinked, pos)
	delete(r.linked, pos)
}

func (r *recorder) CapacityChanged(capacity int) {
	r.capacities = append(r.capacities, capacity)
}

func (r *recorder) FillLevelsChanged(levels map[cube.Pos]int) {
	r.levels = append(r.levels, levels)
}

// lastLevels returns the most recent fill levels delivered, or nil.
func (r *recorder) lastLevels() map[cube.Pos]int {
	if len(r.levels) == 0 {
		return nil
	}
	return r.levels[len(r.levels)-1]
}
