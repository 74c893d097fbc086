package fluidtanks

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// Assignment maps fill priorities to the member positions that share them.
// Priority 0 is the lowest tier and fills first. The assignment is the
// authoritative description of a formed multiblock structure: the member
// set, the linked tank count and the per-tier capacities are all derived
// from it.
//
// Every member holds exactly one priority at a time. All mutation goes
// through set, which keeps the priority buckets and the reverse index in
// lock-step; neither is ever written independently.
type Assignment struct {
	// buckets maps a priority to its members in insertion order.
	buckets map[int][]cube.Pos

	// index is the reverse mapping from member to priority. It is a pure
	// acceleration structure, always reconstructible from buckets.
	index map[cube.Pos]int
}

// NewAssignment creates an empty assignment.
func NewAssignment() *Assignment {
	return &Assignment{
		buckets: make(map[int][]cube.Pos),
		index:   make(map[cube.Pos]int),
	}
}

// set assigns a priority to a position. If the position already holds a
// priority, it is moved to the new bucket; a position is never present in
// two buckets at once. Negative priorities are ignored.
func (a *Assignment) set(pos cube.Pos, priority int) {
	if priority < 0 {
		return
	}
	if old, ok := a.index[pos]; ok {
		if old == priority {
			return
		}
		a.removeFromBucket(pos, old)
	}
	a.index[pos] = priority
	a.buckets[priority] = append(a.buckets[priority], pos)
}

// removeFromBucket removes pos from the bucket of the given priority,
// preserving the order of the remaining members.
func (a *Assignment) removeFromBucket(pos cube.Pos, priority int) {
	bucket := a.buckets[priority]
	for i, member := range bucket {
		if member == pos {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(a.buckets, priority)
		return
	}
	a.buckets[priority] = bucket
}

// Priority returns the priority held by pos, if any.
func (a *Assignment) Priority(pos cube.Pos) (int, bool) {
	priority, ok := a.index[pos]
	return priority, ok
}

// Has returns true if pos holds a priority.
func (a *Assignment) Has(pos cube.Pos) bool {
	_, ok := a.index[pos]
	return ok
}

// Len returns the total number of members across all buckets.
func (a *Assignment) Len() int {
	return len(a.index)
}

// Priorities returns all priorities in ascending order.
func (a *Assignment) Priorities() []int {
	priorities := make([]int, 0, len(a.buckets))
	for priority := range a.buckets {
		priorities = append(priorities, priority)
	}
	sort.Ints(priorities)
	return priorities
}

// Bucket returns the members holding the given priority in insertion order.
// The returned slice must not be modified.
func (a *Assignment) Bucket(priority int) []cube.Pos {
	return a.buckets[priority]
}

// Members returns all member positions ordered by ascending priority and,
// within a tier, by bucket insertion order.
func (a *Assignment) Members() []cube.Pos {
	members := make([]cube.Pos, 0, len(a.index))
	for _, priority := range a.Priorities() {
		members = append(members, a.buckets[priority]...)
	}
	return members
}

// Clear removes all members from the assignment.
func (a *Assignment) Clear() {
	a.buckets = make(map[int][]cube.Pos)
	a.index = make(map[cube.Pos]int)
}

// encodeNBT encodes the assignment as a compound of (priority, x, y, z)
// tuples keyed "0", "1", ... in ascending priority order. The numbering
// matches the format the structure has always been persisted in.
func (a *Assignment) encodeNBT() map[string]any {
	data := make(map[string]any, len(a.index))
	i := 0
	for _, priority := range a.Priorities() {
		for _, pos := range a.buckets[priority] {
			data[strconv.Itoa(i)] = []int32{int32(priority), int32(pos.X()), int32(pos.Y()), int32(pos.Z())}
			i++
		}
	}
	return data
}

// decodeAssignmentNBT reconstructs an assignment from its encoded form.
// Missing or malformed data yields an empty assignment; a reload must never
// fail outright because of a bad priority section.
func decodeAssignmentNBT(data map[string]any) *Assignment {
	a := NewAssignment()
	for i := 0; ; i++ {
		raw, ok := data[strconv.Itoa(i)]
		if !ok {
			break
		}
		entry, ok := raw.([]int32)
		if !ok || len(entry) != 4 {
			slog.Debug("fluidtanks: ignoring malformed tank priority entry", "index", i)
			continue
		}
		a.set(cube.Pos{int(entry[1]), int(entry[2]), int(entry[3])}, int(entry[0]))
	}
	return a
}
