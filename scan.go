package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// discoverMembers flood fills the 6-connected neighbourhood of origin and
// returns origin plus every position accepted by isCandidate that is
// reachable from it through accepted positions. Each position is visited
// at most once.
//
// The origin is always part of the result regardless of the predicate: the
// valve cell counts as a member of its own structure even though it is not
// a tank cell. A nil predicate yields an empty set.
func discoverMembers(origin cube.Pos, isCandidate func(cube.Pos) bool) map[cube.Pos]struct{} {
	members := make(map[cube.Pos]struct{})
	if isCandidate == nil {
		return members
	}
	members[origin] = struct{}{}

	frontier := []cube.Pos{origin}
	for len(frontier) > 0 {
		var next []cube.Pos
		for _, pos := range frontier {
			for _, adj := range adjacent(pos, SearchAll) {
				if _, ok := members[adj]; ok {
					continue
				}
				if !isCandidate(adj) {
					continue
				}
				members[adj] = struct{}{}
				next = append(next, adj)
			}
		}
		frontier = next
	}
	return members
}
