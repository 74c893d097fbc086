package fluidtanks

import (
	"sort"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// SearchMode is a bit mask selecting which of the six axis-aligned
// neighbours of a position are enumerated.
type SearchMode uint8

const (
	// SearchSameLevel selects the four horizontal neighbours (±x, ±z).
	SearchSameLevel SearchMode = 1 << iota
	// SearchAbove selects the neighbour directly above (+y).
	SearchAbove
	// SearchBelow selects the neighbour directly below (-y).
	SearchBelow

	// SearchAll selects the full 6-connected neighbourhood.
	SearchAll = SearchSameLevel | SearchAbove | SearchBelow
)

// Has returns true if all bits set in flag are also set in m.
func (m SearchMode) Has(flag SearchMode) bool {
	return m&flag == flag
}

// adjacent returns the neighbours of pos selected by mode. The order is
// fixed (east, west, south, north, up, down) so that traversals built on
// top of it are deterministic.
func adjacent(pos cube.Pos, mode SearchMode) []cube.Pos {
	adj := make([]cube.Pos, 0, 6)
	if mode.Has(SearchSameLevel) {
		adj = append(adj,
			pos.Side(cube.FaceEast),
			pos.Side(cube.FaceWest),
			pos.Side(cube.FaceSouth),
			pos.Side(cube.FaceNorth),
		)
	}
	if mode.Has(SearchAbove) {
		adj = append(adj, pos.Side(cube.FaceUp))
	}
	if mode.Has(SearchBelow) {
		adj = append(adj, pos.Side(cube.FaceDown))
	}
	return adj
}

// posLess orders positions by height first, then x, then z. Height-major
// ordering reads naturally for fill logic and gives every sorted traversal
// in the package the same deterministic order.
func posLess(a, b cube.Pos) bool {
	if a.Y() != b.Y() {
		return a.Y() < b.Y()
	}
	if a.X() != b.X() {
		return a.X() < b.X()
	}
	return a.Z() < b.Z()
}

// sortPositions sorts a slice of positions in place using posLess.
func sortPositions(positions []cube.Pos) {
	sort.Slice(positions, func(i, j int) bool {
		return posLess(positions[i], positions[j])
	})
}
