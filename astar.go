package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// pathfinder measures shortest walking distances between positions of a
// fixed passable set. It is only used to break ties between equally valid
// "way down" cells during prioritization; it plays no part in the fluid
// semantics themselves.
//
// A pathfinder is created per planning run and discarded afterwards.
type pathfinder struct {
	passable map[cube.Pos]struct{}
}

// newPathfinder creates a pathfinder restricted to the given passable set.
func newPathfinder(passable map[cube.Pos]struct{}) *pathfinder {
	return &pathfinder{passable: passable}
}

// Cost returns the length of the shortest 6-connected path from one
// position to another, moving only through the passable set. It returns
// (0, true) when from equals to and (0, false) when no path exists.
// Results are deterministic: equal-cost expansions are ordered by position.
func (p *pathfinder) Cost(from, to cube.Pos) (int, bool) {
	if from == to {
		return 0, true
	}
	if _, ok := p.passable[from]; !ok {
		return 0, false
	}
	if _, ok := p.passable[to]; !ok {
		return 0, false
	}

	open := &nodeHeap{}
	open.push(&pathNode{pos: from, estimate: heuristic(from, to)})

	gScore := map[cube.Pos]int{from: 0}
	closed := make(map[cube.Pos]struct{})

	for open.len() > 0 {
		current := open.pop()
		if current.pos == to {
			return current.cost, true
		}
		if _, ok := closed[current.pos]; ok {
			continue
		}
		closed[current.pos] = struct{}{}

		for _, adj := range adjacent(current.pos, SearchAll) {
			if _, ok := p.passable[adj]; !ok {
				continue
			}
			if _, ok := closed[adj]; ok {
				continue
			}
			cost := current.cost + 1
			if known, ok := gScore[adj]; ok && known <= cost {
				continue
			}
			gScore[adj] = cost
			open.push(&pathNode{
				pos:      adj,
				cost:     cost,
				estimate: float64(cost) + heuristic(adj, to),
			})
		}
	}
	return 0, false
}

// heuristic is the straight-line distance between two positions. Euclidean
// distance never exceeds the walking distance on a unit grid, keeping the
// search admissible.
func heuristic(from, to cube.Pos) float64 {
	delta := mgl64.Vec3{
		float64(to.X() - from.X()),
		float64(to.Y() - from.Y()),
		float64(to.Z() - from.Z()),
	}
	return delta.Len()
}

// pathNode is a single entry on the open list.
type pathNode struct {
	pos cube.Pos

	// cost is the exact cost of the best known path to pos.
	cost int

	// estimate is cost plus the heuristic remainder to the destination.
	estimate float64
}

// nodeHeap is a binary min-heap of path nodes ordered by estimate, with
// position order as the tie breaker so that runs are reproducible.
type nodeHeap struct {
	nodes []*pathNode
}

func (h *nodeHeap) len() int {
	return len(h.nodes)
}

func (h *nodeHeap) less(i, j int) bool {
	if h.nodes[i].estimate != h.nodes[j].estimate {
		return h.nodes[i].estimate < h.nodes[j].estimate
	}
	return posLess(h.nodes[i].pos, h.nodes[j].pos)
}

func (h *nodeHeap) push(n *pathNode) {
	h.nodes = append(h.nodes, n)
	h.up(len(h.nodes) - 1)
}

func (h *nodeHeap) pop() *pathNode {
	n := h.nodes[0]
	last := len(h.nodes) - 1
	h.nodes[0] = h.nodes[last]
	h.nodes[last] = nil
	h.nodes = h.nodes[:last]
	if last > 0 {
		h.down(0, last)
	}
	return n
}

func (h *nodeHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.nodes[i], h.nodes[parent] = h.nodes[parent], h.nodes[i]
		i = parent
	}
}

func (h *nodeHeap) down(i, n int) {
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, i) {
			break
		}
		h.nodes[i], h.nodes[smallest] = h.nodes[smallest], h.nodes[i]
		i = smallest
	}
}
