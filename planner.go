package fluidtanks

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
)

// computePriorities assigns a fill priority to every member of a structure.
// Lower priorities fill first: gravity demands that a member directly below
// another member never fills later than it, and members reachable from one
// another at the same height without climbing above it share a tier.
//
// The origin must be part of the member set; if it is not, the result is
// empty. Identical inputs always produce identical assignments.
func computePriorities(origin cube.Pos, members map[cube.Pos]struct{}) *Assignment {
	assignment := NewAssignment()
	if _, ok := members[origin]; !ok {
		return assignment
	}
	p := &planner{
		members:    members,
		assignment: assignment,
		path:       newPathfinder(members),
	}

	// Priorities are assigned in waves. Each wave settles the cells that
	// must fill at the current priority and schedules the cells directly
	// above them for the next one.
	frontier := []cube.Pos{origin}
	for priority := 0; len(frontier) > 0; priority++ {
		frontier = p.wave(frontier, priority)
	}
	return assignment
}

// planner holds the transient state of one prioritization run. It is
// created per run and discarded afterwards; nothing in it is persisted.
type planner struct {
	members    map[cube.Pos]struct{}
	assignment *Assignment
	path       *pathfinder
}

// wave processes one priority level. Two passes run in a fixed order:
//
//  1. Frontier cells whose segment still has a way down descend through the
//     closest way down until a segment with no lower outlet is reached; that
//     segment receives the current priority.
//  2. Frontier cells whose segment has no way down are grouped with every
//     cell reachable at their height without climbing above it, and the
//     whole group receives the current priority.
//
// Pass 1 must settle before pass 2 runs: a lateral group that contains a
// cell which descended this wave is skipped, its cells will be revisited in
// a later wave.
func (p *planner) wave(frontier []cube.Pos, priority int) []cube.Pos {
	sortPositions(frontier)

	pending := make(map[cube.Pos]int)
	handledSegment := make(map[cube.Pos]struct{})
	handledSource := make(map[cube.Pos]struct{})
	next := make(map[cube.Pos]struct{})
	var deferred []cube.Pos

	for _, current := range frontier {
		if _, ok := handledSegment[current]; ok {
			continue
		}
		lowest, descended := p.closestLowest(current)
		if !descended {
			// No way down anywhere in the segment; defer the whole
			// segment to the lateral grouping pass.
			deferred = append(deferred, current)
			for _, pos := range lowest {
				handledSegment[pos] = struct{}{}
			}
			continue
		}
		handledSource[current] = struct{}{}
		for _, low := range lowest {
			pending[low] = priority
			p.scheduleAbove(low, next)
		}
	}

	for _, current := range deferred {
		if _, ok := pending[current]; ok {
			continue
		}
		group := p.sameHeightGroup(current)
		if intersectsAny(group, handledSource) {
			continue
		}
		for _, pos := range group {
			adjusted := priority
			// A priority only ever improves: a cell settled by an
			// earlier wave keeps its lower value.
			if existing, ok := p.assignment.Priority(pos); ok && existing < adjusted {
				adjusted = existing
			}
			pending[pos] = adjusted
			p.scheduleAbove(pos, next)
		}
	}

	p.commit(pending)
	return setToSorted(next)
}

// closestLowest descends from start towards the lowest cells that still
// lack a priority. Each step computes the same-height segment of the
// current cell, finds the segment cells with an unprioritized member
// directly below (the ways down), keeps only the ways down closest to the
// current cell and continues one level deeper below each of them. The
// cells of the segments that have no way down are returned.
//
// descended reports whether any descent happened. When false, the returned
// cells are exactly start's own segment.
func (p *planner) closestLowest(start cube.Pos) (cells []cube.Pos, descended bool) {
	found := make(map[cube.Pos]struct{})
	current := []cube.Pos{start}

	for len(current) > 0 {
		next := make(map[cube.Pos]struct{})
		for _, pos := range current {
			segment := p.segment(pos)

			var waysDown []cube.Pos
			for _, cell := range segment {
				below := cell.Side(cube.FaceDown)
				if p.isMember(below) && !p.assignment.Has(below) {
					waysDown = append(waysDown, cell)
				}
			}
			if len(waysDown) == 0 {
				for _, cell := range segment {
					found[cell] = struct{}{}
				}
				continue
			}

			descended = true
			closest := waysDown
			if len(waysDown) > 1 {
				// More than one way down: only the closest ones count.
				closest = p.closestTo(waysDown, pos)
			}
			for _, cell := range closest {
				next[cell.Side(cube.FaceDown)] = struct{}{}
			}
		}
		current = setToSorted(next)
	}
	return setToSorted(found), descended
}

// segment returns the members reachable from start via same-height moves
// only, start included, in sorted order.
func (p *planner) segment(start cube.Pos) []cube.Pos {
	found := map[cube.Pos]struct{}{start: {}}
	current := []cube.Pos{start}

	for len(current) > 0 {
		var next []cube.Pos
		for _, pos := range current {
			for _, adj := range p.adjacentMembers(pos, SearchSameLevel) {
				if _, ok := found[adj]; ok {
					continue
				}
				found[adj] = struct{}{}
				next = append(next, adj)
			}
		}
		current = next
	}
	return setToSorted(found)
}

// sameHeightGroup returns every member at start's height that is reachable
// from start without ever climbing above that height. From cells at start's
// height only same-height and downward moves are explored; cells strictly
// below it may be traversed in all six directions.
func (p *planner) sameHeightGroup(start cube.Pos) []cube.Pos {
	found := make(map[cube.Pos]struct{})
	handled := make(map[cube.Pos]struct{})
	current := []cube.Pos{start}

	for len(current) > 0 {
		next := make(map[cube.Pos]struct{})
		for _, pos := range current {
			if _, ok := handled[pos]; ok {
				continue
			}
			handled[pos] = struct{}{}

			if pos.Y() == start.Y() {
				found[pos] = struct{}{}
			}
			mode := SearchSameLevel | SearchBelow
			if pos.Y() < start.Y() {
				mode = SearchAll
			}
			for _, adj := range p.adjacentMembers(pos, mode) {
				if _, ok := handled[adj]; !ok {
					next[adj] = struct{}{}
				}
			}
		}
		current = setToSorted(next)
	}
	return setToSorted(found)
}

// closestTo keeps only the sources with the minimal path distance to dest,
// measured through the full member set. Ties keep all tied sources, in
// position order. Discovery guarantees the member set is connected, so a
// missing path is a defect, not a runtime condition.
func (p *planner) closestTo(sources []cube.Pos, dest cube.Pos) []cube.Pos {
	sortPositions(sources)

	best := -1
	var closest []cube.Pos
	for _, src := range sources {
		cost := 0
		if src != dest {
			c, ok := p.path.Cost(src, dest)
			if !ok {
				panic(fmt.Sprintf("fluidtanks: no path between members %v and %v of one structure", src, dest))
			}
			cost = c
		}
		switch {
		case best == -1 || cost < best:
			best = cost
			closest = append(closest[:0], src)
		case cost == best:
			closest = append(closest, src)
		}
	}
	return closest
}

// commit writes a wave's pending priorities to the assignment in position
// order, keeping bucket contents deterministic across runs. A cell that
// already holds an earlier priority keeps it: priorities only ever improve,
// so a cell can never be pushed to a later tier than one it was already
// settled into.
func (p *planner) commit(pending map[cube.Pos]int) {
	for _, pos := range setKeysSorted(pending) {
		priority := pending[pos]
		if existing, ok := p.assignment.Priority(pos); ok && existing <= priority {
			continue
		}
		p.assignment.set(pos, priority)
	}
}

// scheduleAbove adds the member directly above pos, if any, to the next
// wave's frontier.
func (p *planner) scheduleAbove(pos cube.Pos, next map[cube.Pos]struct{}) {
	if above := pos.Side(cube.FaceUp); p.isMember(above) {
		next[above] = struct{}{}
	}
}

// adjacentMembers returns the neighbours of pos selected by mode that are
// part of the member set.
func (p *planner) adjacentMembers(pos cube.Pos, mode SearchMode) []cube.Pos {
	var found []cube.Pos
	for _, adj := range adjacent(pos, mode) {
		if p.isMember(adj) {
			found = append(found, adj)
		}
	}
	return found
}

func (p *planner) isMember(pos cube.Pos) bool {
	_, ok := p.members[pos]
	return ok
}

// setToSorted materializes a position set as a sorted slice.
func setToSorted(set map[cube.Pos]struct{}) []cube.Pos {
	positions := make([]cube.Pos, 0, len(set))
	for pos := range set {
		positions = append(positions, pos)
	}
	sortPositions(positions)
	return positions
}

// setKeysSorted materializes the keys of a position map as a sorted slice.
func setKeysSorted(m map[cube.Pos]int) []cube.Pos {
	positions := make([]cube.Pos, 0, len(m))
	for pos := range m {
		positions = append(positions, pos)
	}
	sortPositions(positions)
	return positions
}

// intersectsAny returns true if any of the given positions is present in
// the set.
func intersectsAny(positions []cube.Pos, set map[cube.Pos]struct{}) bool {
	for _, pos := range positions {
		if _, ok := set[pos]; ok {
			return true
		}
	}
	return false
}
