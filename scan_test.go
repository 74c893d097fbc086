package fluidtanks

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/stretchr/testify/require"
)

func TestDiscoverMembersFindsConnectedSet(t *testing.T) {
	origin := cube.Pos{0, 0, 0}
	tanks := []cube.Pos{
		{1, 0, 0}, {2, 0, 0}, {2, 1, 0}, {2, 2, 0},
		{0, 0, 1}, {0, 0, 2}, {0, 1, 0},
	}

	members := discoverMembers(origin, candidates(tanks...))

	want := memberSet(append(tanks, origin)...)
	require.Equal(t, want, members)
}

func TestDiscoverMembersExcludesUnreachable(t *testing.T) {
	origin := cube.Pos{0, 0, 0}
	reachable := cube.Pos{1, 0, 0}
	// Separated from the rest by a one-cell gap.
	island := []cube.Pos{{3, 0, 0}, {4, 0, 0}}

	members := discoverMembers(origin, candidates(append(island, reachable)...))

	require.Equal(t, memberSet(origin, reachable), members)
}

func TestDiscoverMembersDiagonalIsNotAdjacent(t *testing.T) {
	origin := cube.Pos{0, 0, 0}
	members := discoverMembers(origin, candidates(cube.Pos{1, 1, 0}, cube.Pos{1, 0, 1}))

	require.Equal(t, memberSet(origin), members)
}

func TestDiscoverMembersAlwaysIncludesOrigin(t *testing.T) {
	origin := cube.Pos{7, -3, 12}
	members := discoverMembers(origin, func(cube.Pos) bool { return false })

	require.Equal(t, memberSet(origin), members)
}

func TestDiscoverMembersNilPredicate(t *testing.T) {
	members := discoverMembers(cube.Pos{0, 0, 0}, nil)
	require.Empty(t, members)
}
