package fluidtanks

import (
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/require"
)

func TestAssignmentSetMovesBetweenBuckets(t *testing.T) {
	a := NewAssignment()
	pos := cube.Pos{1, 2, 3}

	a.set(pos, 2)
	a.set(pos, 0)

	require.Equal(t, 1, a.Len())
	require.Empty(t, a.Bucket(2))
	require.Equal(t, []cube.Pos{pos}, a.Bucket(0))

	priority, ok := a.Priority(pos)
	require.True(t, ok)
	require.Zero(t, priority)
	require.Equal(t, []int{0}, a.Priorities())
}

func TestAssignmentSetIgnoresNegativePriority(t *testing.T) {
	a := NewAssignment()
	a.set(cube.Pos{0, 0, 0}, -1)
	require.Zero(t, a.Len())
}

func TestAssignmentMembersOrderedByPriority(t *testing.T) {
	a := NewAssignment()
	a.set(cube.Pos{0, 2, 0}, 2)
	a.set(cube.Pos{0, 0, 0}, 0)
	a.set(cube.Pos{1, 0, 0}, 0)
	a.set(cube.Pos{0, 1, 0}, 1)

	require.Equal(t, []cube.Pos{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 2, 0}}, a.Members())
}

func TestAssignmentEncodeDecodeRoundTrip(t *testing.T) {
	a := NewAssignment()
	a.set(cube.Pos{0, 0, 0}, 0)
	a.set(cube.Pos{1, 0, 0}, 0)
	a.set(cube.Pos{0, 1, 0}, 1)
	a.set(cube.Pos{-4, 7, 12}, 3)

	decoded := decodeAssignmentNBT(a.encodeNBT())

	require.Equal(t, a.Priorities(), decoded.Priorities())
	for _, priority := range a.Priorities() {
		require.Equal(t, a.Bucket(priority), decoded.Bucket(priority))
	}
}

func TestAssignmentSurvivesNBTSerialization(t *testing.T) {
	a := NewAssignment()
	a.set(cube.Pos{0, 0, 0}, 0)
	a.set(cube.Pos{0, 1, 0}, 1)
	a.set(cube.Pos{0, 2, 0}, 2)

	data, err := nbt.MarshalEncoding(a.encodeNBT(), nbt.LittleEndian)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, nbt.UnmarshalEncoding(data, &raw, nbt.LittleEndian))

	decoded := decodeAssignmentNBT(raw)
	require.Equal(t, a.Priorities(), decoded.Priorities())
	for _, priority := range a.Priorities() {
		require.Equal(t, a.Bucket(priority), decoded.Bucket(priority))
	}
}

func TestDecodeAssignmentSkipsMalformedEntries(t *testing.T) {
	decoded := decodeAssignmentNBT(map[string]any{
		"0": []int32{0, 1, 2, 3},
		"1": "not a tuple",
		"2": []int32{1, 2}, // wrong length
	})

	// Malformed entries are skipped without aborting the scan.
	require.Equal(t, 1, decoded.Len())
	require.Equal(t, []cube.Pos{{1, 2, 3}}, decoded.Bucket(0))
}

func TestAssignmentClear(t *testing.T) {
	a := NewAssignment()
	a.set(cube.Pos{0, 0, 0}, 0)
	a.Clear()

	require.Zero(t, a.Len())
	require.Empty(t, a.Priorities())
}
