package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/google/uuid"
)

// TankOracle answers whether a position may join a structure. It is backed
// by live world state owned by the host; the algorithms in this package
// never touch the world themselves.
type TankOracle interface {
	// CandidateTank returns true if the position holds a valid tank cell
	// that is not yet linked to a structure.
	CandidateTank(pos cube.Pos) bool
}

// OracleFunc adapts a plain function to a TankOracle.
type OracleFunc func(pos cube.Pos) bool

// CandidateTank calls f.
func (f OracleFunc) CandidateTank(pos cube.Pos) bool {
	return f(pos)
}

// StructureHooks receives the side effects of forming, disbanding and
// filling a structure. The host applies them to its own representation of
// the tank cells (block appearance, cell state, chunk sync).
//
// All hooks must be idempotent: the valve may deliver the same value more
// than once, including every tick with unchanged fill levels.
type StructureHooks interface {
	// TankLinked informs a tank cell of the valve now controlling it.
	TankLinked(pos cube.Pos, valve cube.Pos, structure uuid.UUID)

	// TankUnlinked informs a tank cell that it no longer belongs to a
	// structure.
	TankUnlinked(pos cube.Pos)

	// CapacityChanged reports the new total capacity of the structure in
	// millibuckets.
	CapacityChanged(capacity int)

	// FillLevelsChanged reports the fill percentage (0-100) of every
	// member. Every member is present in the map on every call.
	FillLevelsChanged(levels map[cube.Pos]int)
}

// NopHooks is a StructureHooks implementation that does nothing. Embed it
// to implement only the hooks a host cares about.
type NopHooks struct{}

// Compile-time check to make sure NopHooks implements StructureHooks.
var _ StructureHooks = NopHooks{}

func (NopHooks) TankLinked(cube.Pos, cube.Pos, uuid.UUID) {}
func (NopHooks) TankUnlinked(cube.Pos)                    {}
func (NopHooks) CapacityChanged(int)                      {}
func (NopHooks) FillLevelsChanged(map[cube.Pos]int)       {}

// TxOracle returns a TankOracle backed by a world transaction. A position
// is a candidate if the block there equals tank and linked, when not nil,
// reports it as unclaimed.
//
// Usage:
//
//	valve.Form(fluidtanks.TxOracle(tx, block.Glass{}, claimed.Has), hooks)
//
// Concurrency:
// The returned oracle is only valid for the duration of the transaction it
// was created with, like any other *world.Tx use.
func TxOracle(tx *world.Tx, tank world.Block, linked func(pos cube.Pos) bool) TankOracle {
	return OracleFunc(func(pos cube.Pos) bool {
		if linked != nil && linked(pos) {
			return false
		}
		return tx.Block(pos) == tank
	})
}
