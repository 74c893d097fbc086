// Package fluidtanks implements multiblock fluid tanks for Dragonfly
// servers. A valve cell discovers the tank cells connected to it, treats
// them as one storage volume and keeps the individual cells filled from
// the bottom up.
//
// The package is deliberately world-agnostic: the algorithms work on
// cube.Pos grids through a predicate and a set of hooks, and the host owns
// all block, chunk and rendering concerns. A Dragonfly server wires it up
// with TxOracle and a StructureHooks implementation.
//
// # Quick Start
//
// Create a valve for the block entity position and form the structure
// whenever a neighbouring tank cell is placed or broken:
//
//	valve := fluidtanks.NewValve(pos)
//	valve.Form(fluidtanks.TxOracle(tx, tankBlock, claimed), hooks)
//
// Move fluid through the valve; the cells' fill levels are recomputed and
// pushed through the hooks on every change:
//
//	accepted := valve.Fill(fluidtanks.FluidStack{Fluid: "minecraft:water", Amount: 3000}, hooks)
//	drained := valve.Drain(1000, hooks)
//
// Persist the valve with the host's block entity data:
//
//	data := valve.EncodeNBT()
//	valve.DecodeNBT(data)
//
// # Fill Order
//
// Cells fill strictly from the bottom up. Every member receives an integer
// priority; members at the same height that can reach one another without
// climbing above their own level share a priority tier, and a tier only
// starts filling once every tier below it is full. Draining works in
// reverse. The priorities are recomputed by Form and persist with the
// valve, so a server restart never changes the fill order of an unchanged
// structure.
package fluidtanks

// Version is the fluidtanks version.
const Version = "1.0.0"
