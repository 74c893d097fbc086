package fluidtanks

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/google/uuid"
)

// BucketVolume is the volume of one bucket in millibuckets.
const BucketVolume = 1000

// DefaultBucketsPerTank is the storage, in buckets, that each tank cell
// contributes when no override is configured.
const DefaultBucketsPerTank = 16

// Valve is the controller of one multiblock tank structure. It discovers
// the tank cells connected to it, assigns their fill priorities, owns the
// fluid held by the structure as a whole and distributes it over the cells
// by tier whenever it changes.
//
// The valve cell itself counts as a tank: a structure of n linked cells
// stores (n+1) tanks worth of fluid.
//
// Concurrency:
// A Valve is owned by the host's simulation loop. All methods must be
// called from that loop; none of them may run concurrently for the same
// valve. No method blocks or suspends.
type Valve struct {
	pos cube.Pos
	id  uuid.UUID

	assignment  *Assignment
	linkedTanks int
	facingSides uint8

	fluid    FluidStack
	capacity int

	bucketsPerTank int
}

// Option configures a Valve.
type Option func(*Valve)

// WithBucketsPerTank overrides the storage each tank cell contributes, in
// buckets. Values below 1 are ignored.
func WithBucketsPerTank(buckets int) Option {
	return func(v *Valve) {
		if buckets >= 1 {
			v.bucketsPerTank = buckets
		}
	}
}

// NewValve creates a valve at the given position. The valve starts without
// a structure; call Form to discover and claim the connected tank cells.
func NewValve(pos cube.Pos, opts ...Option) *Valve {
	v := &Valve{
		pos:            pos,
		assignment:     NewAssignment(),
		bucketsPerTank: DefaultBucketsPerTank,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Pos returns the position of the valve cell.
func (v *Valve) Pos() cube.Pos {
	return v.pos
}

// ID returns the identity of the current structure. It changes on every
// successful Form and is uuid.Nil while no structure exists.
func (v *Valve) ID() uuid.UUID {
	return v.id
}

// Capacity returns the total capacity of the structure in millibuckets.
func (v *Valve) Capacity() int {
	return v.capacity
}

// Fluid returns the fluid held by the structure.
func (v *Valve) Fluid() FluidStack {
	return v.fluid
}

// FluidAmount returns the amount of fluid held, in millibuckets.
func (v *Valve) FluidAmount() int {
	return v.fluid.Amount
}

// LinkedTankCount returns the number of tank cells linked to the valve,
// the valve cell itself excluded.
func (v *Valve) LinkedTankCount() int {
	return v.linkedTanks
}

// HasTanks returns true if at least one tank cell is linked.
func (v *Valve) HasTanks() bool {
	return v.linkedTanks > 0
}

// Members returns the positions of all structure members, the valve cell
// included, ordered by ascending fill priority.
func (v *Valve) Members() []cube.Pos {
	return v.assignment.Members()
}

// FacingTank returns true if the valve face touches a linked tank cell.
func (v *Valve) FacingTank(face cube.Face) bool {
	return v.facingSides&(1<<uint(face)) != 0
}

// Form discovers the tank cells connected to the valve, computes their
// fill priorities and redistributes the held fluid over the new structure.
// Calling Form on an already formed valve reforms it, picking up cells
// added since and releasing cells that are gone.
//
// Every previously linked cell receives TankUnlinked before discovery runs,
// so the oracle sees this valve's own cells as unclaimed candidates. Cells
// of the new structure then receive TankLinked; cells that did not survive
// the reform stay unlinked. Fluid exceeding the new capacity is discarded.
//
// Usage:
//
//	valve.Form(fluidtanks.TxOracle(tx, tankBlock, claimed), hooks)
func (v *Valve) Form(oracle TankOracle, hooks StructureHooks) {
	if hooks == nil {
		hooks = NopHooks{}
	}
	fluid := v.fluid

	// Release the current structure first. Discovery below re-claims the
	// cells that are still connected.
	for _, pos := range v.assignment.Members() {
		if pos != v.pos {
			hooks.TankUnlinked(pos)
		}
	}
	v.reset()

	var isCandidate func(cube.Pos) bool
	if oracle != nil {
		isCandidate = oracle.CandidateTank
	}
	members := discoverMembers(v.pos, isCandidate)
	members[v.pos] = struct{}{}

	v.assignment = computePriorities(v.pos, members)
	v.id = uuid.New()

	for _, pos := range v.assignment.Members() {
		if pos != v.pos {
			hooks.TankLinked(pos, v.pos, v.id)
		}
	}

	v.linkedTanks = max(v.assignment.Len()-1, 0)
	v.capacity = (v.linkedTanks + 1) * v.capacityUnit()
	v.updateFacingSides()

	// Reinsert the held fluid, clamped to the new capacity.
	if fluid.Amount > v.capacity {
		fluid.Amount = v.capacity
	}
	if fluid.Amount <= 0 {
		fluid = FluidStack{}
	}
	v.fluid = fluid

	hooks.CapacityChanged(v.capacity)
	hooks.FillLevelsChanged(v.fillLevels())
}

// Disband releases all linked tank cells and resets the valve. The held
// fluid is discarded and the capacity drops to zero.
func (v *Valve) Disband(hooks StructureHooks) {
	if hooks == nil {
		hooks = NopHooks{}
	}
	for _, pos := range v.assignment.Members() {
		if pos != v.pos {
			hooks.TankUnlinked(pos)
		}
	}
	v.reset()

	hooks.CapacityChanged(0)
	hooks.FillLevelsChanged(map[cube.Pos]int{})
}

// Fill adds fluid to the structure and returns the amount accepted. Fluid
// of a different kind than the one already held is rejected entirely, as
// is any fill on a valve without capacity. Accepted fluid is immediately
// redistributed over the members.
func (v *Valve) Fill(stack FluidStack, hooks StructureHooks) int {
	if stack.Empty() || v.capacity == 0 {
		return 0
	}
	if !v.fluid.Empty() && v.fluid.Fluid != stack.Fluid {
		return 0
	}
	accepted := min(v.capacity-v.fluid.Amount, stack.Amount)
	if accepted <= 0 {
		return 0
	}
	v.fluid.Fluid = stack.Fluid
	v.fluid.Amount += accepted

	if hooks == nil {
		hooks = NopHooks{}
	}
	hooks.FillLevelsChanged(v.fillLevels())
	return accepted
}

// Drain removes up to amount millibuckets from the structure and returns
// the fluid removed. Draining an empty valve returns the empty stack. The
// remaining fluid is immediately redistributed over the members.
func (v *Valve) Drain(amount int, hooks StructureHooks) FluidStack {
	if amount <= 0 || v.fluid.Empty() {
		return FluidStack{}
	}
	drained := FluidStack{Fluid: v.fluid.Fluid, Amount: min(amount, v.fluid.Amount)}
	v.fluid.Amount -= drained.Amount
	if v.fluid.Amount == 0 {
		v.fluid = FluidStack{}
	}

	if hooks == nil {
		hooks = NopHooks{}
	}
	hooks.FillLevelsChanged(v.fillLevels())
	return drained
}

// reset clears all structure state. Hooks are the caller's business.
func (v *Valve) reset() {
	v.assignment.Clear()
	v.linkedTanks = 0
	v.facingSides = 0
	v.fluid = FluidStack{}
	v.capacity = 0
	v.id = uuid.Nil
}

// fillLevels computes the current fill percentage of every member.
func (v *Valve) fillLevels() map[cube.Pos]int {
	return distribute(v.fluid.Amount, v.capacityUnit(), v.assignment)
}

// capacityUnit returns the capacity one cell contributes, in millibuckets.
func (v *Valve) capacityUnit() int {
	return v.bucketsPerTank * BucketVolume
}

// updateFacingSides recomputes which faces of the valve touch a linked
// tank cell.
func (v *Valve) updateFacingSides() {
	var sides uint8
	for _, face := range cube.Faces() {
		if v.assignment.Has(v.pos.Side(face)) {
			sides |= 1 << uint(face)
		}
	}
	v.facingSides = sides
}
