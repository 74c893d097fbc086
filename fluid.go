package fluidtanks

// FluidStack is a quantity of a single fluid, identified by name (for
// example "minecraft:water") and measured in millibuckets. The zero value
// is the empty stack.
type FluidStack struct {
	// Fluid is the identifier of the fluid held.
	Fluid string

	// Amount is the quantity in millibuckets.
	Amount int
}

// Empty returns true if the stack holds no fluid.
func (s FluidStack) Empty() bool {
	return s.Amount <= 0 || s.Fluid == ""
}
