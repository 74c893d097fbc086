package fluidtanks

import (
	"github.com/google/uuid"
)

// EncodeNBT encodes the valve's durable state following the world.NBTer
// convention, ready to be stored on the host's block entity compound.
//
// The priority buckets are the authoritative structure: the member set and
// per-tier capacities are reconstructed from them on decode. Transient
// planning state is never persisted.
func (v *Valve) EncodeNBT() map[string]any {
	data := map[string]any{
		"TankPriorities":  v.assignment.encodeNBT(),
		"LinkedTankCount": int32(v.linkedTanks),
		"FacingSides":     byte(v.facingSides),
	}
	if v.id != uuid.Nil {
		data["StructureID"] = v.id.String()
	}
	if !v.fluid.Empty() {
		data["Fluid"] = v.fluid.Fluid
		data["Amount"] = int32(v.fluid.Amount)
	}
	return data
}

// DecodeNBT restores the valve from its encoded state. Missing or
// malformed sections fall back to an empty structure; a reload never
// fails. Older data without an explicit LinkedTankCount derives the count
// from the priority buckets.
func (v *Valve) DecodeNBT(data map[string]any) {
	v.reset()
	if data == nil {
		return
	}

	if priorities, ok := data["TankPriorities"].(map[string]any); ok {
		v.assignment = decodeAssignmentNBT(priorities)
	}
	if count, ok := nbtInt(data, "LinkedTankCount"); ok {
		v.linkedTanks = count
	} else {
		v.linkedTanks = max(v.assignment.Len()-1, 0)
	}
	if sides, ok := nbtInt(data, "FacingSides"); ok {
		v.facingSides = uint8(sides)
	}
	if s, ok := data["StructureID"].(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			v.id = id
		}
	}

	if v.assignment.Len() > 0 {
		v.capacity = (v.linkedTanks + 1) * v.capacityUnit()
	}

	if name, ok := data["Fluid"].(string); ok {
		if amount, ok := nbtInt(data, "Amount"); ok && amount > 0 {
			v.fluid = FluidStack{Fluid: name, Amount: min(amount, v.capacity)}
		}
	}
	if v.fluid.Amount <= 0 {
		v.fluid = FluidStack{}
	}
}

// nbtInt reads an integer value of any NBT integer width.
func nbtInt(data map[string]any, key string) (int, bool) {
	switch value := data[key].(type) {
	case int32:
		return int(value), true
	case byte:
		return int(value), true
	case int16:
		return int(value), true
	case int64:
		return int(value), true
	case int:
		return value, true
	}
	return 0, false
}
