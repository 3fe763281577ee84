package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// VehicleCondition – immutable value object
// ---------------------------------------------------------------------------

// VehicleCondition represents the physical condition category of a vehicle.
type VehicleCondition struct {
	value string
}

const (
	conditionNew       = "NEW"
	conditionExcellent = "EXCELLENT"
	conditionGood      = "GOOD"
	conditionFair      = "FAIR"
	conditionPoor      = "POOR"
)

var (
	ConditionNew       = VehicleCondition{value: conditionNew}
	ConditionExcellent = VehicleCondition{value: conditionExcellent}
	ConditionGood      = VehicleCondition{value: conditionGood}
	ConditionFair      = VehicleCondition{value: conditionFair}
	ConditionPoor      = VehicleCondition{value: conditionPoor}
)

var validConditions = map[string]VehicleCondition{
	conditionNew:       ConditionNew,
	conditionExcellent: ConditionExcellent,
	conditionGood:      ConditionGood,
	conditionFair:      ConditionFair,
	conditionPoor:      ConditionPoor,
}

var conditionMultipliers = map[string]float64{
	conditionNew:       1.00,
	conditionExcellent: 0.95,
	conditionGood:      0.85,
	conditionFair:      0.70,
	conditionPoor:      0.50,
}

// NewVehicleCondition creates a VehicleCondition from a raw string.
func NewVehicleCondition(s string) (VehicleCondition, error) {
	v, ok := validConditions[s]
	if !ok {
		return VehicleCondition{}, fmt.Errorf("invalid vehicle condition: %q", s)
	}
	return v, nil
}

// Multiplier returns the value multiplier for this condition. Unrecognized or
// uninitialised conditions are priced as GOOD (0.85), making the function
// total over all inputs.
func (c VehicleCondition) Multiplier() float64 {
	if m, ok := conditionMultipliers[c.value]; ok {
		return m
	}
	return conditionMultipliers[conditionGood]
}

// String returns the string representation of the condition.
func (c VehicleCondition) String() string { return c.value }

// IsZero returns true if the condition has not been initialised.
func (c VehicleCondition) IsZero() bool { return c.value == "" }

// Equal returns true when both conditions carry the same value.
func (c VehicleCondition) Equal(other VehicleCondition) bool { return c.value == other.value }
