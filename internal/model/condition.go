package model

// InitialCondition seeds a field value on a named set before the first load
// step, for example a uniform starting temperature.
type InitialCondition struct {
	Type  string
	Set   string
	Value float64
}
