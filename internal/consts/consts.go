// Package consts holds physical constants used by the component models.
package consts

const (
	// Boltzmann is the Boltzmann constant, in joules per kelvin.
	Boltzmann = 1.380649e-23
	// RoomTemperature is the default circuit temperature, in kelvin (25 C).
	RoomTemperature = 298.15
	// DefaultInputImpedance is the input-port impedance, in ohms, that the
	// circuit builder substitutes when a negative impedance is requested.
	DefaultInputImpedance = 50.0
)
