/*
Copyright © 2025 the Poreflow authors.
This file is part of Poreflow.

Poreflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Poreflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Poreflow.  If not, see <http://www.gnu.org/licenses/>.
*/

package poreflow

import (
	"fmt"
	"strings"
)

// Axis selects the macroscopic flow direction.
type Axis int

// Recognized flow axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ParseAxis converts a string such as "X", "y" or "Z" to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return AxisX, fmt.Errorf("poreflow: invalid flow axis %q; valid options are X, Y, and Z", s)
}

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "X"
}

// SimulationOptions configures one simulation run. Use DefaultOptions to
// obtain a fully populated set of defaults and override individual fields;
// zero values are not re-defaulted, so e.g. OutletPressure = 0 Pa is a
// valid configuration.
type SimulationOptions struct {
	// TotalTime is the total simulated time [s].
	TotalTime float64
	// TimeStep is the fixed timestep [s]. It must be positive.
	TimeStep float64
	// OutputInterval is the simulated time between state snapshots [s].
	// If it is not positive, only the initial and final states are kept.
	OutputInterval float64

	// Tolerance is the convergence tolerance for the pressure solve.
	Tolerance float64
	// MaxIterations caps the conjugate-gradient iteration count.
	// If it is not positive, 5000 is used.
	MaxIterations int

	// FlowAxis is the macroscopic flow direction used to pick inlet and
	// outlet pores.
	FlowAxis Axis
	// InletPressure and OutletPressure are the Dirichlet boundary
	// pressures [Pa].
	InletPressure  float64
	OutletPressure float64

	// Viscosity is the dynamic fluid viscosity [Pa·s].
	Viscosity float64
	// Density is the fluid density [kg/m³].
	Density float64

	// InitialTemperature is the uniform starting temperature [°C];
	// InletTemperature and OutletTemperature are the boundary clamps [°C].
	InitialTemperature float64
	InletTemperature   float64
	OutletTemperature  float64
	// ThermalConductivity is the fluid thermal conductivity [W/m/K].
	ThermalConductivity float64
	// SpecificHeat is the fluid specific heat capacity [J/kg/K].
	SpecificHeat float64

	// Diffusivity is the molecular diffusivity applied to every
	// species [m²/s].
	Diffusivity float64
	// Dispersivity is accepted for input compatibility but not yet used
	// by the transport stage.
	Dispersivity float64

	// InitialConcentrations sets the uniform initial concentration per
	// species [mol/m³]. InletConcentrations clamps inlet pores per
	// species [mol/m³]; species missing from the map default to 0.
	InitialConcentrations map[string]float64
	InletConcentrations   map[string]float64

	// InitialMinerals sets the starting solid mineral volume present in
	// every pore, per mineral [m³].
	InitialMinerals map[string]float64

	// EnableReactions turns the chemistry stage on. MineralFilter, when
	// non-empty, restricts reaction bookkeeping to the named minerals.
	EnableReactions bool
	MineralFilter   []string

	// UpdateGeometry turns the mineral-volume→geometry feedback on.
	// MinPoreRadius and MinThroatRadius are radius floors in network
	// length units.
	UpdateGeometry  bool
	MinPoreRadius   float64
	MinThroatRadius float64
}

// DefaultOptions returns the default simulation configuration: water at
// 25 °C driven along X by a 1 Pa pressure drop for one simulated hour,
// with reactions and geometry feedback switched off.
func DefaultOptions() SimulationOptions {
	return SimulationOptions{
		TotalTime:      3600,
		TimeStep:       1,
		OutputInterval: 60,

		Tolerance:     1e-8,
		MaxIterations: 5000,

		FlowAxis:       AxisX,
		InletPressure:  2,
		OutletPressure: 1,

		Viscosity: 1e-3,
		Density:   1000,

		InitialTemperature:  25,
		InletTemperature:    25,
		OutletTemperature:   25,
		ThermalConductivity: 0.6,
		SpecificHeat:        4186,

		Diffusivity: 1e-9,

		InitialConcentrations: map[string]float64{},
		InletConcentrations:   map[string]float64{},
		InitialMinerals:       map[string]float64{},

		MinPoreRadius:   0.1,
		MinThroatRadius: 0.05,
	}
}

// validate checks the configuration errors that must fail fast, before
// the time loop starts.
func (o *SimulationOptions) validate() error {
	if o.TimeStep <= 0 {
		return fmt.Errorf("poreflow: TimeStep must be positive; got %g", o.TimeStep)
	}
	if o.TotalTime <= 0 {
		return fmt.Errorf("poreflow: TotalTime must be positive; got %g", o.TotalTime)
	}
	if o.Viscosity <= 0 {
		return fmt.Errorf("poreflow: Viscosity must be positive; got %g", o.Viscosity)
	}
	if o.Density <= 0 {
		return fmt.Errorf("poreflow: Density must be positive; got %g", o.Density)
	}
	return nil
}

// maxIterations returns the iteration cap with its default applied.
func (o *SimulationOptions) maxIterations() int {
	if o.MaxIterations <= 0 {
		return 5000
	}
	return o.MaxIterations
}
