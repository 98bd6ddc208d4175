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

package poreflowutil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/mattemangia/poreflow"
)

// ConfigFile is the TOML description of a complete run, for programs
// that embed the simulator without the command-line surface. The zero
// value of every Simulation field falls back to the corresponding
// default.
type ConfigFile struct {
	// NetworkFile is the path to the JSON pore network description.
	// The path can include environment variables.
	NetworkFile string

	// OutputFile is the path where the binary results file should be
	// created. Can include environment variables.
	OutputFile string

	// LogFile is the path to the desired logfile location. If blank, the
	// logfile is placed next to OutputFile.
	LogFile string

	// VoxelSize is the physical size of one network length unit in
	// meters. If 0, the network file's value (or the global default) is
	// used.
	VoxelSize float64

	Simulation SimulationSection
}

// SimulationSection mirrors the simulation options in TOML-friendly
// form; FlowAxis is a string ("X", "Y" or "Z").
type SimulationSection struct {
	TotalTime      float64
	TimeStep       float64
	OutputInterval float64

	Tolerance     float64
	MaxIterations int

	FlowAxis       string
	InletPressure  *float64
	OutletPressure *float64

	Viscosity float64
	Density   float64

	InitialTemperature  *float64
	InletTemperature    *float64
	OutletTemperature   *float64
	ThermalConductivity float64
	SpecificHeat        float64

	Diffusivity float64

	InitialConcentrations map[string]float64
	InletConcentrations   map[string]float64
	InitialMinerals       map[string]float64

	EnableReactions bool
	MineralFilter   []string

	UpdateGeometry  bool
	MinPoreRadius   float64
	MinThroatRadius float64
}

// ReadConfigFile reads and validates a TOML run configuration.
func ReadConfigFile(filename string) (*ConfigFile, error) {
	var c ConfigFile
	if _, err := toml.DecodeFile(filename, &c); err != nil {
		return nil, fmt.Errorf("poreflowutil: reading configuration file %s: %v", filename, err)
	}
	c.NetworkFile = os.ExpandEnv(c.NetworkFile)
	c.OutputFile = os.ExpandEnv(c.OutputFile)
	c.LogFile = os.ExpandEnv(c.LogFile)
	if c.NetworkFile == "" {
		return nil, fmt.Errorf("poreflowutil: configuration file %s does not specify NetworkFile", filename)
	}
	if c.OutputFile == "" {
		c.OutputFile = "poreflow_output.gob"
	}
	c.LogFile = checkLogFile(c.LogFile, c.OutputFile)
	return &c, nil
}

// Options converts the TOML section into simulation options, filling
// defaults for fields the file leaves at zero.
func (c *ConfigFile) Options() (poreflow.SimulationOptions, error) {
	o := poreflow.DefaultOptions()
	s := &c.Simulation

	if s.FlowAxis != "" {
		axis, err := poreflow.ParseAxis(s.FlowAxis)
		if err != nil {
			return o, err
		}
		o.FlowAxis = axis
	}
	setNonZero(&o.TotalTime, s.TotalTime)
	setNonZero(&o.TimeStep, s.TimeStep)
	setNonZero(&o.OutputInterval, s.OutputInterval)
	setNonZero(&o.Tolerance, s.Tolerance)
	if s.MaxIterations > 0 {
		o.MaxIterations = s.MaxIterations
	}
	// Pressures and temperatures may legitimately be 0, so they are
	// pointers: nil keeps the default.
	setPtr(&o.InletPressure, s.InletPressure)
	setPtr(&o.OutletPressure, s.OutletPressure)
	setPtr(&o.InitialTemperature, s.InitialTemperature)
	setPtr(&o.InletTemperature, s.InletTemperature)
	setPtr(&o.OutletTemperature, s.OutletTemperature)
	setNonZero(&o.Viscosity, s.Viscosity)
	setNonZero(&o.Density, s.Density)
	setNonZero(&o.ThermalConductivity, s.ThermalConductivity)
	setNonZero(&o.SpecificHeat, s.SpecificHeat)
	setNonZero(&o.Diffusivity, s.Diffusivity)
	setNonZero(&o.MinPoreRadius, s.MinPoreRadius)
	setNonZero(&o.MinThroatRadius, s.MinThroatRadius)

	if s.InitialConcentrations != nil {
		o.InitialConcentrations = s.InitialConcentrations
	}
	if s.InletConcentrations != nil {
		o.InletConcentrations = s.InletConcentrations
	}
	if s.InitialMinerals != nil {
		o.InitialMinerals = s.InitialMinerals
	}
	o.EnableReactions = s.EnableReactions
	o.MineralFilter = s.MineralFilter
	o.UpdateGeometry = s.UpdateGeometry
	return o, nil
}

func setNonZero(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setPtr(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
