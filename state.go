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

import "sort"

// State holds every time-varying field of a simulation run. Per-pore and
// per-throat fields are dense arrays addressed by the contiguous indexes
// built by Network.Init; species and mineral fields are column maps keyed
// by name. A State is owned by exactly one run and deep-copied by Clone
// for snapshots.
type State struct {
	Time         float64 `desc:"Simulated time" units:"s"`
	Permeability float64 `desc:"Bulk permeability" units:"mD"`

	Pressure     []float64 `desc:"Pore pressure" units:"Pa"`
	Temperature  []float64 `desc:"Pore temperature" units:"°C"`
	PoreRadius   []float64 `desc:"Current pore radius" units:"voxels"`
	PoreVolume   []float64 `desc:"Current pore volume" units:"voxels³"`
	ReactionRate []float64 `desc:"Mineral mole change rate" units:"mol/s"`

	// Concentrations holds one column per aqueous species [mol/m³];
	// Minerals holds one column per solid mineral [m³ per pore].
	Concentrations map[string][]float64
	Minerals       map[string][]float64

	FlowRate     []float64 `desc:"Throat flow rate, positive Pore1→Pore2" units:"m³/s"`
	ThroatRadius []float64 `desc:"Current throat radius" units:"voxels"`
	HeatFlux     []float64 `desc:"Throat conductive heat flux, positive Pore1→Pore2" units:"W"`
}

// newState builds the t=0 state from the network and the initial
// conditions in opts. Every pore gets an entry in every per-pore column
// and every throat in every per-throat column; boundary pores are not
// distinguished at initialization time.
func newState(net *Network, opts *SimulationOptions) *State {
	np, nt := len(net.Pores), len(net.Throats)
	s := &State{
		Pressure:     make([]float64, np),
		Temperature:  make([]float64, np),
		PoreRadius:   make([]float64, np),
		PoreVolume:   make([]float64, np),
		ReactionRate: make([]float64, np),

		Concentrations: make(map[string][]float64),
		Minerals:       make(map[string][]float64),

		FlowRate:     make([]float64, nt),
		ThroatRadius: make([]float64, nt),
		HeatFlux:     make([]float64, nt),
	}
	for i := range net.Pores {
		s.Temperature[i] = opts.InitialTemperature
		s.PoreRadius[i] = net.Pores[i].Radius
		s.PoreVolume[i] = net.Pores[i].Volume
	}
	for j := range net.Throats {
		s.ThroatRadius[j] = net.Throats[j].Radius
	}
	// Track every species named anywhere in the configuration so the
	// transport stage sees a complete set from the first step.
	for species, c0 := range opts.InitialConcentrations {
		col := make([]float64, np)
		for i := range col {
			col[i] = c0
		}
		s.Concentrations[species] = col
	}
	for species := range opts.InletConcentrations {
		if _, ok := s.Concentrations[species]; !ok {
			s.Concentrations[species] = make([]float64, np)
		}
	}
	for mineral, v0 := range opts.InitialMinerals {
		col := make([]float64, np)
		for i := range col {
			col[i] = v0
		}
		s.Minerals[mineral] = col
	}
	return s
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Time:         s.Time,
		Permeability: s.Permeability,

		Pressure:     append([]float64(nil), s.Pressure...),
		Temperature:  append([]float64(nil), s.Temperature...),
		PoreRadius:   append([]float64(nil), s.PoreRadius...),
		PoreVolume:   append([]float64(nil), s.PoreVolume...),
		ReactionRate: append([]float64(nil), s.ReactionRate...),

		Concentrations: make(map[string][]float64, len(s.Concentrations)),
		Minerals:       make(map[string][]float64, len(s.Minerals)),

		FlowRate:     append([]float64(nil), s.FlowRate...),
		ThroatRadius: append([]float64(nil), s.ThroatRadius...),
		HeatFlux:     append([]float64(nil), s.HeatFlux...),
	}
	for species, col := range s.Concentrations {
		c.Concentrations[species] = append([]float64(nil), col...)
	}
	for mineral, col := range s.Minerals {
		c.Minerals[mineral] = append([]float64(nil), col...)
	}
	return c
}

// Species returns the tracked species names in deterministic order.
func (s *State) Species() []string {
	names := make([]string, 0, len(s.Concentrations))
	for species := range s.Concentrations {
		names = append(names, species)
	}
	sort.Strings(names)
	return names
}

// MineralNames returns the tracked mineral names in deterministic order.
func (s *State) MineralNames() []string {
	names := make([]string, 0, len(s.Minerals))
	for mineral := range s.Minerals {
		names = append(names, mineral)
	}
	sort.Strings(names)
	return names
}

// concentration ensures a column exists for species and returns it.
func (s *State) concentration(species string, np int) []float64 {
	col, ok := s.Concentrations[species]
	if !ok {
		col = make([]float64, np)
		s.Concentrations[species] = col
	}
	return col
}

// mineral ensures a column exists for the named mineral and returns it.
func (s *State) mineral(name string, np int) []float64 {
	col, ok := s.Minerals[name]
	if !ok {
		col = make([]float64, np)
		s.Minerals[name] = col
	}
	return col
}

// Results aggregates the output of one simulation run. The first snapshot
// is the t=0 state; the last is the final state, or the last snapshot
// taken before a failed timestep when Converged is false.
type Results struct {
	Snapshots []*State
	Steps     int
	Converged bool

	InitialPermeability float64 `desc:"Bulk permeability at t=0" units:"mD"`
	FinalPermeability   float64 `desc:"Bulk permeability at the end of the run" units:"mD"`
	// PermeabilityChange is (final−initial)/initial, or 0 when the
	// initial permeability is 0.
	PermeabilityChange float64
}
