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

import "math"

// mDPerM2 converts permeability from m² to millidarcy.
const mDPerM2 = 9.869233e-16

// Permeability estimates the bulk permeability of the network in
// millidarcy from the current pore geometry using the Kozeny–Carman
// relation. It is a pure function of the network and state; it returns 0
// when any denominator term is non-positive.
func Permeability(net *Network, s *State) float64 {
	min, max := net.Bounds()
	pad := net.MaxPoreRadius()
	bbox := 1.0
	for k := 0; k < 3; k++ {
		bbox *= max[k] - min[k] + 2*pad
	}
	if bbox <= 0 {
		return 0
	}

	fluid := 0.0  // voxels³
	surface := 0.0 // voxels²
	for i := range net.Pores {
		fluid += s.PoreVolume[i]
		r := s.PoreRadius[i]
		surface += 4 * math.Pi * r * r
	}

	porosity := fluid / bbox
	if porosity < 0.001 {
		porosity = 0.001
	} else if porosity > 0.99 {
		porosity = 0.99
	}

	// Specific surface area per meter, not per voxel.
	sv := surface / bbox / net.VoxelSize
	if sv <= 0 {
		return 0
	}

	k := porosity * porosity * porosity /
		(5 * sv * sv * (1 - porosity) * (1 - porosity)) // m²
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return 0
	}
	return k / mDPerM2
}

// RecordPermeability returns the stage that refreshes the state's bulk
// permeability after a geometry update.
func RecordPermeability() StageFunc {
	return func(sim *Simulation) error {
		sim.State.Permeability = Permeability(sim.Net, sim.State)
		return nil
	}
}
