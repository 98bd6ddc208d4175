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

// minVolumeFraction keeps a pore from being sealed entirely: accumulated
// mineral volume can consume at most 99 % of the original pore volume.
const minVolumeFraction = 0.01

// UpdateGeometry returns the stage that shrinks (or regrows) pore and
// throat radii from the accumulated solid mineral volume. This is the
// feedback path: chemistry narrows pores, throats inherit the worse of
// their endpoints' shrinkage, and the flow solver sees the reduced
// conductances on the next step.
func UpdateGeometry() StageFunc {
	return func(sim *Simulation) error {
		opts := &sim.Options
		s := sim.State
		net := sim.Net
		vox := net.VoxelSize
		voxCubed := vox * vox * vox

		for i := range net.Pores {
			solid := 0.0
			for _, col := range s.Minerals {
				solid += col[i]
			}
			solidUnits := solid / voxCubed

			orig := net.Pores[i].Volume
			v := orig - solidUnits
			if v < orig*minVolumeFraction {
				v = orig * minVolumeFraction
			}
			s.PoreVolume[i] = v

			r := radiusFromSphereVolume(v)
			if r < opts.MinPoreRadius {
				r = opts.MinPoreRadius
			}
			s.PoreRadius[i] = r
		}

		for j := range net.Throats {
			i1, i2 := sim.endpointIndexes(j)
			scale := 1.0
			if net.Pores[i1].Radius > 0 {
				scale = s.PoreRadius[i1] / net.Pores[i1].Radius
			}
			if net.Pores[i2].Radius > 0 {
				if s2 := s.PoreRadius[i2] / net.Pores[i2].Radius; s2 < scale {
					scale = s2
				}
			}
			r := net.Throats[j].Radius * scale
			if r < opts.MinThroatRadius {
				r = opts.MinThroatRadius
			}
			s.ThroatRadius[j] = r
		}
		return nil
	}
}

// radiusFromSphereVolume returns the radius of a sphere with volume v,
// both in network length units.
func radiusFromSphereVolume(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Cbrt(3 * v / (4 * math.Pi))
}
