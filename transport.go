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

// SoluteTransport returns the stage that advances every tracked species'
// concentration field by one timestep: upwind advection over the flow
// field plus Fickian diffusion through throats. Inlet pores are clamped
// to the configured inlet concentration (0 when the species is missing
// from the inlet map); concentrations driven below zero are floored, not
// reported.
func SoluteTransport() StageFunc {
	return func(sim *Simulation) error {
		opts := &sim.Options
		s := sim.State
		dt := opts.TimeStep
		np := len(sim.Net.Pores)

		// The species set is everything already tracked in the state
		// plus anything named at the inlet; a species injected only at
		// the inlet gets its column created here.
		for species := range opts.InletConcentrations {
			s.concentration(species, np)
		}

		for _, species := range s.Species() {
			col := s.Concentrations[species]

			for i := 0; i < np; i++ {
				if sim.inlet[i] {
					col[i] = opts.InletConcentrations[species]
				}
			}

			c0 := append([]float64(nil), col...)
			moles := make([]float64, np)

			for j := range sim.Net.Throats {
				i1, i2 := sim.endpointIndexes(j)
				q := s.FlowRate[j]

				// Donor-cell advection; a throat with exactly zero flow
				// moves no mass.
				if q > 0 {
					adv := q * c0[i1] * dt
					moles[i1] -= adv
					moles[i2] += adv
				} else if q < 0 {
					adv := -q * c0[i2] * dt
					moles[i2] -= adv
					moles[i1] += adv
				}

				if s.ThroatRadius[j] <= 0 {
					continue
				}
				diff := opts.Diffusivity * sim.throatArea(j) *
					(c0[i1] - c0[i2]) / sim.throatLengthM(j) * dt // mol, i1→i2
				moles[i1] -= diff
				moles[i2] += diff
			}

			for i := 0; i < np; i++ {
				if sim.inlet[i] {
					continue
				}
				v := sim.poreFluidVolume(i)
				if v <= 0 {
					continue
				}
				c := c0[i] + moles[i]/v
				if c < 0 {
					c = 0
				}
				col[i] = c
			}
		}
		return nil
	}
}
