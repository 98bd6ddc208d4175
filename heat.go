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

// Temperatures are clamped to the liquid-water band the rest of the
// physics assumes.
const (
	minTemperature = 0   // °C
	maxTemperature = 300 // °C
)

// HeatTransfer returns the stage that advances pore temperatures by one
// timestep using upwind advection over the flow field plus conduction
// through throats, recording the instantaneous conductive flux per
// throat. Boundary pores are clamped to the inlet and outlet
// temperatures.
func HeatTransfer() StageFunc {
	return func(sim *Simulation) error {
		opts := &sim.Options
		s := sim.State
		dt := opts.TimeStep

		for i := range sim.Net.Pores {
			if sim.inlet[i] {
				s.Temperature[i] = opts.InletTemperature
			}
			if sim.outlet[i] {
				s.Temperature[i] = opts.OutletTemperature
			}
		}

		// Explicit update: accumulate heat changes against the
		// beginning-of-step temperatures, then apply.
		t0 := append([]float64(nil), s.Temperature...)
		heat := make([]float64, len(sim.Net.Pores)) // J

		rhoCp := opts.Density * opts.SpecificHeat
		for j := range sim.Net.Throats {
			i1, i2 := sim.endpointIndexes(j)
			q := s.FlowRate[j] // m³/s, positive i1→i2

			// Upwind advection: the donor pore's temperature rides the
			// flow. A throat with exactly zero flow contributes no
			// advective change.
			if q > 0 {
				adv := q * rhoCp * t0[i1] * dt
				heat[i1] -= adv
				heat[i2] += adv
			} else if q < 0 {
				adv := -q * rhoCp * t0[i2] * dt
				heat[i2] -= adv
				heat[i1] += adv
			}

			// Conduction through the throat cross-section.
			if s.ThroatRadius[j] <= 0 {
				s.HeatFlux[j] = 0
				continue
			}
			flux := opts.ThermalConductivity * sim.throatArea(j) *
				(t0[i1] - t0[i2]) / sim.throatLengthM(j) // W, positive i1→i2
			s.HeatFlux[j] = flux
			heat[i1] -= flux * dt
			heat[i2] += flux * dt
		}

		for i := range sim.Net.Pores {
			if sim.inlet[i] || sim.outlet[i] {
				continue
			}
			mass := sim.poreFluidVolume(i) * opts.Density // kg
			if mass <= 0 {
				continue
			}
			t := t0[i] + heat[i]/(mass*opts.SpecificHeat)
			if t < minTemperature {
				t = minTemperature
			} else if t > maxTemperature {
				t = maxTemperature
			}
			s.Temperature[i] = t
		}
		return nil
	}
}
