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

	"github.com/mattemangia/poreflow/chem"
)

// Reactions returns the stage that advances each pore's chemistry by one
// timestep through the configured chemistry engine, writes the
// post-reaction aqueous concentrations and solid mineral volumes back
// into the state, and records the per-pore mineral mole change rate.
func Reactions() StageFunc {
	return func(sim *Simulation) error {
		s := sim.State
		dt := sim.Options.TimeStep
		np := len(sim.Net.Pores)
		filter := sim.Options.MineralFilter

		for i := 0; i < np; i++ {
			v := sim.poreFluidVolume(i)
			if v <= 0 {
				continue
			}

			ts := chem.NewThermoState(s.Temperature[i], s.Pressure[i], v)

			// Aqueous species. Keys with no matching compound are
			// skipped; the original key is remembered so results come
			// back under the same name.
			speciesKeys := make(map[string]string) // canonical → state key
			for _, key := range s.Species() {
				c := s.Concentrations[key][i]
				if c == 0 {
					continue
				}
				cmp := sim.resolveSpecies(key)
				if cmp == nil {
					continue
				}
				if _, taken := speciesKeys[cmp.Name]; !taken {
					speciesKeys[cmp.Name] = key
				}
				ts.Add(cmp, c*v, sim.composition[key])
			}

			// Bulk water carries the solvent even when no one tracks it
			// as a species.
			sim.ensureWater(ts, v)

			// Solid minerals, restricted to the allow-list when one is
			// configured. A mineral with no resolvable molar volume
			// cannot participate.
			mineralKeys := make(map[string]string)
			preMoles := 0.0
			for _, key := range s.MineralNames() {
				if !mineralAllowed(key, filter) {
					continue
				}
				vol := s.Minerals[key][i]
				if vol == 0 {
					continue
				}
				cmp, vm := sim.resolveMineral(key)
				if cmp == nil {
					continue
				}
				if _, taken := mineralKeys[cmp.Name]; !taken {
					mineralKeys[cmp.Name] = key
				}
				moles := vol / vm
				ts.Add(cmp, moles, sim.composition[key])
				preMoles += moles
			}

			rxns := sim.Engine.Reactions(ts, filter)
			out, err := sim.Engine.React(ts, dt, rxns)
			if err != nil {
				return fmt.Errorf("poreflow: chemistry failed for pore %d: %v", sim.Net.Pores[i].ID, err)
			}

			postMoles := sim.writeBack(i, v, out, speciesKeys, mineralKeys, filter)
			s.ReactionRate[i] = (postMoles - preMoles) / dt
		}
		return nil
	}
}

// writeBack transfers a post-reaction thermodynamic state into pore i of
// the simulation state and returns the total moles of allow-listed
// minerals after the reaction. Tracked entries keep their original keys;
// compounds the reaction introduced get new columns under their
// canonical names. Minerals no longer present are written back as 0, not
// removed.
func (sim *Simulation) writeBack(i int, v float64, out *chem.ThermoState,
	speciesKeys, mineralKeys map[string]string, filter []string) float64 {

	s := sim.State
	np := len(sim.Net.Pores)

	for canon, key := range speciesKeys {
		c := out.Moles[canon] / v
		if c < 0 {
			c = 0
		}
		s.Concentrations[key][i] = c
	}
	for canon, key := range mineralKeys {
		_, vm := sim.resolveMineral(key)
		vol := out.Moles[canon] * vm
		if vol < 0 {
			vol = 0
		}
		s.Minerals[key][i] = vol
	}

	postMoles := 0.0
	for canon, moles := range out.Moles {
		if key, ok := mineralKeys[canon]; ok {
			if moles > 0 && mineralAllowed(key, filter) {
				postMoles += moles
			}
			continue
		}
		if _, ok := speciesKeys[canon]; ok {
			continue
		}
		cmp, found := sim.Engine.Resolve(canon)
		if !found || moles <= 0 || cmp.Name == waterName {
			continue
		}
		switch cmp.Phase {
		case chem.Solid:
			if !mineralAllowed(canon, filter) {
				continue
			}
			vm, ok := cmp.ResolveMolarVolume()
			if !ok {
				continue
			}
			s.mineral(canon, np)[i] = moles * vm
			postMoles += moles
		default:
			s.concentration(canon, np)[i] = moles / v
		}
	}
	return postMoles
}

const waterName = "H2O"

// ensureWater adds solvent water to the state when the caller does not
// track it explicitly.
func (sim *Simulation) ensureWater(ts *chem.ThermoState, v float64) {
	cmp := sim.resolveSpecies(waterName)
	if cmp == nil {
		return
	}
	if _, ok := ts.Moles[cmp.Name]; ok {
		return
	}
	density, mw := cmp.Density, cmp.MolecularWeight
	if density <= 0 {
		density = 997 // kg/m³
	}
	if mw <= 0 {
		mw = 0.018015 // kg/mol
	}
	ts.Add(cmp, v*density/mw, sim.composition[waterName])
}

// resolveSpecies maps a state key to its compound record, caching both
// hits and misses. Unresolvable names are logged once per run and then
// skipped silently.
func (sim *Simulation) resolveSpecies(key string) *chem.Compound {
	if cmp, ok := sim.resolved[key]; ok {
		return cmp
	}
	if sim.unresolved[key] {
		return nil
	}
	if sim.resolved == nil {
		sim.resolved = make(map[string]*chem.Compound)
		sim.composition = make(map[string]map[string]float64)
		sim.unresolved = make(map[string]bool)
	}
	cmp, ok := sim.Engine.Resolve(key)
	if !ok {
		sim.unresolved[key] = true
		sim.Log.WithField("species", key).Warn("poreflow: unknown species; skipping it in reaction bookkeeping")
		return nil
	}
	comp, err := sim.Engine.ParseFormula(cmp.Formula)
	if err != nil {
		comp = nil
	}
	sim.resolved[key] = cmp
	sim.composition[key] = comp
	return cmp
}

// resolveMineral maps a state mineral key to its compound record and
// molar volume [m³/mol]. Minerals with no resolvable molar volume are
// logged once per run as errors and excluded from reaction bookkeeping.
func (sim *Simulation) resolveMineral(key string) (*chem.Compound, float64) {
	if vm, ok := sim.molarVolume[key]; ok {
		return sim.resolved[key], vm
	}
	if sim.badMineral[key] {
		return nil, 0
	}
	if sim.molarVolume == nil {
		sim.molarVolume = make(map[string]float64)
		sim.badMineral = make(map[string]bool)
	}
	cmp := sim.resolveSpecies(key)
	if cmp == nil {
		sim.badMineral[key] = true
		return nil, 0
	}
	vm, ok := cmp.ResolveMolarVolume()
	if !ok {
		sim.badMineral[key] = true
		sim.Log.WithField("mineral", key).Error("poreflow: mineral has no resolvable molar volume; excluding it from reactions")
		return nil, 0
	}
	sim.molarVolume[key] = vm
	return cmp, vm
}

// mineralAllowed reports whether the named mineral passes the configured
// allow-list. An empty list allows everything.
func mineralAllowed(name string, filter []string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}
