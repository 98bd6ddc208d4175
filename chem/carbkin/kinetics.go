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

package carbkin

import (
	"fmt"
	"math"

	"github.com/mattemangia/poreflow/chem"
)

// Reactions enumerates the database reactions that can make progress in
// the given state: the mineral is present to dissolve, or every product
// ion is present so the mineral can precipitate. When minerals names an
// allow-list, reactions touching other minerals are excluded.
func (e *Engine) Reactions(state *chem.ThermoState, minerals []string) []*chem.Reaction {
	filter := e.canonicalMinerals(minerals)
	var out []*chem.Reaction
	for _, r := range e.reactions {
		if !r.Touches(filter) {
			continue
		}
		if state.Moles[r.Mineral] > 0 || e.ionsPresent(state, r) {
			out = append(out, r)
		}
	}
	return out
}

// canonicalMinerals resolves filter entries to canonical database names
// so Reaction.Touches can match them exactly. Unknown entries are kept
// verbatim; they simply never match.
func (e *Engine) canonicalMinerals(minerals []string) []string {
	if len(minerals) == 0 {
		return nil
	}
	out := make([]string, len(minerals))
	for i, m := range minerals {
		if c, ok := e.Resolve(m); ok {
			out[i] = c.Name
		} else {
			out[i] = m
		}
	}
	return out
}

// ionsPresent reports whether every dissolved product of the reaction,
// water excepted, is present in the state.
func (e *Engine) ionsPresent(state *chem.ThermoState, r *chem.Reaction) bool {
	for sp := range r.Aqueous {
		if sp == "H2O" {
			continue
		}
		if state.Moles[sp] <= 0 {
			return false
		}
	}
	return true
}

// React integrates the reactions over dt seconds with first-order
// saturation-state kinetics and returns a new state. For each reaction
// the ion activity product Q is compared against the solubility product
// K: an undersaturated solution (Q/K < 1) dissolves mineral, an
// oversaturated one precipitates it. The extent per step is
// RateConstant · capacity · |1 − Q/K| · dt, where capacity is the mineral
// inventory when dissolving and the limiting dissolved ion when
// precipitating, so no amount ever goes negative.
func (e *Engine) React(state *chem.ThermoState, dt float64, reactions []*chem.Reaction) (*chem.ThermoState, error) {
	if state.Volume <= 0 {
		return nil, fmt.Errorf("carbkin: non-positive fluid volume %g m³", state.Volume)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("carbkin: non-positive timestep %g s", dt)
	}
	out := state.Clone()
	liters := out.Volume * 1000

	for _, r := range reactions {
		omega := e.saturation(out, r, liters)
		var extent float64 // mol of mineral dissolved; negative precipitates
		switch {
		case omega < 1:
			capacity := out.Moles[r.Mineral]
			if capacity <= 0 {
				continue
			}
			extent = r.RateConstant * capacity * (1 - omega) * dt
			if extent > capacity {
				extent = capacity
			}
		case omega > 1:
			capacity := e.precipitationCapacity(out, r)
			if capacity <= 0 {
				continue
			}
			extent = -r.RateConstant * capacity * (omega - 1) * dt
			if -extent > capacity {
				extent = -capacity
			}
		default:
			continue
		}

		out.Moles[r.Mineral] -= extent
		if out.Moles[r.Mineral] < 0 {
			out.Moles[r.Mineral] = 0
		}
		for sp, stoich := range r.Aqueous {
			out.Moles[sp] += stoich * extent
			if out.Moles[sp] < 0 {
				out.Moles[sp] = 0
			}
		}
	}
	return out, nil
}

// saturation returns Ω = Q/K for the reaction in the given state. Water
// takes unit activity; all other species use molar concentrations as
// activity proxies. An absent product makes Q, and so Ω, zero.
func (e *Engine) saturation(state *chem.ThermoState, r *chem.Reaction, liters float64) float64 {
	q := 1.0
	for sp, stoich := range r.Aqueous {
		if sp == "H2O" {
			continue
		}
		molarity := state.Moles[sp] / liters
		if molarity <= 0 {
			return 0
		}
		q *= math.Pow(molarity, stoich)
	}
	return q / math.Pow(10, r.LogK)
}

// precipitationCapacity returns the moles of mineral the dissolved
// inventory can supply, limited by the scarcest product ion.
func (e *Engine) precipitationCapacity(state *chem.ThermoState, r *chem.Reaction) float64 {
	capacity := math.Inf(1)
	for sp, stoich := range r.Aqueous {
		if sp == "H2O" || stoich <= 0 {
			continue
		}
		if avail := state.Moles[sp] / stoich; avail < capacity {
			capacity = avail
		}
	}
	if math.IsInf(capacity, 1) {
		return 0
	}
	return capacity
}
