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

// Package carbkin is a reference chemistry engine for carbonate, sulfate
// and evaporite systems. It carries a small built-in compound database,
// resolves species flexibly by name, formula or alias, and integrates
// mineral dissolution and precipitation with first-order
// saturation-state kinetics. It is meant as a usable default and as a
// template for wiring richer thermodynamic backends.
package carbkin

import (
	"strings"

	"github.com/mattemangia/poreflow/chem"
)

// Engine implements chem.Engine with a built-in database.
type Engine struct {
	compounds []*chem.Compound
	lookup    map[string]*chem.Compound // normalized name/formula/alias
	reactions []*chem.Reaction
}

// New returns an engine loaded with the built-in compound and reaction
// database.
func New() *Engine {
	e := &Engine{lookup: make(map[string]*chem.Compound)}
	for _, c := range defaultCompounds() {
		e.register(c)
	}
	e.reactions = defaultReactions()
	return e
}

// register indexes a compound under its name, formula and aliases. The
// first registration of a key wins.
func (e *Engine) register(c *chem.Compound) {
	e.compounds = append(e.compounds, c)
	keys := append([]string{c.Name, c.Formula}, c.Aliases...)
	for _, k := range keys {
		n := normalize(k)
		if n == "" {
			continue
		}
		if _, ok := e.lookup[n]; !ok {
			e.lookup[n] = c
		}
	}
}

// Resolve maps a name, formula or alias to its compound record,
// case-insensitively and tolerant of "Ca++" style charge notation.
func (e *Engine) Resolve(name string) (*chem.Compound, bool) {
	c, ok := e.lookup[normalize(name)]
	return c, ok
}

// Compounds returns the database records, for inspection and listing.
func (e *Engine) Compounds() []*chem.Compound {
	return e.compounds
}

// normalize lowercases a species name, strips whitespace and an "(aq)"
// suffix, and rewrites repeated-sign charges ("Ca++", "CO3--") into
// signed-count form ("ca+2", "co3-2").
func normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.TrimSuffix(s, "(aq)")
	for _, sign := range []string{"+", "-"} {
		n := 0
		for strings.HasSuffix(s, sign) {
			s = strings.TrimSuffix(s, sign)
			n++
		}
		if n == 1 {
			return s + sign + "1"
		}
		if n > 1 {
			return s + sign + string(rune('0'+n))
		}
	}
	// "ca+2" style is already in signed-count form.
	return s
}

func defaultCompounds() []*chem.Compound {
	return []*chem.Compound{
		// Solvent and dissolved species. Molecular weights are kg/mol.
		{Name: "H2O", Formula: "H2O", Phase: chem.Aqueous,
			Density: 997, MolecularWeight: 0.018015,
			Aliases: []string{"water"}},
		{Name: "H+1", Formula: "H+1", Phase: chem.Aqueous,
			MolecularWeight: 0.001008, Aliases: []string{"H"}},
		{Name: "OH-1", Formula: "OH-1", Phase: chem.Aqueous,
			MolecularWeight: 0.017007},
		{Name: "Ca+2", Formula: "Ca+2", Phase: chem.Aqueous,
			MolecularWeight: 0.040078, Aliases: []string{"Ca", "calcium"}},
		{Name: "Mg+2", Formula: "Mg+2", Phase: chem.Aqueous,
			MolecularWeight: 0.024305, Aliases: []string{"Mg", "magnesium"}},
		{Name: "Na+1", Formula: "Na+1", Phase: chem.Aqueous,
			MolecularWeight: 0.022990, Aliases: []string{"Na", "sodium"}},
		{Name: "K+1", Formula: "K+1", Phase: chem.Aqueous,
			MolecularWeight: 0.039098, Aliases: []string{"K", "potassium"}},
		{Name: "Cl-1", Formula: "Cl-1", Phase: chem.Aqueous,
			MolecularWeight: 0.035453, Aliases: []string{"Cl", "chloride"}},
		{Name: "HCO3-1", Formula: "HCO3-1", Phase: chem.Aqueous,
			MolecularWeight: 0.061017, Aliases: []string{"bicarbonate"}},
		{Name: "CO3-2", Formula: "CO3-2", Phase: chem.Aqueous,
			MolecularWeight: 0.060009, Aliases: []string{"carbonate"}},
		{Name: "CO2", Formula: "CO2", Phase: chem.Aqueous,
			MolecularWeight: 0.044009, Aliases: []string{"carbon dioxide"}},
		{Name: "SO4-2", Formula: "SO4-2", Phase: chem.Aqueous,
			MolecularWeight: 0.096060, Aliases: []string{"sulfate"}},
		{Name: "SiO2", Formula: "SiO2", Phase: chem.Aqueous,
			MolecularWeight: 0.060084, Aliases: []string{"silica", "H4SiO4"}},

		// Minerals. Molar volumes are m³/mol; quartz exercises the
		// density/molecular-weight fallback.
		{Name: "Calcite", Formula: "CaCO3", Phase: chem.Solid,
			MolarVolume: 3.6934e-5, Density: 2710, MolecularWeight: 0.100087},
		{Name: "Dolomite", Formula: "CaMg(CO3)2", Phase: chem.Solid,
			MolarVolume: 6.4390e-5, Density: 2860, MolecularWeight: 0.184401},
		{Name: "Gypsum", Formula: "CaSO4:2H2O", Phase: chem.Solid,
			MolarVolume: 7.4690e-5, Density: 2310, MolecularWeight: 0.172171},
		{Name: "Anhydrite", Formula: "CaSO4", Phase: chem.Solid,
			MolarVolume: 4.5940e-5, Density: 2970, MolecularWeight: 0.136141},
		{Name: "Halite", Formula: "NaCl", Phase: chem.Solid,
			MolarVolume: 2.7020e-5, Density: 2170, MolecularWeight: 0.058443,
			Aliases: []string{"rock salt"}},
		{Name: "Quartz", Formula: "SiO2", Phase: chem.Solid,
			Density: 2648, MolecularWeight: 0.060084},
	}
}

// defaultReactions lists the dissolution equilibria, written as
// mineral = dissolved products. LogK values are solubility products at
// 25 °C; rate constants are per-second fractions of the reacting
// capacity.
func defaultReactions() []*chem.Reaction {
	return []*chem.Reaction{
		{Name: "calcite dissolution", Mineral: "Calcite",
			Aqueous: map[string]float64{"Ca+2": 1, "CO3-2": 1},
			LogK:    -8.48, RateConstant: 1e-4},
		{Name: "dolomite dissolution", Mineral: "Dolomite",
			Aqueous: map[string]float64{"Ca+2": 1, "Mg+2": 1, "CO3-2": 2},
			LogK:    -17.09, RateConstant: 1e-6},
		{Name: "gypsum dissolution", Mineral: "Gypsum",
			Aqueous: map[string]float64{"Ca+2": 1, "SO4-2": 1, "H2O": 2},
			LogK:    -4.58, RateConstant: 1e-3},
		{Name: "anhydrite dissolution", Mineral: "Anhydrite",
			Aqueous: map[string]float64{"Ca+2": 1, "SO4-2": 1},
			LogK:    -4.36, RateConstant: 5e-4},
		{Name: "halite dissolution", Mineral: "Halite",
			Aqueous: map[string]float64{"Na+1": 1, "Cl-1": 1},
			LogK:    1.570, RateConstant: 1e-2},
		{Name: "quartz dissolution", Mineral: "Quartz",
			Aqueous: map[string]float64{"SiO2": 1},
			LogK:    -3.98, RateConstant: 1e-8},
	}
}
