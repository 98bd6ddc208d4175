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

// Package chem defines the contract between the reactive-transport core
// and a chemistry engine: compound resolution, thermodynamic state
// bookkeeping, reaction enumeration and kinetic integration. Package
// carbkin provides a reference implementation.
package chem

// Phase distinguishes dissolved species from solid minerals.
type Phase int

const (
	Aqueous Phase = iota
	Solid
)

func (p Phase) String() string {
	if p == Solid {
		return "solid"
	}
	return "aqueous"
}

// Compound is one record in a chemistry engine's database.
type Compound struct {
	// Name is the canonical name results are reported under.
	Name    string
	Formula string
	Phase   Phase

	// MolarVolume is the explicit molar volume [m³/mol]; 0 if unknown.
	MolarVolume float64
	// Density [kg/m³] and MolecularWeight [kg/mol] provide a fallback
	// molar volume when no explicit one is recorded.
	Density         float64
	MolecularWeight float64

	// Aliases are alternative names the compound resolves under.
	Aliases []string
}

// ResolveMolarVolume returns the molar volume [m³/mol], deriving it from
// density and molecular weight when no explicit value is recorded. The
// second return value reports whether a usable value exists; a solid with
// no resolvable molar volume cannot participate in volume bookkeeping.
func (c *Compound) ResolveMolarVolume() (float64, bool) {
	if c.MolarVolume > 0 {
		return c.MolarVolume, true
	}
	if c.Density > 0 && c.MolecularWeight > 0 {
		return c.MolecularWeight / c.Density, true
	}
	return 0, false
}

// ThermoState is the thermodynamic state of one pore's fluid and solid
// contents handed to the engine for kinetic integration.
type ThermoState struct {
	Temperature float64 `desc:"Fluid temperature" units:"°C"`
	Pressure    float64 `desc:"Fluid pressure" units:"Pa"`
	Volume      float64 `desc:"Fluid volume" units:"m³"`

	// Moles maps canonical compound names to mole amounts.
	Moles map[string]float64
	// Elements holds total elemental abundances [mol] accumulated as
	// compounds are added.
	Elements map[string]float64
}

// NewThermoState returns an empty state at the given conditions.
func NewThermoState(temperature, pressure, volume float64) *ThermoState {
	return &ThermoState{
		Temperature: temperature,
		Pressure:    pressure,
		Volume:      volume,
		Moles:       make(map[string]float64),
		Elements:    make(map[string]float64),
	}
}

// Add records moles of the compound along with its elemental composition.
func (ts *ThermoState) Add(c *Compound, moles float64, composition map[string]float64) {
	ts.Moles[c.Name] += moles
	for element, count := range composition {
		ts.Elements[element] += count * moles
	}
}

// Clone returns a deep copy of the state.
func (ts *ThermoState) Clone() *ThermoState {
	c := NewThermoState(ts.Temperature, ts.Pressure, ts.Volume)
	for name, m := range ts.Moles {
		c.Moles[name] = m
	}
	for element, m := range ts.Elements {
		c.Elements[element] = m
	}
	return c
}

// Reaction describes one mineral dissolution/precipitation equilibrium
// with an associated first-order kinetic rate.
type Reaction struct {
	Name string
	// Mineral is the canonical name of the solid this reaction forms or
	// consumes.
	Mineral string
	// Aqueous maps canonical aqueous species names to their
	// stoichiometric coefficients on the dissolved side of the
	// equilibrium.
	Aqueous map[string]float64
	// LogK is log10 of the solubility product at reference conditions.
	LogK float64
	// RateConstant scales the kinetic rate [mol/s per mole of reacting
	// capacity].
	RateConstant float64
}

// Touches reports whether the reaction involves any of the named
// minerals. An empty filter matches everything.
func (r *Reaction) Touches(minerals []string) bool {
	if len(minerals) == 0 {
		return true
	}
	for _, m := range minerals {
		if m == r.Mineral {
			return true
		}
	}
	return false
}

// Engine is the chemistry collaborator consumed by the reaction stage.
type Engine interface {
	// ParseFormula returns the elemental composition of a chemical
	// formula as element → stoichiometric count.
	ParseFormula(formula string) (map[string]float64, error)

	// Resolve flexibly maps a species or mineral name (canonical name,
	// formula, or alias; case-insensitive) to a compound record.
	Resolve(name string) (*Compound, bool)

	// Reactions enumerates the reactions applicable to the given state,
	// optionally restricted to reactions touching the named minerals.
	Reactions(state *ThermoState, minerals []string) []*Reaction

	// React integrates reaction kinetics over dt seconds and returns
	// the updated state. The input state is not modified.
	React(state *ThermoState, dt float64, reactions []*Reaction) (*ThermoState, error)
}
