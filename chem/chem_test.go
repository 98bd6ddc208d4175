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

package chem

import (
	"math"
	"testing"
)

func TestResolveMolarVolume(t *testing.T) {
	explicit := &Compound{Name: "Calcite", MolarVolume: 3.6934e-5,
		Density: 2710, MolecularWeight: 0.100087}
	vm, ok := explicit.ResolveMolarVolume()
	if !ok || vm != 3.6934e-5 {
		t.Errorf("explicit molar volume = %g, %v; want 3.6934e-5, true", vm, ok)
	}

	derived := &Compound{Name: "Quartz", Density: 2648, MolecularWeight: 0.060084}
	vm, ok = derived.ResolveMolarVolume()
	want := 0.060084 / 2648
	if !ok || math.Abs(vm-want) > 1e-12 {
		t.Errorf("derived molar volume = %g, %v; want %g, true", vm, ok, want)
	}

	if _, ok := (&Compound{Name: "mystery"}).ResolveMolarVolume(); ok {
		t.Error("compound with no data resolved a molar volume")
	}
}

func TestThermoStateAddClone(t *testing.T) {
	ts := NewThermoState(25, 101325, 1e-6)
	ca := &Compound{Name: "Ca+2"}
	ts.Add(ca, 2e-3, map[string]float64{"Ca": 1})
	ts.Add(ca, 1e-3, map[string]float64{"Ca": 1})
	if ts.Moles["Ca+2"] != 3e-3 {
		t.Errorf("Moles[Ca+2] = %g; want 3e-3", ts.Moles["Ca+2"])
	}
	if ts.Elements["Ca"] != 3e-3 {
		t.Errorf("Elements[Ca] = %g; want 3e-3", ts.Elements["Ca"])
	}

	c := ts.Clone()
	c.Moles["Ca+2"] = 0
	c.Elements["Ca"] = 0
	if ts.Moles["Ca+2"] != 3e-3 || ts.Elements["Ca"] != 3e-3 {
		t.Error("Clone shares maps with its source")
	}
}

func TestReactionTouches(t *testing.T) {
	r := &Reaction{Mineral: "Calcite"}
	if !r.Touches(nil) {
		t.Error("empty filter should match everything")
	}
	if !r.Touches([]string{"Halite", "Calcite"}) {
		t.Error("filter containing the mineral should match")
	}
	if r.Touches([]string{"Halite"}) {
		t.Error("filter without the mineral should not match")
	}
}
