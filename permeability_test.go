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

import "testing"

func TestPermeabilityPositive(t *testing.T) {
	net := chainNetwork(3, 5, 2, 30, 1, 1e-6)
	sim, err := NewSimulation(net, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	k := Permeability(net, sim.State)
	if k <= 0 {
		t.Errorf("permeability = %g mD; want positive", k)
	}
}

// Precipitation shrinks pores; the Kozeny–Carman estimate must not rise.
func TestPermeabilityDecreasesWithPrecipitation(t *testing.T) {
	r := radiusFromSphereVolume(1000)
	net := chainNetwork(3, 20, r, 1000, 1, 1e-6)
	opts := DefaultOptions()
	opts.UpdateGeometry = true
	sim, err := NewSimulation(net, opts)
	if err != nil {
		t.Fatal(err)
	}
	before := Permeability(net, sim.State)

	sim.State.Minerals["Calcite"] = []float64{500e-18, 500e-18, 500e-18}
	if err := UpdateGeometry()(sim); err != nil {
		t.Fatal(err)
	}
	after := Permeability(net, sim.State)

	if after >= before {
		t.Errorf("permeability rose from %g to %g mD after precipitation", before, after)
	}
	if after <= 0 {
		t.Errorf("permeability = %g mD after precipitation; want positive", after)
	}
}

func TestPermeabilityDegenerate(t *testing.T) {
	net := chainNetwork(2, 10, 2, 30, 1, 1e-6)
	sim, err := NewSimulation(net, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// No surface area means no Kozeny-Carman denominator; report 0
	// rather than a non-finite value.
	for i := range sim.State.PoreRadius {
		sim.State.PoreRadius[i] = 0
	}
	if k := Permeability(net, sim.State); k != 0 {
		t.Errorf("degenerate permeability = %g mD; want 0", k)
	}
}

func TestRecordPermeabilityStage(t *testing.T) {
	net := chainNetwork(3, 5, 2, 30, 1, 1e-6)
	sim, err := NewSimulation(net, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if err := RecordPermeability()(sim); err != nil {
		t.Fatal(err)
	}
	if sim.State.Permeability != Permeability(net, sim.State) {
		t.Error("RecordPermeability did not store the current permeability")
	}
}
