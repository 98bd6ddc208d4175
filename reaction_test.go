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
	"errors"
	"strings"
	"testing"

	"github.com/mattemangia/poreflow/chem"
)

const calciteVm = 3.6934e-5 // m³/mol

// fakeEngine precipitates 10 % of the dissolved calcium into calcite on
// every React call. It lets the reaction stage be tested without real
// kinetics.
type fakeEngine struct {
	reactErr error
}

var fakeCompounds = []*chem.Compound{
	{Name: "Ca", Formula: "Ca", Phase: chem.Aqueous, MolecularWeight: 0.040078},
	{Name: "Calcite", Formula: "CaCO3", Phase: chem.Solid, MolarVolume: calciteVm},
	{Name: "H2O", Formula: "H2O", Phase: chem.Aqueous, Density: 997, MolecularWeight: 0.018015},
}

func (e *fakeEngine) ParseFormula(string) (map[string]float64, error) {
	return map[string]float64{"X": 1}, nil
}

func (e *fakeEngine) Resolve(name string) (*chem.Compound, bool) {
	for _, c := range fakeCompounds {
		if strings.EqualFold(name, c.Name) {
			return c, true
		}
	}
	return nil, false
}

func (e *fakeEngine) Reactions(ts *chem.ThermoState, minerals []string) []*chem.Reaction {
	if ts.Moles["Ca"] <= 0 {
		return nil
	}
	return []*chem.Reaction{{Name: "fake precipitation", Mineral: "Calcite"}}
}

func (e *fakeEngine) React(ts *chem.ThermoState, dt float64, rxns []*chem.Reaction) (*chem.ThermoState, error) {
	if e.reactErr != nil {
		return nil, e.reactErr
	}
	out := ts.Clone()
	if len(rxns) == 0 {
		return out, nil
	}
	ca := out.Moles["Ca"]
	out.Moles["Ca"] = ca * 0.9
	out.Moles["Calcite"] += ca * 0.1
	return out, nil
}

func reactionTestSim(t *testing.T, engine chem.Engine, mutate func(*SimulationOptions)) *Simulation {
	t.Helper()
	net := chainNetwork(2, 10, 2, 1000, 1, 1e-6)
	opts := DefaultOptions()
	opts.EnableReactions = true
	opts.InitialConcentrations = map[string]float64{"Ca": 1000}
	if mutate != nil {
		mutate(&opts)
	}
	sim, err := NewSimulation(net, opts, WithEngine(engine), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func TestReactionPrecipitation(t *testing.T) {
	sim := reactionTestSim(t, &fakeEngine{}, nil)
	s := sim.State

	if err := Reactions()(sim); err != nil {
		t.Fatal(err)
	}

	// 1000 mol/m³ in 1e-15 m³ of fluid is 1e-12 mol; 10 % precipitates.
	if different(s.Concentrations["Ca"][0], 900, 1e-9) {
		t.Errorf("Ca concentration = %g mol/m³; want 900", s.Concentrations["Ca"][0])
	}
	col, ok := s.Minerals["Calcite"]
	if !ok {
		t.Fatal("precipitated mineral did not get a column")
	}
	wantVol := 0.1 * 1e-12 * calciteVm
	if different(col[0], wantVol, 1e-9) {
		t.Errorf("calcite volume = %g m³; want %g", col[0], wantVol)
	}
	wantRate := 0.1 * 1e-12 / sim.Options.TimeStep
	if different(s.ReactionRate[0], wantRate, 1e-9) {
		t.Errorf("reaction rate = %g mol/s; want %g", s.ReactionRate[0], wantRate)
	}
}

func TestReactionMineralFilter(t *testing.T) {
	sim := reactionTestSim(t, &fakeEngine{}, func(o *SimulationOptions) {
		o.MineralFilter = []string{"Gypsum"}
	})
	s := sim.State

	if err := Reactions()(sim); err != nil {
		t.Fatal(err)
	}
	// Calcite is not on the allow-list, so its precipitate is not
	// recorded as solid volume.
	if _, ok := s.Minerals["Calcite"]; ok {
		t.Error("filtered mineral got a column anyway")
	}
}

func TestReactionUnknownSpeciesSkipped(t *testing.T) {
	sim := reactionTestSim(t, &fakeEngine{}, func(o *SimulationOptions) {
		o.InitialConcentrations["Mystery"] = 5
	})
	s := sim.State

	if err := Reactions()(sim); err != nil {
		t.Fatal(err)
	}
	for i, c := range s.Concentrations["Mystery"] {
		if c != 5 {
			t.Errorf("pore %d: unknown species concentration changed to %g", i, c)
		}
	}
	// The known species still reacts.
	if different(s.Concentrations["Ca"][0], 900, 1e-9) {
		t.Errorf("Ca concentration = %g mol/m³; want 900", s.Concentrations["Ca"][0])
	}
}

func TestReactionEngineError(t *testing.T) {
	sim := reactionTestSim(t, &fakeEngine{reactErr: errors.New("thermodynamics refused")}, nil)
	if err := Reactions()(sim); err == nil {
		t.Error("expected the engine failure to propagate")
	}
}

func TestReactionsRequireEngine(t *testing.T) {
	net := chainNetwork(2, 10, 2, 1000, 1, 1e-6)
	opts := DefaultOptions()
	opts.EnableReactions = true
	if _, err := NewSimulation(net, opts); err == nil {
		t.Error("expected an error for reactions without an engine")
	}
}
