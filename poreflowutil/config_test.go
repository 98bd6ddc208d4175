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

package poreflowutil

import (
	"testing"

	"github.com/lnashier/viper"
	"github.com/mattemangia/poreflow"
)

func TestSimulationConfigDefaults(t *testing.T) {
	// Cfg carries the flag-bound defaults.
	opts, err := SimulationConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := poreflow.DefaultOptions()
	if opts.TotalTime != want.TotalTime {
		t.Errorf("TotalTime = %g; want %g", opts.TotalTime, want.TotalTime)
	}
	if opts.TimeStep != want.TimeStep {
		t.Errorf("TimeStep = %g; want %g", opts.TimeStep, want.TimeStep)
	}
	if opts.FlowAxis != poreflow.AxisX {
		t.Errorf("FlowAxis = %v; want X", opts.FlowAxis)
	}
	if opts.InletPressure != 2 || opts.OutletPressure != 1 {
		t.Errorf("pressures = %g, %g; want 2, 1", opts.InletPressure, opts.OutletPressure)
	}
	if opts.EnableReactions {
		t.Error("EnableReactions should default to false")
	}
	if !opts.UpdateGeometry {
		t.Error("UpdateGeometry should default to true")
	}
	if len(opts.InletConcentrations) != 0 {
		t.Errorf("InletConcentrations = %v; want empty", opts.InletConcentrations)
	}
}

func TestSimulationConfigOverrides(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Simulation.FlowAxis", "z")
	cfg.Set("Simulation.TotalTime", 10.0)
	cfg.Set("Simulation.TimeStep", 0.5)
	cfg.Set("Simulation.EnableReactions", true)
	cfg.Set("Simulation.MineralFilter", []string{"Calcite"})
	cfg.Set("Simulation.InletConcentrations", map[string]interface{}{"Ca+2": 0.5})

	opts, err := SimulationConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.FlowAxis != poreflow.AxisZ {
		t.Errorf("FlowAxis = %v; want Z", opts.FlowAxis)
	}
	if opts.TotalTime != 10 || opts.TimeStep != 0.5 {
		t.Errorf("time config = %g, %g; want 10, 0.5", opts.TotalTime, opts.TimeStep)
	}
	if !opts.EnableReactions {
		t.Error("EnableReactions not applied")
	}
	if len(opts.MineralFilter) != 1 || opts.MineralFilter[0] != "Calcite" {
		t.Errorf("MineralFilter = %v; want [Calcite]", opts.MineralFilter)
	}
	if opts.InletConcentrations["Ca+2"] != 0.5 {
		t.Errorf("InletConcentrations = %v; want Ca+2: 0.5", opts.InletConcentrations)
	}
}

func TestSimulationConfigBadAxis(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Simulation.FlowAxis", "w")
	if _, err := SimulationConfig(cfg); err == nil {
		t.Error("expected an error for an invalid flow axis")
	}
}

func TestGetStringMapFloat(t *testing.T) {
	cfg := viper.New()
	cfg.Set("json", `{"Ca+2": 1.5, "Cl-": 3}`)
	cfg.Set("typed", map[string]interface{}{"Na+": 2.0})
	cfg.Set("bad", `{"Ca+2": "plenty"}`)

	m, err := getStringMapFloat("json", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if m["Ca+2"] != 1.5 || m["Cl-"] != 3 {
		t.Errorf("json map = %v", m)
	}

	m, err = getStringMapFloat("typed", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if m["Na+"] != 2 {
		t.Errorf("typed map = %v", m)
	}

	m, err = getStringMapFloat("missing", cfg)
	if err != nil || len(m) != 0 {
		t.Errorf("missing key: map = %v, err = %v; want empty, nil", m, err)
	}

	if _, err := getStringMapFloat("bad", cfg); err == nil {
		t.Error("expected an error for a non-numeric value")
	}
}

func TestCheckLogFile(t *testing.T) {
	if got := checkLogFile("", "results/out.gob"); got != "results/out.log" {
		t.Errorf("default log file = %q; want results/out.log", got)
	}
	if got := checkLogFile("run.log", "results/out.gob"); got != "run.log" {
		t.Errorf("explicit log file = %q; want run.log", got)
	}
}
