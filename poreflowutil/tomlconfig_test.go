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
	"os"
	"path/filepath"
	"testing"

	"github.com/mattemangia/poreflow"
)

const testConfigTOML = `
NetworkFile = "testdata/network.json"
OutputFile = "out/results.gob"

[Simulation]
TotalTime = 120.0
TimeStep = 0.5
FlowAxis = "Y"
OutletPressure = 0.0
EnableReactions = true
MineralFilter = ["Calcite", "Gypsum"]
UpdateGeometry = true

[Simulation.InletConcentrations]
"Ca+2" = 0.4
`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poreflow.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadConfigFile(t *testing.T) {
	c, err := ReadConfigFile(writeTestConfig(t, testConfigTOML))
	if err != nil {
		t.Fatal(err)
	}
	if c.NetworkFile != "testdata/network.json" {
		t.Errorf("NetworkFile = %q", c.NetworkFile)
	}
	if c.LogFile != "out/results.log" {
		t.Errorf("LogFile = %q; want out/results.log", c.LogFile)
	}

	opts, err := c.Options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.TotalTime != 120 || opts.TimeStep != 0.5 {
		t.Errorf("time config = %g, %g; want 120, 0.5", opts.TotalTime, opts.TimeStep)
	}
	if opts.FlowAxis != poreflow.AxisY {
		t.Errorf("FlowAxis = %v; want Y", opts.FlowAxis)
	}
	// An explicit 0 must survive even though 0 is the "unset" marker for
	// most fields.
	if opts.OutletPressure != 0 {
		t.Errorf("OutletPressure = %g Pa; want 0", opts.OutletPressure)
	}
	// Unset fields keep their defaults.
	if opts.InletPressure != 2 {
		t.Errorf("InletPressure = %g Pa; want the default 2", opts.InletPressure)
	}
	if opts.Viscosity != 1e-3 {
		t.Errorf("Viscosity = %g; want the default 1e-3", opts.Viscosity)
	}
	if !opts.EnableReactions {
		t.Error("EnableReactions not applied")
	}
	if opts.InletConcentrations["Ca+2"] != 0.4 {
		t.Errorf("InletConcentrations = %v", opts.InletConcentrations)
	}
}

func TestReadConfigFileErrors(t *testing.T) {
	if _, err := ReadConfigFile("does-not-exist.toml"); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := ReadConfigFile(writeTestConfig(t, `OutputFile = "x.gob"`)); err == nil {
		t.Error("expected an error for a config without NetworkFile")
	}
	c, err := ReadConfigFile(writeTestConfig(t, "NetworkFile = \"n.json\"\n[Simulation]\nFlowAxis = \"q\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Options(); err == nil {
		t.Error("expected an error for an invalid flow axis")
	}
}
