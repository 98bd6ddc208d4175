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
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mattemangia/poreflow"
)

const testNetworkJSON = `{
	"voxel_size": 1e-6,
	"pores": [
		{"id": 1, "x": 0, "y": 0, "z": 0, "radius": 2, "volume": 30},
		{"id": 2, "x": 10, "y": 0, "z": 0, "radius": 1.5}
	],
	"throats": [
		{"id": 1, "pore1": 1, "pore2": 2, "radius": 0.8}
	]
}`

func TestReadNetwork(t *testing.T) {
	net, err := ReadNetwork(strings.NewReader(testNetworkJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(net.Pores) != 2 || len(net.Throats) != 1 {
		t.Fatalf("got %d pores, %d throats; want 2, 1", len(net.Pores), len(net.Throats))
	}
	if net.VoxelSize != 1e-6 {
		t.Errorf("VoxelSize = %g; want 1e-6", net.VoxelSize)
	}
	if net.Pores[0].Volume != 30 {
		t.Errorf("explicit volume = %g; want 30", net.Pores[0].Volume)
	}
	// Missing volume is derived from the radius assuming a sphere.
	want := 4.0 / 3.0 * math.Pi * 1.5 * 1.5 * 1.5
	if math.Abs(net.Pores[1].Volume-want) > 1e-12 {
		t.Errorf("derived volume = %g; want %g", net.Pores[1].Volume, want)
	}
	// ReadNetwork initializes the network.
	if _, ok := net.PoreIndex(2); !ok {
		t.Error("network was not initialized")
	}
}

func TestReadNetworkErrors(t *testing.T) {
	if _, err := ReadNetwork(strings.NewReader("{not json")); err == nil {
		t.Error("expected a decode error")
	}
	// A throat referencing a missing pore fails network validation.
	bad := `{"pores": [{"id": 1, "radius": 1}],
		"throats": [{"id": 1, "pore1": 1, "pore2": 99, "radius": 0.5}]}`
	if _, err := ReadNetwork(strings.NewReader(bad)); err == nil {
		t.Error("expected a validation error for a dangling throat")
	}
}

func TestSaveLoadResults(t *testing.T) {
	net, err := ReadNetwork(strings.NewReader(testNetworkJSON))
	if err != nil {
		t.Fatal(err)
	}
	opts := poreflow.DefaultOptions()
	opts.TotalTime = 2
	opts.TimeStep = 1
	opts.OutputInterval = 1
	res, err := poreflow.Solve(net, opts, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := SaveResults(&buf, res); err != nil {
		t.Fatal(err)
	}
	got, err := LoadResults(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Steps != res.Steps || got.Converged != res.Converged {
		t.Errorf("round trip: steps %d/%v; want %d/%v",
			got.Steps, got.Converged, res.Steps, res.Converged)
	}
	if len(got.Snapshots) != len(res.Snapshots) {
		t.Fatalf("round trip: %d snapshots; want %d", len(got.Snapshots), len(res.Snapshots))
	}
	last := got.Snapshots[len(got.Snapshots)-1]
	if last.Time != 2 {
		t.Errorf("final snapshot time = %g; want 2", last.Time)
	}
}
