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

func TestNetworkInit(t *testing.T) {
	net := chainNetwork(3, 5, 2, 30, 1, 0)
	if net.VoxelSize != DefaultVoxelSize {
		t.Errorf("VoxelSize = %g; want the %g default", net.VoxelSize, DefaultVoxelSize)
	}
	for id := 1; id <= 3; id++ {
		if _, ok := net.PoreIndex(id); !ok {
			t.Errorf("pore id %d not indexed", id)
		}
	}
	if _, ok := net.ThroatIndex(2); !ok {
		t.Error("throat id 2 not indexed")
	}
	if _, ok := net.PoreIndex(99); ok {
		t.Error("unknown pore id unexpectedly indexed")
	}
}

func TestNetworkInitErrors(t *testing.T) {
	empty := &Network{}
	if err := empty.Init(); err == nil {
		t.Error("expected an error for a network with no pores")
	}

	dup := &Network{Pores: []Pore{{ID: 1}, {ID: 1}}}
	if err := dup.Init(); err == nil {
		t.Error("expected an error for duplicate pore ids")
	}

	dangling := &Network{
		Pores:   []Pore{{ID: 1, Radius: 1}},
		Throats: []Throat{{ID: 1, Pore1: 1, Pore2: 2, Radius: 0.5}},
	}
	if err := dangling.Init(); err == nil {
		t.Error("expected an error for a throat referencing a missing pore")
	}
}

func TestThroatLength(t *testing.T) {
	net := chainNetwork(2, 10, 2, 30, 1, 0)
	if l := net.ThroatLength(&net.Throats[0]); l != 10 {
		t.Errorf("throat length = %g; want 10", l)
	}

	// Coincident endpoints are floored at one length unit so the throat
	// never gets infinite conductance.
	coincident := &Network{
		Pores: []Pore{
			{ID: 1, Pos: [3]float64{3, 3, 3}, Radius: 1},
			{ID: 2, Pos: [3]float64{3, 3, 3}, Radius: 1},
		},
		Throats: []Throat{{ID: 1, Pore1: 1, Pore2: 2, Radius: 0.5}},
	}
	if err := coincident.Init(); err != nil {
		t.Fatal(err)
	}
	if l := coincident.ThroatLength(&coincident.Throats[0]); l != 1 {
		t.Errorf("coincident throat length = %g; want 1", l)
	}
}

func TestBounds(t *testing.T) {
	net := chainNetwork(3, 5, 2, 30, 1, 0)
	min, max := net.Bounds()
	if min[0] != 0 || max[0] != 10 {
		t.Errorf("X bounds = [%g, %g]; want [0, 10]", min[0], max[0])
	}
	if min[1] != 0 || max[1] != 0 {
		t.Errorf("Y bounds = [%g, %g]; want [0, 0]", min[1], max[1])
	}
}

func TestClone(t *testing.T) {
	net := chainNetwork(2, 10, 2, 30, 1, 0)
	c, err := net.Clone()
	if err != nil {
		t.Fatal(err)
	}
	c.Pores[0].Radius = 99
	if net.Pores[0].Radius == 99 {
		t.Error("Clone shares pore storage with its source")
	}
	if _, ok := c.PoreIndex(2); !ok {
		t.Error("clone was not re-initialized")
	}
}
