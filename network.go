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
	"fmt"
	"math"
)

// Pore is one node of the network: a void body with a position, a radius
// and a volume, all in network length units (voxels). Pores are immutable
// during a simulation; the time-varying radius and volume live in State.
type Pore struct {
	ID     int
	Pos    [3]float64 `desc:"Pore body center" units:"voxels"`
	Radius float64    `desc:"Pore body radius" units:"voxels"`
	Volume float64    `desc:"Pore body volume" units:"voxels³"`
}

// Throat is one edge of the network, connecting two pores by their ids.
// Its length is not stored; it is derived from the endpoint positions.
type Throat struct {
	ID     int
	Pore1  int
	Pore2  int
	Radius float64 `desc:"Throat radius" units:"voxels"`
}

// Network is the immutable topology a simulation runs on. VoxelSize
// converts network length units to meters.
//
// Internally the network keeps a table mapping the external pore and
// throat ids to contiguous indexes, built once by Init. All per-pore and
// per-throat state is stored in dense arrays addressed by those indexes;
// the external id remains the stable public handle.
type Network struct {
	Pores     []Pore
	Throats   []Throat
	VoxelSize float64 `desc:"Physical size of one length unit" units:"m"`

	poreIndex   map[int]int
	throatIndex map[int]int
	incident    [][]int // throat indexes touching each pore index
}

// DefaultVoxelSize is used when a network does not specify one.
const DefaultVoxelSize = 1e-6 // m; CT extractions are typically micron-scale

// Init builds the id→index tables and the pore adjacency lists, and
// validates that every throat endpoint refers to an existing pore.
// It must be called before the network is used in a simulation.
func (n *Network) Init() error {
	if len(n.Pores) == 0 {
		return fmt.Errorf("poreflow: network has no pores")
	}
	if n.VoxelSize <= 0 {
		n.VoxelSize = DefaultVoxelSize
	}
	n.poreIndex = make(map[int]int, len(n.Pores))
	for i, p := range n.Pores {
		if _, ok := n.poreIndex[p.ID]; ok {
			return fmt.Errorf("poreflow: duplicate pore id %d", p.ID)
		}
		n.poreIndex[p.ID] = i
	}
	n.throatIndex = make(map[int]int, len(n.Throats))
	n.incident = make([][]int, len(n.Pores))
	for j, t := range n.Throats {
		if _, ok := n.throatIndex[t.ID]; ok {
			return fmt.Errorf("poreflow: duplicate throat id %d", t.ID)
		}
		n.throatIndex[t.ID] = j
		i1, ok := n.poreIndex[t.Pore1]
		if !ok {
			return fmt.Errorf("poreflow: throat %d references missing pore %d", t.ID, t.Pore1)
		}
		i2, ok := n.poreIndex[t.Pore2]
		if !ok {
			return fmt.Errorf("poreflow: throat %d references missing pore %d", t.ID, t.Pore2)
		}
		n.incident[i1] = append(n.incident[i1], j)
		if i2 != i1 {
			n.incident[i2] = append(n.incident[i2], j)
		}
	}
	return nil
}

// PoreIndex returns the contiguous index for the given external pore id.
func (n *Network) PoreIndex(id int) (int, bool) {
	i, ok := n.poreIndex[id]
	return i, ok
}

// ThroatIndex returns the contiguous index for the given external throat id.
func (n *Network) ThroatIndex(id int) (int, bool) {
	j, ok := n.throatIndex[id]
	return j, ok
}

// ThroatLength returns the Euclidean distance between the throat's
// endpoint pores in length units, floored at one length unit so that
// coincident endpoints never produce a zero-length (infinite-conductance)
// throat.
func (n *Network) ThroatLength(t *Throat) float64 {
	p1 := &n.Pores[n.poreIndex[t.Pore1]]
	p2 := &n.Pores[n.poreIndex[t.Pore2]]
	dx := p1.Pos[0] - p2.Pos[0]
	dy := p1.Pos[1] - p2.Pos[1]
	dz := p1.Pos[2] - p2.Pos[2]
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if l < 1 {
		l = 1
	}
	return l
}

// Bounds returns the axis-aligned bounding box of the pore centers in
// length units.
func (n *Network) Bounds() (min, max [3]float64) {
	for k := 0; k < 3; k++ {
		min[k] = math.Inf(1)
		max[k] = math.Inf(-1)
	}
	for i := range n.Pores {
		for k := 0; k < 3; k++ {
			v := n.Pores[i].Pos[k]
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return min, max
}

// MaxPoreRadius returns the largest original pore radius in length units.
func (n *Network) MaxPoreRadius() float64 {
	var r float64
	for i := range n.Pores {
		if n.Pores[i].Radius > r {
			r = n.Pores[i].Radius
		}
	}
	return r
}

// ImportTopology replaces n's pores and throats with deep copies of src's,
// along with its length scale, and rebuilds the index tables. It is the
// supported way to move a topology between network instances.
func (n *Network) ImportTopology(src *Network) error {
	n.Pores = make([]Pore, len(src.Pores))
	copy(n.Pores, src.Pores)
	n.Throats = make([]Throat, len(src.Throats))
	copy(n.Throats, src.Throats)
	n.VoxelSize = src.VoxelSize
	return n.Init()
}

// Clone returns a deep copy of the network with its own index tables.
func (n *Network) Clone() (*Network, error) {
	c := new(Network)
	if err := c.ImportTopology(n); err != nil {
		return nil, err
	}
	return c, nil
}
