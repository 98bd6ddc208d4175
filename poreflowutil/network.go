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
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mattemangia/poreflow"
)

// networkJSON is the on-disk network description. Lengths, radii and
// volumes are in network length units (voxels); voxel_size gives the
// physical size of one unit in meters.
type networkJSON struct {
	VoxelSize float64      `json:"voxel_size"`
	Pores     []poreJSON   `json:"pores"`
	Throats   []throatJSON `json:"throats"`
}

type poreJSON struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
	// Volume is optional; a missing or zero volume is filled in from the
	// radius assuming a spherical body.
	Volume float64 `json:"volume,omitempty"`
}

type throatJSON struct {
	ID     int     `json:"id"`
	Pore1  int     `json:"pore1"`
	Pore2  int     `json:"pore2"`
	Radius float64 `json:"radius"`
}

// ReadNetwork decodes a JSON pore network description and returns an
// initialized network ready for simulation.
func ReadNetwork(r io.Reader) (*poreflow.Network, error) {
	var nj networkJSON
	d := json.NewDecoder(r)
	if err := d.Decode(&nj); err != nil {
		return nil, fmt.Errorf("poreflowutil: decoding network: %v", err)
	}
	net := &poreflow.Network{
		VoxelSize: nj.VoxelSize,
		Pores:     make([]poreflow.Pore, len(nj.Pores)),
		Throats:   make([]poreflow.Throat, len(nj.Throats)),
	}
	for i, p := range nj.Pores {
		v := p.Volume
		if v <= 0 {
			v = 4.0 / 3.0 * math.Pi * p.Radius * p.Radius * p.Radius
		}
		net.Pores[i] = poreflow.Pore{
			ID:     p.ID,
			Pos:    [3]float64{p.X, p.Y, p.Z},
			Radius: p.Radius,
			Volume: v,
		}
	}
	for j, t := range nj.Throats {
		net.Throats[j] = poreflow.Throat{
			ID:     t.ID,
			Pore1:  t.Pore1,
			Pore2:  t.Pore2,
			Radius: t.Radius,
		}
	}
	if err := net.Init(); err != nil {
		return nil, err
	}
	return net, nil
}

// LoadNetwork reads a network from the named JSON file.
func LoadNetwork(filename string) (*poreflow.Network, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("poreflowutil: opening network file: %v", err)
	}
	defer f.Close()
	return ReadNetwork(f)
}
