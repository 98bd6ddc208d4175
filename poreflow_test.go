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
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

func different(a, b, tolerance float64) bool {
	if math.Abs(a-b) > tolerance*math.Abs(b) && math.Abs(a-b) > tolerance {
		return true
	}
	return false
}

// chainNetwork returns an initialized network of n pores spaced along X,
// connected in a chain by equal-radius throats.
func chainNetwork(n int, spacing, poreRadius, poreVolume, throatRadius, vox float64) *Network {
	net := &Network{VoxelSize: vox}
	for i := 0; i < n; i++ {
		net.Pores = append(net.Pores, Pore{
			ID:     i + 1,
			Pos:    [3]float64{float64(i) * spacing, 0, 0},
			Radius: poreRadius,
			Volume: poreVolume,
		})
	}
	for i := 0; i < n-1; i++ {
		net.Throats = append(net.Throats, Throat{
			ID:     i + 1,
			Pore1:  i + 1,
			Pore2:  i + 2,
			Radius: throatRadius,
		})
	}
	if err := net.Init(); err != nil {
		panic(err)
	}
	return net
}

// quietLogger keeps expected warnings and errors out of test output.
func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
