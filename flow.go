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
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// Flow returns the stage that solves the pressure field and recomputes
// throat flow rates from the current throat radii.
//
// Every open throat contributes a Hagen–Poiseuille conductance
// g = πr⁴/(8μL) to a symmetric Laplacian-style system solved by conjugate
// gradients, warm-started from the previous step's pressures. Inlet and
// outlet pores carry known Dirichlet pressures; their contributions move
// to the right-hand side so the assembled system stays symmetric, and
// conductances are normalized by the largest one so the residual
// tolerance is meaningful at any physical length scale.
func Flow() StageFunc {
	return func(sim *Simulation) error {
		n := len(sim.Net.Pores)
		s := sim.State
		opts := &sim.Options

		g := make([]float64, len(sim.Net.Throats))
		gref := 0.0
		for j := range sim.Net.Throats {
			g[j] = sim.throatConductance(j) // 0 when closed, not an error
			if g[j] > gref {
				gref = g[j]
			}
		}

		// A pore that is both inlet and outlet ends up clamped to the
		// outlet pressure.
		p := s.Pressure
		boundary := make([]bool, n)
		for i := 0; i < n; i++ {
			if sim.outlet[i] {
				boundary[i] = true
				p[i] = opts.OutletPressure
			} else if sim.inlet[i] {
				boundary[i] = true
				p[i] = opts.InletPressure
			}
		}

		if gref > 0 {
			A := sparse.ZerosSparse(n, n)
			b := make([]float64, n)
			for j := range sim.Net.Throats {
				if g[j] == 0 {
					continue
				}
				gh := g[j] / gref
				i1, i2 := sim.endpointIndexes(j)
				for _, pair := range [2][2]int{{i1, i2}, {i2, i1}} {
					i, k := pair[0], pair[1]
					if boundary[i] {
						continue
					}
					A.AddVal(gh, i, i)
					if boundary[k] {
						b[i] += gh * p[k]
					} else {
						A.AddVal(-gh, i, k)
					}
				}
			}
			for i := 0; i < n; i++ {
				if boundary[i] {
					A.Set(1, i, i)
					b[i] = p[i]
				}
			}
			conjugateGradient(A, b, p, opts.Tolerance, opts.maxIterations())
		}

		for j := range sim.Net.Throats {
			if g[j] == 0 {
				s.FlowRate[j] = 0
				continue
			}
			i1, i2 := sim.endpointIndexes(j)
			s.FlowRate[j] = g[j] * (p[i1] - p[i2])
		}
		return nil
	}
}

// throatConductance returns the Hagen–Poiseuille conductance of throat j
// in m³/(Pa·s) from its current radius, or 0 when the throat is closed.
func (sim *Simulation) throatConductance(j int) float64 {
	rUnits := sim.State.ThroatRadius[j]
	if rUnits <= 0 {
		return 0
	}
	r := rUnits * sim.Net.VoxelSize
	l := sim.throatLengthM(j)
	return math.Pi * r * r * r * r / (8 * sim.Options.Viscosity * l)
}

// matVec computes y = A·x over the stored nonzeros.
func matVec(A *sparse.SparseArray, x, y []float64) {
	for i := range y {
		y[i] = 0
	}
	for idx, v := range A.Elements {
		if v == 0 {
			continue
		}
		ij := A.IndexNd(idx)
		y[ij[0]] += v * x[ij[1]]
	}
}

// conjugateGradient solves A·x = b in place, starting from the current
// contents of x. If the search-direction curvature pᵀAp collapses to
// numerical zero the iteration stops early with the best iterate; that
// reflects a singular or disconnected subsystem, not an error.
func conjugateGradient(A *sparse.SparseArray, b, x []float64, tol float64, maxIter int) {
	n := len(b)
	if tol <= 0 {
		tol = 1e-8
	}
	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)

	matVec(A, x, r)
	floats.Scale(-1, r)
	floats.Add(r, b) // r = b - A·x
	copy(p, r)
	rs := floats.Dot(r, r)
	if math.Sqrt(rs) < tol {
		return
	}

	for iter := 0; iter < maxIter; iter++ {
		matVec(A, p, ap)
		pap := floats.Dot(p, ap)
		if math.Abs(pap) < 1e-300 {
			return
		}
		alpha := rs / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)
		rsNew := floats.Dot(r, r)
		if math.Sqrt(rsNew) < tol {
			return
		}
		beta := rsNew / rs
		for i := range p {
			p[i] = r[i] + beta*p[i]
		}
		rs = rsNew
	}
}
