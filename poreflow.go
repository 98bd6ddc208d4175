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

// Package poreflow implements a pore-network reactive-transport simulator:
// a coupled flow, heat, solute-transport and chemical-reaction time-marching
// engine operating on a discrete network of pores and throats. Mineral
// precipitation and dissolution feed back into the network geometry, and
// through it into the hydraulic conductances seen by the flow solver on the
// next timestep.
//
// The simulator is deliberately sequential: one call to Solve owns its
// State and Results, runs each stage of a timestep in a fixed order
// (flow, heat, transport, reaction, geometry), and holds no process-wide
// mutable state. Callers that need a responsive UI are expected to invoke
// Solve from their own worker goroutine.
package poreflow

// Version gives the version number.
const Version = "0.3.1"
