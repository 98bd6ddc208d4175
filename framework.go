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

	"github.com/sirupsen/logrus"

	"github.com/mattemangia/poreflow/chem"
)

// StageFunc is one stage of a timestep. Stages run sequentially in a
// fixed order and communicate only through the simulation State.
type StageFunc func(sim *Simulation) error

// Option configures a Simulation beyond its network and options.
type Option func(sim *Simulation)

// WithEngine sets the chemistry engine used by the reaction stage.
func WithEngine(e chem.Engine) Option {
	return func(sim *Simulation) { sim.Engine = e }
}

// WithLogger sets the logger used for stage warnings and run status.
func WithLogger(l logrus.FieldLogger) Option {
	return func(sim *Simulation) { sim.Log = l }
}

// Simulation holds one run: the immutable network, the configuration, the
// single-owner State and the stage pipeline. A Simulation is not reusable
// across runs.
type Simulation struct {
	Net     *Network
	Options SimulationOptions
	State   *State
	Engine  chem.Engine
	Log     logrus.FieldLogger

	// RunFuncs is the per-timestep stage pipeline in execution order.
	RunFuncs []StageFunc

	// inlet and outlet flag boundary pores by pore index. Pore positions
	// are immutable, so the sets are computed once at initialization; a
	// pore may be in both sets when the network is thin along the flow
	// axis.
	inlet  []bool
	outlet []bool

	// Name-resolution caches for the reaction stage, built lazily and
	// reused across steps so species strings are resolved against the
	// chemistry engine once per run rather than once per pore per step.
	resolved    map[string]*chem.Compound
	composition map[string]map[string]float64
	unresolved  map[string]bool
	molarVolume map[string]float64
	badMineral  map[string]bool
}

// NewSimulation prepares a run on the given network. The network must
// have been initialized with Init. The state is created at t=0 from the
// options' initial conditions and the stage pipeline assembled according
// to the enabled features.
func NewSimulation(net *Network, opts SimulationOptions, settings ...Option) (*Simulation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if net.poreIndex == nil {
		if err := net.Init(); err != nil {
			return nil, err
		}
	}
	sim := &Simulation{
		Net:     net,
		Options: opts,
		Log:     logrus.StandardLogger(),
	}
	for _, set := range settings {
		set(sim)
	}
	if opts.EnableReactions && sim.Engine == nil {
		return nil, fmt.Errorf("poreflow: reactions are enabled but no chemistry engine is configured")
	}

	sim.State = newState(net, &opts)
	sim.findBoundaryPores()

	sim.RunFuncs = []StageFunc{
		Flow(),
		HeatTransfer(),
		SoluteTransport(),
	}
	if opts.EnableReactions {
		sim.RunFuncs = append(sim.RunFuncs, Reactions())
	}
	if opts.UpdateGeometry {
		sim.RunFuncs = append(sim.RunFuncs, UpdateGeometry(), RecordPermeability())
	}
	return sim, nil
}

// findBoundaryPores classifies pores as inlets and outlets along the
// configured flow axis. The tolerance is the larger of two length units
// and 5 % of the network span along that axis, so thin networks still get
// usable boundary sets; in degenerate networks a pore may be both.
func (sim *Simulation) findBoundaryPores() {
	axis := int(sim.Options.FlowAxis)
	min, max := sim.Net.Bounds()
	span := max[axis] - min[axis]
	tol := 0.05 * span
	if tol < 2 {
		tol = 2
	}
	sim.inlet = make([]bool, len(sim.Net.Pores))
	sim.outlet = make([]bool, len(sim.Net.Pores))
	for i := range sim.Net.Pores {
		v := sim.Net.Pores[i].Pos[axis]
		if v <= min[axis]+tol {
			sim.inlet[i] = true
		}
		if v >= max[axis]-tol {
			sim.outlet[i] = true
		}
	}
}

// poreFluidVolume returns the current fluid volume of the pore in m³.
func (sim *Simulation) poreFluidVolume(i int) float64 {
	vox := sim.Net.VoxelSize
	return sim.State.PoreVolume[i] * vox * vox * vox
}

// throatArea returns the current cross-sectional area of the throat in
// m², from its current (state) radius.
func (sim *Simulation) throatArea(j int) float64 {
	r := sim.State.ThroatRadius[j] * sim.Net.VoxelSize
	return math.Pi * r * r
}

// throatLengthM returns the throat length in meters.
func (sim *Simulation) throatLengthM(j int) float64 {
	return sim.Net.ThroatLength(&sim.Net.Throats[j]) * sim.Net.VoxelSize
}

// endpointIndexes returns the pore indexes of a throat's endpoints.
func (sim *Simulation) endpointIndexes(j int) (int, int) {
	t := &sim.Net.Throats[j]
	i1 := sim.Net.poreIndex[t.Pore1]
	i2 := sim.Net.poreIndex[t.Pore2]
	return i1, i2
}
