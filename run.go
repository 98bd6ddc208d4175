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

	"github.com/sirupsen/logrus"
)

// ProgressFunc receives the run fraction in [0, 1] and a human-readable
// status message once per timestep. A nil ProgressFunc is allowed.
type ProgressFunc func(fraction float64, msg string)

// Solve runs a complete simulation on the network and returns the
// aggregated results. It is a convenience wrapper around NewSimulation
// and Simulation.Solve; use the latter pair directly to hold on to the
// Simulation.
//
// Configuration errors (a non-positive timestep, reactions enabled
// without an engine, a malformed network) are returned as errors before
// any stepping happens. A failure inside a timestep does not produce an
// error: the run stops, the failure is logged with the simulated time at
// which it occurred, and the Results come back with Converged == false
// and every snapshot gathered so far.
func Solve(net *Network, opts SimulationOptions, progress ProgressFunc, settings ...Option) (*Results, error) {
	sim, err := NewSimulation(net, opts, settings...)
	if err != nil {
		return nil, err
	}
	return sim.Solve(progress), nil
}

// Solve runs the time-marching loop to completion or failure.
func (sim *Simulation) Solve(progress ProgressFunc) *Results {
	opts := &sim.Options
	s := sim.State

	s.Permeability = Permeability(sim.Net, s)
	res := &Results{
		InitialPermeability: s.Permeability,
		Snapshots:           []*State{s.Clone()},
	}

	// Guard against OutputInterval <= 0: only the initial and final
	// states are then recorded.
	nextOutput := opts.OutputInterval

	elapsed := 0.0
	for elapsed < opts.TotalTime {
		elapsed += opts.TimeStep
		res.Steps++

		if err := sim.step(); err != nil {
			sim.Log.WithFields(logrus.Fields{
				"time": elapsed,
				"step": res.Steps,
			}).Errorf("poreflow: aborting run: %v", err)
			res.Converged = false
			return res
		}
		s.Time = elapsed

		if progress != nil {
			frac := elapsed / opts.TotalTime
			if frac > 1 {
				frac = 1
			}
			progress(frac, fmt.Sprintf("Step %d: t=%.6g s", res.Steps, elapsed))
		}

		if opts.OutputInterval > 0 {
			for elapsed >= nextOutput-1e-9 {
				res.Snapshots = append(res.Snapshots, s.Clone())
				nextOutput += opts.OutputInterval
			}
		}
	}

	// The final state closes the snapshot list unless the last interval
	// boundary already captured it.
	if last := res.Snapshots[len(res.Snapshots)-1]; last.Time != s.Time {
		res.Snapshots = append(res.Snapshots, s.Clone())
	}

	res.Converged = true
	res.FinalPermeability = s.Permeability
	if res.InitialPermeability != 0 {
		res.PermeabilityChange = (res.FinalPermeability - res.InitialPermeability) /
			res.InitialPermeability
	}
	return res
}

// step runs one timestep's stage pipeline, converting panics into
// errors so a blown stage aborts only this run.
func (sim *Simulation) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in timestep: %v", r)
		}
	}()
	for _, f := range sim.RunFuncs {
		if err := f(sim); err != nil {
			return err
		}
	}
	return nil
}
