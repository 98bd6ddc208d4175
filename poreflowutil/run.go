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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/mattemangia/poreflow"
	"github.com/mattemangia/poreflow/chem/carbkin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Run loads the network from networkFile, runs the configured simulation
// and saves the results to outputFile. Log output goes to the given
// command's output stream and to logFile.
//
// cobraCommand is the cobra.Command instance where Run is called from.
func Run(cobraCommand *cobra.Command, networkFile, outputFile, logFile string,
	voxelSize float64, opts poreflow.SimulationOptions) error {

	startTime := time.Now()

	logfile, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("poreflow: problem creating log file: %v", err)
	}
	defer logfile.Close()

	log := logrus.New()
	log.SetOutput(io.MultiWriter(cobraCommand.OutOrStdout(), logfile))

	log.WithField("file", networkFile).Info("Reading network...")
	net, err := LoadNetwork(networkFile)
	if err != nil {
		return err
	}
	if voxelSize > 0 {
		net.VoxelSize = voxelSize
	}
	log.WithFields(logrus.Fields{
		"pores":   len(net.Pores),
		"throats": len(net.Throats),
	}).Info("Network loaded")

	settings := []poreflow.Option{poreflow.WithLogger(log)}
	if opts.EnableReactions {
		settings = append(settings, poreflow.WithEngine(carbkin.New()))
	}
	sim, err := poreflow.NewSimulation(net, opts, settings...)
	if err != nil {
		return err
	}

	// Progress is throttled so that short timesteps do not flood the log.
	progressTick := time.Tick(2 * time.Second)
	progress := func(frac float64, msg string) {
		select {
		case <-progressTick:
			log.Infof("%3.0f%% %s", frac*100, msg)
		default:
		}
	}

	log.Info("Starting simulation...")
	res := sim.Solve(progress)
	if !res.Converged {
		log.Warn("Simulation stopped before reaching the configured total time")
	}
	logSummary(log, res)

	if err := SaveResultsFile(outputFile, res); err != nil {
		return err
	}
	log.WithField("file", outputFile).Info("Results saved")
	log.Infof("Elapsed time: %f seconds", time.Since(startTime).Seconds())
	if !res.Converged {
		return fmt.Errorf("poreflow: simulation aborted at step %d; see the log for details", res.Steps)
	}
	return nil
}

// logSummary reports run statistics: the permeability evolution and the
// distribution of the final pressure and temperature fields.
func logSummary(log logrus.FieldLogger, res *poreflow.Results) {
	log.WithFields(logrus.Fields{
		"steps":     res.Steps,
		"snapshots": len(res.Snapshots),
	}).Info("Simulation finished")
	log.WithFields(logrus.Fields{
		"initial_mD": res.InitialPermeability,
		"final_mD":   res.FinalPermeability,
		"change":     fmt.Sprintf("%+.2f%%", res.PermeabilityChange*100),
	}).Info("Permeability")

	if len(res.Snapshots) == 0 {
		return
	}
	final := res.Snapshots[len(res.Snapshots)-1]
	var p, t stats.Stats
	for i := range final.Pressure {
		p.Update(final.Pressure[i])
		t.Update(final.Temperature[i])
	}
	log.WithFields(logrus.Fields{
		"mean": p.Mean(),
		"min":  p.Min(),
		"max":  p.Max(),
	}).Info("Final pressure [Pa]")
	log.WithFields(logrus.Fields{
		"mean": t.Mean(),
		"min":  t.Min(),
		"max":  t.Max(),
	}).Info("Final temperature [°C]")
}
