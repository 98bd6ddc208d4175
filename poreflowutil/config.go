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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/mattemangia/poreflow"
	"github.com/spf13/cast"
)

// SimulationConfig unmarshals a viper configuration into simulation
// options, validating the fields that cannot be checked later.
func SimulationConfig(cfg *viper.Viper) (poreflow.SimulationOptions, error) {
	o := poreflow.DefaultOptions()

	axis, err := poreflow.ParseAxis(cfg.GetString("Simulation.FlowAxis"))
	if err != nil {
		return o, fmt.Errorf("Simulation.FlowAxis: %v", err)
	}
	o.FlowAxis = axis

	o.TotalTime = cfg.GetFloat64("Simulation.TotalTime")
	o.TimeStep = cfg.GetFloat64("Simulation.TimeStep")
	o.OutputInterval = cfg.GetFloat64("Simulation.OutputInterval")
	o.Tolerance = cfg.GetFloat64("Simulation.Tolerance")
	o.MaxIterations = cfg.GetInt("Simulation.MaxIterations")
	o.InletPressure = cfg.GetFloat64("Simulation.InletPressure")
	o.OutletPressure = cfg.GetFloat64("Simulation.OutletPressure")
	o.Viscosity = cfg.GetFloat64("Simulation.Viscosity")
	o.Density = cfg.GetFloat64("Simulation.Density")
	o.InitialTemperature = cfg.GetFloat64("Simulation.InitialTemperature")
	o.InletTemperature = cfg.GetFloat64("Simulation.InletTemperature")
	o.OutletTemperature = cfg.GetFloat64("Simulation.OutletTemperature")
	o.ThermalConductivity = cfg.GetFloat64("Simulation.ThermalConductivity")
	o.SpecificHeat = cfg.GetFloat64("Simulation.SpecificHeat")
	o.Diffusivity = cfg.GetFloat64("Simulation.Diffusivity")
	o.EnableReactions = cfg.GetBool("Simulation.EnableReactions")
	o.MineralFilter = cfg.GetStringSlice("Simulation.MineralFilter")
	o.UpdateGeometry = cfg.GetBool("Simulation.UpdateGeometry")
	o.MinPoreRadius = cfg.GetFloat64("Simulation.MinPoreRadius")
	o.MinThroatRadius = cfg.GetFloat64("Simulation.MinThroatRadius")

	maps := []struct {
		name string
		dst  *map[string]float64
	}{
		{"Simulation.InitialConcentrations", &o.InitialConcentrations},
		{"Simulation.InletConcentrations", &o.InletConcentrations},
		{"Simulation.InitialMinerals", &o.InitialMinerals},
	}
	for _, m := range maps {
		v, err := getStringMapFloat(m.name, cfg)
		if err != nil {
			return o, err
		}
		*m.dst = v
	}
	return o, nil
}

// getStringMapFloat returns a map[string]float64 from a viper
// configuration, accounting for the fact that it might be a json object
// if it was set from a command line argument.
func getStringMapFloat(varName string, cfg *viper.Viper) (map[string]float64, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]float64{}, nil
	case map[string]float64:
		return v, nil
	case map[string]interface{}:
		o := make(map[string]float64, len(v))
		for k, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, fmt.Errorf("poreflowutil: parsing config variable %s[%s]: %v", varName, k, err)
			}
			o[k] = f
		}
		return o, nil
	case string:
		if v == "" {
			return map[string]float64{}, nil
		}
		b := bytes.NewBuffer(([]byte)(v))
		d := json.NewDecoder(b)
		o := make(map[string]float64)
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("poreflowutil: parsing config variable %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type for config variable %s: %#v", varName, i)
	}
}

// checkNetworkFile makes sure the network file is specified and exists,
// and expands any environment variables.
func checkNetworkFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify a network file configuration variable (for example: NetworkFile="network.json")`)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("poreflow: problem finding NetworkFile: %v", err)
	}
	return f, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.gob")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("poreflow: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one
// isn't specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}
