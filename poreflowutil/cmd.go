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

// Package poreflowutil wires the simulator to its configuration surface:
// command-line interface, configuration files, network input and result
// output.
package poreflowutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/mattemangia/poreflow"
	"github.com/mattemangia/poreflow/chem/carbkin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Poreflow.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "NetworkFile",
			usage: `
              NetworkFile is the path to the JSON file describing the pore
              network. It can include environment variables.`,
			shorthand:  "n",
			defaultVal: "network.json",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the binary results file should be
              created. It can include environment variables.`,
			shorthand:  "o",
			defaultVal: "poreflow_output.gob",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If LogFile is left blank, the
              logfile will be saved in the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "VoxelSize",
			usage: `
              VoxelSize is the physical edge length of one network length
              unit, in meters. Network coordinates, radii and pore volumes
              are expressed in these units.`,
			defaultVal: 1e-6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.TotalTime",
			usage: `
              Simulation.TotalTime is the total simulated time in seconds.`,
			defaultVal: 3600.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.TimeStep",
			usage: `
              Simulation.TimeStep is the fixed timestep in seconds.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.OutputInterval",
			usage: `
              Simulation.OutputInterval is the simulated time between state
              snapshots, in seconds. If it is not positive, only the initial
              and final states are kept.`,
			defaultVal: 60.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.Tolerance",
			usage: `
              Simulation.Tolerance is the convergence tolerance for the
              pressure solver.`,
			defaultVal: 1e-8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.MaxIterations",
			usage: `
              Simulation.MaxIterations caps the number of pressure solver
              iterations per timestep.`,
			defaultVal: 5000,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.FlowAxis",
			usage: `
              Simulation.FlowAxis is the macroscopic flow direction used to
              pick inlet and outlet pores. Valid options are X, Y, and Z.`,
			defaultVal: "X",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InletPressure",
			usage: `
              Simulation.InletPressure is the pressure held at inlet pores,
              in pascals.`,
			defaultVal: 2.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.OutletPressure",
			usage: `
              Simulation.OutletPressure is the pressure held at outlet pores,
              in pascals.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.Viscosity",
			usage: `
              Simulation.Viscosity is the dynamic fluid viscosity in Pa·s.`,
			defaultVal: 0.001,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.Density",
			usage: `
              Simulation.Density is the fluid density in kg/m³.`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InitialTemperature",
			usage: `
              Simulation.InitialTemperature is the uniform starting
              temperature in °C.`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InletTemperature",
			usage: `
              Simulation.InletTemperature is the temperature held at inlet
              pores in °C.`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.OutletTemperature",
			usage: `
              Simulation.OutletTemperature is the temperature held at outlet
              pores in °C.`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.ThermalConductivity",
			usage: `
              Simulation.ThermalConductivity is the fluid thermal
              conductivity in W/m/K.`,
			defaultVal: 0.6,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.SpecificHeat",
			usage: `
              Simulation.SpecificHeat is the fluid specific heat capacity in
              J/kg/K.`,
			defaultVal: 4186.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.Diffusivity",
			usage: `
              Simulation.Diffusivity is the molecular diffusivity applied to
              every dissolved species, in m²/s.`,
			defaultVal: 1e-9,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InitialConcentrations",
			usage: `
              Simulation.InitialConcentrations sets the uniform starting
              concentration per species, in mol/m³.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InletConcentrations",
			usage: `
              Simulation.InletConcentrations holds inlet pores at fixed
              concentrations per species, in mol/m³. Species missing from
              the map are held at 0.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.InitialMinerals",
			usage: `
              Simulation.InitialMinerals sets the solid mineral volume
              initially present in every pore, per mineral, in m³.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.EnableReactions",
			usage: `
              Simulation.EnableReactions turns the chemistry stage on.`,
			shorthand:  "r",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.MineralFilter",
			usage: `
              Simulation.MineralFilter restricts reaction bookkeeping to the
              named minerals. An empty list allows every mineral the
              chemistry engine knows.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.UpdateGeometry",
			usage: `
              Simulation.UpdateGeometry turns the mineral-volume feedback to
              pore and throat geometry on.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.MinPoreRadius",
			usage: `
              Simulation.MinPoreRadius is the smallest pore radius geometry
              updates may produce, in network length units.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Simulation.MinThroatRadius",
			usage: `
              Simulation.MinThroatRadius is the smallest throat radius
              geometry updates may produce, in network length units.`,
			defaultVal: 0.05,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("POREFLOW")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(compoundsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("poreflow: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "poreflow",
	Short: "A pore-network reactive-transport simulator.",
	Long: `Poreflow simulates coupled flow, heat transfer, solute transport and
mineral reactions on a discrete pore network, feeding precipitation and
dissolution back into the network geometry and bulk permeability.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'POREFLOW_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration
information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Poreflow.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Poreflow v%s\n", poreflow.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run loads the pore network named by NetworkFile, marches the coupled
flow, heat, transport and reaction stages over the configured simulated
time, and saves the result snapshots to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := SimulationConfig(Cfg)
		if err != nil {
			return err
		}
		networkFile, err := checkNetworkFile(Cfg.GetString("NetworkFile"))
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		logFile := checkLogFile(Cfg.GetString("LogFile"), outputFile)
		return Run(cmd, networkFile, outputFile, logFile,
			Cfg.GetFloat64("VoxelSize"), opts)
	},
	DisableAutoGenTag: true,
}

var compoundsCmd = &cobra.Command{
	Use:   "compounds",
	Short: "List the built-in chemistry database.",
	Long: `compounds lists the species and minerals the built-in chemistry
engine can resolve, together with their formulas and phases.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range carbkin.New().Compounds() {
			cmd.Printf("%-12s %-12s %s\n", c.Name, c.Formula, c.Phase)
		}
	},
	DisableAutoGenTag: true,
}
