/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/notargets/gomag/InputParameters"
	"github.com/notargets/gomag/magfield"
	"github.com/notargets/gomag/readfiles"
	"github.com/notargets/gomag/trimesh"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

type FieldRun struct {
	ScenarioFile string
	Profile      bool
}

// FieldCmd represents the field command
var FieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Evaluate the magnetic field of a meshed magnet at observation points",
	Long: `
Reads a YAML scenario describing a surface mesh, its polarization and the
observation points, validates the mesh topology and prints the field rows,

gomag field -I scenario.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fr := &FieldRun{}
		if fr.ScenarioFile, err = cmd.Flags().GetString("scenarioFile"); err != nil {
			panic(err)
		}
		fr.Profile, _ = cmd.Flags().GetBool("profile")
		sp := processScenario(fr)
		RunField(fr, sp)
	},
}

func processScenario(fr *FieldRun) (sp *InputParameters.ScenarioParameters) {
	var (
		err error
	)
	if len(fr.ScenarioFile) == 0 {
		err = fmt.Errorf("must supply a scenario file (-I, --scenarioFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Cube Magnet"
FieldKind: B
Polarization: [0, 0, 1]
MeshFile: cube.stl
ValidateMode: raise
Grid:
  Min: [-2, 0, 0]
  Max: [2, 0, 0]
  N: [41, 1, 1]
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(fr.ScenarioFile); err != nil {
		panic(err)
	}
	sp = &InputParameters.ScenarioParameters{}
	if err = sp.Parse(data); err != nil {
		panic(err)
	}
	return
}

func init() {
	rootCmd.AddCommand(FieldCmd)
	FieldCmd.Flags().StringP("scenarioFile", "I", "", "YAML file describing mesh, polarization and observers")
	FieldCmd.Flags().BoolP("profile", "p", false, "write a CPU profile of the field evaluation")
}

func RunField(fr *FieldRun, sp *InputParameters.ScenarioParameters) {
	var (
		err error
	)
	sp.Print()
	m := loadMesh(sp.MeshFile, sp.ValidateMode, sp.ReorientEnabled())
	kind, err := magfield.ParseFieldKind(sp.FieldKind)
	if err != nil {
		panic(err)
	}
	mf := magfield.NewMeshField(m, sp.Polarization)
	obs := sp.ObserverPoints()
	if fr.Profile {
		defer profile.Start().Stop()
	}
	field, err := mf.Evaluate(kind, obs)
	if err != nil {
		panic(err)
	}
	nr, _ := obs.Dims()
	fmt.Printf("%24s %s\n", "observer", kind.String()+" field")
	for i := 0; i < nr; i++ {
		o, f := obs.RawRowView(i), field.RawRowView(i)
		fmt.Printf("[%8.4f %8.4f %8.4f] [%14.6e %14.6e %14.6e]\n",
			o[0], o[1], o[2], f[0], f[1], f[2])
	}
}

func loadMesh(meshFile, validateMode string, reorient bool) *trimesh.Mesh {
	var (
		err error
	)
	mode := trimesh.ModeWarn
	if len(validateMode) != 0 {
		if mode, err = trimesh.ParseErrorMode(validateMode); err != nil {
			panic(err)
		}
	}
	soup, err := readfiles.ReadSTL(meshFile)
	if err != nil {
		panic(err)
	}
	m, err := trimesh.FromTriangles(soup)
	if err != nil {
		panic(err)
	}
	if mode != trimesh.ModeIgnore {
		if _, err = m.IsClosed(mode); err != nil {
			panic(err)
		}
		if _, err = m.IsConnected(mode); err != nil {
			panic(err)
		}
	}
	if reorient {
		if err = m.ReorientFaces(mode); err != nil {
			panic(err)
		}
	}
	return m
}
