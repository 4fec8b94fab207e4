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

	"github.com/notargets/gomag/readfiles"
	"github.com/notargets/gomag/trimesh"
	"github.com/spf13/cobra"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check <meshfile.stl>",
	Short: "Validate the topology of an STL surface mesh",
	Long: `
Reads an STL file and reports whether the surface is closed and connected,
how many shells it contains, and optionally reorients the face windings
outward,

gomag check -r magnet.stl`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reorient, _ := cmd.Flags().GetBool("reorient")
		RunCheck(args[0], reorient)
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().BoolP("reorient", "r", false, "reorient face windings outward and report the flips")
}

func RunCheck(meshFile string, reorient bool) {
	var (
		err error
	)
	soup, err := readfiles.ReadSTL(meshFile)
	if err != nil {
		panic(err)
	}
	m, err := trimesh.FromTriangles(soup)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%d triangles, %d vertices, %d edges\n",
		m.NumFaces(), m.NumVertices(), m.Graph().NumEdges())
	closed, _ := m.IsClosed(trimesh.ModeIgnore)
	connected, _ := m.IsConnected(trimesh.ModeIgnore)
	subsets := m.FacesSubsets()
	fmt.Printf("closed:    %v\n", closed)
	fmt.Printf("connected: %v (%d shells)\n", connected, len(subsets))
	if reorient {
		if !closed {
			fmt.Println("cannot reorient an open mesh")
			return
		}
		if err = m.ReorientFaces(trimesh.ModeIgnore); err != nil {
			panic(err)
		}
		fmt.Printf("reoriented: %s\n", m.Status().Reoriented)
	}
}
