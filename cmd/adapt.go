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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/radapt/InputParameters"
	"github.com/notargets/radapt/deform"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/readfiles"
	"github.com/notargets/radapt/utils"
)

type ModelAdapt struct {
	GridFile string
	ICFile   string
	GenMesh  int
	Graph    bool
	Profile  bool
	Verbose  bool
}

// AdaptCmd represents the adapt command
var AdaptCmd = &cobra.Command{
	Use:   "adapt",
	Short: "Adapt a triangular mesh to a monitor function by moving its vertices",
	Long: `Adapt a triangular mesh to a monitor function by moving its vertices.
Reads a Gambit (.neu) grid or generates a structured unit square mesh,
then runs the grid deformation iterations configured in the YAML input file`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		ma := &ModelAdapt{}
		if ma.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			panic(err)
		}
		if ma.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			panic(err)
		}
		ma.GenMesh, _ = cmd.Flags().GetInt("genMesh")
		ma.Graph, _ = cmd.Flags().GetBool("graph")
		ma.Profile, _ = cmd.Flags().GetBool("profile")
		ma.Verbose, _ = cmd.Flags().GetBool("verbose")
		ip := processAdaptInput(ma)
		RunAdapt(ma, ip)
	},
}

func processAdaptInput(ma *ModelAdapt) (ip *InputParameters.DeformationParameters2D) {
	var (
		err      error
		willExit bool
	)
	if len(ma.GridFile) == 0 && ma.GenMesh == 0 {
		err := fmt.Errorf("must supply a grid file (-F, --gridFile) in .neu (Gambit neutral file) format, or -n to generate a mesh")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if len(ma.ICFile) == 0 {
		err := fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Distance Band"
NAdapt: 5
ODESteps: 20
Monitor:
  Type: Band
  CenterX: 0.5
  CenterY: 0.5
  Radius: 0.25
  Width: 0.1
  Amplitude: 0.5
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(ma.ICFile); err != nil {
		panic(err)
	}
	ip = &InputParameters.DeformationParameters2D{}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	return
}

func RunAdapt(ma *ModelAdapt, ip *InputParameters.DeformationParameters2D) {
	var (
		tmesh *geometry2D.Triangulation
	)
	if ma.Profile {
		defer profile.Start().Stop()
	}
	if ma.Verbose {
		ip.Print()
	}
	if len(ma.GridFile) != 0 {
		_, VX, VY, EToV, BCType := readfiles.ReadGambit2d(ma.GridFile, ma.Verbose)
		tmesh = geometry2D.NewTriangulation(VX, VY, EToV, BCType)
	} else {
		tmesh = geometry2D.UnitSquareMesh(ma.GenMesh)
	}
	if err := deform.Deform(tmesh, ip, nil, ma.Verbose); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("adapted mesh: total area = %8.6f, min Jacobian = %10.3e, %s\n",
		tmesh.TotalArea(), tmesh.MinJacobian(), utils.GetMemUsage())
	if ma.Graph {
		readfiles.PlotMesh(tmesh, true)
		// Hold the chart up for inspection
		select {}
	}
}

func init() {
	rootCmd.AddCommand(AdaptCmd)
	AdaptCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in Gambit (.neu) format")
	AdaptCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- NAdapt\n\t- ODESteps\n\t- Monitor spec")
	AdaptCmd.Flags().IntP("genMesh", "n", 0, "generate a structured unit square mesh with n divisions per side instead of reading a grid file")
	AdaptCmd.Flags().BoolP("graph", "g", false, "display the adapted mesh when done")
	AdaptCmd.Flags().BoolP("profile", "p", false, "generate a runtime profile of the adaptation")
	AdaptCmd.Flags().BoolP("verbose", "v", false, "print detailed progress information")
}
