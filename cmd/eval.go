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
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/goffd/FFD2D"
	"github.com/notargets/goffd/InputParameters"
	"github.com/notargets/goffd/utils"
)

type ModelEval struct {
	ICFile         string
	ModelFile      string // Overrides the model file named in ICFile
	Profile        bool
	ParallelDegree int
	Verbose        bool
}

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a B-spline model on a set of points",
	Long: `
Loads a BSpline2D record and evaluates one query on the points listed in the
input file: transform, jacobian, parametric, second, curvature, bending or determinant.

goffd eval -I run.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			me  = &ModelEval{}
		)
		me.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		me.ModelFile, _ = cmd.Flags().GetString("modelFile")
		me.Profile, _ = cmd.Flags().GetBool("profile")
		me.ParallelDegree = viper.GetInt("parallelDegree")
		me.Verbose = viper.GetBool("verbose")
		if len(me.ICFile) == 0 {
			fmt.Printf("error: must supply an input parameters file (-I, --inputConditionsFile)\n")
			exampleFile := `
########################################
Title: "Test Case"
ModelFile: model.yaml
Query: transform # or jacobian, parametric, second, curvature, bending, determinant
Axes: [1, 1]     # second derivative axes, each 1 or 2
Points:
  - [0.5, 0.5]
  - [1.25, 2]
########################################
`
			fmt.Printf("Example File:%s\n", exampleFile)
			os.Exit(1)
		}
		if me.Profile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		}
		if err = RunEval(me, os.Stdout); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file naming the model, query and points")
	EvalCmd.Flags().StringP("modelFile", "M", "", "model record file, overrides ModelFile in the input file")
	EvalCmd.Flags().Bool("profile", false, "write a CPU profile of the evaluation to the current directory")
}

func processEvalInput(me *ModelEval) (ip *InputParameters.InputParameters2D, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(me.ICFile); err != nil {
		return
	}
	ip = &InputParameters.InputParameters2D{}
	if err = ip.Parse(data); err != nil {
		return
	}
	if len(me.ModelFile) != 0 {
		ip.ModelFile = me.ModelFile
	}
	if ip.ParallelDegree == 0 {
		ip.ParallelDegree = me.ParallelDegree
	}
	err = ip.Validate()
	return
}

func RunEval(me *ModelEval, out io.Writer) (err error) {
	var (
		ip *InputParameters.InputParameters2D
		bs *FFD2D.BSpline2D
		qt InputParameters.QueryType
	)
	if ip, err = processEvalInput(me); err != nil {
		return
	}
	if me.Verbose {
		ip.Print()
	}
	if bs, err = FFD2D.ReadFile(ip.ModelFile); err != nil {
		return
	}
	bs.SetParallelDegree(ip.ParallelDegree)
	qt, _ = InputParameters.NewQueryType(ip.Query)
	start := time.Now()
	if err = evalQuery(bs, qt, ip.Axes, utils.NewPoints2D(ip.Points), out); err != nil {
		return
	}
	if me.Verbose {
		fmt.Printf("%d points evaluated in %v, %s\n", len(ip.Points), time.Since(start), utils.GetMemUsage())
	}
	return
}

func evalQuery(bs *FFD2D.BSpline2D, qt InputParameters.QueryType, axes [2]int,
	P *mat.Dense, out io.Writer) (err error) {
	var (
		N int
	)
	if !utils.IsEmpty(P) {
		N, _ = P.Dims()
	}
	switch qt {
	case InputParameters.QueryTransform:
		var T *mat.Dense
		if T, err = bs.TransformPoints(P); err != nil {
			return
		}
		for k, p := range utils.PairsFromPoints2D(T) {
			fmt.Fprintf(out, "%d %.15g %.15g\n", k, p[0], p[1])
		}
	case InputParameters.QueryJacobian:
		var J []*mat.Dense
		if J, err = bs.JacobianMatrix(P); err != nil {
			return
		}
		for k, j := range J {
			fmt.Fprintf(out, "%d %.15g %.15g %.15g %.15g\n", k, j.At(0, 0), j.At(0, 1), j.At(1, 0), j.At(1, 1))
		}
	case InputParameters.QueryParametric:
		var pj *FFD2D.ParametricJacobian
		if pj, err = bs.ParametricJacobian(P); err != nil {
			return
		}
		_, nParams, _ := pj.Dims()
		for k := 0; k < N; k++ {
			for d := 0; d < 2; d++ {
				fmt.Fprintf(out, "%d %d", k, d)
				for ip := d; ip < nParams; ip += 2 {
					if val := pj.At(d, ip, k); val != 0 {
						fmt.Fprintf(out, " %d:%.15g", ip, val)
					}
				}
				fmt.Fprintln(out)
			}
		}
	case InputParameters.QuerySecond:
		var R *mat.Dense
		if R, err = bs.SecondDerivative(P, axes[0], axes[1]); err != nil {
			return
		}
		for k, p := range utils.PairsFromPoints2D(R) {
			fmt.Fprintf(out, "%d %.15g %.15g\n", k, p[0], p[1])
		}
	case InputParameters.QueryCurvature, InputParameters.QueryBending, InputParameters.QueryDeterminant:
		var V *mat.VecDense
		switch qt {
		case InputParameters.QueryCurvature:
			V, err = bs.Curvature(P)
		case InputParameters.QueryBending:
			V, err = bs.BendingEnergy(P)
		default:
			V, err = bs.JacobianDeterminant(P)
		}
		if err != nil {
			return
		}
		for k := 0; k < N; k++ {
			fmt.Fprintf(out, "%d %.15g\n", k, V.AtVec(k))
		}
	default:
		err = fmt.Errorf("unknown query type %q", qt)
	}
	return
}
