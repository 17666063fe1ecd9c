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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gofv/FV2D"
	"github.com/notargets/gofv/InputParameters"
	"github.com/notargets/gofv/TimeStep"
	"github.com/notargets/gofv/model_problems/Burgers2D"
	"github.com/notargets/gofv/types"
)

type Model2D struct {
	ICFile      string
	SummaryFile string
	Profile     string
}

// RunSummary records the boundary naming of the mesh and the history of a run
type RunSummary struct {
	Title string         `json:"title"`
	Names map[string]int `json:"names"`
	Steps []StepRecord   `json:"steps"`
}

type StepRecord struct {
	Iteration int     `json:"iteration"`
	Time      float64 `json:"time"`
	DT        float64 `json:"dt"`
	MaxNorm   float64 `json:"maxNorm"`
}

// TwoDCmd represents the 2D command
var TwoDCmd = &cobra.Command{
	Use:   "2D",
	Short: "Two dimensional vector Burgers solver on a uniform rectangular mesh",
	Long: `Two dimensional vector Burgers solver on a uniform rectangular mesh.

Runs the finite volume test case described by the input file and optionally writes a
YAML summary of the run.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		m2d := &Model2D{}
		if m2d.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if m2d.SummaryFile, err = cmd.Flags().GetString("summary"); err != nil {
			return
		}
		m2d.Profile = viper.GetString("profile")
		var ip *InputParameters.InputParameters2D
		if ip, err = processInput(m2d); err != nil {
			return
		}
		var tc *Burgers2D.TestCase
		if tc, err = newTestCase(ip); err != nil {
			return
		}
		ip.Print()
		tc.Print()
		switch m2d.Profile {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		default:
			return fmt.Errorf("unknown profile mode %q, use cpu or mem", m2d.Profile)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		var rs *RunSummary
		rs, err = Run2D(ctx, ip)
		if len(m2d.SummaryFile) != 0 && rs != nil {
			if werr := rs.Write(m2d.SummaryFile); werr != nil && err == nil {
				err = werr
			}
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(TwoDCmd)
	TwoDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Lx, Ly, Nx, Ny\n\t- Mu\n\t- FinalTime, Steps")
	TwoDCmd.Flags().StringP("summary", "o", "", "write a YAML summary of the run to this file")
	TwoDCmd.Flags().String("profile", "", "profile the run, cpu or mem")
	_ = viper.BindPFlag("profile", TwoDCmd.Flags().Lookup("profile"))
}

func processInput(m2d *Model2D) (ip *InputParameters.InputParameters2D, err error) {
	ip = InputParameters.NewInputParameters2D()
	if len(m2d.ICFile) == 0 {
		slog.Info("no input file (-I, --inputConditionsFile), running the reference case")
		return
	}
	var data []byte
	if data, err = os.ReadFile(m2d.ICFile); err != nil {
		return
	}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("%s: %w", m2d.ICFile, err)
	}
	return
}

/*
Run2D advances the Burgers test case from t = 0 to FinalTime. The last step is shortened to
land on FinalTime, which a fixed policy refuses unless the shortening is within tolerance.
The context is checked between steps.
*/
func Run2D(ctx context.Context, ip *InputParameters.InputParameters2D) (rs *RunSummary, err error) {
	var (
		m      *FV2D.Mesh
		s      *FV2D.Solver
		ts     TimeStep.Policy
		scheme FV2D.TemporalScheme
	)
	if m, err = FV2D.NewRectUniform(ip.Lx, ip.Nx, ip.Ly, ip.Ny); err != nil {
		return
	}
	var tc *Burgers2D.TestCase
	if tc, err = newTestCase(ip); err != nil {
		return
	}
	if scheme, err = FV2D.NewTemporalScheme(ip.Scheme); err != nil {
		return
	}
	if s, err = FV2D.NewSolver(m, tc, tc, FV2D.Options{
		ProcLimit: ip.ProcLimit,
		Scheme:    scheme,
	}); err != nil {
		return
	}
	if ip.IsCFL() {
		ts, err = TimeStep.NewCFL(ip.CFL, m.NVerts(), ip.ProcLimit)
	} else {
		ts, err = TimeStep.NewFixed(ip.FixedDT(), m.NVerts(), ip.ProcLimit)
	}
	if err != nil {
		return
	}
	slog.Debug("starting run", "title", ip.Title, "vertices", m.NVerts(),
		"scheme", scheme.Print(), "procs", s.VertPartitions.ParallelDegree)
	rs = &RunSummary{
		Title: ip.Title,
		Names: make(map[string]int),
	}
	for tag, name := range types.BCTagNames {
		rs.Names[name] = int(tag)
	}
	var (
		x = tc.Initial(m.NVerts())
		t float64
	)
	for i := 0; t < ip.FinalTime-TimeStep.Tolerance; i++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if err = s.UpdateTimeStep(x, ts); err != nil {
			return
		}
		if t+ts.Value() > ip.FinalTime {
			if err = ts.Set(ip.FinalTime - t); err != nil {
				return
			}
		}
		dt := ts.Value()
		if err = s.ExplicitStep(ts, x); err != nil {
			return
		}
		t += dt
		slog.Info("Iteration", "i", i+1, "t", t, "time_step", ts.String())
		rs.Steps = append(rs.Steps, StepRecord{
			Iteration: i + 1,
			Time:      t,
			DT:        dt,
			MaxNorm:   FV2D.MaxNorm(x),
		})
	}
	return
}

// newTestCase is the Burgers test case with the boundary kinds of the input file
func newTestCase(ip *InputParameters.InputParameters2D) (tc *Burgers2D.TestCase, err error) {
	tc = Burgers2D.NewTestCase(ip.Mu)
	if err = tc.WithBCs(ip.BCs); err != nil {
		tc = nil
	}
	return
}

func (rs *RunSummary) Write(fileName string) (err error) {
	var data []byte
	if data, err = yaml.Marshal(rs); err != nil {
		return
	}
	return os.WriteFile(fileName, data, 0644)
}
