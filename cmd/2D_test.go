package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofv/InputParameters"
	"github.com/notargets/gofv/TimeStep"
)

func smallCase(t *testing.T, tweak func(ip *InputParameters.InputParameters2D)) *InputParameters.InputParameters2D {
	fileInput := []byte(`
Title: Test Case
Lx: 4
Ly: 4
Nx: 4
Ny: 4
FinalTime: 0.1
Steps: 10
Scheme: euler
ProcLimit: 2
`)
	ip := InputParameters.NewInputParameters2D()
	require.NoError(t, ip.Parse(fileInput))
	if tweak != nil {
		tweak(ip)
		require.NoError(t, ip.Validate())
	}
	return ip
}

func TestRun2D(t *testing.T) {
	{ // Fixed steps land on the final time
		ip := smallCase(t, nil)
		rs, err := Run2D(context.Background(), ip)
		require.NoError(t, err)
		require.Len(t, rs.Steps, 10)
		last := rs.Steps[len(rs.Steps)-1]
		assert.InDelta(t, 0.1, last.Time, 1.e-12)
		for i, st := range rs.Steps {
			assert.Equal(t, i+1, st.Iteration)
			assert.Equal(t, 0.01, st.DT)
			assert.Less(t, st.MaxNorm, 2.)
		}
		assert.Equal(t, 2, rs.Names["xmax"])
		assert.Equal(t, 4, rs.Names["xmin"])
	}
	{ // Adaptive steps are shortened to finish exactly
		ip := smallCase(t, func(ip *InputParameters.InputParameters2D) {
			ip.TimeStep, ip.CFL, ip.Scheme = "cfl", 0.4, "rk3"
		})
		rs, err := Run2D(context.Background(), ip)
		require.NoError(t, err)
		require.NotEmpty(t, rs.Steps)
		last := rs.Steps[len(rs.Steps)-1]
		assert.Equal(t, 0.1, last.Time)
		assert.LessOrEqual(t, last.DT, rs.Steps[0].DT)
	}
	{ // A fixed step that does not divide the final time is refused at the end
		ip := smallCase(t, func(ip *InputParameters.InputParameters2D) {
			ip.DT = 0.03
		})
		rs, err := Run2D(context.Background(), ip)
		require.Error(t, err)
		assert.True(t, errors.Is(err, TimeStep.ErrStepMismatch))
		var sme *TimeStep.StepMismatchError
		require.True(t, errors.As(err, &sme))
		assert.Equal(t, 0.03, sme.Fixed)
		assert.Len(t, rs.Steps, 3)
	}
	{ // Cancellation stops the run before any step
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rs, err := Run2D(ctx, smallCase(t, nil))
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, rs.Steps)
	}
	{ // Unknown boundary names never reach the solver
		ip := smallCase(t, nil)
		ip.BCs = map[string]string{"top": "wall"}
		_, err := Run2D(context.Background(), ip)
		assert.Error(t, err)
	}
}

func TestRunSummary(t *testing.T) {
	rs, err := Run2D(context.Background(), smallCase(t, func(ip *InputParameters.InputParameters2D) {
		ip.Steps = 2
	}))
	require.NoError(t, err)
	fileName := filepath.Join(t.TempDir(), "summary.yaml")
	require.NoError(t, rs.Write(fileName))
	data, err := os.ReadFile(fileName)
	require.NoError(t, err)
	var back RunSummary
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, "Test Case", back.Title)
	assert.Equal(t, map[string]int{"ymin": 1, "xmax": 2, "ymax": 3, "xmin": 4}, back.Names)
	require.Len(t, back.Steps, 2)
	assert.InDelta(t, 0.05, back.Steps[0].DT, 1.e-15)
}

func TestProcessInput(t *testing.T) {
	{ // No file runs the reference case
		ip, err := processInput(&Model2D{})
		require.NoError(t, err)
		assert.Equal(t, 250, ip.Nx)
	}
	{
		_, err := processInput(&Model2D{ICFile: filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, err)
	}
	{
		fileName := filepath.Join(t.TempDir(), "input.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("Nx: 8\nScheme: rk2\n"), 0644))
		_, err := processInput(&Model2D{ICFile: fileName})
		assert.ErrorContains(t, err, "input.yaml")
	}
}

func TestTwoDCmd(t *testing.T) {
	var (
		dir         = t.TempDir()
		inputFile   = filepath.Join(dir, "input.yaml")
		summaryFile = filepath.Join(dir, "summary.yaml")
	)
	require.NoError(t, os.WriteFile(inputFile, []byte(`
Title: Command Case
Lx: 2
Ly: 2
Nx: 2
Ny: 2
FinalTime: 0.02
Steps: 2
Scheme: rk3
BCs:
  xmin: inflow
`), 0644))
	rootCmd.SetArgs([]string{"2D", "-I", inputFile, "--summary", summaryFile})
	require.NoError(t, Execute())
	data, err := os.ReadFile(summaryFile)
	require.NoError(t, err)
	var rs RunSummary
	require.NoError(t, yaml.Unmarshal(data, &rs))
	assert.Equal(t, "Command Case", rs.Title)
	require.Len(t, rs.Steps, 2)
	assert.Equal(t, 2, rs.Steps[1].Iteration)

	rootCmd.SetArgs([]string{"2D", "-I", filepath.Join(dir, "missing.yaml")})
	assert.Error(t, Execute())
}

func TestNewTestCase(t *testing.T) {
	ip := InputParameters.NewInputParameters2D()
	ip.BCs = map[string]string{"xmax": "outflow"}
	tc, err := newTestCase(ip)
	require.NoError(t, err)
	assert.Equal(t, ip.Mu, tc.Mu)
	ip.BCs = map[string]string{"top": "wall"}
	tc, err = newTestCase(ip)
	assert.Error(t, err)
	assert.Nil(t, tc)
}
