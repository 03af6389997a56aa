package worklua

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/powerman/structlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, p *plan.Plan, script string) error {
	filename := filepath.Join(t.TempDir(), "script.lua")
	must.WriteFile(filename, []byte(script), 0666)
	return Run(context.Background(), structlog.New(), p, filename)
}

func newTestPlan(t *testing.T) *plan.Plan {
	dir := t.TempDir()
	return plan.New(cfg.Default(),
		gas.Load(filepath.Join(dir, "gases.dat")),
		plan.LoadSetPoints(filepath.Join(dir, "setpoints.dat")),
		plan.LoadStopSteps(filepath.Join(dir, "stops.dat")),
		0, 0, plan.OC)
}

func TestScriptPlansDive(t *testing.T) {
	p := newTestPlan(t)
	err := runScript(t, p, `
dp:Dive(30, 20)
dp:ClearStops()
dp:Stop(6, 5)
local steps = dp:Plan()
assert(#steps == 5, "expected five segments, got " .. #steps)
assert(math.abs(dp:RunTime() - 28) < 1e-6, "run time " .. dp:RunTime())
assert(math.abs(dp:TTS() - 8) < 1e-6, "tts " .. dp:TTS())
dp:Info("planned", dp:RunTime())
`)
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.Depth)
	assert.Len(t, p.Steps, 5)
}

func TestScriptConfiguresGases(t *testing.T) {
	p := newTestPlan(t)
	err := runScript(t, p, `
dp:Gas{o2=50, role="deco", tanks=1, capacity=7}
dp:Dive(30, 20)
dp:Plan()
`)
	require.NoError(t, err)
	require.Len(t, p.Gases.Gases, 2)
	g := p.Gases.Gases[1]
	assert.Equal(t, 50.0, g.O2Pct)
	assert.Equal(t, gas.Deco, g.Type)
	assert.Equal(t, 7.0, g.TankCapacity)
	assert.Equal(t, 200.0, g.FillPressure)
}

func TestScriptOverridesParams(t *testing.T) {
	p := newTestPlan(t)
	err := runScript(t, p, `
dp:Params{gf_low=40, gf_high=80}
`)
	require.NoError(t, err)
	assert.Equal(t, 40.0, p.Params.GfLow)
	assert.Equal(t, 80.0, p.Params.GfHigh)
	// untouched fields keep their values
	assert.Equal(t, 1.4, p.Params.MaxPpO2Bottom)
}

func TestScriptErrors(t *testing.T) {
	p := newTestPlan(t)
	assert.Error(t, runScript(t, p, `dp:Mode("sidemount")`))
	assert.Error(t, runScript(t, p, `dp:Dive(-5, 10)`))
	assert.Error(t, runScript(t, p, `dp:Params{gf_low=200}`))
	assert.Error(t, runScript(t, p, `this is not lua`))
}
