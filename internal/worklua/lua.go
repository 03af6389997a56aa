// Package worklua exposes the planning engine to Lua scripts through the
// global object dp.
package worklua

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/powerman/structlog"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"
)

type Import struct {
	l    *lua.LState
	log  *structlog.Logger
	plan *plan.Plan
}

func NewImport(log *structlog.Logger, l *lua.LState, p *plan.Plan) *Import {
	return &Import{l: l, log: log, plan: p}
}

// Run executes a planning script. The script drives the engine through the
// global dp and aborts on the first raised error.
func Run(ctx context.Context, log *structlog.Logger, p *plan.Plan, filename string) error {
	l := lua.NewState()
	defer l.Close()
	l.SetContext(ctx)
	l.SetGlobal("dp", luar.New(l, NewImport(log, l, p)))
	if err := l.DoFile(filename); err != nil {
		return merry.Appendf(err, "script %s", filepath.Base(filename))
	}
	return nil
}

func (x *Import) check(err error) {
	if err != nil {
		x.l.RaiseError("%s", err)
	}
}

func (x *Import) Dive(depth, bottomTime float64) {
	if depth <= 0 {
		x.l.ArgError(1, "depth must be greater than zero")
	}
	if bottomTime < 0 {
		x.l.ArgError(2, "bottom time must not be negative")
	}
	x.plan.Depth = depth
	x.plan.BottomTime = bottomTime
}

func (x *Import) Mode(s string) {
	m, err := plan.ParseDiveMode(s)
	x.check(err)
	x.plan.Mode = m
}

func (x *Import) Bailout(b bool) {
	x.plan.Bailout = b
}

// Params overrides planning parameters for this script run, e.g.
// dp:Params{gf_low=40, gf_high=80}. The change is not persisted.
func (x *Import) Params(arg *lua.LTable) {
	p := x.plan.Params
	x.check(gluamapper.Map(arg, &p))
	x.check(p.Validate())
	x.plan.Params = p
	x.plan.GfBoosted = p.BoostedSetpoints
}

func (x *Import) ClearStops() {
	x.plan.StopSteps.Steps = nil
}

func (x *Import) Stop(depth, time float64) {
	x.plan.StopSteps.Add(depth, time)
}

func (x *Import) SetPoint(depth, ppO2 float64) {
	x.plan.SetPoints.Add(depth, ppO2)
}

// Plan recomputes the profile and returns the step sequence. Gas reserve
// breaches do not abort the script; Check reports them.
func (x *Import) Plan() []plan.Step {
	x.check(x.plan.Build())
	x.check(x.plan.Calculate())
	if _, err := x.plan.UpdateGasConsumption(); err != nil {
		x.log.PrintErr(err)
	}
	return x.plan.Steps
}

func (x *Import) RunTime() float64 { return x.plan.RunTime() }
func (x *Import) TTS() float64     { return x.plan.TTS() }

// Check returns the constraint violations of the computed profile, empty
// when the plan is clean.
func (x *Import) Check() string {
	if err := x.plan.CheckConstraints(); err != nil {
		return err.Error()
	}
	return ""
}

func (x *Import) Warnings() []string {
	return x.plan.Warnings()
}

func (x *Import) MaxTime() (float64, float64) {
	maxTime, tts, err := x.plan.MaxTimeAndTTS()
	x.check(err)
	return maxTime, tts
}

func (x *Import) Optimise() []plan.DecoChoice {
	choices, _, err := x.plan.OptimiseDecoGas()
	x.check(err)
	return choices
}

func (x *Import) Stringify(v lua.LValue) string {
	return stringify(v)
}

func (x *Import) Info(args ...lua.LValue) {
	xs := make([]string, len(args))
	for i := range args {
		xs[i] = stringify(args[i])
	}
	x.log.Info(strings.Join(xs, " "))
}
