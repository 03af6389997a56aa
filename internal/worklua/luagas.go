package worklua

import (
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

type luaGas struct {
	O2          float64
	He          float64
	Role        string
	SwitchDepth float64
	SwitchPpO2  float64
	Tanks       int
	Capacity    float64
	Fill        float64
	Reserve     float64
}

// Gas appends a mixture to the gas list, e.g.
// dp:Gas{o2=50, role="deco", switch_depth=21, tanks=1, capacity=7}.
// Role defaults to bottom; tank fields default to a single 12 L tank at
// 200 bar with a 50 bar reserve.
func (x *Import) Gas(arg *lua.LTable) {
	var c luaGas
	if err := gluamapper.Map(arg, &c); err != nil {
		x.l.ArgError(1, err.Error())
	}
	role := gas.Bottom
	if c.Role != "" {
		var err error
		role, err = gas.ParseType(c.Role)
		x.check(err)
	}
	g := gas.New(c.O2, c.He, role, gas.Active)
	g.SwitchDepth = c.SwitchDepth
	g.SwitchPpO2 = c.SwitchPpO2
	if c.Tanks > 0 {
		g.TankCount = c.Tanks
	}
	if c.Capacity > 0 {
		g.TankCapacity = c.Capacity
	}
	if c.Fill > 0 {
		g.FillPressure = c.Fill
	}
	if c.Reserve > 0 {
		g.ReservePressure = c.Reserve
	}
	x.check(x.plan.Gases.Add(g))
}

func (x *Import) ClearGases() {
	x.plan.Gases.Gases = nil
}
