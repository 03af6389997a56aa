// Package gas models breathing gas mixtures: oxygen limits, narcotic
// equivalence, density and tank accounting, plus the persisted list of
// mixtures available to the planner.
package gas

import (
	"fmt"
)

type Type int

const (
	Bottom Type = iota
	Deco
	Diluent
)

func (t Type) String() string {
	switch t {
	case Bottom:
		return "bottom"
	case Deco:
		return "deco"
	case Diluent:
		return "diluent"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func ParseType(s string) (Type, error) {
	switch s {
	case "bottom":
		return Bottom, nil
	case "deco":
		return Deco, nil
	case "diluent":
		return Diluent, nil
	}
	return 0, fmt.Errorf("unknown gas type %q: must be bottom, deco or diluent", s)
}

type Status int

const (
	Active Status = iota
	Inactive
)

func (s Status) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Gas is one breathing mixture. Nitrogen makes up whatever oxygen and helium
// leave: N2% = 100 - O2% - He%.
type Gas struct {
	O2Pct  float64
	HePct  float64
	Type   Type
	Status Status

	// open circuit switch override: switch to this gas at SwitchDepth,
	// which defaults to the MOD at SwitchPpO2
	SwitchDepth float64
	SwitchPpO2  float64

	// tank accounting
	TankCount       int
	TankCapacity    float64 // L
	FillPressure    float64 // bar
	ReservePressure float64 // bar
}

// New returns a mixture with the default single 12 L tank filled to 200 bar
// with a 50 bar reserve.
func New(o2Pct, hePct float64, t Type, st Status) Gas {
	return Gas{
		O2Pct:           o2Pct,
		HePct:           hePct,
		Type:            t,
		Status:          st,
		TankCount:       1,
		TankCapacity:    12,
		FillPressure:    200,
		ReservePressure: 50,
	}
}

func (g Gas) Validate() error {
	if g.O2Pct <= 0 {
		return fmt.Errorf("o2=%v%%: must be greater than zero", g.O2Pct)
	}
	if g.HePct < 0 {
		return fmt.Errorf("he=%v%%: must not be negative", g.HePct)
	}
	if g.O2Pct+g.HePct > 100 {
		return fmt.Errorf("o2=%v%% he=%v%%: sum must not exceed 100%%", g.O2Pct, g.HePct)
	}
	return nil
}

func (g Gas) FO2() float64 { return g.O2Pct / 100 }
func (g Gas) FHe() float64 { return g.HePct / 100 }
func (g Gas) FN2() float64 { return (100 - g.O2Pct - g.HePct) / 100 }

// MOD is the deepest depth at which the mixture's oxygen partial pressure
// stays at or below maxPpO2.
func (g Gas) MOD(maxPpO2 float64) float64 {
	return DepthAtPressure(maxPpO2 / g.FO2())
}

// PpO2At is the oxygen partial pressure breathed at depth.
func (g Gas) PpO2At(depth float64) float64 {
	return PressureAtDepth(depth) * g.FO2()
}

// ENDWithoutO2 is the equivalent narcotic depth counting nitrogen only.
func (g Gas) ENDWithoutO2(depth float64) float64 {
	end := DepthAtPressure(PressureAtDepth(depth) * g.FN2() / airFN2)
	if end < 0 {
		return 0
	}
	return end
}

// ENDWithO2 is the equivalent narcotic depth counting both nitrogen and
// oxygen as narcotic, relative to air where the narcotic fraction is 1.
func (g Gas) ENDWithO2(depth float64) float64 {
	end := DepthAtPressure(PressureAtDepth(depth) * (1 - g.FHe()))
	if end < 0 {
		return 0
	}
	return end
}

// Density is the mixture density in g/L at depth, ideal gas at surface
// temperature.
func (g Gas) Density(depth float64) float64 {
	m := g.FO2()*molarMassO2 + g.FN2()*molarMassN2 + g.FHe()*molarMassHe
	return m * PressureAtDepth(depth) / molarVolume
}

// TankVolume is the usable surface volume in litres down to the reserve.
func (g Gas) TankVolume() float64 {
	return float64(g.TankCount) * g.TankCapacity * (g.FillPressure - g.ReservePressure)
}

func (g Gas) String() string {
	switch {
	case g.HePct > 0:
		return fmt.Sprintf("Tx%.0f/%.0f", g.O2Pct, g.HePct)
	case g.O2Pct == 100:
		return "O2"
	case g.O2Pct == 21:
		return "Air"
	default:
		return fmt.Sprintf("EAN%.0f", g.O2Pct)
	}
}

const (
	airFN2 = 0.79

	molarMassO2 = 31.999 // g/mol
	molarMassN2 = 28.013
	molarMassHe = 4.003

	molarVolume = 23.96 // L/mol at 1 bar, 15 C
)

// PressureAtDepth converts a sea water depth in metres to the absolute
// ambient pressure in bar.
func PressureAtDepth(depth float64) float64 {
	return 1 + depth/10
}

// DepthAtPressure is the inverse of PressureAtDepth.
func DepthAtPressure(p float64) float64 {
	return (p - 1) * 10
}

// OptimalHePct is the helium share that keeps the equivalent narcotic depth
// (oxygen counted as narcotic) of a mixture with o2Pct oxygen at or above
// preferredEnd when breathed at depth.
func OptimalHePct(depth, o2Pct, preferredEnd float64) float64 {
	if depth <= preferredEnd {
		return 0
	}
	he := 100 * (1 - PressureAtDepth(preferredEnd)/PressureAtDepth(depth))
	if he < 0 {
		he = 0
	}
	if he > 100-o2Pct {
		he = 100 - o2Pct
	}
	return he
}
