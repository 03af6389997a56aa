package plan

import (
	"math"

	"github.com/dmorvan/divecalc/internal/gas"
)

// Bühlmann ZH-L16C, 16 compartments, nitrogen and helium.
// Baker's gradient factors scale the tolerated supersaturation.

const nComp = 16

// inert gas half-times, minutes
var n2HalfTimes = [nComp]float64{
	5.0, 8.0, 12.5, 18.5, 27.0, 38.3, 54.3, 77.0,
	109.0, 146.0, 187.0, 239.0, 305.0, 390.0, 498.0, 635.0,
}

var heHalfTimes = [nComp]float64{
	1.88, 3.02, 4.72, 6.99, 10.21, 14.48, 20.53, 29.11,
	41.20, 55.19, 70.69, 90.34, 115.29, 147.42, 188.24, 240.03,
}

var n2A = [nComp]float64{
	1.1696, 1.0000, 0.8618, 0.7562, 0.6200, 0.5043, 0.4410, 0.4000,
	0.3750, 0.3500, 0.3295, 0.3065, 0.2835, 0.2610, 0.2480, 0.2327,
}

var n2B = [nComp]float64{
	0.5578, 0.6514, 0.7222, 0.7825, 0.8126, 0.8434, 0.8693, 0.8910,
	0.9092, 0.9222, 0.9319, 0.9403, 0.9477, 0.9544, 0.9602, 0.9653,
}

var heA = [nComp]float64{
	1.6189, 1.3830, 1.1919, 1.0458, 0.9220, 0.8205, 0.7305, 0.6502,
	0.5950, 0.5545, 0.5333, 0.5189, 0.5181, 0.5176, 0.5172, 0.5119,
}

var heB = [nComp]float64{
	0.4770, 0.5747, 0.6527, 0.7223, 0.7582, 0.7957, 0.8279, 0.8553,
	0.8757, 0.8903, 0.8997, 0.9073, 0.9122, 0.9171, 0.9217, 0.9267,
}

const (
	surfacePressure = 1.0    // bar
	waterVapour     = 0.0627 // bar, alveolar
)

// Tissues carries the inert gas partial pressures of all compartments, bar.
type Tissues struct {
	N2 [nComp]float64
	He [nComp]float64
}

// AirSaturation is the tissue state of a diver equilibrated to air at the
// surface.
func AirSaturation() Tissues {
	var t Tissues
	p := (surfacePressure - waterVapour) * 0.79
	for i := range t.N2 {
		t.N2[i] = p
	}
	return t
}

// schreiner solves compartment loading for a linear inspired pressure ramp:
// p0 is the initial compartment pressure, pAlv0 the initial alveolar inert
// pressure, rate its change in bar/min, halfTime the compartment half-time.
func schreiner(p0, pAlv0, rate, halfTime, time float64) float64 {
	k := math.Ln2 / halfTime
	return pAlv0 + rate*(time-1/k) - (pAlv0-p0-rate/k)*math.Exp(-k*time)
}

// Load integrates one profile segment: ambient pressure moving linearly
// from pAmbStart to pAmbEnd over time minutes, breathing the given inert
// fractions.
func (t *Tissues) Load(fN2, fHe, pAmbStart, pAmbEnd, time float64) {
	if time <= 0 {
		return
	}
	rate := (pAmbEnd - pAmbStart) / time
	for i := 0; i < nComp; i++ {
		t.N2[i] = schreiner(t.N2[i], (pAmbStart-waterVapour)*fN2, rate*fN2, n2HalfTimes[i], time)
		t.He[i] = schreiner(t.He[i], (pAmbStart-waterVapour)*fHe, rate*fHe, heHalfTimes[i], time)
	}
}

// coefficients of the leading M-value line for a compartment, weighted by
// the inert gas shares loaded into it
func (t *Tissues) ab(i int) (a, b float64) {
	sum := t.N2[i] + t.He[i]
	if sum <= 0 {
		return n2A[i], n2B[i]
	}
	a = (n2A[i]*t.N2[i] + heA[i]*t.He[i]) / sum
	b = (n2B[i]*t.N2[i] + heB[i]*t.He[i]) / sum
	return
}

// CeilingDepth is the shallowest depth the diver may occupy at gradient
// factor gf (fraction, 0 < gf <= 1). Zero when a direct surface is allowed.
func (t *Tissues) CeilingDepth(gf float64) float64 {
	ceiling := 0.0
	for i := 0; i < nComp; i++ {
		a, b := t.ab(i)
		p := t.N2[i] + t.He[i]
		tol := (p - a*gf) / (gf/b + 1 - gf)
		if d := gas.DepthAtPressure(tol); d > ceiling {
			ceiling = d
		}
	}
	return ceiling
}

// GFSurface is the surface equivalent gradient in percent: the share of the
// surface M-value supersaturation the leading compartment would hold if the
// diver surfaced now.
func (t *Tissues) GFSurface() float64 {
	worst := 0.0
	for i := 0; i < nComp; i++ {
		a, b := t.ab(i)
		p := t.N2[i] + t.He[i]
		m0 := a + surfacePressure/b
		g := (p - surfacePressure) / (m0 - surfacePressure) * 100
		if g > worst {
			worst = g
		}
	}
	if worst < 0 {
		return 0
	}
	return worst
}

// gradientFactorAt interpolates the gradient factor linearly between gfLow
// at the first stop depth and gfHigh at the surface. Fraction, not percent.
func gradientFactorAt(gfLow, gfHigh, depth, firstStopDepth float64) float64 {
	if firstStopDepth <= 0 {
		return gfHigh / 100
	}
	if depth >= firstStopDepth {
		return gfLow / 100
	}
	if depth <= 0 {
		return gfHigh / 100
	}
	return (gfHigh + (gfLow-gfHigh)*depth/firstStopDepth) / 100
}
