package plan

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestAirSaturation(t *testing.T) {
	tis := AirSaturation()
	want := (surfacePressure - waterVapour) * 0.79
	for i := 0; i < nComp; i++ {
		assert.InDelta(t, want, tis.N2[i], 1e-12)
		assert.Zero(t, tis.He[i])
	}
	assert.Zero(t, tis.CeilingDepth(0.85))
	assert.Zero(t, tis.GFSurface())
}

func TestLoadConvergesToAlveolar(t *testing.T) {
	tis := AirSaturation()
	// a very long exposure at constant depth saturates every compartment
	// to the alveolar inert pressure
	pAmb := 4.0
	tis.Load(0.79, 0, pAmb, pAmb, 1e6)
	want := (pAmb - waterVapour) * 0.79
	for i := 0; i < nComp; i++ {
		assert.InDelta(t, want, tis.N2[i], 1e-6, "compartment %d", i)
	}
}

func TestLoadFastCompartmentLeads(t *testing.T) {
	tis := AirSaturation()
	tis.Load(0.79, 0, 1, 5, 2)
	tis.Load(0.79, 0, 5, 5, 20)
	for i := 1; i < nComp; i++ {
		assert.Greater(t, tis.N2[i-1], tis.N2[i],
			"shorter half-time must load faster")
	}
}

func TestLoadZeroTimeIsNoop(t *testing.T) {
	tis := AirSaturation()
	before := tis
	tis.Load(0.79, 0, 1, 5, 0)
	assert.Equal(t, before, tis)
}

func TestCeilingAfterExposure(t *testing.T) {
	tis := AirSaturation()
	tis.Load(0.79, 0, 1, 5, 2)
	tis.Load(0.79, 0, 5, 5, 38)

	c30 := tis.CeilingDepth(0.30)
	c85 := tis.CeilingDepth(0.85)
	assert.Greater(t, c30, 0.0, "40 min of air at 40 m demands stops")
	assert.Greater(t, c30, c85, "a lower gradient factor means a deeper ceiling")
	assert.Greater(t, tis.GFSurface(), 100.0)
}

func TestHeliumLoading(t *testing.T) {
	tis := AirSaturation()
	tis.Load(0.39, 0.45, 5, 5, 30)
	loaded := false
	for i := 0; i < nComp; i++ {
		if tis.He[i] > 0 {
			loaded = true
		}
	}
	assert.True(t, loaded)
	// fastest helium compartment races ahead of the fastest nitrogen one
	assert.Greater(t, tis.He[0]/0.45, (tis.N2[0]-AirSaturation().N2[0])/0.39)
}

func TestGradientFactorAt(t *testing.T) {
	assert.InDelta(t, 0.85, gradientFactorAt(30, 85, 10, 0), 1e-12)
	assert.InDelta(t, 0.30, gradientFactorAt(30, 85, 21, 21), 1e-12)
	assert.InDelta(t, 0.30, gradientFactorAt(30, 85, 35, 21), 1e-12)
	assert.InDelta(t, 0.85, gradientFactorAt(30, 85, 0, 21), 1e-12)
	// halfway between first stop and surface
	assert.InDelta(t, 0.575, gradientFactorAt(30, 85, 10.5, 21), 1e-12)
}
