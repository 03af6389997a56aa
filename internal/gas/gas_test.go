package gas

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPressureDepth(t *testing.T) {
	assert.Equal(t, 1.0, PressureAtDepth(0))
	assert.Equal(t, 4.0, PressureAtDepth(30))
	assert.Equal(t, 30.0, DepthAtPressure(4))
	assert.Equal(t, 0.0, DepthAtPressure(1))
}

func TestMOD(t *testing.T) {
	ean50 := New(50, 0, Deco, Active)
	assert.InDelta(t, 22, ean50.MOD(1.6), 1e-9)

	air := New(21, 0, Bottom, Active)
	assert.InDelta(t, 56.67, air.MOD(1.4), 0.01)

	oxygen := New(100, 0, Deco, Active)
	assert.InDelta(t, 6, oxygen.MOD(1.6), 1e-9)
}

func TestEND(t *testing.T) {
	tx := New(18, 45, Bottom, Active)

	// at 60 m: pAmb 7 bar, fN2 0.37, fHe 0.45
	assert.InDelta(t, (7*0.37/0.79-1)*10, tx.ENDWithoutO2(60), 1e-9)
	assert.InDelta(t, (7*0.55-1)*10, tx.ENDWithO2(60), 1e-9)

	// air is its own narcotic reference
	air := New(21, 0, Bottom, Active)
	assert.InDelta(t, 40, air.ENDWithO2(40), 1e-9)

	// never negative
	oxygen := New(100, 0, Deco, Active)
	assert.Equal(t, 0.0, oxygen.ENDWithoutO2(0))
}

func TestDensity(t *testing.T) {
	air := New(21, 0, Bottom, Active)
	surface := air.Density(0)
	assert.InDelta(t, 1.2, surface, 0.05)
	assert.InDelta(t, 4*surface, air.Density(30), 1e-9)

	// helium lightens the mix
	tx := New(18, 45, Bottom, Active)
	assert.Less(t, tx.Density(30), air.Density(30))
}

func TestOptimalHePct(t *testing.T) {
	assert.Equal(t, 0.0, OptimalHePct(30, 21, 30))
	assert.Equal(t, 0.0, OptimalHePct(20, 21, 30))

	// at 60 m aiming for END 30 m: fHe = 1 - 4/7
	he := OptimalHePct(60, 18, 30)
	assert.InDelta(t, 100*(1-4.0/7), he, 1e-9)

	// never pushes o2+he above 100
	assert.InDelta(t, 20, OptimalHePct(1000, 80, 30), 1e-9)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(21, 0, Bottom, Active).Validate())
	assert.NoError(t, New(18, 45, Bottom, Active).Validate())
	assert.Error(t, New(0, 0, Bottom, Active).Validate())
	assert.Error(t, New(21, -1, Bottom, Active).Validate())
	assert.Error(t, New(60, 50, Bottom, Active).Validate())
}

func TestString(t *testing.T) {
	assert.Equal(t, "Air", New(21, 0, Bottom, Active).String())
	assert.Equal(t, "EAN50", New(50, 0, Deco, Active).String())
	assert.Equal(t, "O2", New(100, 0, Deco, Active).String())
	assert.Equal(t, "Tx18/45", New(18, 45, Bottom, Active).String())
}
