package plan

import (
	"testing"

	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxTimeAndTTS(t *testing.T) {
	p := testPlan(t, 15, 0, OC)
	maxTime, tts, err := p.MaxTimeAndTTS()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, maxTime, 10.0)
	assert.LessOrEqual(t, maxTime, 100.0)

	// the reported bottom time satisfies every constraint
	p.BottomTime = maxTime
	require.NoError(t, p.Build())
	require.NoError(t, p.Calculate())
	assert.NoError(t, p.CheckConstraints())
	assert.InDelta(t, tts, p.TTS(), 1e-9)

	// one more minute does not
	p.BottomTime = maxTime + 1
	require.NoError(t, p.Build())
	require.NoError(t, p.Calculate())
	assert.Error(t, p.CheckConstraints())
}

func TestMaxTimeInfeasible(t *testing.T) {
	p := testPlan(t, 30, 0, OC)
	// a nearly empty tank cannot even cover the descent
	p.Gases.Gases[0].FillPressure = 55
	_, _, err := p.MaxTimeAndTTS()
	assert.True(t, merry.Is(err, ErrInfeasible))
}

func TestOptimiseDecoGas(t *testing.T) {
	p := testPlan(t, 30, 20, OC)
	p.StopSteps.Steps = []StopStep{{15, 1}, {9, 1}, {6, 1}}
	p.Gases.Gases[0].TankCount = 2
	require.NoError(t, p.Gases.Add(gas.New(50, 0, gas.Deco, gas.Active)))
	oxygen := gas.New(100, 0, gas.Deco, gas.Active)
	// the manual switch depth hides oxygen from the default selection at
	// the 6 m station, leaving it to the optimiser
	oxygen.SwitchDepth = 3
	require.NoError(t, p.Gases.Add(oxygen))

	choices, tts, err := p.OptimiseDecoGas()
	require.NoError(t, err)
	require.Len(t, choices, 3)

	assert.Equal(t, []float64{15, 9, 6},
		[]float64{choices[0].StopDepth, choices[1].StopDepth, choices[2].StopDepth})

	// the deeper stations keep the default pick, EAN50
	assert.Equal(t, -1, choices[0].GasIndex)
	assert.Equal(t, 50.0, choices[0].Gas.O2Pct)
	assert.Equal(t, -1, choices[1].GasIndex)
	// at 6 m the richer mixture wins
	assert.Equal(t, 2, choices[2].GasIndex)
	assert.Equal(t, 100.0, choices[2].Gas.O2Pct)

	for _, c := range choices {
		assert.GreaterOrEqual(t, c.Time, 1.0)
		assert.LessOrEqual(t, c.Time, p.Params.MaxStopTime)
	}

	// the winning assignment is left in effect
	assert.InDelta(t, tts, p.TTS(), 1e-9)
	for _, st := range p.Steps {
		if st.Phase == Stop && st.StartDepth == 6 {
			assert.Equal(t, 2, st.GasIndex)
		}
	}
}

func TestOptimiseDecoGasNoStops(t *testing.T) {
	p := testPlan(t, 30, 20, OC)
	p.StopSteps.Steps = []StopStep{{40, 1}}
	_, _, err := p.OptimiseDecoGas()
	assert.True(t, merry.Is(err, ErrInfeasible))
}
