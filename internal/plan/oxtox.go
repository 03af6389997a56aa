package plan

import "math"

// NOAA single exposure oxygen limits, minutes per pO2. The CNS clock is the
// share of the limit spent at a given pO2.
var cnsLimits = []struct {
	ppO2  float64 // bar
	limit float64 // min
}{
	{0.6, 720},
	{0.7, 570},
	{0.8, 450},
	{0.9, 360},
	{1.0, 300},
	{1.1, 240},
	{1.2, 210},
	{1.3, 180},
	{1.4, 150},
	{1.5, 120},
	{1.6, 45},
}

// cnsLimit interpolates the single exposure limit at ppO2. Below 0.5 bar
// there is no CNS load; above 1.6 bar the last table slope is extrapolated
// down to a 5 minute floor.
func cnsLimit(ppO2 float64) float64 {
	if ppO2 <= 0.5 {
		return math.Inf(1)
	}
	first := cnsLimits[0]
	if ppO2 <= first.ppO2 {
		return first.limit
	}
	for i := 1; i < len(cnsLimits); i++ {
		lo, hi := cnsLimits[i-1], cnsLimits[i]
		if ppO2 <= hi.ppO2 {
			f := (ppO2 - lo.ppO2) / (hi.ppO2 - lo.ppO2)
			return lo.limit + f*(hi.limit-lo.limit)
		}
	}
	last, prev := cnsLimits[len(cnsLimits)-1], cnsLimits[len(cnsLimits)-2]
	slope := (last.limit - prev.limit) / (last.ppO2 - prev.ppO2)
	limit := last.limit + slope*(ppO2-last.ppO2)
	if limit < 5 {
		limit = 5
	}
	return limit
}

// cnsIncrement is the CNS clock growth in percent for time minutes at ppO2.
func cnsIncrement(ppO2, time float64) float64 {
	limit := cnsLimit(ppO2)
	if math.IsInf(limit, 1) {
		return 0
	}
	return time / limit * 100
}

// otuIncrement is the pulmonary toxicity dose for time minutes at ppO2.
func otuIncrement(ppO2, time float64) float64 {
	if ppO2 <= 0.5 {
		return 0
	}
	return time * math.Pow((ppO2-0.5)/0.5, 0.8333)
}
