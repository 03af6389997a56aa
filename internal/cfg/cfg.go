// Package cfg holds the dive parameters: oxygen ceilings, gradient factors,
// rates, breathing rates and warning thresholds. The parameters live in a
// yaml file next to the executable and fall back to a documented default
// which is written back whenever the file is missing or unreadable.
package cfg

import (
	"fmt"
	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/powerman/structlog"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
)

type Params struct {
	// oxygen partial pressure ceilings, bar
	MaxPpO2Bottom  float64 `yaml:"max_ppo2_bottom"`
	MaxPpO2Deco    float64 `yaml:"max_ppo2_deco"`
	MaxPpO2Diluent float64 `yaml:"max_ppo2_diluent"`

	// gradient factors, percent
	GfLow  float64 `yaml:"gf_low"`
	GfHigh float64 `yaml:"gf_high"`

	// vertical rates, m/min
	DescentRate float64 `yaml:"descent_rate"`
	AscentRate  float64 `yaml:"ascent_rate"`

	// surface breathing rates, L/min
	SacBottom float64 `yaml:"sac_bottom"`
	SacDeco   float64 `yaml:"sac_deco"`

	// preferred equivalent narcotic depth used when blending helium, m
	PreferredEnd float64 `yaml:"preferred_end"`

	// warning thresholds: flagged on the profile, never rejected
	WarningPpO2Low    float64 `yaml:"warning_ppo2_low"`
	WarningCnsMax     float64 `yaml:"warning_cns_max"`
	WarningOtuMax     float64 `yaml:"warning_otu_max"`
	WarningGasDensity float64 `yaml:"warning_gas_density"`
	WarningEnd        float64 `yaml:"warning_end"`

	// hard limits enforced by the bottom time search
	PlanCnsLimit float64 `yaml:"plan_cns_limit"`
	PlanOtuLimit float64 `yaml:"plan_otu_limit"`
	MaxStopTime  float64 `yaml:"max_stop_time"`

	// depth aware setpoint lookup on closed circuit
	BoostedSetpoints bool `yaml:"boosted_setpoints"`
}

func Default() Params {
	return Params{
		MaxPpO2Bottom:     1.4,
		MaxPpO2Deco:       1.6,
		MaxPpO2Diluent:    1.1,
		GfLow:             30,
		GfHigh:            85,
		DescentRate:       20,
		AscentRate:        10,
		SacBottom:         20,
		SacDeco:           15,
		PreferredEnd:      30,
		WarningPpO2Low:    0.18,
		WarningCnsMax:     80,
		WarningOtuMax:     250,
		WarningGasDensity: 6.2,
		WarningEnd:        40,
		PlanCnsLimit:      100,
		PlanOtuLimit:      300,
		MaxStopTime:       60,
		BoostedSetpoints:  true,
	}
}

func (p Params) Validate() error {
	checkPpO2 := func(name string, v float64) error {
		if v < 0.4 || v > 2 {
			return fmt.Errorf("%s=%v: must be within 0.4..2 bar", name, v)
		}
		return nil
	}
	if err := checkPpO2("max_ppo2_bottom", p.MaxPpO2Bottom); err != nil {
		return err
	}
	if err := checkPpO2("max_ppo2_deco", p.MaxPpO2Deco); err != nil {
		return err
	}
	if err := checkPpO2("max_ppo2_diluent", p.MaxPpO2Diluent); err != nil {
		return err
	}
	if p.GfLow <= 0 || p.GfHigh <= 0 || p.GfLow > 100 || p.GfHigh > 100 {
		return fmt.Errorf("gf_low=%v gf_high=%v: must be within 1..100", p.GfLow, p.GfHigh)
	}
	if p.GfLow > p.GfHigh {
		return fmt.Errorf("gf_low=%v: must not exceed gf_high=%v", p.GfLow, p.GfHigh)
	}
	for _, x := range []struct {
		name  string
		value float64
	}{
		{"descent_rate", p.DescentRate},
		{"ascent_rate", p.AscentRate},
		{"sac_bottom", p.SacBottom},
		{"sac_deco", p.SacDeco},
		{"preferred_end", p.PreferredEnd},
		{"max_stop_time", p.MaxStopTime},
	} {
		if x.value <= 0 {
			return fmt.Errorf("%s=%v: must be greater than zero", x.name, x.value)
		}
	}
	return nil
}

var (
	mu  sync.Mutex
	dir = filepath.Dir(os.Args[0])
	log = structlog.New()
)

// SetDir overrides the directory the parameters file is stored in.
func SetDir(d string) {
	mu.Lock()
	defer mu.Unlock()
	dir = d
}

func filename() string {
	return filepath.Join(dir, "divecalc.yaml")
}

// Get reads the parameters, substituting and re-persisting the default when
// the file is missing or corrupt.
func Get() Params {
	mu.Lock()
	defer mu.Unlock()
	p, err := read()
	if err == nil {
		if err = p.Validate(); err == nil {
			return p
		}
	}
	log.PrintErr(err, "file", filename(), "using", "default parameters")
	p = Default()
	if err := write(must.MarshalYaml(p)); err != nil {
		log.PrintErr(err)
	}
	return p
}

func Set(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	return write(must.MarshalYaml(p))
}

func read() (Params, error) {
	var p Params
	data, err := ioutil.ReadFile(filename())
	if err != nil {
		return p, err
	}
	err = yaml.Unmarshal(data, &p)
	return p, err
}

func write(b []byte) error {
	return ioutil.WriteFile(filename(), b, 0666)
}
