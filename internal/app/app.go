// Package app wires the planning engine, the schedules, the dive journal
// and the Lua scripting into the command line interface.
package app

import (
	"path/filepath"

	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/data"
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/dmorvan/divecalc/internal/pkg"
	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/jmoiron/sqlx"
	"github.com/powerman/structlog"
)

var log = structlog.New()

func Main() {
	if err := Execute(); err != nil {
		log.Fatal(err)
	}
}

// state is the persisted planning state: the parameters and the three
// schedules, loaded fresh on every command.
type state struct {
	params    cfg.Params
	gases     *gas.List
	setPoints *plan.SetPoints
	stopSteps *plan.StopSteps
}

func loadState() *state {
	return &state{
		params:    cfg.Get(),
		gases:     gas.Load(dataFilename("gases.dat")),
		setPoints: plan.LoadSetPoints(dataFilename("setpoints.dat")),
		stopSteps: plan.LoadStopSteps(dataFilename("stops.dat")),
	}
}

func (s *state) newPlan(depth, bottomTime float64, mode plan.DiveMode) *plan.Plan {
	return plan.New(s.params, s.gases, s.setPoints, s.stopSteps, depth, bottomTime, mode)
}

func dataFilename(name string) string {
	if dataDir != "" {
		return filepath.Join(dataDir, name)
	}
	return pkg.AppFilename(name)
}

func openDB() (*sqlx.DB, error) {
	return data.Open(dataFilename("divecalc.sqlite"))
}
