package plan

import (
	"github.com/ansel1/merry"
	"github.com/powerman/structlog"
)

var (
	// ErrInvalidIndex reports an edit or delete addressed at an entry
	// that does not exist.
	ErrInvalidIndex = merry.New("invalid index")

	// ErrLastEntry reports a delete that would leave a schedule empty.
	ErrLastEntry = merry.New("cannot delete the last entry")

	// ErrBusy reports a Build or Calculate that overlapped a running one
	// and was dropped.
	ErrBusy = merry.New("recompute already in progress")

	// ErrInfeasible reports a search that has no solution within the
	// configured constraints.
	ErrInfeasible = merry.New("no feasible solution")
)

var log = structlog.New()
