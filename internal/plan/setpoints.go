package plan

import (
	"os"
	"sort"

	"github.com/dmorvan/divecalc/internal/pkg/snap"
)

const setPointsSnapVersion = 1

// SetPoint is one breakpoint of the closed circuit oxygen setpoint policy.
type SetPoint struct {
	Depth float64 // m
	PpO2  float64 // bar
}

// SetPoints is the depth indexed setpoint schedule: a stepwise decreasing
// pO2 target, higher at depth, lower near the surface. The schedule is kept
// sorted by depth descending, then setpoint descending, and never empties.
type SetPoints struct {
	Points   []SetPoint
	filename string
}

func defaultSetPoints() []SetPoint {
	return []SetPoint{
		{1000, 1.3},
		{40, 1.4},
		{21, 1.5},
		{6, 1.6},
	}
}

// LoadSetPoints reads the setpoint snapshot, falling back to the default
// four breakpoint schedule (re-persisted immediately) when the file is
// missing or corrupt.
func LoadSetPoints(filename string) *SetPoints {
	s := &SetPoints{filename: filename}
	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			log.PrintErr(err, "file", filename)
		}
		s.Points = defaultSetPoints()
		s.sort()
		if err := s.Save(); err != nil {
			log.PrintErr(err)
		}
	}
	return s
}

func (s *SetPoints) load() error {
	r, err := snap.Load(s.filename, setPointsSnapVersion)
	if err != nil {
		return err
	}
	n := r.Count(16)
	if err := r.Err(); err != nil {
		return err
	}
	points := make([]SetPoint, 0, n)
	for i := uint32(0); i < n; i++ {
		var p SetPoint
		p.Depth = r.Float64()
		p.PpO2 = r.Float64()
		points = append(points, p)
	}
	if err := r.Err(); err != nil {
		return err
	}
	if len(points) == 0 {
		points = defaultSetPoints()
	}
	s.Points = points
	s.sort()
	return nil
}

func (s *SetPoints) Save() error {
	w := snap.NewWriter(setPointsSnapVersion)
	w.PutUint32(uint32(len(s.Points)))
	for _, p := range s.Points {
		w.PutFloat64(p.Depth)
		w.PutFloat64(p.PpO2)
	}
	return w.Save(s.filename)
}

func (s *SetPoints) sort() {
	sort.SliceStable(s.Points, func(i, j int) bool {
		a, b := s.Points[i], s.Points[j]
		if a.Depth == b.Depth {
			return a.PpO2 > b.PpO2
		}
		return a.Depth > b.Depth
	})
}

func (s *SetPoints) Add(depth, ppO2 float64) {
	s.Points = append(s.Points, SetPoint{depth, ppO2})
	s.sort()
}

func (s *SetPoints) Edit(i int, depth, ppO2 float64) error {
	if i < 0 || i >= len(s.Points) {
		return ErrInvalidIndex.Here().Appendf("setpoint %d of %d", i, len(s.Points))
	}
	s.Points[i] = SetPoint{depth, ppO2}
	s.sort()
	return nil
}

func (s *SetPoints) Remove(i int) error {
	if i < 0 || i >= len(s.Points) {
		return ErrInvalidIndex.Here().Appendf("setpoint %d of %d", i, len(s.Points))
	}
	if len(s.Points) == 1 {
		return ErrLastEntry.Here()
	}
	s.Points = append(s.Points[:i], s.Points[i+1:]...)
	return nil
}

// AtDepth returns the setpoint in effect at depth. Without boosting the
// deepest breakpoint's value applies everywhere. With boosting the schedule
// is a right continuous step function: depths at or beyond the deepest
// breakpoint get its value, depths shallower than the shallowest breakpoint
// get that one's value, and anything between two breakpoints gets the value
// attached to the deeper bound of the containing interval.
func (s *SetPoints) AtDepth(depth float64, boosted bool) float64 {
	last := len(s.Points) - 1
	if !boosted || depth >= s.Points[0].Depth {
		return s.Points[0].PpO2
	}
	if depth < s.Points[last].Depth {
		return s.Points[last].PpO2
	}
	for i := 0; i < last; i++ {
		if depth < s.Points[i].Depth && depth >= s.Points[i+1].Depth {
			return s.Points[i].PpO2
		}
	}
	return s.Points[0].PpO2
}
