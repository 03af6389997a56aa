package plan

import (
	"os"
	"sort"

	"github.com/dmorvan/divecalc/internal/pkg/snap"
)

const stopStepsSnapVersion = 1

// StopStep is one mandatory decompression station.
type StopStep struct {
	Depth float64 // m
	Time  float64 // min
}

// StopSteps is the ordered collection of stop stations anchoring the shape
// of the profile. The collection itself need not be sorted; the engine sorts
// and deduplicates at build time. It never empties.
type StopSteps struct {
	Steps    []StopStep
	filename string
}

func defaultStopSteps() []StopStep {
	return []StopStep{{3, 1}}
}

// LoadStopSteps reads the stop step snapshot, falling back to the default
// single station (3 m, 1 min), re-persisted immediately, when the file is
// missing or corrupt.
func LoadStopSteps(filename string) *StopSteps {
	s := &StopSteps{filename: filename}
	if err := s.load(); err != nil {
		if !os.IsNotExist(err) {
			log.PrintErr(err, "file", filename)
		}
		s.Steps = defaultStopSteps()
		if err := s.Save(); err != nil {
			log.PrintErr(err)
		}
	}
	return s
}

func (s *StopSteps) load() error {
	r, err := snap.Load(s.filename, stopStepsSnapVersion)
	if err != nil {
		return err
	}
	n := r.Count(16)
	if err := r.Err(); err != nil {
		return err
	}
	steps := make([]StopStep, 0, n)
	for i := uint32(0); i < n; i++ {
		var st StopStep
		st.Depth = r.Float64()
		st.Time = r.Float64()
		steps = append(steps, st)
	}
	if err := r.Err(); err != nil {
		return err
	}
	if len(steps) == 0 {
		steps = defaultStopSteps()
	}
	s.Steps = steps
	return nil
}

func (s *StopSteps) Save() error {
	w := snap.NewWriter(stopStepsSnapVersion)
	w.PutUint32(uint32(len(s.Steps)))
	for _, st := range s.Steps {
		w.PutFloat64(st.Depth)
		w.PutFloat64(st.Time)
	}
	return w.Save(s.filename)
}

func (s *StopSteps) Add(depth, time float64) {
	s.Steps = append(s.Steps, StopStep{depth, time})
}

func (s *StopSteps) Edit(i int, depth, time float64) error {
	if i < 0 || i >= len(s.Steps) {
		return ErrInvalidIndex.Here().Appendf("stop step %d of %d", i, len(s.Steps))
	}
	s.Steps[i] = StopStep{depth, time}
	return nil
}

func (s *StopSteps) Remove(i int) error {
	if i < 0 || i >= len(s.Steps) {
		return ErrInvalidIndex.Here().Appendf("stop step %d of %d", i, len(s.Steps))
	}
	if len(s.Steps) == 1 {
		return ErrLastEntry.Here()
	}
	s.Steps = append(s.Steps[:i], s.Steps[i+1:]...)
	return nil
}

// sortedUnique returns the stations sorted by decreasing depth with depth
// duplicates removed. Among duplicates the longest time wins.
func (s *StopSteps) sortedUnique() []StopStep {
	steps := make([]StopStep, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].Depth == steps[j].Depth {
			return steps[i].Time > steps[j].Time
		}
		return steps[i].Depth > steps[j].Depth
	})
	out := steps[:0]
	for _, st := range steps {
		if len(out) > 0 && out[len(out)-1].Depth == st.Depth {
			continue
		}
		out = append(out, st)
	}
	return out
}
