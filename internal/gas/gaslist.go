package gas

import (
	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/pkg/snap"
	"github.com/powerman/structlog"
	"os"
)

var (
	ErrInvalidIndex = merry.New("invalid gas index")

	log = structlog.New()
)

const snapVersion = 1

// List is the insertion ordered collection of mixtures. Insertion order is
// the selection priority among equally qualifying mixtures.
type List struct {
	Gases    []Gas
	filename string
}

// Load reads the gas list snapshot. A missing or corrupt file falls back to
// the default list of a single active air bottom gas, which is re-persisted
// immediately.
func Load(filename string) *List {
	l := &List{filename: filename}
	if err := l.load(); err != nil {
		if !os.IsNotExist(err) {
			log.PrintErr(err, "file", filename)
		}
		l.Gases = []Gas{New(21, 0, Bottom, Active)}
		if err := l.Save(); err != nil {
			log.PrintErr(err)
		}
	}
	return l
}

func (l *List) load() error {
	r, err := snap.Load(l.filename, snapVersion)
	if err != nil {
		return err
	}
	n := r.Count(62)
	if err := r.Err(); err != nil {
		return err
	}
	gases := make([]Gas, 0, n)
	for i := uint32(0); i < n; i++ {
		var g Gas
		g.O2Pct = r.Float64()
		g.HePct = r.Float64()
		g.Type = Type(r.Uint8())
		g.Status = Status(r.Uint8())
		g.SwitchDepth = r.Float64()
		g.SwitchPpO2 = r.Float64()
		g.TankCount = int(r.Uint32())
		g.TankCapacity = r.Float64()
		g.FillPressure = r.Float64()
		g.ReservePressure = r.Float64()
		if r.Err() == nil {
			if err := g.Validate(); err != nil {
				return merry.Appendf(err, "gas %d", i)
			}
		}
		gases = append(gases, g)
	}
	if err := r.Err(); err != nil {
		return err
	}
	l.Gases = gases
	return nil
}

// Save persists the whole list atomically. The in-memory list stays valid
// when the write fails.
func (l *List) Save() error {
	w := snap.NewWriter(snapVersion)
	w.PutUint32(uint32(len(l.Gases)))
	for _, g := range l.Gases {
		w.PutFloat64(g.O2Pct)
		w.PutFloat64(g.HePct)
		w.PutUint8(uint8(g.Type))
		w.PutUint8(uint8(g.Status))
		w.PutFloat64(g.SwitchDepth)
		w.PutFloat64(g.SwitchPpO2)
		w.PutUint32(uint32(g.TankCount))
		w.PutFloat64(g.TankCapacity)
		w.PutFloat64(g.FillPressure)
		w.PutFloat64(g.ReservePressure)
	}
	return w.Save(l.filename)
}

func (l *List) Add(g Gas) error {
	if err := g.Validate(); err != nil {
		return merry.Wrap(err)
	}
	l.Gases = append(l.Gases, g)
	return nil
}

func (l *List) Edit(i int, g Gas) error {
	if i < 0 || i >= len(l.Gases) {
		return ErrInvalidIndex.Here().Appendf("%d of %d", i, len(l.Gases))
	}
	if err := g.Validate(); err != nil {
		return merry.Wrap(err)
	}
	l.Gases[i] = g
	return nil
}

func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.Gases) {
		return ErrInvalidIndex.Here().Appendf("%d of %d", i, len(l.Gases))
	}
	l.Gases = append(l.Gases[:i], l.Gases[i+1:]...)
	return nil
}

func (l *List) SetStatus(i int, st Status) error {
	if i < 0 || i >= len(l.Gases) {
		return ErrInvalidIndex.Here().Appendf("%d of %d", i, len(l.Gases))
	}
	l.Gases[i].Status = st
	return nil
}

// CeilingFor is the oxygen partial pressure ceiling applied to a gas role.
func CeilingFor(p cfg.Params, role Type) float64 {
	switch role {
	case Deco:
		return p.MaxPpO2Deco
	case Diluent:
		return p.MaxPpO2Diluent
	}
	return p.MaxPpO2Bottom
}

// switchLimit is the deepest depth the gas may be breathed at on open
// circuit: the manual switch depth when set, otherwise the MOD at the manual
// switch pO2 or the role ceiling.
func (g Gas) switchLimit(p cfg.Params) float64 {
	if g.SwitchDepth > 0 {
		return g.SwitchDepth
	}
	ppO2 := g.SwitchPpO2
	if ppO2 <= 0 {
		ppO2 = CeilingFor(p, g.Type)
	}
	return g.MOD(ppO2)
}

// BestForDepth selects the active gas of the given role with the highest
// oxygen share breathable at depth. When no configured gas qualifies it
// synthesizes a mixture holding the role ceiling at depth, with helium
// blended in to keep the narcotic depth at the preferred value.
func (l *List) BestForDepth(p cfg.Params, depth float64, role Type) Gas {
	const eps = 1e-9
	best, found := Gas{}, false
	for _, g := range l.Gases {
		if g.Status != Active || g.Type != role {
			continue
		}
		if g.switchLimit(p)+eps < depth {
			continue
		}
		if !found || g.O2Pct > best.O2Pct {
			best, found = g, true
		}
	}
	if found {
		return best
	}
	o2 := 100 * CeilingFor(p, role) / PressureAtDepth(depth)
	if o2 > 100 {
		o2 = 100
	}
	if o2 < 10 {
		o2 = 10
	}
	return New(o2, OptimalHePct(depth, o2, p.PreferredEnd), role, Active)
}
