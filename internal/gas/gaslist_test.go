package gas

import (
	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/dmorvan/divecalc/internal/pkg/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
)

func tmpList(t *testing.T) *List {
	return Load(filepath.Join(t.TempDir(), "gaslist.dat"))
}

func TestLoadDefault(t *testing.T) {
	l := tmpList(t)
	require.Len(t, l.Gases, 1)
	assert.Equal(t, New(21, 0, Bottom, Active), l.Gases[0])
}

func TestLoadCorrupt(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gaslist.dat")
	must.WriteFile(filename, []byte("not a snapshot"), 0666)

	l := Load(filename)
	require.Len(t, l.Gases, 1)

	// the default list must have been re-persisted
	l2 := &List{filename: filename}
	require.NoError(t, l2.load())
	assert.Equal(t, l.Gases, l2.Gases)
}

func TestLoadOversizedCount(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gaslist.dat")
	w := snap.NewWriter(snapVersion)
	w.PutUint32(0xFFFFFFFF)
	require.NoError(t, w.Save(filename))

	l := Load(filename)
	require.Len(t, l.Gases, 1)
	assert.Equal(t, New(21, 0, Bottom, Active), l.Gases[0])
}

func TestLoadInvalidRecord(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gaslist.dat")
	l := &List{filename: filename, Gases: []Gas{New(0, 0, Bottom, Active)}}
	require.NoError(t, l.Save())

	// an o2=0 record is corruption, not a usable mixture
	loaded := Load(filename)
	require.Len(t, loaded.Gases, 1)
	assert.Equal(t, New(21, 0, Bottom, Active), loaded.Gases[0])
}

func TestRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gaslist.dat")
	l := Load(filename)

	deco := New(50, 0, Deco, Active)
	deco.SwitchDepth = 21
	deco.SwitchPpO2 = 1.61
	deco.TankCount = 2
	deco.TankCapacity = 7
	deco.FillPressure = 232
	deco.ReservePressure = 40
	require.NoError(t, l.Add(deco))
	require.NoError(t, l.Add(New(10, 70, Diluent, Inactive)))
	require.NoError(t, l.Save())

	loaded := Load(filename)
	assert.Equal(t, l.Gases, loaded.Gases)
}

func TestEditDelete(t *testing.T) {
	l := tmpList(t)
	require.NoError(t, l.Add(New(50, 0, Deco, Active)))

	require.NoError(t, l.Edit(1, New(80, 0, Deco, Active)))
	assert.Equal(t, 80.0, l.Gases[1].O2Pct)

	assert.True(t, merry.Is(l.Edit(5, New(80, 0, Deco, Active)), ErrInvalidIndex))
	assert.True(t, merry.Is(l.Delete(-1), ErrInvalidIndex))
	assert.True(t, merry.Is(l.SetStatus(2, Inactive), ErrInvalidIndex))

	require.NoError(t, l.Delete(1))
	assert.Len(t, l.Gases, 1)
}

func TestBestForDepth(t *testing.T) {
	p := cfg.Default()
	l := tmpList(t)
	require.NoError(t, l.Add(New(50, 0, Deco, Active)))
	require.NoError(t, l.Add(New(100, 0, Deco, Active)))

	// at 21 m only EAN50 is breathable at the deco ceiling
	assert.Equal(t, 50.0, l.BestForDepth(p, 21, Deco).O2Pct)

	// at 6 m both qualify, oxygen wins
	assert.Equal(t, 100.0, l.BestForDepth(p, 6, Deco).O2Pct)

	// inactive gases never qualify
	require.NoError(t, l.SetStatus(2, Inactive))
	assert.Equal(t, 50.0, l.BestForDepth(p, 6, Deco).O2Pct)
}

func TestBestForDepthSwitchOverride(t *testing.T) {
	p := cfg.Default()
	l := tmpList(t)
	ean50 := New(50, 0, Deco, Active)
	ean50.SwitchDepth = 18 // shallower than the 22 m MOD
	require.NoError(t, l.Add(ean50))

	got := l.BestForDepth(p, 21, Deco)
	assert.NotEqual(t, 50.0, got.O2Pct, "overridden switch depth must exclude EAN50 at 21 m")
	assert.Equal(t, 50.0, l.BestForDepth(p, 18, Deco).O2Pct)
}

func TestBestForDepthSynthesized(t *testing.T) {
	p := cfg.Default()
	l := tmpList(t)

	// no deco gas configured: synthesize the richest breathable mix
	g := l.BestForDepth(p, 30, Deco)
	assert.InDelta(t, 40, g.O2Pct, 1e-9) // 1.6 bar / 4 bar
	assert.Equal(t, Deco, g.Type)

	// very deep synthesis blends helium and clamps oxygen at 10%
	g = l.BestForDepth(p, 150, Bottom)
	assert.InDelta(t, 10, g.O2Pct, 1e-9)
	assert.Greater(t, g.HePct, 0.0)
}
