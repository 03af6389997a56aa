package snap

import (
	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")

	w := NewWriter(1)
	w.PutUint32(2)
	w.PutFloat64(21.5)
	w.PutUint8(3)
	w.PutFloat64(-0.25)
	require.NoError(t, w.Save(filename))

	r, err := Load(filename, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), r.Uint32())
	assert.Equal(t, 21.5, r.Float64())
	assert.Equal(t, uint8(3), r.Uint8())
	assert.Equal(t, -0.25, r.Float64())
	assert.NoError(t, r.Err())
}

func TestBadMagic(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")
	must.WriteFile(filename, []byte("garbage"), 0666)

	_, err := Load(filename, 1)
	assert.True(t, merry.Is(err, ErrBadMagic))
}

func TestBadVersion(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")
	w := NewWriter(2)
	require.NoError(t, w.Save(filename))

	_, err := Load(filename, 1)
	assert.True(t, merry.Is(err, ErrBadVersion))
}

func TestTruncated(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")
	w := NewWriter(1)
	w.PutFloat64(1)
	require.NoError(t, w.Save(filename))

	r, err := Load(filename, 1)
	require.NoError(t, err)
	r.Float64()
	r.Float64()
	assert.True(t, merry.Is(r.Err(), ErrShortRecord))
}

func TestCountBounded(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")
	w := NewWriter(1)
	w.PutUint32(0xFFFFFFFF)
	require.NoError(t, w.Save(filename))

	r, err := Load(filename, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), r.Count(16))
	assert.True(t, merry.Is(r.Err(), ErrShortRecord))
}

func TestCountFitsRemaining(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "x.dat")
	w := NewWriter(1)
	w.PutUint32(2)
	w.PutFloat64(1)
	w.PutFloat64(2)
	require.NoError(t, w.Save(filename))

	r, err := Load(filename, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), r.Count(8))
	assert.NoError(t, r.Err())
}

func TestNoStaleTempFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "x.dat")
	w := NewWriter(1)
	w.PutUint32(1)
	require.NoError(t, w.Save(filename))

	files, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "x.dat", files[0].Name())
}
