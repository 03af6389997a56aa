// Package snap reads and writes the snapshot files the schedules are
// persisted in: a four byte magic, a format version byte, then fixed width
// little endian fields. Files are replaced atomically so that a failed write
// never leaves a truncated snapshot behind.
package snap

import (
	"bytes"
	"encoding/binary"
	"github.com/ansel1/merry"
	"io/ioutil"
	"math"
	"os"
)

var (
	ErrBadMagic    = merry.New("not a snapshot file")
	ErrBadVersion  = merry.New("unsupported snapshot version")
	ErrShortRecord = merry.New("snapshot record truncated")
)

var magic = [4]byte{'D', 'C', 'S', 'N'}

type Writer struct {
	buf bytes.Buffer
}

func NewWriter(version uint8) *Writer {
	var w Writer
	w.buf.Write(magic[:])
	w.buf.WriteByte(version)
	return &w
}

func (w *Writer) PutUint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) PutFloat64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

// Save writes the snapshot to a temp file in the target directory and
// renames it over filename.
func (w *Writer) Save(filename string) error {
	tmp := filename + ".tmp"
	if err := ioutil.WriteFile(tmp, w.buf.Bytes(), 0666); err != nil {
		return merry.Append(err, filename)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return merry.Append(err, filename)
	}
	return nil
}

type Reader struct {
	b   []byte
	off int
	err error
}

// Load opens a snapshot and checks magic and version.
func Load(filename string, version uint8) (*Reader, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(b) < 5 || !bytes.Equal(b[:4], magic[:]) {
		return nil, ErrBadMagic.Here().Append(filename)
	}
	if b[4] != version {
		return nil, ErrBadVersion.Here().Appendf("%s: version %d", filename, b[4])
	}
	return &Reader{b: b, off: 5}, nil
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.b) {
		r.err = ErrShortRecord.Here()
		return nil
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Count reads a record count and checks it fits the bytes remaining at
// recordSize bytes per record. A count the file cannot hold marks the
// snapshot corrupt instead of driving an oversized allocation.
func (r *Reader) Count(recordSize int) uint32 {
	n := r.Uint32()
	if r.err == nil && uint64(n)*uint64(recordSize) > uint64(len(r.b)-r.off) {
		r.err = ErrShortRecord.Here().Appendf("%d records of %d bytes, %d bytes left", n, recordSize, len(r.b)-r.off)
		return 0
	}
	return n
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *Reader) Float64() float64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// Err reports the first decode failure, if any.
func (r *Reader) Err() error {
	return r.err
}
