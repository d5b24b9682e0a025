package gridbase

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

const indexFilename = "grid"

// Entry is one cell of the index grid: either empty, or a chunk
// identifier.  The zero sentinel is the wire representation only;
// in-memory code uses this type so "no data" can't be confused with
// a real identifier.
type Entry struct {
	id uint64
}

func PresentEntry(id uint64) Entry {
	Assert(id > 0, "chunk id 0 is reserved")
	return Entry{id: id}
}

func (e Entry) Empty() bool {
	return e.id == 0
}

func (e Entry) Id() uint64 {
	Assert(e.id > 0, "Id() on empty entry")
	return e.id
}

// Index is the dense grid of chunk pointers, persisted as a single
// flat little-endian uint64 file under Dir, one entry per grid cell.
// The file is sized by the grid dimensions at creation, independent
// of how many blocks are ever written.  Dir is also the root the
// version-control collaborator snapshots; point writes keep each
// 8-byte entry independently addressable, so concurrent readers of a
// cell see either the old or the new identifier, never a torn one.
type Index struct {
	Dir  string
	Dims []int
}

func (ix Index) New(dir string, dims []int) *Index {
	ix.Dir = dir
	ix.Dims = dims
	return &ix
}

func (ix *Index) file() string {
	return filepath.Join(ix.Dir, indexFilename)
}

// create makes the index directory and a zero-filled grid file.
// Create-exclusive: fails if the grid file already exists.
func (ix *Index) create() (err error) {
	defer Return(&err)
	err = mkdir(ix.Dir, 0755)
	Ck(err)
	fh, err := os.OpenFile(ix.file(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	Ck(err)
	err = fh.Truncate(int64(8 * numel(ix.Dims)))
	Ck(err)
	err = fh.Close()
	Ck(err)
	log.Debugf("created index grid %v at %s", ix.Dims, ix.file())
	return nil
}

// Get is a pure point lookup; an untouched cell reads as the zero
// sentinel, i.e. an empty Entry.
func (ix *Index) Get(pos []int) (e Entry, err error) {
	defer Return(&err)
	fh, err := os.Open(ix.file())
	Ck(err)
	defer fh.Close()
	var buf [8]byte
	_, err = fh.ReadAt(buf[:], ix.offset(pos))
	Ck(err)
	return Entry{id: binary.LittleEndian.Uint64(buf[:])}, nil
}

// Set is an unconditional point overwrite.  This is the only mutable
// pointer in the system; snapshotting Dir is what makes the store
// versioned.
func (ix *Index) Set(pos []int, e Entry) (err error) {
	defer Return(&err)
	fh, err := os.OpenFile(ix.file(), os.O_WRONLY, 0644)
	Ck(err)
	defer fh.Close()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], e.id)
	_, err = fh.WriteAt(buf[:], ix.offset(pos))
	Ck(err)
	log.Debugf("index %v = %d", pos, e.id)
	return nil
}

func (ix *Index) Exists(pos []int) (ok bool, err error) {
	e, err := ix.Get(pos)
	if err != nil {
		return false, err
	}
	return !e.Empty(), nil
}

func (ix *Index) offset(pos []int) int64 {
	return int64(8 * linearIndex(pos, ix.Dims))
}

// IndexSource lazily produces one chunk identifier (or the 0
// sentinel) per grid cell.  Callers adapt precomputed mappings into
// this interface; At is invoked once per cell, in row-major order.
type IndexSource interface {
	Dims() []int
	At(pos []int) (uint64, error)
}

// fill rewrites the whole grid file from src in one sequential pass,
// bypassing per-cell allocation.  The new file replaces the old one
// atomically, so a failed fill leaves the previous index intact.
func (ix *Index) fill(src IndexSource) (err error) {
	defer Return(&err)

	t, err := renameio.TempFile(ix.Dir, ix.file())
	Ck(err)
	defer t.Cleanup()

	w := bufio.NewWriter(t)
	pos := make([]int, len(ix.Dims))
	var buf [8]byte
	for n := numel(ix.Dims); n > 0; n-- {
		id, err := src.At(pos)
		Ck(err)
		binary.LittleEndian.PutUint64(buf[:], id)
		_, err = w.Write(buf[:])
		Ck(err)
		increment(pos, ix.Dims)
	}
	err = w.Flush()
	Ck(err)

	return t.CloseAtomicallyReplace()
}

// increment advances pos through dims in row-major order.
func increment(pos, dims []int) {
	for i := len(pos) - 1; i >= 0; i-- {
		pos[i]++
		if pos[i] < dims[i] {
			return
		}
		pos[i] = 0
	}
}
