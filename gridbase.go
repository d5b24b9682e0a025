package gridbase

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

const (
	metadataFilename = "metadata.json"
	counterFilename  = "nextid"
	rawDirname       = "raw"
	indexDirname     = "indexes"

	// DefaultChunkEdge is the per-axis chunk size used when none is
	// given.
	DefaultChunkEdge = 128
)

// Metadata is the persisted store configuration: enough to reopen a
// store without loss.  TotalChunks is derived from the allocator
// counter when read, not stored here, so the two can't drift.
type Metadata struct {
	Shape       []int  `json:"shape"`
	Chunks      []int  `json:"chunks"`
	Dtype       Dtype  `json:"dtype"`
	TotalChunks uint64 `json:"-"`
}

// ReadMetadata reconstructs a store's metadata from dir.
func ReadMetadata(dir string) (meta *Metadata, err error) {
	buf, err := ioutil.ReadFile(filepath.Join(dir, metadataFilename))
	if err != nil {
		return nil, &NotDbError{Dir: dir}
	}
	meta = &Metadata{}
	err = json.Unmarshal(buf, meta)
	if err != nil {
		return nil, err
	}
	total, err := Counter{}.New(filepath.Join(dir, counterFilename)).Allocated()
	if err != nil {
		return nil, err
	}
	meta.TotalChunks = total
	return meta, nil
}

// Db is a versioned chunked array store rooted at Dir.  Shape and
// Chunks are fixed for the store's lifetime; the grid dimensions are
// always re-derived from them, never stored independently.
//
// The write path is: allocate an identifier, persist the block in the
// write-once chunk store, then point the index at it.  The chunk is
// durable before the index is updated, so a crash between the two
// steps leaves the index pointing at either no chunk or a valid
// chunk, never a missing one.  A crash after allocation merely burns
// an identifier.
type Db struct {
	Dir    string
	Shape  []int
	Chunks []int
	Dtype  Dtype

	dims    []int
	counter *Counter
	store   *Store
	index   *Index
	vc      *VCS
}

// CreateResult is what Create observed: the callers decide whether
// AlreadyExisted is success or failure.
type CreateResult int

const (
	Created CreateResult = iota
	AlreadyExisted
)

// wire derives grid dimensions and attaches the component handles.
// This is where configuration errors surface.
func (db *Db) wire() (err error) {
	if db.Dtype == "" {
		db.Dtype = DefaultDtype
	}
	if db.Chunks == nil {
		db.Chunks = make([]int, len(db.Shape))
		for i := range db.Chunks {
			db.Chunks[i] = DefaultChunkEdge
		}
	}
	if db.Dtype.Size() == 0 {
		return &ShapeError{Msg: fmt.Sprintf("unknown dtype: %q", db.Dtype)}
	}
	db.dims, err = GridDims(db.Shape, db.Chunks)
	if err != nil {
		return err
	}
	db.counter = Counter{}.New(filepath.Join(db.Dir, counterFilename))
	db.store = Store{}.New(filepath.Join(db.Dir, rawDirname))
	db.index = Index{}.New(filepath.Join(db.Dir, indexDirname), db.dims)
	db.vc = VCS{}.New(db.index.Dir)
	log.Debugf("grid dimensions: %v", db.dims)
	return nil
}

// Create initializes the store directory: metadata, the allocator
// counter, the raw chunk dir, a zero-filled index grid, and the
// version-control root (before any index write).  If Dir already
// exists and overwrite is false, nothing is touched and the result is
// AlreadyExisted.  If overwrite is true the entire prior store --
// index, all chunks, metadata -- is removed first; this is an
// all-or-nothing reset, not a per-chunk operation.
func (db Db) Create(overwrite bool) (out *Db, res CreateResult, err error) {
	err = db.wire()
	if err != nil {
		return nil, Created, err
	}
	defer Return(&err)

	if canstat(db.Dir) {
		if !overwrite {
			log.Debugf("store already exists: %s", db.Dir)
			return &db, AlreadyExisted, nil
		}
		err = os.RemoveAll(db.Dir)
		Ck(err)
	}

	err = mkdir(db.Dir, 0755)
	Ck(err)
	err = db.store.create()
	Ck(err)
	err = db.counter.init()
	Ck(err)

	meta := &Metadata{Shape: db.Shape, Chunks: db.Chunks, Dtype: db.Dtype}
	buf, err := json.MarshalIndent(meta, "", "  ")
	Ck(err)
	err = renameio.WriteFile(filepath.Join(db.Dir, metadataFilename), buf, 0644)
	Ck(err)

	err = db.index.create()
	Ck(err)
	err = db.vc.InitRepo()
	Ck(err)

	log.Debugf("store created: %s", db.Dir)
	return &db, Created, nil
}

// Open re-derives a live store from persisted metadata.
func Open(dir string) (db *Db, err error) {
	dir = filepath.Clean(dir)
	meta, err := ReadMetadata(dir)
	if err != nil {
		return nil, err
	}
	db = &Db{Dir: dir, Shape: meta.Shape, Chunks: meta.Chunks, Dtype: meta.Dtype}
	err = db.wire()
	if err != nil {
		return nil, err
	}
	return db, nil
}

// WriteBlock stores block at pos: allocate an identifier, persist the
// chunk, then update the index.  The previous chunk at pos, if any,
// stays on disk under its old identifier (see the orphan note in the
// package doc).  Returns the identifier the block was stored under.
func (db *Db) WriteBlock(block *Block, pos []int) (id uint64, err error) {
	if err = checkBounds(pos, db.dims); err != nil {
		return 0, err
	}
	if err = block.check(db.Chunks, db.Dtype); err != nil {
		return 0, err
	}
	id, err = db.counter.Next()
	if err != nil {
		return 0, err
	}
	if err = db.store.Put(id, block); err != nil {
		return 0, err
	}
	if err = db.index.Set(pos, PresentEntry(id)); err != nil {
		return 0, err
	}
	return id, nil
}

// ReadBlock returns the block at pos.  An empty cell yields a
// zero-filled block of the chunk shape; a non-zero entry whose chunk
// is gone surfaces as *ChunkMissingError.
func (db *Db) ReadBlock(pos []int) (block *Block, err error) {
	if err = checkBounds(pos, db.dims); err != nil {
		return nil, err
	}
	e, err := db.index.Get(pos)
	if err != nil {
		return nil, err
	}
	if e.Empty() {
		log.Debugf("no data for position %v", pos)
		return ZeroBlock(db.Chunks, db.Dtype), nil
	}
	return db.store.Get(e.Id())
}

// BlockExists reports whether pos has ever been written in the live
// index.
func (db *Db) BlockExists(pos []int) (ok bool, err error) {
	err = checkBounds(pos, db.dims)
	if err != nil {
		return false, err
	}
	return db.index.Exists(pos)
}

// BulkFill rewrites the whole index grid from a lazily-evaluated
// source in one pass, bypassing per-cell allocation.  The source must
// implement IndexSource and match the grid dimensions; otherwise no
// partial fill is performed.
func (db *Db) BulkFill(source interface{}) (err error) {
	src, ok := source.(IndexSource)
	if !ok {
		return &UnsupportedSourceError{Type: fmt.Sprintf("%T", source)}
	}
	sd := src.Dims()
	if len(sd) != len(db.dims) {
		return &ShapeError{Msg: fmt.Sprintf("source dims %v do not match grid dims %v", sd, db.dims)}
	}
	for i := range sd {
		if sd[i] != db.dims[i] {
			return &ShapeError{Msg: fmt.Sprintf("source dims %v do not match grid dims %v", sd, db.dims)}
		}
	}
	return db.index.fill(src)
}

// TotalChunks returns how many identifiers have ever been allocated.
// This is not the number of live index entries: rewriting a cell
// allocates a new chunk and orphans the old one.
func (db *Db) TotalChunks() (n uint64, err error) {
	return db.counter.Allocated()
}

// GridDims returns the store's grid dimensions.
func (db *Db) GridDims() []int {
	dims := make([]int, len(db.dims))
	copy(dims, db.dims)
	return dims
}

// VC exposes the version-control collaborator rooted at the index
// directory.
func (db *Db) VC() *VCS {
	return db.vc
}

// Size returns the total on-disk size of the store in bytes.
func (db *Db) Size() (int64, error) {
	return dirSize(db.Dir)
}

// VCSize returns the on-disk size of the index repository history.
func (db *Db) VCSize() (int64, error) {
	return db.vc.Size()
}
