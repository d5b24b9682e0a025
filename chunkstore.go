package gridbase

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// Store is write-once chunk storage: one file per chunk under Dir,
// named by the decimal identifier.  The store knows nothing about
// grid positions; chunks are keyed solely by identifier.  A chunk,
// once written, is never modified or deleted.
type Store struct {
	Dir string
}

func (s Store) New(dir string) *Store {
	s.Dir = dir
	return &s
}

func (s *Store) create() error {
	return mkdir(s.Dir, 0755)
}

func (s *Store) path(id uint64) string {
	return filepath.Join(s.Dir, strconv.FormatUint(id, 10))
}

// Put persists block under id.  It fails with *ChunkExistsError if id
// is already present -- this is the immutability contract.  The block
// is written to a temp file and renamed into place, so a reader never
// sees a partial chunk and a crash mid-Put leaves no file under id.
// The exists check is race-free under the store's single-writer
// assumption.
func (s *Store) Put(id uint64, block *Block) (err error) {
	defer Return(&err)

	Assert(id > 0, "chunk id 0 is reserved")
	abs := s.path(id)
	if exists(abs) {
		return &ChunkExistsError{Id: id}
	}

	buf, err := block.encode()
	Ck(err)

	fh, err := ioutil.TempFile(s.Dir, "*")
	Ck(err)
	n, err := fh.Write(buf)
	Ck(err)
	Assert(n == len(buf), "short write")
	err = fh.Close()
	Ck(err)

	err = os.Rename(fh.Name(), abs)
	Ck(err)

	log.Debugf("stored chunk %d (%d bytes)", id, len(buf))
	return nil
}

// Get retrieves the chunk stored under id.  A missing chunk is a
// *ChunkMissingError; when the id came from a live index entry that
// is a data-integrity violation, not an empty cell.
func (s *Store) Get(id uint64) (block *Block, err error) {
	buf, err := ioutil.ReadFile(s.path(id))
	if os.IsNotExist(errors.Cause(err)) {
		return nil, &ChunkMissingError{Id: id}
	}
	if err != nil {
		return nil, err
	}
	return decodeBlock(buf)
}

// Has reports whether a chunk is present under id.
func (s *Store) Has(id uint64) bool {
	return exists(s.path(id))
}
