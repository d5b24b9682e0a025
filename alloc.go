package gridbase

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/google/renameio"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// Counter is the durable chunk identifier allocator.  Next() returns
// a value strictly greater than every value it has ever returned for
// this store, including across process restarts: each call reads the
// counter file, atomically rewrites it with the incremented value,
// and only then hands out the identifier.  A crash can burn an
// identifier but never reissue one.
//
// Counter assumes a single writer process per store directory -- the
// read-modify-write is not protected against concurrent allocators.
type Counter struct {
	Path string
}

func (c Counter) New(path string) *Counter {
	c.Path = path
	return &c
}

// init seeds the counter; identifiers start at 1, 0 is the reserved
// empty sentinel.
func (c *Counter) init() error {
	return renameio.WriteFile(c.Path, []byte("1\n"), 0644)
}

// Peek returns the next identifier that Next() would allocate,
// without allocating it.
func (c *Counter) Peek() (id uint64, err error) {
	defer Return(&err)
	buf, err := ioutil.ReadFile(c.Path)
	Ck(err)
	id, err = strconv.ParseUint(strings.TrimSpace(string(buf)), 10, 64)
	Ck(err)
	if id < 1 {
		return 0, fmt.Errorf("corrupt counter %s: %d", c.Path, id)
	}
	return id, nil
}

// Next allocates a fresh identifier.  The incremented counter is
// durable before the identifier is returned.
func (c *Counter) Next() (id uint64, err error) {
	defer Return(&err)
	id, err = c.Peek()
	Ck(err)
	next := []byte(strconv.FormatUint(id+1, 10) + "\n")
	err = renameio.WriteFile(c.Path, next, 0644)
	Ck(err)
	log.Debugf("allocated chunk id %d", id)
	return id, nil
}

// Allocated returns how many identifiers have ever been handed out.
func (c *Counter) Allocated() (n uint64, err error) {
	id, err := c.Peek()
	if err != nil {
		return 0, err
	}
	return id - 1, nil
}
