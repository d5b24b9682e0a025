/*

Gridbase is a versioned, chunked N-dimensional array database built
from an append-only chunk store plus a mutable pointer grid.  Large
arrays are split into fixed-shape blocks; each block is written once
under a fresh, monotonically increasing identifier, and a dense index
grid maps grid coordinates to the identifier currently representing
each cell.  Because chunks are never overwritten and the index is the
only mutable structure, snapshotting the index directory at different
points in time reconstructs the array as it existed at each snapshot.

Vocabulary:

- shape: ordered list of positive axis lengths; fixed at creation
- chunk shape: axis lengths of every raw chunk and every grid cell
- grid dimensions: per-axis ceiling of shape over chunk shape
- grid position: coordinate of one block-sized cell of the array
- block / raw chunk: one immutable stored block of array data, keyed
  by chunk identifier; stored as a file named by the decimal id
- chunk identifier: monotonically allocated, never-reused positive
  integer; 0 is reserved as the "no data" sentinel
- index grid: dense array of chunk identifiers (or the 0 sentinel),
  one entry per grid cell; the only mutable on-disk structure
- checkpoint: an external point-in-time snapshot of the index
  directory; restoring one yields a fully valid historical view of
  the array against the unchanged chunk store

Orphan chunks: rewriting a grid position points the index at a new
chunk and leaves the old one on disk, unreferenced by the live index.
Orphans are a permanent audit trail; they are what keeps historical
index snapshots dereferenceable.  Gridbase never deletes a chunk.

Gridbase assumes a single logical writer per store directory.  It
provides no cross-process locking; a multi-writer deployment needs
external mutual exclusion.

*/

package gridbase
