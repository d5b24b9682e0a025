package gridbase

import "fmt"

// ShapeError reports an invalid shape or chunk-shape configuration,
// or a block whose shape/dtype does not match the store's.  These are
// construction-time errors; nothing retries them.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return e.Msg
}

type NotDbError struct {
	Dir string
}

func (e *NotDbError) Error() string {
	return fmt.Sprintf("not a gridbase store: %s", e.Dir)
}

// ChunkExistsError means a Put collided with an identifier that is
// already on disk.  Identifiers come from a monotonic allocator, so
// this indicates allocator misuse; the write must abort rather than
// fall back to overwriting.
type ChunkExistsError struct {
	Id uint64
}

func (e *ChunkExistsError) Error() string {
	return fmt.Sprintf("chunk already exists: %d", e.Id)
}

// ChunkMissingError means an index entry points at a chunk that is
// not in the store -- the immutability invariant was broken
// externally.  Only an empty index entry legitimately yields a zero
// block; a dangling non-zero entry is corruption and is surfaced.
type ChunkMissingError struct {
	Id uint64
}

func (e *ChunkMissingError) Error() string {
	return fmt.Sprintf("chunk not found: %d", e.Id)
}

type OutOfBoundsError struct {
	Pos  []int
	Dims []int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid position %v outside grid dimensions %v", e.Pos, e.Dims)
}

// UnsupportedSourceError means BulkFill was handed a value that does
// not implement the IndexSource capability.  No partial fill happens.
type UnsupportedSourceError struct {
	Type string
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("unsupported bulk fill source type: %s", e.Type)
}
