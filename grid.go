package gridbase

import "fmt"

// GridDims maps an array shape and a chunk shape to grid dimensions:
// per axis, the ceiling of shape over chunk shape.  Both slices must
// have the same nonzero rank and all-positive entries; anything else
// is a configuration error reported at store construction.
func GridDims(shape, chunks []int) (dims []int, err error) {
	if len(shape) == 0 {
		return nil, &ShapeError{Msg: "empty shape"}
	}
	if len(shape) != len(chunks) {
		return nil, &ShapeError{Msg: fmt.Sprintf("rank mismatch: shape %v chunks %v", shape, chunks)}
	}
	dims = make([]int, len(shape))
	for i := range shape {
		if shape[i] < 1 || chunks[i] < 1 {
			return nil, &ShapeError{Msg: fmt.Sprintf("non-positive dimension: shape %v chunks %v", shape, chunks)}
		}
		dims[i] = shape[i] / chunks[i]
		if shape[i]%chunks[i] > 0 {
			dims[i]++
		}
	}
	return dims, nil
}

// checkBounds rejects any position outside dims, including a rank
// mismatch.
func checkBounds(pos, dims []int) error {
	if len(pos) != len(dims) {
		return &OutOfBoundsError{Pos: pos, Dims: dims}
	}
	for i := range pos {
		if pos[i] < 0 || pos[i] >= dims[i] {
			return &OutOfBoundsError{Pos: pos, Dims: dims}
		}
	}
	return nil
}

// linearIndex converts a bounds-checked position to its row-major
// offset within dims (the last axis varies fastest).
func linearIndex(pos, dims []int) int {
	n := 0
	for i := range dims {
		n = n*dims[i] + pos[i]
	}
	return n
}

// numel returns the number of cells in a shape.
func numel(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}
