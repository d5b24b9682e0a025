package gridbase

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack"
)

// Block is one raw chunk: a fixed-shape, fixed-dtype slab of array
// data.  Data is little-endian, row-major, and must be exactly
// numel(Shape) * Dtype.Size() bytes long.
type Block struct {
	Shape []int  `msgpack:"shape"`
	Dtype Dtype  `msgpack:"dtype"`
	Data  []byte `msgpack:"data"`
}

// ZeroBlock returns the all-zero block substituted for an empty grid
// cell.
func ZeroBlock(shape []int, dt Dtype) *Block {
	return &Block{
		Shape: shape,
		Dtype: dt,
		Data:  make([]byte, numel(shape)*dt.Size()),
	}
}

// check verifies the block against the store's chunk shape and dtype.
func (b *Block) check(chunks []int, dt Dtype) error {
	if len(b.Shape) != len(chunks) {
		return &ShapeError{Msg: fmt.Sprintf("block rank %v does not match chunk shape %v", b.Shape, chunks)}
	}
	for i := range chunks {
		if b.Shape[i] != chunks[i] {
			return &ShapeError{Msg: fmt.Sprintf("block shape %v does not match chunk shape %v", b.Shape, chunks)}
		}
	}
	if b.Dtype != dt {
		return &ShapeError{Msg: fmt.Sprintf("block dtype %s does not match store dtype %s", b.Dtype, dt)}
	}
	if len(b.Data) != numel(chunks)*dt.Size() {
		return &ShapeError{Msg: fmt.Sprintf("block data is %d bytes, want %d", len(b.Data), numel(chunks)*dt.Size())}
	}
	return nil
}

func (b *Block) encode() ([]byte, error) {
	return msgpack.Marshal(b)
}

func decodeBlock(buf []byte) (b *Block, err error) {
	b = &Block{}
	err = msgpack.Unmarshal(buf, b)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Equal compares shape, dtype, and data.
func (b *Block) Equal(other *Block) bool {
	if other == nil || b.Dtype != other.Dtype || len(b.Shape) != len(other.Shape) {
		return false
	}
	for i := range b.Shape {
		if b.Shape[i] != other.Shape[i] {
			return false
		}
	}
	return bytes.Equal(b.Data, other.Data)
}
