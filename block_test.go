package gridbase

import "testing"

func TestBlockRoundTrip(t *testing.T) {
	b := &Block{Shape: []int{2, 3}, Dtype: Uint16, Data: make([]byte, 12)}
	for i := range b.Data {
		b.Data[i] = byte(i)
	}

	buf, err := b.encode()
	if err != nil {
		t.Fatal(err)
	}
	got, err := decodeBlock(buf)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, got.Equal(b), "block round trip mismatch")
}

func TestZeroBlock(t *testing.T) {
	b := ZeroBlock([]int{4, 4}, Uint32)
	tassert(t, len(b.Data) == 64, "zero block is %d bytes, want 64", len(b.Data))
	for i, v := range b.Data {
		tassert(t, v == 0, "zero block byte %d is %d", i, v)
	}
}

func TestBlockCheck(t *testing.T) {
	chunks := []int{2, 2}

	good := ZeroBlock(chunks, Uint8)
	if err := good.check(chunks, Uint8); err != nil {
		t.Fatal(err)
	}

	bad := []*Block{
		{Shape: []int{2}, Dtype: Uint8, Data: make([]byte, 2)},
		{Shape: []int{2, 3}, Dtype: Uint8, Data: make([]byte, 6)},
		{Shape: chunks, Dtype: Uint16, Data: make([]byte, 8)},
		{Shape: chunks, Dtype: Uint8, Data: make([]byte, 3)},
	}
	for i, b := range bad {
		err := b.check(chunks, Uint8)
		if _, ok := err.(*ShapeError); !ok {
			t.Fatalf("case %d: expected ShapeError, got %v", i, err)
		}
	}
}

func TestDtype(t *testing.T) {
	tassert(t, Uint64.Size() == 8, "uint64 size")
	tassert(t, Int8.Size() == 1, "int8 size")
	tassert(t, Float32.Size() == 4, "float32 size")
	tassert(t, Dtype("complex128").Size() == 0, "unknown dtype size")

	dt, err := ParseDtype("float64")
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, dt == Float64, "parse float64")

	_, err = ParseDtype("bogus")
	if err == nil {
		t.Fatal("expected error, got none")
	}
}
