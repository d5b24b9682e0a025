package gridbase

import (
	"bytes"
	"testing"

	"github.com/hlubek/readercomp"
)

func storeSetup(t *testing.T) *Store {
	s := Store{}.New(t.TempDir())
	err := s.create()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStorePutGet(t *testing.T) {
	s := storeSetup(t)

	b := &Block{Shape: []int{2, 2}, Dtype: Uint8, Data: []byte{1, 2, 3, 4}}
	err := s.Put(1, b)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, s.Has(1), "chunk 1 not present after Put")

	got, err := s.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, got.Equal(b), "chunk 1 round trip mismatch")

	equal, err := readercomp.Equal(bytes.NewReader(got.Data), bytes.NewReader(b.Data), 4096)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, equal, "chunk payload mismatch")
}

// Put must reject an identifier that is already on disk rather than
// silently overwrite
func TestStoreWriteOnce(t *testing.T) {
	s := storeSetup(t)

	b1 := &Block{Shape: []int{2}, Dtype: Uint8, Data: []byte{1, 1}}
	b2 := &Block{Shape: []int{2}, Dtype: Uint8, Data: []byte{2, 2}}

	err := s.Put(7, b1)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Put(7, b2)
	if _, ok := err.(*ChunkExistsError); !ok {
		t.Fatalf("expected ChunkExistsError, got %v", err)
	}

	// the original chunk is untouched
	got, err := s.Get(7)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, got.Equal(b1), "collision overwrote chunk 7")
}

func TestStoreMissing(t *testing.T) {
	s := storeSetup(t)
	tassert(t, !s.Has(42), "chunk 42 should not exist")
	_, err := s.Get(42)
	if _, ok := err.(*ChunkMissingError); !ok {
		t.Fatalf("expected ChunkMissingError, got %v", err)
	}
}
