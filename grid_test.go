package gridbase

import "testing"

func TestGridDims(t *testing.T) {
	cases := []struct {
		shape  []int
		chunks []int
		want   []int
	}{
		{[]int{100, 100}, []int{64, 64}, []int{2, 2}},
		{[]int{128, 128}, []int{64, 64}, []int{2, 2}},
		{[]int{129, 128}, []int{64, 64}, []int{3, 2}},
		{[]int{1, 1}, []int{64, 64}, []int{1, 1}},
		{[]int{1000}, []int{3}, []int{334}},
		{[]int{7, 8, 9}, []int{2, 2, 2}, []int{4, 4, 5}},
		{[]int{64}, []int{64}, []int{1}},
	}
	for _, c := range cases {
		got, err := GridDims(c.shape, c.chunks)
		if err != nil {
			t.Fatal(err)
		}
		tassert(t, pretty(got) == pretty(c.want),
			"GridDims(%v, %v) = %v, want %v", c.shape, c.chunks, got, c.want)
	}
}

func TestGridDimsBad(t *testing.T) {
	cases := []struct {
		shape  []int
		chunks []int
	}{
		{[]int{}, []int{}},
		{[]int{100}, []int{64, 64}},
		{[]int{0, 100}, []int{64, 64}},
		{[]int{100, 100}, []int{64, 0}},
		{[]int{-1}, []int{64}},
	}
	for _, c := range cases {
		_, err := GridDims(c.shape, c.chunks)
		if _, ok := err.(*ShapeError); !ok {
			t.Fatalf("GridDims(%v, %v): expected ShapeError, got %v", c.shape, c.chunks, err)
		}
	}
}

func TestLinearIndex(t *testing.T) {
	dims := []int{2, 3, 4}
	// last axis varies fastest
	tassert(t, linearIndex([]int{0, 0, 0}, dims) == 0, "origin")
	tassert(t, linearIndex([]int{0, 0, 1}, dims) == 1, "last axis")
	tassert(t, linearIndex([]int{0, 1, 0}, dims) == 4, "middle axis")
	tassert(t, linearIndex([]int{1, 0, 0}, dims) == 12, "first axis")
	tassert(t, linearIndex([]int{1, 2, 3}, dims) == 23, "corner")
}

func TestIncrement(t *testing.T) {
	dims := []int{2, 2}
	pos := []int{0, 0}
	want := [][]int{{0, 1}, {1, 0}, {1, 1}, {0, 0}}
	for _, w := range want {
		increment(pos, dims)
		tassert(t, pretty(pos) == pretty(w), "got %v, want %v", pos, w)
	}
}

func TestCheckBounds(t *testing.T) {
	dims := []int{2, 2}
	if err := checkBounds([]int{1, 1}, dims); err != nil {
		t.Fatal(err)
	}
	for _, pos := range [][]int{{2, 0}, {0, -1}, {1}, {0, 0, 0}} {
		err := checkBounds(pos, dims)
		if _, ok := err.(*OutOfBoundsError); !ok {
			t.Fatalf("checkBounds(%v): expected OutOfBoundsError, got %v", pos, err)
		}
	}
}
