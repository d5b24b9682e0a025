package gridbase

import (
	"os/exec"
	"testing"
)

func needGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

// the time-travel property: restoring an index checkpoint yields the
// historical array against the unchanged chunk store
func TestTimeTravel(t *testing.T) {
	needGit(t)
	db := setup(t, nil)

	pos := []int{0, 0}
	b1 := mkblock(db, 1)
	b2 := mkblock(db, 2)

	_, err := db.WriteBlock(b1, pos)
	if err != nil {
		t.Fatal(err)
	}
	err = db.VC().Snapshot("v1")
	if err != nil {
		t.Fatal(err)
	}

	_, err = db.WriteBlock(b2, pos)
	if err != nil {
		t.Fatal(err)
	}
	got, err := db.ReadBlock(pos)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, got.Equal(b2), "live read should see b2")

	lines, err := db.VC().Log()
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, len(lines) == 1, "log lines %d, want 1", len(lines))

	// back to v1: the index reflects the old pointer, the chunk store
	// still resolves it
	err = db.VC().Restore("HEAD")
	if err != nil {
		t.Fatal(err)
	}
	got, err = db.ReadBlock(pos)
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, got.Equal(b1), "restored read should see b1")

	// total allocations are unaffected by the restore
	total, err := db.TotalChunks()
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, total == 2, "total chunks %d, want 2", total)
}

func TestVCSize(t *testing.T) {
	needGit(t)
	db := setup(t, nil)

	err := db.VC().Snapshot("initial")
	if err != nil {
		t.Fatal(err)
	}
	n, err := db.VCSize()
	if err != nil {
		t.Fatal(err)
	}
	tassert(t, n > 0, "vc size %d", n)
}
