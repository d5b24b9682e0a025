package gridbase

import (
	"testing"
	"time"
)

func TestWatchIndex(t *testing.T) {
	db := setup(t, nil)

	w, err := db.WatchIndex()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	_, err = db.WriteBlock(mkblock(db, 1), []int{0, 0})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events:
		t.Logf("event: %v", ev)
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event after index write")
	}
}
