package gridbase

import (
	"github.com/fsnotify/fsnotify"
	. "github.com/stevegt/goadapt"
)

// Watcher surfaces filesystem events on the index directory.  A
// long-lived process can use it to notice an external checkpoint
// restore replacing the grid file underneath it; gridbase itself
// opens the index per operation, so the next read already resolves
// the restored pointers.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan fsnotify.Event
	Errors  chan error
}

// WatchIndex starts watching the store's index directory.
func (db *Db) WatchIndex() (w *Watcher, err error) {
	defer Return(&err)

	w = &Watcher{}
	w.watcher, err = fsnotify.NewWatcher()
	Ck(err)

	w.Events = w.watcher.Events
	w.Errors = w.watcher.Errors

	err = w.watcher.Add(db.index.Dir)
	Ck(err)

	return w, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}
