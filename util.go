package gridbase

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

func canstat(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func exists(path string) bool {
	return canstat(path)
}

func mkdir(dir string, mode os.FileMode) (err error) {
	err = os.MkdirAll(dir, mode)
	if err != nil {
		return err
	}
	// MkdirAll ignores mode on existing dirs
	return os.Chmod(dir, mode)
}

// dirSize sums the sizes of all regular files under dir, like du.
func dirSize(dir string) (total int64, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// GetGID returns the current goroutine ID; handy in log formatters
// when troubleshooting.
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}
