package gridbase

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// VCS is the version-control collaborator: a git repository rooted at
// the index directory.  The core only requires that the root be
// initialized once, before any index write, so that an operator can
// snapshot and restore independently.  Snapshot/Restore/Log are
// conveniences over the same repository.
type VCS struct {
	Dir string
}

func (vc VCS) New(dir string) *VCS {
	vc.Dir = dir
	return &vc
}

func (vc *VCS) git(args ...string) (out string, err error) {
	// commits need an identity even where none is configured
	full := append([]string{
		"-c", "user.name=gridbase",
		"-c", "user.email=gridbase@localhost",
	}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = vc.Dir
	buf, err := cmd.CombinedOutput()
	out = string(buf)
	log.Debugf("git %v: %s", args, strings.TrimSpace(out))
	if err != nil {
		return out, fmt.Errorf("git %v: %v: %s", args, err, out)
	}
	return out, nil
}

// InitRepo establishes the checkpointable history root.  Idempotent.
func (vc *VCS) InitRepo() (err error) {
	_, err = vc.git("init", "-q")
	return err
}

// Snapshot records the current index state as a checkpoint.  Because
// chunks are immutable, any snapshot taken here remains
// dereferenceable against the chunk store forever.
func (vc *VCS) Snapshot(msg string) (err error) {
	defer Return(&err)
	_, err = vc.git("add", "-A")
	Ck(err)
	_, err = vc.git("commit", "-q", "--allow-empty", "-m", msg)
	Ck(err)
	return nil
}

// Restore resets the index working tree to a previous checkpoint.
// Reads after a restore resolve through the unchanged chunk store to
// the historical blocks.
func (vc *VCS) Restore(ref string) (err error) {
	_, err = vc.git("checkout", "-q", ref, "--", ".")
	return err
}

// Log returns the checkpoint history, newest first, one
// "<hash> <message>" line per checkpoint.
func (vc *VCS) Log() (lines []string, err error) {
	out, err := vc.git("log", "--format=%h %s")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Size returns the on-disk size of the repository's .git directory in
// bytes.
func (vc *VCS) Size() (int64, error) {
	return dirSize(filepath.Join(vc.Dir, ".git"))
}
