//go:build linux

package filetimes

import (
	"os"
	"syscall"
	"time"
)

// statTimes reads atime and ctime from the underlying stat structure. Linux
// does not expose a true creation time through stat, so the inode change
// time stands in for it.
func statTimes(fi os.FileInfo) Times {
	mod := fi.ModTime()
	t := Times{Created: mod, Modified: mod, Accessed: mod}

	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return t
	}
	t.Accessed = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
	t.Created = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	return t
}
