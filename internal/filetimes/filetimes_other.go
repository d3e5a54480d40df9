//go:build !linux

package filetimes

import "os"

// statTimes falls back to the modification time for all three timestamps on
// platforms without a portable stat structure.
func statTimes(fi os.FileInfo) Times {
	mod := fi.ModTime()
	return Times{Created: mod, Modified: mod, Accessed: mod}
}
