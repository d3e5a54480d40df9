// Package filetimes reads creation, modification and access timestamps from
// file metadata for embedding into attachment content-disposition headers.
package filetimes

import (
	"os"
	"time"
)

// Times holds the three timestamps of a file.
type Times struct {
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// Stat extracts the timestamps from file metadata. Fields the platform does
// not track fall back to the modification time.
func Stat(fi os.FileInfo) Times {
	return statTimes(fi)
}
