package filetimes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte("content"), 0o600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat fixture: %v", err)
	}

	times := Stat(fi)
	if !times.Modified.Equal(fi.ModTime()) {
		t.Errorf("Modified: got %v, want %v", times.Modified, fi.ModTime())
	}
	if times.Created.IsZero() {
		t.Error("Created: got zero time")
	}
	if times.Accessed.IsZero() {
		t.Error("Accessed: got zero time")
	}
}
