package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDiscImage writes a minimal ISO 9660 image carrying the given volume
// label and returns its path. The image is large enough to contain the
// primary volume descriptor so label probing works against it.
func WriteDiscImage(t testing.TB, dir, label string) string {
	t.Helper()

	buf := make([]byte, 40000)
	copy(buf[32769:], "CD001")
	for i := 0; i < 32; i++ {
		buf[32808+i] = ' '
	}
	copy(buf[32808:], label)

	path := filepath.Join(dir, "disc.img")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write disc image: %v", err)
	}
	return path
}
