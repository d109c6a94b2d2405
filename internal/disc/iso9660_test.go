package disc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// isoFixture builds the head of an ISO9660 image: zeros up to the primary
// volume descriptor, the standard identifier, and a padded volume id field.
func isoFixture(label string, pad byte) []byte {
	buf := make([]byte, 40000)
	copy(buf[iso9660MagicOffset:], "CD001")
	field := bytes.Repeat([]byte{pad}, iso9660VolumeIDLen)
	copy(field, label)
	copy(buf[iso9660VolumeIDStart:], field)
	return buf
}

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.iso")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadISO9660LabelSpacePadded(t *testing.T) {
	got, err := ReadISO9660Label(bytes.NewReader(isoFixture("CDROM", ' ')))
	if err != nil {
		t.Fatalf("ReadISO9660Label: %v", err)
	}
	if got != "CDROM" {
		t.Errorf("label = %q, want %q", got, "CDROM")
	}
}

func TestReadISO9660LabelNulPadded(t *testing.T) {
	got, err := ReadISO9660Label(bytes.NewReader(isoFixture("MY_DISC", 0)))
	if err != nil {
		t.Fatalf("ReadISO9660Label: %v", err)
	}
	if got != "MY_DISC" {
		t.Errorf("label = %q, want %q", got, "MY_DISC")
	}
}

func TestReadISO9660LabelMixedPadding(t *testing.T) {
	// Space padding followed by NULs, as some mastering tools produce.
	data := isoFixture("CDROM  ", 0)
	got, err := ReadISO9660Label(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadISO9660Label: %v", err)
	}
	if got != "CDROM" {
		t.Errorf("label = %q, want %q", got, "CDROM")
	}
}

func TestReadISO9660LabelWrongMagicIsNotAnError(t *testing.T) {
	data := isoFixture("CDROM", ' ')
	copy(data[iso9660MagicOffset:], "XX")
	got, err := ReadISO9660Label(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("wrong magic must fall through, got error: %v", err)
	}
	if got != "" {
		t.Errorf("label = %q, want empty", got)
	}
}

func TestReadISO9660LabelShortStream(t *testing.T) {
	if _, err := ReadISO9660Label(bytes.NewReader(make([]byte, 100))); err == nil {
		t.Fatal("expected error for stream shorter than the descriptor")
	}
}

func TestReadISO9660LabelFromFile(t *testing.T) {
	path := writeFixture(t, isoFixture("CDROM", ' '))
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer file.Close()

	got, err := ReadISO9660Label(file)
	if err != nil {
		t.Fatalf("ReadISO9660Label: %v", err)
	}
	if got != "CDROM" {
		t.Errorf("label = %q, want %q", got, "CDROM")
	}
}
