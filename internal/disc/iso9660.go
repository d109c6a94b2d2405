package disc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// ISO9660 primary volume descriptor layout. The descriptor starts at sector
// 16 of a 2048-byte-sector image; the standard identifier begins with "CD"
// and the 32-byte volume identifier field sits at a fixed offset behind it.
const (
	iso9660MagicOffset   = 32769
	iso9660VolumeIDStart = 32808
	iso9660VolumeIDLen   = 32
)

var iso9660Magic = []byte("CD")

// ReadISO9660Label reads the volume identifier from an ISO9660 byte stream.
// A stream whose bytes at the signature offset do not match the marker
// yields ("", nil): not-ISO9660 means "no label here", not an error. Read
// failures (stream too short, permission) are errors.
func ReadISO9660Label(r io.ReaderAt) (string, error) {
	magic := make([]byte, len(iso9660Magic))
	if _, err := r.ReadAt(magic, iso9660MagicOffset); err != nil {
		return "", fmt.Errorf("read ISO9660 signature: %w", err)
	}
	if !bytes.Equal(magic, iso9660Magic) {
		return "", nil
	}

	field := make([]byte, iso9660VolumeIDLen)
	if _, err := r.ReadAt(field, iso9660VolumeIDStart); err != nil {
		return "", fmt.Errorf("read ISO9660 volume identifier: %w", err)
	}

	// The field is NUL- or space-padded depending on mastering tool.
	label := string(field)
	if i := strings.IndexByte(label, 0); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label), nil
}
