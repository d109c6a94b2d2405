package disc

import (
	"context"
	"testing"
	"time"
)

func TestDevicePathEqualsInputPath(t *testing.T) {
	paths := []string{"/", "/etc", "/etc/passwd", "/nonexist", "/dev/sr0"}
	for _, path := range paths {
		p := NewLinuxProvider(Handle(path), nil)
		if got := p.DevicePath(); string(got) != path {
			t.Errorf("DevicePath() = %q, want %q", got, path)
		}
	}
}

func TestDevicePathPreservesInvalidUTF8(t *testing.T) {
	raw := Handle("/test\xff")
	p := NewLinuxProvider(raw, nil)
	if got := p.DevicePath(); got != raw {
		t.Errorf("DevicePath() = %q, want raw bytes preserved", got)
	}
}

func TestWaitForReadySucceedsOnImageFile(t *testing.T) {
	path := writeFixture(t, isoFixture("CDROM", ' '))
	p := NewLinuxProvider(Handle(path), nil)
	p.pollInterval = time.Millisecond

	if err := p.WaitForReady(context.Background(), 2*time.Second); err != nil {
		t.Fatalf("WaitForReady on readable image: %v", err)
	}
}

func TestWaitForReadyZeroTimeoutOnImageFile(t *testing.T) {
	// A zero timeout must still probe once, so a readable image succeeds.
	path := writeFixture(t, isoFixture("CDROM", ' '))
	p := NewLinuxProvider(Handle(path), nil)
	p.pollInterval = time.Millisecond

	if err := p.WaitForReady(context.Background(), 0); err != nil {
		t.Fatalf("WaitForReady with zero timeout: %v", err)
	}
}

func TestWaitForReadyTimesOutOnMissingDevice(t *testing.T) {
	p := NewLinuxProvider("/nonexistent_device_12345", nil)
	p.pollInterval = time.Millisecond

	start := time.Now()
	err := p.WaitForReady(context.Background(), 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected timeout for missing device")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Errorf("returned before the timeout elapsed")
	}
}

func TestEjectReportsFailure(t *testing.T) {
	p := NewLinuxProvider("/nonexistent_device_12345", nil)
	if err := p.Eject(context.Background()); err == nil {
		t.Fatal("expected error ejecting a nonexistent device")
	}
}

func TestLoadReportsFailure(t *testing.T) {
	p := NewLinuxProvider("/nonexistent_device_12345", nil)
	if err := p.Load(context.Background()); err == nil {
		t.Fatal("expected error loading a nonexistent device")
	}
}

func TestVolumeLabelFromImageFixture(t *testing.T) {
	path := writeFixture(t, isoFixture("CDROM", ' '))
	p := NewLinuxProvider(Handle(path), nil)

	label, err := p.VolumeLabel(context.Background())
	if err != nil {
		t.Fatalf("VolumeLabel: %v", err)
	}
	if label != "CDROM" {
		t.Errorf("label = %q, want %q", label, "CDROM")
	}
}

func TestVolumeLabelMissingDevice(t *testing.T) {
	p := NewLinuxProvider("/nonexistent_device_12345", nil)
	if _, err := p.VolumeLabel(context.Background()); err == nil {
		t.Fatal("expected error for missing device")
	}
}

func TestVolumeLabelUnlabelledImage(t *testing.T) {
	data := isoFixture("CDROM", ' ')
	copy(data[iso9660MagicOffset:], "XX")
	path := writeFixture(t, data)

	p := NewLinuxProvider(Handle(path), nil)
	if _, err := p.VolumeLabel(context.Background()); err == nil {
		t.Fatal("expected 'no label' error for unrecognized image")
	}
}
