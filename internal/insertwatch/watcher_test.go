package insertwatch

import (
	"context"
	"errors"
	"testing"

	"github.com/pilebones/go-udev/netlink"

	"platter/internal/services"
)

func TestNew(t *testing.T) {
	t.Run("blank device returns nil", func(t *testing.T) {
		if w := New("   ", nil); w != nil {
			t.Error("expected nil watcher for blank device")
		}
	})

	t.Run("valid device creates watcher", func(t *testing.T) {
		w := New("/dev/sr0", nil)
		if w == nil {
			t.Fatal("expected non-nil watcher")
		}
		if w.device != "/dev/sr0" {
			t.Errorf("expected device /dev/sr0, got %s", w.device)
		}
	})
}

func TestNilWatcherWait(t *testing.T) {
	var w *Watcher
	err := w.Wait(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestBuildMatcher(t *testing.T) {
	matcher := buildMatcher()
	if matcher == nil {
		t.Fatal("expected non-nil matcher")
	}

	valid := netlink.UEvent{
		Action: netlink.CHANGE,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	}
	if !matcher.Evaluate(valid) {
		t.Error("expected matcher to accept disc insertion event")
	}

	noMedia := netlink.UEvent{
		Action: netlink.CHANGE,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"ID_CDROM":  "1",
		},
	}
	if matcher.Evaluate(noMedia) {
		t.Error("expected matcher to reject event without media flag")
	}

	wrongAction := netlink.UEvent{
		Action: netlink.REMOVE,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	}
	if matcher.Evaluate(wrongAction) {
		t.Error("expected matcher to reject remove events")
	}
}

func TestExtractDeviceName(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"devname preferred", map[string]string{"DEVNAME": "/dev/sr0", "DEVPATH": "/devices/pci0/block/sr1"}, "/dev/sr0"},
		{"devpath fallback", map[string]string{"DEVPATH": "/devices/pci0/block/sr0"}, "/dev/sr0"},
		{"empty env", map[string]string{}, ""},
		{"trailing slash", map[string]string{"DEVPATH": "/devices/pci0/block/"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractDeviceName(netlink.UEvent{Env: tc.env})
			if got != tc.want {
				t.Errorf("extractDeviceName = %q, want %q", got, tc.want)
			}
		})
	}
}
