package disc

import (
	"context"
	"time"
)

// Handle is an opaque reference to a device node or image file. The value is
// the platform-native path as raw bytes; it is not required to be valid
// UTF-8 and is never modified after construction.
type Handle string

func (h Handle) String() string { return string(h) }

// MediaProvider abstracts the destructive and hardware-facing operations on
// one medium. Implementations bind to exactly one Handle and scope any OS
// resources they open to a single call; they never retry internally.
type MediaProvider interface {
	// Eject triggers a hardware eject. Callers treat failure as
	// non-fatal.
	Eject(ctx context.Context) error

	// Load closes the tray if the hardware supports it. Idempotent;
	// missing hardware support is a recoverable failure.
	Load(ctx context.Context) error

	// Unmount releases any filesystem mount so raw reads and dump
	// subprocesses get exclusive access. Must be called before any raw
	// device read.
	Unmount(ctx context.Context) error

	// VolumeLabel returns the best-effort label. An error means "no label
	// could be determined", not "device is broken".
	VolumeLabel(ctx context.Context) (string, error)

	// WaitForReady polls until the medium is readable or timeout elapses.
	// A timeout is reported as a distinct condition carrying
	// services.ErrTimeout.
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// RawMediaProvider exposes the raw device path used to build subprocess
// argument vectors. Dump strategies depend on this narrow capability only,
// keeping them decoupled from polling and label logic.
type RawMediaProvider interface {
	DevicePath() Handle
}

// Prompter requests a line of input from the user. Failure occurs only on
// unrecoverable I/O such as a closed input stream.
type Prompter interface {
	ReadLine(prompt string) (string, error)
}
