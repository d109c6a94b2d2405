package disc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"platter/internal/logging"
)

// LinuxProvider implements MediaProvider and RawMediaProvider for (possibly
// GUI-less) Linux systems by shelling out to the standard tool set. One
// provider is bound to one device for its lifetime; file descriptors are
// opened and closed within each call so a manual eject mid-run surfaces as
// an operation failure rather than corrupted provider state.
type LinuxProvider struct {
	device       Handle
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewLinuxProvider creates a provider for a given device path.
func NewLinuxProvider(device Handle, logger *slog.Logger) *LinuxProvider {
	return &LinuxProvider{
		device:       device,
		logger:       logging.NewComponentLogger(logger, "disc"),
		pollInterval: defaultPollInterval,
	}
}

// DevicePath returns the raw path used to build subprocess argument vectors.
func (p *LinuxProvider) DevicePath() Handle { return p.device }

// Eject triggers a hardware eject via the eject utility.
func (p *LinuxProvider) Eject(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "eject", string(p.device)).Run(); err != nil {
		return fmt.Errorf("eject %s: %w", p.device, err)
	}
	return nil
}

// Load closes the tray via eject -t. Drives without tray-load support make
// this a recoverable failure.
func (p *LinuxProvider) Load(ctx context.Context) error {
	if err := exec.CommandContext(ctx, "eject", "-t", string(p.device)).Run(); err != nil {
		return fmt.Errorf("load media for %s: %w", p.device, err)
	}
	return nil
}

// Unmount releases any filesystem mount on the device. A device that is not
// mounted already satisfies the postcondition and is not an error.
func (p *LinuxProvider) Unmount(ctx context.Context) error {
	output, err := exec.CommandContext(ctx, "umount", string(p.device)).CombinedOutput()
	if err != nil {
		if strings.Contains(strings.ToLower(string(output)), "not mounted") {
			return nil
		}
		return fmt.Errorf("unmount %s: %w (%s)", p.device, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// VolumeLabel queries blkid first, which covers every filesystem the OS
// recognizes, then falls back to the raw ISO9660 header for discs blkid
// cannot classify.
func (p *LinuxProvider) VolumeLabel(ctx context.Context) (string, error) {
	if output, err := exec.CommandContext(ctx,
		"blkid", "-s", "LABEL", "-o", "value", string(p.device)).Output(); err == nil {
		if label := strings.TrimSpace(string(output)); label != "" {
			return label, nil
		}
	}

	file, err := os.Open(string(p.device))
	if err != nil {
		return "", fmt.Errorf("open %s for label read: %w", p.device, err)
	}
	defer file.Close()

	label, err := ReadISO9660Label(file)
	if err != nil {
		return "", fmt.Errorf("parse label from %s: %w", p.device, err)
	}
	if label == "" {
		return "", fmt.Errorf("no volume label found for %s", p.device)
	}
	return label, nil
}

// WaitForReady polls the device until it is readable or timeout elapses.
func (p *LinuxProvider) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return AwaitReady(ctx, p.probeReady, timeout, p.pollInterval)
}

// probeReady is the non-destructive readiness probe. Real drive nodes are
// asked for CDROM_DRIVE_STATUS; image files and other plain streams fail
// that ioctl, and for them a successful open is the readiness signal.
func (p *LinuxProvider) probeReady(ctx context.Context) bool {
	status, err := CheckDriveStatus(string(p.device))
	if err != nil {
		return errors.Is(err, ErrNotADrive)
	}
	if status != DriveStatusDiscOK {
		p.logger.Debug("drive not ready",
			logging.String("device", string(p.device)),
			logging.String("status", status.String()))
		return false
	}
	return true
}
