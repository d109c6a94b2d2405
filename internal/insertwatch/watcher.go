// Package insertwatch blocks on udev netlink events until a disc is
// inserted into the configured drive. It lets rip commands start before
// the disc does, without udev rules that call the CLI as root.
package insertwatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"platter/internal/logging"
	"platter/internal/services"
)

// Watcher waits for media insertion events on a single device.
type Watcher struct {
	device string
	logger *slog.Logger
}

// New creates a watcher for the given device node. Returns nil when the
// device is blank.
func New(device string, logger *slog.Logger) *Watcher {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		device: device,
		logger: logging.NewComponentLogger(logger, "insertwatch"),
	}
}

// Wait blocks until a disc insertion event arrives for the watched device
// or the context is cancelled. A netlink connection failure is returned as
// an error so callers can fall back to prompting.
func (w *Watcher) Wait(ctx context.Context) error {
	if w == nil {
		return services.Wrap(services.ErrConfiguration, "insertwatch", "wait", "no device configured", nil)
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return services.Wrap(services.ErrDevice, "insertwatch", "connect netlink", "cannot listen for udev events", err)
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, buildMatcher())
	defer close(monitorQuit)

	w.logger.Info("waiting for disc insertion", logging.String("device", w.device))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case uevent := <-queue:
			devname := extractDeviceName(uevent)
			if devname == "" {
				w.logger.Debug("ignoring event without device name",
					logging.String("action", string(uevent.Action)),
					logging.String("kobj", uevent.KObj),
				)
				continue
			}
			if devname != w.device {
				w.logger.Debug("ignoring event for other device", logging.String("device", devname))
				continue
			}
			w.logger.Info("disc media detected",
				logging.String("device", devname),
				logging.String("action", string(uevent.Action)),
			)
			return nil
		case err := <-errs:
			w.logger.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// buildMatcher matches disc insertion events:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add
func buildMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	name := parts[len(parts)-1]
	if name == "" {
		return ""
	}
	return fmt.Sprintf("/dev/%s", name)
}
