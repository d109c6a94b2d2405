package rip

import (
	"context"
	"path/filepath"

	"platter/internal/logging"
	"platter/internal/services"
)

// isoStrategy images a disc with ddrescue. The first pass reads normally
// and records unreadable regions in the map file; the second pass retries
// only the bad sectors with direct I/O. The retry pass runs only when the
// initial pass succeeds.
type isoStrategy struct{}

func (isoStrategy) Name() string { return "iso" }

func (isoStrategy) Dump(ctx context.Context, env Environment, baseName string) error {
	isoFile := baseName + ".iso"
	logFile := baseName + ".log"
	device := env.Device.String()

	err := env.Exec.Run(ctx, env.Dir, "ddrescue", []string{
		"-b", "2048", device, isoFile, logFile,
	}, nil)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "initial ddrescue pass", "", err)
	}

	err = env.Exec.Run(ctx, env.Dir, "ddrescue", []string{
		"--direct", "-M", "-b", "2048", device, isoFile, logFile,
	}, nil)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "second ddrescue pass", "", err)
	}

	env.logger().Info("ISO dump complete",
		logging.String("iso", filepath.Join(env.Dir, isoFile)))
	return nil
}
