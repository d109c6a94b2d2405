package rip

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"platter/internal/logging"
	"platter/internal/services"
)

// audioStrategy extracts audio tracks with cdparanoia, then compresses
// each WAV to FLAC and drops the original.
type audioStrategy struct{}

func (audioStrategy) Name() string { return "audio" }

func (audioStrategy) Dump(ctx context.Context, env Environment, baseName string) error {
	err := env.Exec.Run(ctx, env.Dir, "cdparanoia", []string{
		"-B", "-d", env.Device.String(),
	}, nil)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "extract CD audio", "", err)
	}

	tracks, err := wavFiles(env.Dir)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "find extracted tracks", "", err)
	}

	for _, track := range tracks {
		if err := env.Exec.Run(ctx, env.Dir, "flac", []string{"--best", track}, nil); err != nil {
			return services.Wrap(services.ErrExternalTool, "rip", "encode to FLAC", track, err)
		}
		// A WAV that vanished between encode and cleanup already satisfies
		// the goal; any other removal failure leaves disk bloat behind.
		if err := os.Remove(filepath.Join(env.Dir, track)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrExternalTool, "rip", "remove WAV file", track, err)
		}
	}

	env.logger().Info("audio extraction complete",
		logging.Int("tracks", len(tracks)),
		logging.String("dir", env.Dir))
	return nil
}

// wavFiles lists *.wav entries in dir, matched case-insensitively and
// sorted for stable encode order.
func wavFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			names = append(names, entry.Name())
		}
	}
	return sortedStrings(names), nil
}
