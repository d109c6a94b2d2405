package rip

import (
	"context"
	"os"
	"path/filepath"

	"platter/internal/logging"
	"platter/internal/services"
)

// binStrategy dumps a disc to as raw a BIN/TOC/CUE set as cdrdao can
// produce, then derives the CUE sheet with toc2cue.
type binStrategy struct {
	// keepTOC leaves the intermediate TOC file next to the CUE sheet.
	keepTOC bool
}

func (binStrategy) Name() string { return "bin" }

func (s binStrategy) Dump(ctx context.Context, env Environment, baseName string) error {
	binFile := baseName + ".bin"
	tocFile := baseName + ".toc"
	cueFile := baseName + ".cue"

	err := env.Exec.Run(ctx, env.Dir, "cdrdao", []string{
		"read-cd", "--read-raw",
		"--driver", "generic-mmc-raw",
		"--device", env.Device.String(),
		"--datafile", binFile,
		tocFile,
	}, nil)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "dump BIN/TOC pair", "", err)
	}

	if err := env.Exec.Run(ctx, env.Dir, "toc2cue", []string{tocFile, cueFile}, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "rip", "generate CUE sheet", "", err)
	}

	if !s.keepTOC {
		if err := os.Remove(filepath.Join(env.Dir, tocFile)); err != nil {
			return services.Wrap(services.ErrExternalTool, "rip", "remove TOC file", "", err)
		}
	}

	env.logger().Info("BIN/TOC/CUE dump complete",
		logging.String("cue", filepath.Join(env.Dir, cueFile)))
	return nil
}
