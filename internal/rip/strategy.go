package rip

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"platter/internal/disc"
	"platter/internal/logging"
	"platter/internal/services"
)

// MediaKind selects a dump strategy.
type MediaKind string

const (
	KindAudio   MediaKind = "audio"
	KindCD      MediaKind = "cd"
	KindDVD     MediaKind = "dvd"
	KindPSX     MediaKind = "psx"
	KindPS2     MediaKind = "ps2"
	KindDamaged MediaKind = "damaged"
)

// Kinds lists the supported media kinds in CLI order.
func Kinds() []MediaKind {
	return []MediaKind{KindAudio, KindCD, KindDVD, KindPSX, KindPS2, KindDamaged}
}

// ParseKind validates a user-supplied media kind.
func ParseKind(value string) (MediaKind, error) {
	kind := MediaKind(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Kinds() {
		if kind == known {
			return kind, nil
		}
	}
	return "", services.Wrap(services.ErrConfiguration, "rip", "parse media kind",
		fmt.Sprintf("unknown media kind %q", value), nil)
}

// Environment carries the per-run context a strategy needs: the device to
// read, the directory output files land in, and the executor to run tools
// through.
type Environment struct {
	Device disc.Handle
	Dir    string
	Exec   Executor
	Logger *slog.Logger
}

func (e Environment) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.NewNop()
}

// Strategy dumps one disc into files named after baseName in the
// environment's directory.
type Strategy interface {
	Name() string
	Dump(ctx context.Context, env Environment, baseName string) error
}

// ForKind maps a media kind onto its dump pipeline. cd and psx keep the TOC
// file alongside the CUE sheet; dvd and ps2 are plain ISO recovery dumps;
// damaged runs every pipeline in sequence to salvage what it can.
func ForKind(kind MediaKind) (Strategy, error) {
	switch kind {
	case KindAudio:
		return audioStrategy{}, nil
	case KindCD, KindPSX:
		return binStrategy{keepTOC: true}, nil
	case KindDVD, KindPS2:
		return isoStrategy{}, nil
	case KindDamaged:
		return compositeStrategy{
			name: string(KindDamaged),
			steps: []Strategy{
				binStrategy{keepTOC: true},
				isoStrategy{},
				audioStrategy{},
			},
		}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "rip", "select strategy",
			fmt.Sprintf("no strategy for media kind %q", kind), nil)
	}
}

// compositeStrategy runs several pipelines against the same disc, stopping
// at the first failure.
type compositeStrategy struct {
	name  string
	steps []Strategy
}

func (s compositeStrategy) Name() string { return s.name }

func (s compositeStrategy) Dump(ctx context.Context, env Environment, baseName string) error {
	for _, step := range s.steps {
		if err := step.Dump(ctx, env, baseName); err != nil {
			return fmt.Errorf("%s step: %w", step.Name(), err)
		}
	}
	return nil
}

func sortedStrings(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
