package disc

import (
	"context"
	"log/slog"
	"strings"

	"platter/internal/logging"
	"platter/internal/services"
)

// LabelResolver produces the disc name used for output file basenames. The
// priority chain is: explicit override, OS metadata / raw header via the
// provider, then an interactive prompt loop. It never yields a blank name;
// the only exits are a usable name or an aborted prompt.
type LabelResolver struct {
	provider MediaProvider
	prompter Prompter
	logger   *slog.Logger
}

// NewLabelResolver constructs a resolver over the given capabilities.
func NewLabelResolver(provider MediaProvider, prompter Prompter, logger *slog.Logger) *LabelResolver {
	return &LabelResolver{
		provider: provider,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "label-resolver"),
	}
}

// Resolve returns a non-blank disc name. A non-blank override is returned
// as-is without touching the device. Otherwise the provider is queried and,
// when it yields nothing, the user is prompted; the loop re-queries the
// provider on every pass so a slow disc insertion eventually wins over
// manual entry.
func (r *LabelResolver) Resolve(ctx context.Context, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		label, err := r.provider.VolumeLabel(ctx)
		if err != nil {
			r.logger.Debug("volume label unavailable", logging.Error(err))
		}
		if label = strings.TrimSpace(label); label != "" {
			return label, nil
		}

		line, err := r.prompter.ReadLine("Disc Name: ")
		if err != nil {
			return "", services.Wrap(services.ErrUserAbort, "resolve name", "prompt for disc name",
				"no usable volume label and no interactive answer", err)
		}
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
}
