package rip

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"platter/internal/config"
	"platter/internal/disc"
	"platter/internal/logging"
	"platter/internal/notify"
	"platter/internal/services"
	"platter/internal/textutil"
)

// Provider bundles the hardware capabilities a rip run depends on.
type Provider interface {
	disc.MediaProvider
	disc.RawMediaProvider
}

// Recorder persists run outcomes. history.Store satisfies it.
type Recorder interface {
	RecordStart(ctx context.Context, discName, mediaKind, device, outputDir string) (string, error)
	RecordFinish(ctx context.Context, id string, runErr error) error
}

// InsertWaiter blocks until a disc shows up in the drive.
type InsertWaiter interface {
	Wait(ctx context.Context) error
}

// Request describes one orchestrated rip: what kind of disc, what to call
// it, where the files go, and how many discs belong to the set.
type Request struct {
	Kind MediaKind
	Name string
	// OutDir receives the dump artifacts. Callers create it beforehand;
	// blank means the current directory.
	OutDir string
	// SetSize above one reuses the resolved name with a numbered suffix
	// for each following disc.
	SetSize int
	// WaitForInsertion replaces the Enter prompt with a udev insertion
	// wait when a watcher is available.
	WaitForInsertion bool
}

// Orchestrator drives the full per-disc choreography around a dump
// strategy.
type Orchestrator struct {
	cfg      *config.Config
	provider Provider
	notifier notify.Notifier
	pusher   notify.Pusher
	recorder Recorder
	watcher  InsertWaiter
	exec     Executor
	logger   *slog.Logger
}

// Option configures the orchestrator.
type Option func(*Orchestrator)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(o *Orchestrator) {
		if exec != nil {
			o.exec = exec
		}
	}
}

// WithRecorder attaches a run history recorder.
func WithRecorder(recorder Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = recorder
	}
}

// WithPusher attaches a push notifier.
func WithPusher(pusher notify.Pusher) Option {
	return func(o *Orchestrator) {
		if pusher != nil {
			o.pusher = pusher
		}
	}
}

// WithInsertWaiter attaches a udev insertion watcher.
func WithInsertWaiter(watcher InsertWaiter) Option {
	return func(o *Orchestrator) {
		o.watcher = watcher
	}
}

// WithLogger sets the orchestrator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logging.NewComponentLogger(logger, "rip")
		}
	}
}

// New constructs an orchestrator bound to one device provider.
func New(cfg *config.Config, provider Provider, notifier notify.Notifier, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rip", "new orchestrator", "config required", nil)
	}
	if provider == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rip", "new orchestrator", "provider required", nil)
	}
	if notifier == nil {
		return nil, services.Wrap(services.ErrConfiguration, "rip", "new orchestrator", "notifier required", nil)
	}
	o := &Orchestrator{
		cfg:      cfg,
		provider: provider,
		notifier: notifier,
		pusher:   notify.NewPusher(cfg),
		exec:     NewExecutor(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run executes the requested rip, holding the per-device lock for the
// whole set. Discs in a set are processed strictly in sequence; the first
// failure aborts the remainder.
func (o *Orchestrator) Run(ctx context.Context, req Request) error {
	strategy, err := ForKind(req.Kind)
	if err != nil {
		return err
	}

	if err := o.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "rip", "prepare state dir", "", err)
	}

	lock := flock.New(filepath.Join(o.cfg.Paths.StateDir, lockName(o.provider.DevicePath())))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrDevice, "rip", "acquire device lock", "", err)
	}
	if !locked {
		return services.Wrap(services.ErrDevice, "rip", "acquire device lock",
			fmt.Sprintf("another rip is already using %s", o.provider.DevicePath()), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	setSize := req.SetSize
	if setSize < 1 {
		setSize = 1
	}

	o.logger.Info("rip requested",
		logging.String("kind", string(req.Kind)),
		logging.Int("set_size", setSize),
		logging.Bool("wait_for_insertion", req.WaitForInsertion))

	var setName string
	for index := 0; index < setSize; index++ {
		name, err := o.ripOne(ctx, req, strategy, setName, index)
		if err != nil {
			if setSize > 1 {
				return fmt.Errorf("disc %d of %d: %w", index+1, setSize, err)
			}
			return err
		}
		if index == 0 {
			setName = name
		}
	}
	return nil
}

// ripOne walks a single disc through insertion, readiness, naming, the
// dump strategy, and finalization. It returns the resolved disc name so
// sets can reuse it.
func (o *Orchestrator) ripOne(ctx context.Context, req Request, strategy Strategy, setName string, index int) (string, error) {
	if err := o.awaitInsertion(ctx, req); err != nil {
		return "", err
	}

	if err := o.provider.Load(ctx); err != nil {
		o.logger.Warn("tray load failed", logging.Error(err))
	}

	if err := o.provider.WaitForReady(ctx, o.cfg.ReadyTimeout()); err != nil {
		return "", err
	}

	if err := o.provider.Unmount(ctx); err != nil {
		return "", services.Wrap(services.ErrDevice, "rip", "unmount", "", err)
	}

	name, err := o.resolveName(ctx, req, setName, index)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(name) == "" {
		return "", services.Wrap(services.ErrTransient, "rip", "resolve name", "resolver produced a blank name", nil)
	}

	// The CLI layer owns directory creation; here the output dir is only
	// consumed.
	outDir := req.OutDir
	if outDir == "" {
		outDir = "."
	}

	title := textutil.DisplayTitle(name)
	runID := o.recordStart(ctx, title, req.Kind, outDir)
	if err := o.pusher.RipStarted(ctx, title, string(req.Kind)); err != nil {
		o.logger.Warn("push notification failed", logging.Error(err))
	}

	env := Environment{
		Device: o.provider.DevicePath(),
		Dir:    outDir,
		Exec:   o.exec,
		Logger: o.logger,
	}
	o.logger.Info("dumping disc",
		logging.String("name", name),
		logging.String("kind", string(req.Kind)),
		logging.String("device", env.Device.String()),
		logging.String("dir", outDir))

	started := time.Now()
	if err := strategy.Dump(ctx, env, textutil.DiscBaseName(name)); err != nil {
		o.playSound(ctx, o.cfg.Sounds.Fail)
		o.recordFinish(ctx, runID, err)
		if pushErr := o.pusher.RipFailed(ctx, title, err); pushErr != nil {
			o.logger.Warn("push notification failed", logging.Error(pushErr))
		}
		return "", fmt.Errorf("dump %s: %w", req.Kind, err)
	}

	o.logger.Info("disc dump complete",
		logging.String("name", name),
		logging.Duration("elapsed", time.Since(started)))
	o.recordFinish(ctx, runID, nil)
	if err := o.pusher.RipCompleted(ctx, title); err != nil {
		o.logger.Warn("push notification failed", logging.Error(err))
	}
	o.playSound(ctx, o.cfg.Sounds.Done)

	// Give the user a moment to reach the drive door before it opens.
	select {
	case <-ctx.Done():
		return name, ctx.Err()
	case <-time.After(o.cfg.EjectDelay()):
	}
	if err := o.provider.Eject(ctx); err != nil {
		o.logger.Warn("eject failed", logging.Error(err))
	}

	return name, nil
}

// awaitInsertion blocks until a disc should be present: a udev event in
// wait mode, otherwise an Enter keypress. A broken netlink socket degrades
// to the prompt rather than failing the run.
func (o *Orchestrator) awaitInsertion(ctx context.Context, req Request) error {
	if req.WaitForInsertion && o.watcher != nil {
		err := o.watcher.Wait(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.logger.Warn("insertion watch unavailable, falling back to prompt", logging.Error(err))
	}

	if _, err := o.notifier.ReadLine("Insert disc and press Enter..."); err != nil {
		return services.Wrap(services.ErrUserAbort, "rip", "await insertion", "", err)
	}
	return nil
}

// resolveName produces the disc name for this set index. The first disc
// resolves through the override/label/prompt chain; later discs reuse the
// set name with a numbered suffix.
func (o *Orchestrator) resolveName(ctx context.Context, req Request, setName string, index int) (string, error) {
	if index > 0 && setName != "" {
		return fmt.Sprintf("%s_%d", setName, index+1), nil
	}
	resolver := disc.NewLabelResolver(o.provider, o.notifier, o.logger)
	return resolver.Resolve(ctx, req.Name)
}

func (o *Orchestrator) recordStart(ctx context.Context, title string, kind MediaKind, outDir string) string {
	if o.recorder == nil {
		return ""
	}
	id, err := o.recorder.RecordStart(ctx, title, string(kind), o.provider.DevicePath().String(), outDir)
	if err != nil {
		o.logger.Warn("history record failed", logging.Error(err))
		return ""
	}
	o.logger.Debug("run recorded", logging.String(logging.FieldRunID, id))
	return id
}

func (o *Orchestrator) recordFinish(ctx context.Context, id string, runErr error) {
	if o.recorder == nil || id == "" {
		return
	}
	if err := o.recorder.RecordFinish(ctx, id, runErr); err != nil {
		o.logger.Warn("history record failed", logging.Error(err))
	}
}

func (o *Orchestrator) playSound(ctx context.Context, path string) {
	if err := o.notifier.PlaySound(ctx, path); err != nil {
		o.logger.Warn("sound playback failed",
			logging.String("sound", path),
			logging.Error(err))
	}
}

// lockName derives a flock file name from the device path.
func lockName(device disc.Handle) string {
	cleaned := strings.Trim(strings.ReplaceAll(device.String(), string(os.PathSeparator), "-"), "-")
	if cleaned == "" {
		cleaned = "device"
	}
	return "rip-" + cleaned + ".lock"
}
