package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"platter/internal/deps"
	"platter/internal/disc"
	"platter/internal/history"
	"platter/internal/insertwatch"
	"platter/internal/logging"
	"platter/internal/notify"
	"platter/internal/rip"
)

type ripFlags struct {
	device  string
	name    string
	outDir  string
	setSize int
	timeout int
	wait    bool
}

func newRipCommand(ctx *commandContext) *cobra.Command {
	flags := &ripFlags{}

	ripCmd := &cobra.Command{
		Use:   "rip",
		Short: "Dump a disc to local files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	ripCmd.PersistentFlags().StringVarP(&flags.device, "device", "d", "", "Device node or image file to read (default from config)")
	ripCmd.PersistentFlags().StringVarP(&flags.name, "name", "n", "", "Disc name override; skips label probing")
	ripCmd.PersistentFlags().StringVarP(&flags.outDir, "outdir", "o", "", "Directory for output files (default current directory)")
	ripCmd.PersistentFlags().IntVar(&flags.setSize, "set-size", 1, "Number of discs in the set")
	ripCmd.PersistentFlags().IntVarP(&flags.timeout, "timeout", "t", 0, "Readiness timeout override, in seconds")
	ripCmd.PersistentFlags().BoolVarP(&flags.wait, "wait", "w", false, "Wait for a udev insertion event instead of prompting")

	shorts := map[rip.MediaKind]string{
		rip.KindAudio:   "Extract an audio CD to FLAC tracks",
		rip.KindCD:      "Dump a CD-ROM to a BIN/TOC/CUE set",
		rip.KindDVD:     "Image a DVD-ROM to an ISO with recovery retries",
		rip.KindPSX:     "Dump a PlayStation disc to a BIN/TOC/CUE set",
		rip.KindPS2:     "Image a PlayStation 2 disc to an ISO",
		rip.KindDamaged: "Salvage a damaged disc with every pipeline",
	}
	for _, kind := range rip.Kinds() {
		kind := kind
		ripCmd.AddCommand(&cobra.Command{
			Use:   string(kind),
			Short: shorts[kind],
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRip(ctx, kind, flags)
			},
		})
	}

	return ripCmd
}

func runRip(cmdCtx *commandContext, kind rip.MediaKind, flags *ripFlags) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}
	logger := cmdCtx.ensureLogger()

	if missing := deps.MissingRequired(deps.CheckBinaries(deps.ForKinds(string(kind)))); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, status := range missing {
			names = append(names, status.Command)
		}
		return fmt.Errorf("missing required tools: %s (see `platter deps`)", strings.Join(names, ", "))
	}

	device := strings.TrimSpace(flags.device)
	if device == "" {
		device = cfg.Device.Path
	}
	if flags.timeout > 0 {
		cfg.Device.ReadyTimeout = flags.timeout
	}

	outDir := strings.TrimSpace(flags.outDir)
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", outDir, err)
		}
	}

	provider := disc.NewLinuxProvider(disc.Handle(device), logger)
	console := notify.NewConsole()

	opts := []rip.Option{
		rip.WithLogger(logger),
		rip.WithPusher(notify.NewPusher(cfg)),
	}

	store, err := history.Open(cfg)
	if err != nil {
		logger.Warn("run history unavailable", logging.Error(err))
	} else {
		defer store.Close()
		opts = append(opts, rip.WithRecorder(store))
	}

	if flags.wait {
		if watcher := insertwatch.New(device, logger); watcher != nil {
			opts = append(opts, rip.WithInsertWaiter(watcher))
		}
	}

	orchestrator, err := rip.New(cfg, provider, console, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx, rip.Request{
		Kind:             kind,
		Name:             flags.name,
		OutDir:           outDir,
		SetSize:          flags.setSize,
		WaitForInsertion: flags.wait,
	})
}
