package rip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"platter/internal/disc"
	"platter/internal/services"
)

// call records one executed command for later assertions.
type call struct {
	dir    string
	binary string
	args   []string
}

// fakeExecutor records commands instead of running them. hooks run after
// recording and can create files or fail specific binaries.
type fakeExecutor struct {
	calls []call
	hooks map[string]func(c call) error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{hooks: make(map[string]func(call) error)}
}

func (f *fakeExecutor) Run(ctx context.Context, dir, binary string, args []string, onStdout func(string)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := call{dir: dir, binary: binary, args: args}
	f.calls = append(f.calls, c)
	if hook, ok := f.hooks[binary]; ok {
		return hook(c)
	}
	return nil
}

func (f *fakeExecutor) binaries() []string {
	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, c.binary)
	}
	return names
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		input   string
		want    MediaKind
		wantErr bool
	}{
		{"cd", KindCD, false},
		{" DVD ", KindDVD, false},
		{"psx", KindPSX, false},
		{"ps2", KindPS2, false},
		{"audio", KindAudio, false},
		{"damaged", KindDamaged, false},
		{"bluray", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q", tc.input), func(t *testing.T) {
			got, err := ParseKind(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				if !errors.Is(err, services.ErrConfiguration) {
					t.Errorf("expected configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestForKindMapping(t *testing.T) {
	cases := []struct {
		kind MediaKind
		name string
	}{
		{KindAudio, "audio"},
		{KindCD, "bin"},
		{KindPSX, "bin"},
		{KindDVD, "iso"},
		{KindPS2, "iso"},
		{KindDamaged, "damaged"},
	}
	for _, tc := range cases {
		strategy, err := ForKind(tc.kind)
		if err != nil {
			t.Fatalf("ForKind(%s): %v", tc.kind, err)
		}
		if strategy.Name() != tc.name {
			t.Errorf("ForKind(%s).Name() = %q, want %q", tc.kind, strategy.Name(), tc.name)
		}
	}

	if _, err := ForKind("vinyl"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestBinStrategyCommandSequence(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdrdao"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "Disc.toc"), []byte("TRACK"), 0o644)
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	if err := (binStrategy{keepTOC: true}).Dump(context.Background(), env, "Disc"); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 commands, got %v", exec.binaries())
	}

	cdrdao := exec.calls[0]
	wantArgs := []string{
		"read-cd", "--read-raw",
		"--driver", "generic-mmc-raw",
		"--device", "/dev/sr0",
		"--datafile", "Disc.bin",
		"Disc.toc",
	}
	if cdrdao.binary != "cdrdao" || strings.Join(cdrdao.args, " ") != strings.Join(wantArgs, " ") {
		t.Errorf("unexpected cdrdao invocation: %v", cdrdao)
	}
	if cdrdao.dir != dir {
		t.Errorf("cdrdao ran in %q, want %q", cdrdao.dir, dir)
	}

	toc2cue := exec.calls[1]
	if toc2cue.binary != "toc2cue" || strings.Join(toc2cue.args, " ") != "Disc.toc Disc.cue" {
		t.Errorf("unexpected toc2cue invocation: %v", toc2cue)
	}

	if _, err := os.Stat(filepath.Join(dir, "Disc.toc")); err != nil {
		t.Errorf("expected TOC file to be kept: %v", err)
	}
}

func TestBinStrategyRemovesTOC(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdrdao"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "Disc.toc"), []byte("TRACK"), 0o644)
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	if err := (binStrategy{}).Dump(context.Background(), env, "Disc"); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Disc.toc")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected TOC file to be removed, stat err = %v", err)
	}
}

func TestBinStrategyToolFailure(t *testing.T) {
	exec := newFakeExecutor()
	exec.hooks["cdrdao"] = func(c call) error { return errors.New("exit status 1") }
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: t.TempDir(), Exec: exec}

	err := (binStrategy{keepTOC: true}).Dump(context.Background(), env, "Disc")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("expected no toc2cue after cdrdao failure, got %v", exec.binaries())
	}
}

func TestISOStrategyRunsTwoPasses(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	if err := (isoStrategy{}).Dump(context.Background(), env, "Game_Disc"); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected 2 ddrescue passes, got %v", exec.binaries())
	}
	first := strings.Join(exec.calls[0].args, " ")
	if first != "-b 2048 /dev/sr0 Game_Disc.iso Game_Disc.log" {
		t.Errorf("unexpected first pass args: %q", first)
	}
	second := strings.Join(exec.calls[1].args, " ")
	if second != "--direct -M -b 2048 /dev/sr0 Game_Disc.iso Game_Disc.log" {
		t.Errorf("unexpected second pass args: %q", second)
	}
}

func TestISOStrategyFirstPassFailureShortCircuits(t *testing.T) {
	exec := newFakeExecutor()
	exec.hooks["ddrescue"] = func(c call) error { return errors.New("exit status 1") }
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: t.TempDir(), Exec: exec}

	err := (isoStrategy{}).Dump(context.Background(), env, "Disc")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if len(exec.calls) != 1 {
		t.Errorf("expected second pass to be skipped, got %d calls", len(exec.calls))
	}
}

func TestAudioStrategyEncodesAndRemovesWAVs(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdparanoia"] = func(c call) error {
		for _, name := range []string{"track02.WAV", "track01.wav", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				return err
			}
		}
		return nil
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	if err := (audioStrategy{}).Dump(context.Background(), env, "Album"); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	binaries := exec.binaries()
	if strings.Join(binaries, " ") != "cdparanoia flac flac" {
		t.Fatalf("unexpected command sequence: %v", binaries)
	}
	if got := strings.Join(exec.calls[0].args, " "); got != "-B -d /dev/sr0" {
		t.Errorf("unexpected cdparanoia args: %q", got)
	}

	// Case-insensitive match, sorted encode order.
	if got := strings.Join(exec.calls[1].args, " "); got != "--best track01.wav" {
		t.Errorf("unexpected first flac args: %q", got)
	}
	if got := strings.Join(exec.calls[2].args, " "); got != "--best track02.WAV" {
		t.Errorf("unexpected second flac args: %q", got)
	}

	for _, name := range []string{"track01.wav", "track02.WAV"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected %s to be removed, stat err = %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("expected non-WAV file untouched: %v", err)
	}
}

func TestAudioStrategyToleratesVanishedWAV(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdparanoia"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "track01.wav"), []byte("x"), 0o644)
	}
	exec.hooks["flac"] = func(c call) error {
		// Simulate an encoder that consumes its input.
		return os.Remove(filepath.Join(dir, c.args[len(c.args)-1]))
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	if err := (audioStrategy{}).Dump(context.Background(), env, "Album"); err != nil {
		t.Fatalf("expected vanished WAV to be tolerated, got %v", err)
	}
}

func TestAudioStrategyRemovalFailureOnPresentWAVAborts(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdparanoia"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "track01.wav"), []byte("x"), 0o644)
	}
	exec.hooks["flac"] = func(c call) error {
		// Swap the WAV for a non-empty directory so removal fails while
		// the path still exists.
		path := filepath.Join(dir, c.args[len(c.args)-1])
		if err := os.Remove(path); err != nil {
			return err
		}
		return os.MkdirAll(filepath.Join(path, "nested"), 0o755)
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	err := (audioStrategy{}).Dump(context.Background(), env, "Album")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error for stuck WAV, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "track01.wav")); statErr != nil {
		t.Fatalf("expected the blocking path to remain: %v", statErr)
	}
}

func TestDamagedStrategyRunsAllPipelines(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdrdao"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "Disc.toc"), []byte("TRACK"), 0o644)
	}
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	strategy, err := ForKind(KindDamaged)
	if err != nil {
		t.Fatalf("ForKind: %v", err)
	}
	if err := strategy.Dump(context.Background(), env, "Disc"); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	want := "cdrdao toc2cue ddrescue ddrescue cdparanoia"
	if got := strings.Join(exec.binaries(), " "); got != want {
		t.Errorf("unexpected pipeline order: %q, want %q", got, want)
	}

	// damaged keeps the TOC like the plain cd pipeline does
	if _, err := os.Stat(filepath.Join(dir, "Disc.toc")); err != nil {
		t.Errorf("expected TOC file kept: %v", err)
	}
}

func TestDamagedStrategyStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	exec := newFakeExecutor()
	exec.hooks["cdrdao"] = func(c call) error {
		return os.WriteFile(filepath.Join(dir, "Disc.toc"), []byte("TRACK"), 0o644)
	}
	exec.hooks["ddrescue"] = func(c call) error { return errors.New("exit status 1") }
	env := Environment{Device: disc.Handle("/dev/sr0"), Dir: dir, Exec: exec}

	strategy, err := ForKind(KindDamaged)
	if err != nil {
		t.Fatalf("ForKind: %v", err)
	}
	dumpErr := strategy.Dump(context.Background(), env, "Disc")
	if !errors.Is(dumpErr, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", dumpErr)
	}
	if got := strings.Join(exec.binaries(), " "); got != "cdrdao toc2cue ddrescue" {
		t.Errorf("expected audio pipeline to be skipped, got %q", got)
	}
}
