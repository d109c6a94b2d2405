package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary platter shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the full set of external tools, required ones first.
func Requirements() []Requirement {
	return []Requirement{
		{Name: "cdrdao", Command: "cdrdao", Description: "Raw BIN/TOC track reads"},
		{Name: "toc2cue", Command: "toc2cue", Description: "TOC to CUE sheet conversion"},
		{Name: "ddrescue", Command: "ddrescue", Description: "ISO imaging with retry log"},
		{Name: "cdparanoia", Command: "cdparanoia", Description: "Audio track extraction"},
		{Name: "flac", Command: "flac", Description: "Lossless audio compression"},
		{Name: "eject", Command: "eject", Description: "Tray control"},
		{Name: "umount", Command: "umount", Description: "Unmount auto-mounted media"},
		{Name: "blkid", Command: "blkid", Description: "Filesystem label probing"},
		{Name: "play", Command: "play", Description: "Completion sounds", Optional: true},
	}
}

// ForKinds narrows the requirement list to the tools the named media kinds
// actually invoke. Shared tools (eject, umount, blkid, play) are always kept.
func ForKinds(kinds ...string) []Requirement {
	wanted := map[string]bool{"eject": true, "umount": true, "blkid": true, "play": true}
	for _, kind := range kinds {
		switch strings.ToLower(strings.TrimSpace(kind)) {
		case "cd", "psx":
			wanted["cdrdao"] = true
			wanted["toc2cue"] = true
		case "dvd", "ps2":
			wanted["ddrescue"] = true
		case "audio":
			wanted["cdparanoia"] = true
			wanted["flac"] = true
		case "damaged":
			wanted["cdrdao"] = true
			wanted["toc2cue"] = true
			wanted["ddrescue"] = true
			wanted["cdparanoia"] = true
			wanted["flac"] = true
		}
	}

	var out []Requirement
	for _, req := range Requirements() {
		if wanted[req.Command] {
			out = append(out, req)
		}
	}
	return out
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the unavailable non-optional entries from results.
func MissingRequired(results []Status) []Status {
	var missing []Status
	for _, status := range results {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
