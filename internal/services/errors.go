package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrExternalTool marks a dump tool exiting non-zero or producing no output.
	ErrExternalTool = errors.New("external tool error")
	// ErrDevice marks device-acquisition failures (load, unmount, open).
	ErrDevice = errors.New("device error")
	// ErrTimeout marks a readiness poll that ran out of time. Kept distinct
	// from ErrDevice so callers can decide between retrying acquisition and
	// aborting the run.
	ErrTimeout = errors.New("timeout")
	// ErrUserAbort marks an interactive prompt terminated by the user.
	ErrUserAbort = errors.New("aborted by user")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrTransient marks failures with no better classification.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes run context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
