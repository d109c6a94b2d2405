// Package rip orchestrates dumping a removable disc to local files.
//
// A dump strategy owns the external tool pipeline for one media kind:
// cdrdao/toc2cue for raw BIN/TOC/CUE sets, ddrescue for recovery-oriented
// ISO images, and cdparanoia/flac for audio extraction. The orchestrator
// wraps exactly one strategy per disc with the shared hardware choreography:
// waiting for insertion, closing the tray, readiness polling, unmounting,
// resolving the disc name, and finishing with sounds, history recording,
// and ejection.
//
// All subprocess execution flows through the Executor abstraction so tests
// can observe argument vectors without touching hardware.
package rip
