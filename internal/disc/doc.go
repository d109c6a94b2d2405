// Package disc interfaces with physical media devices.
//
// It defines the capability interfaces the ripping engine depends on
// (MediaProvider, RawMediaProvider, Prompter), the Linux implementation that
// shells out to eject/umount/blkid, the bounded readiness poller used before
// any destructive operation, the raw ISO9660 volume-label parse, and the
// multi-strategy label resolver. Device quirks stay isolated here so
// higher-level ripping code can swap in test doubles.
package disc
