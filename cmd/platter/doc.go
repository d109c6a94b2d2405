// Package main hosts the platter CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto rip
// orchestration runs, history queries, dependency preflight, and
// configuration scaffolding. Configuration resolution and logger setup are
// centralized here so subcommands stay declarative; the actual disc
// choreography lives in the internal packages.
package main
