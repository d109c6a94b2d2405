// Package services defines the shared error taxonomy for ripping runs.
//
// Every fatal step wraps its underlying error with one layer of
// human-readable context and a sentinel marker, so the top-level reporter
// can print a full cause chain and classify the failure without re-deriving
// what was being attempted.
package services
