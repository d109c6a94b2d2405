// Package notify delivers user-facing feedback around ripping runs.
//
// The Console type covers the local machine: notification sounds via the
// sox play utility and interactive line prompts guarded by a TTY check.
// Pusher mirrors run milestones to ntfy when a topic is configured and
// degrades to a no-op otherwise. Sound and push failures are designed to be
// ignored by callers; prompts are the only notify surface whose errors
// matter.
package notify
