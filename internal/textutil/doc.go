// Package textutil provides text processing utilities for disc names.
//
// The primary use cases are:
//   - Sanitizing volume labels for safe filesystem use
//   - Deriving the underscore-joined basenames the dump tools expect
//   - Turning raw disc labels (often ALL_CAPS_WITH_UNDERSCORES) into
//     human-readable display titles for history rows and notifications
package textutil
