// Package shell maps action log entries to the archive boundary and back.
//
// The core packages never import it. The demo composes an Archiver per entity log
// and flushes new entries to whichever archive engine the configuration selects.
package shell
