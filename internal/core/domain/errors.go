package domain

import "go.trai.ch/zerr"

var (
	// ErrScriptNotFound is returned when the entry script cannot be read.
	ErrScriptNotFound = zerr.New("script not found")

	// ErrOutputMissing is returned when a store is attempted for a build
	// output path that does not exist.
	ErrOutputMissing = zerr.New("build output not found")

	// ErrPackagingFailed is returned when the external packaging engine
	// reports a non-zero outcome.
	ErrPackagingFailed = zerr.New("packaging failed")

	// ErrNoScript is returned when no script path can be extracted from
	// an invocation string.
	ErrNoScript = zerr.New("no script in invocation")
)
