package bundle

// Sentinel errors for the bundle stage. Callers match them with errors.Is;
// messages stay descriptive through wrapping.

import "errors"

var (
	// ErrBundlerNotFound indicates the bundler executable could not be resolved.
	ErrBundlerNotFound = errors.New("bundler not found")
	// ErrBundlerFailed indicates the bundler returned a non-zero exit status.
	ErrBundlerFailed = errors.New("bundler execution failed")
)
