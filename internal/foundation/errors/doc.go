// Package errors provides the classified error type used across snippetdoc.
//
// Every failure that can end a build (a missing marker line, an unreadable
// example, a template that does not parse, a bundler that exits non-zero) is
// surfaced as a ClassifiedError so the CLI can pick an exit code and a
// message without inspecting error strings.
//
// Key features:
//   - ErrorCategory: what kind of input or stage failed (config, template, bundle, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ErrorContext: structured key/value details (file, marker, command)
//   - ErrorBuilder: fluent construction
//   - CLIErrorAdapter: exit codes and user-facing formatting
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryNotFound, "marker line not found").
//		WithContext("file", "counter.js").
//		WithContext("marker", "// PRELUDE").
//		Build()
package errors
