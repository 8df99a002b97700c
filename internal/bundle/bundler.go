// Package bundle hands the concatenated example scripts to an external
// bundler that produces the browser-ready script.
package bundle

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
)

const (
	DefaultCommand    = "./node_modules/.bin/browserify"
	DefaultOutputFlag = "-o"
)

// DefaultArgs applies the reactify transform with ES6 support and emits source maps.
func DefaultArgs() []string {
	return []string{"-t", "[", "reactify", "--es6", "]", "-d"}
}

// Output is what the bundler printed, stdout and stderr interleaved.
type Output struct {
	Combined string
}

// Bundler turns the entry script into the bundle at output.
//
// Contract: Bundle blocks until the bundler exits. A non-zero exit is an
// error; there is no partial-bundle handling.
type Bundler interface {
	Bundle(ctx context.Context, entry, output string) (Output, error)
}

// BinaryBundler invokes an external bundler executable as
//
//	Command entry Args... OutputFlag output
type BinaryBundler struct {
	Command    string
	Args       []string
	OutputFlag string
}

// NewBinaryBundler returns a bundler for command, using the defaults for
// empty arguments.
func NewBinaryBundler(command string, args []string, outputFlag string) *BinaryBundler {
	if command == "" {
		command = DefaultCommand
	}
	if args == nil {
		args = DefaultArgs()
	}
	if outputFlag == "" {
		outputFlag = DefaultOutputFlag
	}
	return &BinaryBundler{Command: command, Args: args, OutputFlag: outputFlag}
}

// Argv returns the full command line for entry and output.
func (b *BinaryBundler) Argv(entry, output string) []string {
	argv := make([]string, 0, len(b.Args)+4)
	argv = append(argv, b.Command, entry)
	argv = append(argv, b.Args...)
	return append(argv, b.OutputFlag, output)
}

func (b *BinaryBundler) Bundle(ctx context.Context, entry, output string) (Output, error) {
	path, err := exec.LookPath(b.Command)
	if err != nil {
		return Output{}, ferrors.WrapError(fmt.Errorf("%w: %w", ErrBundlerNotFound, err), ferrors.CategoryBundle, "resolve bundler").
			Fatal().
			WithContext("command", b.Command).
			Build()
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Output{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create bundle output directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}
	}

	argv := b.Argv(entry, output)
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	slog.Debug("Invoking bundler", logfields.Command(strings.Join(argv, " ")))

	runErr := cmd.Run()
	out := Output{Combined: combined.String()}
	if out.Combined != "" {
		slog.Debug("bundler output", "output", out.Combined)
	}

	if runErr != nil {
		cause := fmt.Errorf("%w: %w", ErrBundlerFailed, runErr)
		if trimmed := strings.TrimSpace(out.Combined); trimmed != "" {
			cause = fmt.Errorf("%w: %w: %s", ErrBundlerFailed, runErr, trimmed)
		}
		return out, ferrors.WrapError(cause, ferrors.CategoryBundle, "bundler exited with an error").
			Fatal().
			WithContext("command", b.Command).
			WithContext("output", output).
			Build()
	}
	return out, nil
}

// NoopBundler records invocations without running anything; used in tests
// and when bundling is skipped.
type NoopBundler struct {
	Calls []NoopCall
}

// NoopCall is one recorded invocation together with the entry contents at call time.
type NoopCall struct {
	Entry   string
	Output  string
	Content string
}

func (n *NoopBundler) Bundle(_ context.Context, entry, output string) (Output, error) {
	content, err := os.ReadFile(entry)
	if err != nil {
		return Output{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read bundle entry").
			Fatal().
			WithContext("path", entry).
			Build()
	}
	n.Calls = append(n.Calls, NoopCall{Entry: entry, Output: output, Content: string(content)})
	slog.Debug("NoopBundler skipping bundle", logfields.Path(output))
	return Output{}, nil
}
