package bundle

import (
	"log/slog"
	"os"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
)

// Source is anything that yields the concatenated script text.
type Source interface {
	Join() string
}

// WriteEntry writes src to a new temporary file in dir and returns its path
// with a cleanup func that removes it. The file lives in dir so relative
// requires inside the examples resolve the way the bundler expects.
func WriteEntry(dir string, src Source) (string, func(), error) {
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "snippetdoc-entry-*.js")
	if err != nil {
		return "", nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create bundle entry").
			Fatal().
			WithContext("dir", dir).
			Build()
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove bundle entry", logfields.Path(path), logfields.Error(err))
		}
	}

	if _, err := f.WriteString(src.Join()); err != nil {
		_ = f.Close()
		cleanup()
		return "", nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write bundle entry").
			Fatal().
			WithContext("path", path).
			Build()
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "close bundle entry").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return path, cleanup, nil
}
