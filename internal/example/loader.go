package example

import (
	"errors"
	"io/fs"
	"log/slog"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
)

// Loader reads example files from a directory and extracts their fragments.
type Loader struct {
	fsys    fs.FS
	markers Markers
}

// NewLoader returns a Loader over fsys, normally os.DirFS of the examples directory.
func NewLoader(fsys fs.FS, markers Markers) *Loader {
	return &Loader{fsys: fsys, markers: markers}
}

// Markers returns the markers the loader extracts with.
func (l *Loader) Markers() Markers {
	return l.markers
}

// Load reads name and extracts its fragment. name must be a slash-separated
// path inside the examples directory.
func (l *Loader) Load(name string) (Fragment, error) {
	if !fs.ValidPath(name) || name == "." {
		return Fragment{}, ferrors.ValidationError("example path must be relative to the examples directory").
			WithContext("file", name).
			Build()
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Fragment{}, ferrors.NotFoundError("example file not found").
				WithCause(err).
				WithContext("file", name).
				Build()
		}
		return Fragment{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read example file").
			Fatal().
			WithContext("file", name).
			Build()
	}

	frag, err := Extract(name, string(data), l.markers)
	if err != nil {
		return Fragment{}, err
	}
	slog.Debug("Extracted example fragment",
		logfields.Example(name),
		slog.Int("body_start", frag.BodyStart),
		slog.Int("body_end", frag.BodyEnd))
	return frag, nil
}
