package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

const initHeader = `# snippetdoc configuration.
# Paths are relative to the working directory. ${VAR} references are
# expanded from the environment and from a .env file in that directory.
`

// Init writes a configuration file holding the defaults.
func Init(path string, force bool) error {
	if path == "" {
		path = DefaultPath
	}
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return ferrors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat configuration file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "marshal default configuration").Fatal().Build()
	}

	content := append([]byte(initHeader), data...)
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write configuration file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
