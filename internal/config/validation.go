package config

import (
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"template.dir", c.Template.Dir},
		{"template.name", c.Template.Name},
		{"examples.dir", c.Examples.Dir},
		{"examples.prelude", c.Examples.Prelude},
		{"examples.postscript", c.Examples.Postscript},
		{"bundle.command", c.Bundle.Command},
		{"output.page", c.Output.Page},
		{"output.bundle", c.Output.Bundle},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ferrors.ConfigError("required setting is empty").WithContext("field", r.field).Build()
		}
	}

	if c.Examples.Prelude == c.Examples.Postscript {
		return ferrors.ConfigError("prelude and postscript markers must differ").
			WithContext("marker", c.Examples.Prelude).
			Build()
	}
	if strings.ContainsAny(c.Examples.Prelude+c.Examples.Postscript, "\r\n") {
		return ferrors.ConfigError("markers must be single lines").Build()
	}

	page := filepath.Clean(c.Output.Page)
	bundlePath := filepath.Clean(c.Output.Bundle)
	if page == bundlePath {
		return ferrors.ConfigError("page and bundle outputs must differ").
			WithContext("path", c.Output.Page).
			Build()
	}
	if c.Output.Styles != "" {
		if styles := filepath.Clean(c.Output.Styles); styles == page || styles == bundlePath {
			return ferrors.ConfigError("styles output collides with another output").
				WithContext("path", c.Output.Styles).
				Build()
		}
	}
	if c.Highlight.TabWidth < 0 {
		return ferrors.ConfigError("highlight.tab_width must not be negative").Build()
	}
	return nil
}
