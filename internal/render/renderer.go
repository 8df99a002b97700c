// Package render executes the page template with the code_example tag
// registered and collects the example scripts it references.
package render

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/flosch/pongo2/v6"

	"git.home.luguber.info/inful/snippetdoc/internal/example"
	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
)

// Result is the output of one render.
type Result struct {
	Page      string
	Scripts   *Scripts
	Fragments []example.Fragment
}

// Examples returns the example names in invocation order.
func (r *Result) Examples() []string {
	names := make([]string, 0, len(r.Fragments))
	for _, f := range r.Fragments {
		names = append(names, f.Name)
	}
	return names
}

// Renderer loads templates from one directory.
type Renderer struct {
	templates   fs.FS
	set         *pongo2.TemplateSet
	loader      FragmentLoader
	highlighter highlight.Highlighter
}

// NewRenderer returns a Renderer over templates, normally os.DirFS of the
// template directory.
func NewRenderer(templates fs.FS, loader FragmentLoader, highlighter highlight.Highlighter) *Renderer {
	return &Renderer{
		templates:   templates,
		set:         pongo2.NewSet("snippetdoc", pongo2.NewFSLoader(templates)),
		loader:      loader,
		highlighter: highlighter,
	}
}

// Render executes template name once. The returned Scripts starts with
// header followed by every referenced example in invocation order. Any
// failure aborts the render and no page is returned.
func (r *Renderer) Render(name, header string, data map[string]any) (*Result, error) {
	if _, err := fs.Stat(r.templates, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError("template not found").
				WithCause(err).
				WithContext("template", name).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat template").
			Fatal().
			WithContext("template", name).
			Build()
	}

	tpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "parse template").
			Fatal().
			WithContext("template", name).
			Build()
	}

	if _, reserved := data[sessionKey]; reserved {
		return nil, ferrors.ConfigError("template data uses a reserved key").
			WithContext("key", sessionKey).
			Build()
	}
	s := &session{
		loader:      r.loader,
		highlighter: r.highlighter,
		scripts:     NewScripts(header),
	}
	ctx := pongo2.Context{}
	for k, v := range data {
		ctx[k] = v
	}
	ctx[sessionKey] = s

	page, err := tpl.Execute(ctx)
	if s.err != nil {
		return nil, s.err
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryTemplate, "execute template").
			Fatal().
			WithContext("template", name).
			Build()
	}

	slog.Debug("Rendered template",
		logfields.Template(name),
		logfields.Count(len(s.fragments)),
		slog.Int("bytes", len(page)))
	return &Result{Page: page, Scripts: s.scripts, Fragments: s.fragments}, nil
}
