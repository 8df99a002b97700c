package render

import (
	"log/slog"

	"git.home.luguber.info/inful/snippetdoc/internal/example"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
	"git.home.luguber.info/inful/snippetdoc/internal/logfields"
)

// FragmentLoader resolves an example name to its fragment.
type FragmentLoader interface {
	Load(name string) (example.Fragment, error)
}

// session carries the per-render state the code_example tag needs. It
// reaches the tag through the template execution context.
type session struct {
	loader      FragmentLoader
	highlighter highlight.Highlighter
	scripts     *Scripts
	fragments   []example.Fragment
	err         error
}

// insert handles one code_example invocation and returns the HTML to emit.
func (s *session) insert(name string) (string, error) {
	frag, err := s.loader.Load(name)
	if err != nil {
		return "", s.fail(err)
	}
	s.scripts.Append(frag.Source)

	out, err := s.highlighter.Highlight(frag.Body)
	if err != nil {
		return "", s.fail(err)
	}
	s.fragments = append(s.fragments, frag)
	slog.Debug("Inserted code example", logfields.Example(name), logfields.Count(len(s.fragments)))
	return out, nil
}

// fail records the first failure so Render can return it unwrapped.
func (s *session) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	return err
}
