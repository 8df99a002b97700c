package render

import "strings"

// DefaultHeader starts every bundle so the JSX transform applies to the
// concatenated examples.
const DefaultHeader = "/** @jsx React.DOM */"

// Scripts is the ordered list of full example texts gathered during one
// render, preceded by a header. Join is what the bundler receives.
type Scripts struct {
	items []string
}

// NewScripts returns an accumulator holding only header.
func NewScripts(header string) *Scripts {
	return &Scripts{items: []string{header}}
}

// Append adds the full text of one example.
func (s *Scripts) Append(source string) {
	s.items = append(s.items, source)
}

// Len returns the number of entries including the header.
func (s *Scripts) Len() int {
	return len(s.items)
}

// Items returns a copy of the entries in order.
func (s *Scripts) Items() []string {
	return append([]string(nil), s.items...)
}

// Join concatenates the entries separated by newlines.
func (s *Scripts) Join() string {
	return strings.Join(s.items, "\n")
}
