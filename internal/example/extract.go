package example

import (
	"strings"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

const (
	DefaultPrelude    = "// PRELUDE"
	DefaultPostscript = "// POSTSCRIPT"
)

// Markers holds the marker line contents. A line matches when it equals the
// marker after its "\n" or "\r\n" terminator is removed.
type Markers struct {
	Prelude    string
	Postscript string
}

// DefaultMarkers returns the markers used when none are configured.
func DefaultMarkers() Markers {
	return Markers{Prelude: DefaultPrelude, Postscript: DefaultPostscript}
}

// Fragment is an example file split around its markers.
type Fragment struct {
	Name   string
	Source string // full unmodified file text
	Body   string // text strictly between the marker lines

	// 1-based line numbers of the first and last body line. BodyEnd is
	// BodyStart-1 when the body is empty.
	BodyStart int
	BodyEnd   int
}

// Extract splits source around the markers. Each marker must appear exactly
// once and the prelude must come first.
func Extract(name, source string, m Markers) (Fragment, error) {
	lines := splitLines(source)

	prelude, err := findMarker(name, lines, m.Prelude)
	if err != nil {
		return Fragment{}, err
	}
	postscript, err := findMarker(name, lines, m.Postscript)
	if err != nil {
		return Fragment{}, err
	}
	if postscript < prelude {
		return Fragment{}, ferrors.ValidationError("postscript marker precedes prelude marker").
			WithContext("file", name).
			WithContext("prelude_line", prelude+1).
			WithContext("postscript_line", postscript+1).
			Build()
	}

	return Fragment{
		Name:      name,
		Source:    source,
		Body:      strings.Join(lines[prelude+1:postscript], ""),
		BodyStart: prelude + 2,
		BodyEnd:   postscript,
	}, nil
}

// findMarker returns the 0-based index of the single line equal to marker.
func findMarker(name string, lines []string, marker string) (int, error) {
	found := -1
	for i, line := range lines {
		if lineContent(line) != marker {
			continue
		}
		if found >= 0 {
			return -1, ferrors.ValidationError("duplicate marker line").
				WithContext("file", name).
				WithContext("marker", marker).
				WithContext("first_line", found+1).
				WithContext("second_line", i+1).
				Build()
		}
		found = i
	}
	if found < 0 {
		return -1, ferrors.NotFoundError("marker line not found").
			WithContext("file", name).
			WithContext("marker", marker).
			Build()
	}
	return found, nil
}

// splitLines splits s after every "\n", keeping terminators.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineContent(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
