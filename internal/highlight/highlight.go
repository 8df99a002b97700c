// Package highlight turns example source into class-annotated HTML.
package highlight

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
)

const (
	DefaultLexer   = "javascript"
	DefaultStyle   = "pygments"
	DefaultWrapper = "highlight"
)

// Highlighter renders source text as HTML safe for direct inclusion in a page.
type Highlighter interface {
	Highlight(source string) (string, error)
}

// Options configures a Chroma highlighter.
type Options struct {
	Lexer        string
	Style        string
	WrapperClass string // class of the enclosing <div>; empty disables the wrapper
	LineNumbers  bool
	TabWidth     int
}

// Chroma highlights with alecthomas/chroma using CSS classes, so the page
// stylesheet (or WriteCSS output) controls colours.
type Chroma struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
	wrapper   string
}

// NewChroma builds a highlighter. An unknown lexer is a config error; an
// unknown style falls back to chroma's default style.
func NewChroma(opts Options) (*Chroma, error) {
	lexerName := opts.Lexer
	if lexerName == "" {
		lexerName = DefaultLexer
	}
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		return nil, ferrors.ConfigError("unknown highlight lexer").
			WithContext("lexer", lexerName).
			Build()
	}

	styleName := opts.Style
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)
	if !strings.EqualFold(style.Name, styleName) {
		slog.Warn("Unknown highlight style, using fallback", "style", styleName, "fallback", style.Name)
	}

	formatterOpts := []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.WithLineNumbers(opts.LineNumbers),
	}
	if opts.TabWidth > 0 {
		formatterOpts = append(formatterOpts, chromahtml.TabWidth(opts.TabWidth))
	}

	return &Chroma{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: chromahtml.New(formatterOpts...),
		wrapper:   opts.WrapperClass,
	}, nil
}

// Highlight renders source as HTML.
func (c *Chroma) Highlight(source string) (string, error) {
	it, err := c.lexer.Tokenise(nil, source)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryHighlight, "tokenise example").Fatal().Build()
	}

	var buf bytes.Buffer
	if c.wrapper != "" {
		buf.WriteString(`<div class="` + c.wrapper + `">`)
	}
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryHighlight, "format example").Fatal().Build()
	}
	if c.wrapper != "" {
		buf.WriteString("</div>\n")
	}
	return buf.String(), nil
}

// StyleName returns the name of the resolved style.
func (c *Chroma) StyleName() string {
	return c.style.Name
}

// WriteCSS writes the stylesheet for the configured style.
func (c *Chroma) WriteCSS(w io.Writer) error {
	if err := c.formatter.WriteCSS(w, c.style); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryHighlight, "write highlight stylesheet").Fatal().Build()
	}
	return nil
}
