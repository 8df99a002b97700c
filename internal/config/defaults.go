package config

import (
	"git.home.luguber.info/inful/snippetdoc/internal/bundle"
	"git.home.luguber.info/inful/snippetdoc/internal/example"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
	"git.home.luguber.info/inful/snippetdoc/internal/render"
)

const (
	DefaultTemplateDir  = "."
	DefaultTemplateName = "template.html"
	DefaultExamplesDir  = "examples"
	DefaultEntryDir     = "."
	DefaultPageOutput   = "index.html"
	DefaultBundleOutput = "./docs-output/bundle.js"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	setDefault(&c.Template.Dir, DefaultTemplateDir)
	setDefault(&c.Template.Name, DefaultTemplateName)

	setDefault(&c.Examples.Dir, DefaultExamplesDir)
	setDefault(&c.Examples.Prelude, example.DefaultPrelude)
	setDefault(&c.Examples.Postscript, example.DefaultPostscript)

	setDefault(&c.Highlight.Lexer, highlight.DefaultLexer)
	setDefault(&c.Highlight.Style, highlight.DefaultStyle)
	setDefault(&c.Highlight.WrapperClass, highlight.DefaultWrapper)

	setDefault(&c.Bundle.Command, bundle.DefaultCommand)
	if c.Bundle.Args == nil {
		c.Bundle.Args = bundle.DefaultArgs()
	}
	setDefault(&c.Bundle.OutputFlag, bundle.DefaultOutputFlag)
	setDefault(&c.Bundle.EntryDir, DefaultEntryDir)
	setDefault(&c.Bundle.Header, render.DefaultHeader)

	setDefault(&c.Output.Page, DefaultPageOutput)
	setDefault(&c.Output.Bundle, DefaultBundleOutput)
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Markers returns the configured marker lines.
func (c *Config) Markers() example.Markers {
	return example.Markers{Prelude: c.Examples.Prelude, Postscript: c.Examples.Postscript}
}

// HighlightOptions returns the configured highlighter options.
func (c *Config) HighlightOptions() highlight.Options {
	return highlight.Options{
		Lexer:        c.Highlight.Lexer,
		Style:        c.Highlight.Style,
		WrapperClass: c.Highlight.WrapperClass,
		LineNumbers:  c.Highlight.LineNumbers,
		TabWidth:     c.Highlight.TabWidth,
	}
}
