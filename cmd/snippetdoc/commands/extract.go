package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/snippetdoc/internal/config"
	"git.home.luguber.info/inful/snippetdoc/internal/example"
	"git.home.luguber.info/inful/snippetdoc/internal/highlight"
)

// ExtractCmd implements the 'extract' command.
type ExtractCmd struct {
	File string `arg:"" help:"Example file, relative to the examples directory"`
	Raw  bool   `help:"Print the fragment as plain text instead of highlighted HTML"`
}

func (e *ExtractCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	return RunExtract(g.out(), cfg, e.File, e.Raw)
}

// RunExtract writes the fragment of file to out, highlighted unless raw.
func RunExtract(out io.Writer, cfg *config.Config, file string, raw bool) error {
	loader := example.NewLoader(os.DirFS(cfg.Examples.Dir), cfg.Markers())
	frag, err := loader.Load(filepath.ToSlash(file))
	if err != nil {
		return err
	}

	text := frag.Body
	if !raw {
		h, err := highlight.NewChroma(cfg.HighlightOptions())
		if err != nil {
			return err
		}
		if text, err = h.Highlight(frag.Body); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(out, text); err != nil {
		return fmt.Errorf("write fragment: %w", err)
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		_, _ = io.WriteString(out, "\n")
	}
	return nil
}
