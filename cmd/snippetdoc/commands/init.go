package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/snippetdoc/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g.out(), root.Config, i.Force)
}

func RunInit(out io.Writer, configPath string, force bool) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Wrote configuration to %s\n", configPath)
	return nil
}
