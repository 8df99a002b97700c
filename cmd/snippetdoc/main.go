package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/snippetdoc/cmd/snippetdoc/commands"
	ferrors "git.home.luguber.info/inful/snippetdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/snippetdoc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("snippetdoc"),
		kong.Description("Render a documentation page with highlighted code examples and bundle the example scripts."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(&commands.Global{Logger: slog.Default(), Out: os.Stdout}, cli)
	os.Exit(ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Handle(err))
}
