package main

import (
	"os"

	"github.com/alecthomas/kong"
)

var cli struct {
	Config string `short:"c" help:"Config file (TOML). Default is ./nconsole.toml or $NCONSOLE_CONFIG." type:"path"`
	Debug  bool   `help:"Panic on console registration errors."`

	Echo   EchoCmd   `cmd:"" help:"Echo input back through every runtime console until EOF or 'q'."`
	List   ListCmd   `cmd:"" help:"List the configured consoles."`
	Banner BannerCmd `cmd:"" help:"Print a message through the consoles of one phase."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("nconsole"),
		kong.Description("Multiplex character I/O over several consoles."),
		kong.ShortUsageOnError(),
	)

	a, err := newApp(cli.Config, cli.Debug, os.Stdin, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(a)
	closeErr := a.Close()
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(closeErr)
}
