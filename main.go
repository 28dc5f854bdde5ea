package main

import (
	"github.com/alecthomas/kong"

	"github.com/connerohnesorge/turniptext/cmd"
	"github.com/connerohnesorge/turniptext/internal/config"
	"github.com/connerohnesorge/turniptext/internal/theme"
)

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("turniptext"),
		kong.Description("A demo harness for the turnip_text document description language parser"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load()
	if err == nil {
		_ = theme.Load(cfg.Theme)
	}
	// Ignore errors - theme will default to "default" if config not found

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
