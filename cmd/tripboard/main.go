package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/tripboard/internal/cli"
	"github.com/julianstephens/tripboard/internal/provider"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Day data path (.json file/dir or SQLite db)." type:"path" default:"~/.config/tripboard/dispatch.db"`

	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dispatch board." default:"1"`
	Day    cli.DayCmd    `cmd:"" help:"Print a day's board."`
	Now    cli.NowCmd    `cmd:"" help:"Show the now-line projection."`
	Seed   cli.SeedCmd   `cmd:"" help:"Write a demo day payload."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tripboard"),
		kong.Description("Dispatcher's visual scheduling board"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	prov := provider.ForPath(CLI.Data)
	defer prov.Close()

	appCtx := &cli.Context{
		Provider: prov,
		DataPath: CLI.Data,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
