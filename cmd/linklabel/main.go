package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global carries shared state into subcommands.
type Global struct {
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// CLI is the command line definition.
type CLI struct {
	Verbose      bool   `short:"v" help:"Enable verbose logging"`
	DB           string `name:"db" help:"SQLite settings database; built-in defaults apply when empty" env:"SETTINGS_DB"`
	DefaultTexts string `name:"default-texts" help:"YAML file listing default generic texts" env:"DEFAULT_TEXTS_FILE" type:"existingfile"`

	Transform TransformCmd `cmd:"" help:"Label generic links in HTML, markdown or text content"`
	Settings  SettingsCmd  `cmd:"" help:"Show or change the stored labeling settings"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func main() {
	var cli CLI
	g := &Global{Stdin: os.Stdin, Stdout: os.Stdout}
	ctx := kong.Parse(&cli,
		kong.Name("linklabel"),
		kong.Description("Give generic links like \"click here\" a descriptive accessible name."),
		kong.UsageOnError(),
		kong.Bind(g),
	)
	if err := ctx.Run(g, &cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
