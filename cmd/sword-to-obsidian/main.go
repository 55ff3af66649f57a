// Command sword-to-obsidian converts a SWORD Bible module into an Obsidian
// vault: one directory per book with an index document and one document
// per chapter, all cross-linked.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/sword-to-obsidian/internal/config"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/convert"
	"github.com/FocuswithJustin/sword-to-obsidian/internal/logging"
)

// CLI defines the command-line interface.
type CLI struct {
	Path   string `arg:"" help:"SWORD module: a .zip archive or an installation directory"`
	Locale string `short:"l" default:"loc/pl.json" help:"Locale JSON file with book names"`
}

// Run converts the module with the given settings.
func (c *CLI) Run(ctx context.Context, settings *config.Settings) (*convert.Result, error) {
	logging.Info("run_started", "module", c.Path, "locale", c.Locale, "output", settings.OutputDir)
	res, err := convert.Run(ctx, convert.Options{
		ModulePath: c.Path,
		LocalePath: c.Locale,
		OutputDir:  settings.OutputDir,
		Workers:    settings.WorkerCount(),
	})
	if err != nil {
		logging.Error("run_failed", "module", c.Path, "error", err)
		return nil, err
	}
	return res, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("sword-to-obsidian"),
		kong.Description("Convert a SWORD Bible module into an Obsidian vault"),
		kong.UsageOnError(),
	)

	settings, err := config.Load()
	kctx.FatalIfErrorf(err)
	settings.ApplyLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = cli.Run(ctx, settings)
	kctx.FatalIfErrorf(err)
}
