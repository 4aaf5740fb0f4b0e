package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/dungeonedit/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	debug := flag.Bool("debug", false, "debug logging and splash log console")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: dungeonedit [flags] [ASK_FOR_GAME_CONTENT_LOCATION] [SKIP_GAME_CONTENT]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Debug:      *debug,
		Args:       flag.Args(),
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "dungeonedit: %v\n", err)
		return 1
	}
	return 0
}
