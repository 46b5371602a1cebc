// OttoBrew: a coffee brewing-recipe timer for the terminal.
//
// Usage:
//
//	ottobrew [-c config.toml] [-r recipe] [--list] [--plain] [--verbose|--quiet]
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/hammamikhairi/ottobrew/internal/brewer"
	"github.com/hammamikhairi/ottobrew/internal/chime"
	"github.com/hammamikhairi/ottobrew/internal/config"
	"github.com/hammamikhairi/ottobrew/internal/conversation"
	"github.com/hammamikhairi/ottobrew/internal/display"
	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/engine"
	"github.com/hammamikhairi/ottobrew/internal/logger"
	"github.com/hammamikhairi/ottobrew/internal/recipe"
	"github.com/hammamikhairi/ottobrew/internal/stopwatch"
	"github.com/hammamikhairi/ottobrew/internal/storage"
	"github.com/hammamikhairi/ottobrew/internal/timer"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = "OTTOBREW_CONFIG"

const defaultConfigPath = "ottobrew.toml"

func main() {
	_ = godotenv.Load()

	configPath := flag.StringP("config", "c", "", "path to the TOML config file (default $"+EnvConfigPath+" or "+defaultConfigPath+")")
	recipeKey := flag.StringP("recipe", "r", "", "recipe to load at startup, by brew id or recipe id")
	list := flag.Bool("list", false, "print the recipe library and exit")
	plain := flag.Bool("plain", false, "line-mode prompt instead of the full-screen UI")
	verbose := flag.BoolP("verbose", "v", false, "enable verbose/debug logging")
	quiet := flag.BoolP("quiet", "q", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	noSound := flag.Bool("no-sound", false, "disable the audio chime")
	flag.Parse()

	if *configPath == "" {
		*configPath = os.Getenv(EnvConfigPath)
	}
	if *configPath == "" {
		*configPath = defaultConfigPath
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Configure logger. Flags win over the config file.
	logLevel, _ := logger.ParseLevel(cfg.Logging.Level)
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}

	// Direct logs to a file by default so the UI stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.Logging.File != "" && cfg.Logging.File != "stderr" {
		dir := filepath.Dir(cfg.Logging.File)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.Logging.File, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by the audio backend) to
	// the same output.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)
	log.Info("config: %s", *configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Recipe library: built-ins plus the optional recipes file.
	recipes := recipe.NewMemorySource(log)
	if path := cfg.Library.RecipesFile; path != "" {
		n, err := recipes.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		log.Info("loaded %d recipes from %s", n, path)
	}

	if *list {
		if err := printLibrary(ctx, os.Stdout, recipes); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var store domain.SettingsStore
	if cfg.Settings.Path != "" {
		fs, err := storage.OpenFileStore(cfg.Settings.Path, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		store = fs
	} else {
		store = storage.NewMemoryStore(log)
	}

	eng := engine.New(recipes, store, log,
		brewer.WithCompletionGrace(cfg.Brewer.Grace()),
		brewer.WithStopwatchOptions(stopwatch.WithSampleInterval(cfg.Brewer.SampleInterval())),
	)
	defer eng.Close()

	// Output goes through the TUI when it owns the terminal.
	var ui *display.UI
	var out output = plainOutput{w: os.Stdout}
	if !*plain {
		ui = display.NewUI(eng.Brewer())
		out = ui
	}

	// Build the active notifier. If audio is available, wrap the text
	// notifier with one that also chimes.
	textNotifier := conversation.NewCLINotifier(log, out.Printf)
	var activeNotifier domain.Notifier = textNotifier

	if cfg.Sound.Enabled && !*noSound {
		player, err := chime.NewPlayer(log, cfg.Sound.Volume)
		if err != nil {
			log.Error("audio player init failed, chime disabled: %v", err)
		} else {
			chimer := chime.NewNotifier(textNotifier, player, log,
				chime.WithFrequency(float64(cfg.Sound.FrequencyHz)),
				chime.WithLength(cfg.Sound.ChimeLength()),
			)
			chimer.Start(ctx)
			defer chimer.Stop()
			activeNotifier = chimer
			log.Info("chime enabled (%d Hz)", cfg.Sound.FrequencyHz)
		}
	}

	// Start the background step announcer.
	announcer := timer.New(eng.Brewer(), activeNotifier, log,
		timer.WithTickInterval(cfg.Announcer.Tick()),
	)
	announcer.Start(ctx)
	defer announcer.Stop()

	app := &cliApp{
		engine: eng,
		parser: conversation.NewKeywordParser(log),
		out:    out,
		log:    log,
	}

	startKey := cfg.Brewer.DefaultRecipe
	if *recipeKey != "" {
		startKey = *recipeKey
	}

	fmt.Println(display.RenderBanner("Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	if ui == nil {
		app.selectRecipe(ctx, startKey)
		app.run(ctx, scanLines(ctx, os.Stdin))
		return
	}

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		app.selectRecipe(ctx, startKey)
		app.run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
