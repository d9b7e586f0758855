/*
Package main cleans the ingredient lists of a menu data file.

menuclean reads a TypeScript module that exports the menu as a JSON array,
runs every item's ingredient list through the cleaning pipeline and writes
the file back with only the ingredient lists changed.

# Usage

Clean the default data file (src/data/menu-items.ts):

	menuclean

Preview without writing, with a diff of what would change:

	menuclean -dry-run -diff

Use another file and an extra rules table:

	menuclean -data ./menu.ts -rules ./house-rules.yaml

Try rule changes interactively; each line is one item, ingredients
separated by ';':

	menuclean -c
	> Fresh parsley; parsley; 10 oz
	 1. parsley

# Configuration

Defaults live in a TOML file, created on first run at
~/.config/menuclean/config.toml:

	[data]
	path = "src/data/menu-items.ts"
	write = true

	[clean]
	min_length = 2
	max_length = 50
	min_fragment_length = 3
	rules_file = ""

	[server]
	max_batch = 512

A relative rules_file is resolved against the config file's directory.

# IPC

With -serve, msgpack requests are read from stdin and answered on stdout.
See package server for the message layout.

# Exit codes

0 on success; 1 when the data file cannot be found, read, parsed or written,
or when the rules do not compile.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aymanbagabas/go-udiff"
	"github.com/bastiangx/menuclean/internal/cli"
	"github.com/bastiangx/menuclean/internal/utils"
	"github.com/bastiangx/menuclean/pkg/clean"
	"github.com/bastiangx/menuclean/pkg/config"
	"github.com/bastiangx/menuclean/pkg/menu"
	"github.com/bastiangx/menuclean/pkg/rules"
	"github.com/bastiangx/menuclean/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0"
	AppName = "menuclean"
	gh      = "https://github.com/bastiangx/menuclean"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, rules and the cleaner, then hands off to the batch
// run, the CLI or the IPC server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Menu data file (default from config)")
	configPath := flag.String("config", "", "Path to config.toml")
	rulesPath := flag.String("rules", "", "Extra rules file, TOML or YAML (default from config)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	dryRun := flag.Bool("dry-run", false, "Report what would change without writing the file")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing rule changes")
	serveMode := flag.Bool("serve", false, "Serve msgpack IPC on stdin/stdout")
	showDiff := flag.Bool("diff", false, "Print a unified diff of the changes")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))

	rp := *rulesPath
	if rp == "" {
		rp = cfg.RulesPath(activeConfig)
	}
	r, err := rules.Load(rp)
	if err != nil {
		log.Fatalf("Failed to load rules: %v", err)
	}
	cleaner, err := clean.New(r, cfg.Clean.Options())
	if err != nil {
		log.Fatalf("Failed to build cleaner: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		if err := cli.NewInputHandler(cleaner).Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *serveMode {
		log.Debug("spawning IPC")
		srv := server.NewServer(cleaner, cfg, rp)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	path := *dataPath
	if path == "" {
		path = cfg.Data.Path
	}
	resolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}
	resolved, err := resolver.FindDataFile(path)
	if err != nil {
		log.Fatalf("Could not locate menu data: %v", err)
	}

	opts := runOptions{Write: cfg.Data.Write && !*dryRun, Diff: *showDiff}
	if _, err := run(cleaner, resolved, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

type runOptions struct {
	Write bool
	Diff  bool
}

// run cleans the file at path and prints a short report to w.
func run(c menu.IngredientCleaner, path string, opts runOptions, w io.Writer) (menu.Stats, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return menu.Stats{}, fmt.Errorf("read menu file: %w", err)
	}
	doc, err := menu.Parse(original)
	if err != nil {
		return menu.Stats{}, fmt.Errorf("parse %s: %w", path, err)
	}
	fmt.Fprintf(w, "Processing %d menu items\n", doc.Len())

	stats, err := doc.CleanIngredients(c)
	if err != nil {
		return stats, err
	}
	fmt.Fprintf(w, "Reduced ingredients from %d to %d (removed %d items)\n",
		stats.Before, stats.After, stats.Removed())

	if opts.Diff {
		fmt.Fprint(w, udiff.Unified(path, path+" (cleaned)", string(original), string(doc.Bytes())))
	}
	if !opts.Write {
		fmt.Fprintf(w, "Dry run, %s left unchanged\n", path)
		return stats, nil
	}
	if err := menu.WriteFile(path, doc); err != nil {
		return stats, err
	}
	fmt.Fprintf(w, "Updated %s\n", path)
	return stats, nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ menuclean ] Keeps menu ingredient lists short and honest")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
