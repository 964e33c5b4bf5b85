// Fablecore is a turn-based, data-driven text-adventure engine.
// Usage: fablecore [--version] [--plain] [--script <file>] [--config <file>] [--log <file>] <world_path>
package main

import (
	"fmt"
	"os"

	"github.com/mkarlsen/fablecore/cli"
	"github.com/mkarlsen/fablecore/config"
	"github.com/mkarlsen/fablecore/engine"
	"github.com/mkarlsen/fablecore/loader"
	"github.com/mkarlsen/fablecore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		plain      bool
		worldPath  string
		scriptFile string
		configFile string
		logFile    string
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("fablecore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			i++
			scriptFile = requireArg(args, i, "--script")
		case "--config":
			i++
			configFile = requireArg(args, i, "--config")
		case "--log":
			i++
			logFile = requireArg(args, i, "--log")
		default:
			if worldPath == "" {
				worldPath = args[i]
			}
		}
	}

	if worldPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: fablecore [--version] [--plain] [--script <file>] [--config <file>] [--log <file>] <world_path>\n")
		os.Exit(1)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if logFile != "" {
		cfg.Logging.File = logFile
		cfg.Logging.Level = "debug"
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}

	world, err := loader.Load(worldPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	game := engine.New(world, engine.WithLogger(logger))
	game.Initialize()
	defer game.Cleanup()

	// Script playback implies the plain driver.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		c := cli.New(game, cfg.Saves.Dir)
		c.In = f
		c.EchoInput = true
		if err := c.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if plain || cfg.UI.Plain {
		if err := cli.New(game, cfg.Saves.Dir).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(game, cfg.Saves.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}

func requireArg(args []string, i int, flag string) string {
	if i >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n", flag)
		os.Exit(1)
	}
	return args[i]
}
