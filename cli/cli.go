// Package cli provides the line-based driver: terminal I/O, output
// formatting, script playback, and meta-command dispatch.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkarlsen/fablecore/engine"
	"github.com/mkarlsen/fablecore/engine/parser"
	"github.com/mkarlsen/fablecore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Game      *engine.Game
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(game *engine.Game, saveDir string) *CLI {
	return &CLI{
		Game:    game,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
	}
}

// Run starts the game loop: initial state, then prompt → input → step →
// output until the game ends or the player quits.
func (c *CLI) Run() error {
	initial, err := c.Game.Start()
	if err != nil {
		return err
	}
	c.printLine(initial.Feedback)

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return nil // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result, err := c.Game.Step(parser.Parse(input))
		if err != nil {
			if errors.Is(err, engine.ErrGameOver) {
				c.printSystem("The game is over. Use /load to restore a save or /quit to exit.")
				continue
			}
			return err
		}

		if result.Result != nil {
			c.printTerminal(result.Result)
			continue
		}
		c.printLine(result.State.Feedback)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/score":
		c.cmdScore()

	case "/help":
		c.cmdHelp()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := c.Game.Save()
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Saved to %s.", path))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := c.Game.Load(data); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Loaded %s.", name))
	if state, err := c.Game.Start(); err == nil {
		c.printLine(state.Feedback)
	}
}

func (c *CLI) cmdSaves() {
	entries, err := os.ReadDir(c.SaveDir)
	if err != nil {
		c.printSystem("No saves found.")
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	if len(names) == 0 {
		c.printSystem("No saves found.")
		return
	}
	sort.Strings(names)
	c.printSystem("Saves: " + strings.Join(names, ", "))
}

func (c *CLI) cmdScore() {
	sess := c.Game.Session()
	if sess == nil {
		c.printSystem("No game in progress.")
		return
	}
	c.printSystem(fmt.Sprintf("Score: %d. Rooms visited: %d. Items held: %d.",
		sess.Score, len(sess.Visited), len(sess.Inventory)))
}

func (c *CLI) cmdHelp() {
	c.printSystem(strings.Join([]string{
		"Game actions: look [target], move <direction>, take <item>, use <item> on <target>.",
		"Shortcuts: n/s/e/w, l, x <thing>, g (repeat last command).",
		"Meta: /save [name], /load [name], /saves, /score, /quit.",
	}, "\n"))
}

func (c *CLI) printTerminal(result *types.TerminalResult) {
	c.printLine("")
	c.printLine(result.FinalText)
	c.printLine("")
	c.printLine(fmt.Sprintf("*** Final score: %d ***", result.Score))
	if len(result.Inventory) > 0 {
		c.printLine("You were carrying: " + strings.Join(result.Inventory, ", ") + ".")
	}
}

func (c *CLI) print(s string)     { fmt.Fprint(c.Out, s) }
func (c *CLI) printLine(s string) { fmt.Fprintln(c.Out, s) }
func (c *CLI) printSystem(s string) {
	fmt.Fprintln(c.Out, "["+s+"]")
}
