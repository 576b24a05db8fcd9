// Package cli provides the plain line-based front end: terminal I/O,
// meta-command dispatch and the background world clock.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nathoo/pupplay/engine"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine       *engine.Engine
	In           io.Reader
	Out          io.Writer
	EchoInput    bool          // echo each input line after the prompt (for script playback)
	TickInterval time.Duration // 0 disables the background ticker
	Logger       *log.Logger

	mu      sync.Mutex // serializes writes from the loop and the ticker
	lastCmd string     // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop: intro, then prompt → input → dispatch → output
// until input ends, /quit, or ctx is cancelled.
func (c *CLI) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if intro := c.Engine.Content().Game.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	c.printLine("Type 'new <name>' to start, 'load <name>' to continue, or /help.")

	if c.TickInterval > 0 {
		ticker := engine.NewTicker(c.Engine, c.TickInterval, c.printTick, c.Logger)
		go ticker.Start(ctx)
		defer ticker.Stop()
	}

	scanner := bufio.NewScanner(c.In)
	for {
		if ctx.Err() != nil {
			return
		}
		c.print("> ")
		if !scanner.Scan() {
			break
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
			if c.handleMeta(ctx, input) {
				return // /quit
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

		c.printLines(c.Engine.Step(ctx, input))
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	arg := strings.TrimSpace(strings.TrimPrefix(input, cmd))

	switch cmd {
	case "/quit", "/exit":
		if c.Engine.HasPlayer() {
			c.printLines(c.Engine.Step(ctx, "save"))
		}
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.printLines(c.Engine.Step(ctx, "save"))

	case "/load":
		if arg == "" {
			c.printSystem("Usage: /load <name>")
			return false
		}
		c.printLines(c.Engine.Step(ctx, "load "+arg))

	case "/saves":
		c.printLines(c.Engine.Step(ctx, "saves"))

	case "/status":
		c.printLines(c.Engine.Step(ctx, "status"))

	case "/tick":
		c.printLines(c.Engine.Step(ctx, "wait"))

	case "/help":
		c.cmdHelp()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save          Save the current game",
		"  /load <name>   Load a saved game",
		"  /saves         List saved games",
		"  /status        Show your status",
		"  /tick          Let time pass now",
		"  /quit          Save and exit",
		"  /help          Show this help",
		"",
		"Game commands:",
	}
	help = append(help, c.Engine.Step(context.Background(), "commands")...)
	help = append(help, "  again (g)  Repeat your last command")
	for _, line := range help {
		c.printLine(line)
	}
}

// printTick shows lines produced by the background clock.
func (c *CLI) printTick(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Out)
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) printLines(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range lines {
		fmt.Fprintln(c.Out, line)
	}
}

func (c *CLI) printLine(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
