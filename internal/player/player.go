package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fbritoferreira/m3u8-parser/internal/config"
	"github.com/fbritoferreira/m3u8-parser/internal/parser"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct{}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		fmt.Println(text)
		return nil
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Player
// ============================================================================

// Player hands a selected channel to an external media player, the
// clipboard, or stdout
type Player struct {
	command   string
	clipboard Clipboard
}

// NewPlayer creates a player using the configured command, falling
// back to whichever known player is installed
func NewPlayer() *Player {
	command := config.GetPlayer()
	if command == "" {
		command = findPlayerCommand()
	}
	return &Player{
		command:   command,
		clipboard: &systemClipboard{},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (p *Player) WithClipboard(c Clipboard) *Player {
	p.clipboard = c
	return p
}

// findPlayerCommand returns the first known media player in PATH
func findPlayerCommand() string {
	for _, name := range []string{"mpv", "vlc", "ffplay"} {
		if commandExists(name) {
			return name
		}
	}
	return ""
}

// ============================================================================
// Argument Building
// ============================================================================

// BuildArgs builds the player invocation for an entry. Transport
// overrides are translated into the flags each player understands.
func (p *Player) BuildArgs(e *parser.Entry) []string {
	ua := e.Transport.UserAgent
	if ua == "" {
		ua = config.GetUserAgent()
	}
	referrer := e.Transport.Referrer

	var args []string
	switch playerName(p.command) {
	case "mpv":
		if ua != "" {
			args = append(args, "--user-agent="+ua)
		}
		if referrer != "" {
			args = append(args, "--referrer="+referrer)
		}
	case "vlc", "cvlc":
		if ua != "" {
			args = append(args, "--http-user-agent", ua)
		}
		if referrer != "" {
			args = append(args, "--http-referrer", referrer)
		}
	case "ffplay":
		if ua != "" {
			args = append(args, "-user_agent", ua)
		}
		if referrer != "" {
			args = append(args, "-headers", "Referer: "+referrer)
		}
	}
	return append(args, e.URL)
}

// playerName normalizes a configured command path to the bare player name
func playerName(command string) string {
	return strings.ToLower(filepath.Base(command))
}

// Play launches the player for the entry and waits for it to exit
func (p *Player) Play(e *parser.Entry) error {
	if p.command == "" {
		return fmt.Errorf("no media player found (set player in config or install mpv, vlc, or ffplay)")
	}
	cmd := exec.Command(p.command, p.BuildArgs(e)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	return cmd.Run()
}

// ============================================================================
// Output Handling
// ============================================================================

// OutputMode represents how a selected channel should be handled
type OutputMode string

const (
	OutputPrint OutputMode = "print"
	OutputCopy  OutputMode = "copy"
	OutputPlay  OutputMode = "play"
)

// Output handles the selected entry based on the configured mode
func (p *Player) Output(e *parser.Entry) error {
	mode := OutputMode(config.GetOutput())
	return p.OutputWithMode(e, mode)
}

// OutputWithMode handles the selected entry with an explicit mode
func (p *Player) OutputWithMode(e *parser.Entry, mode OutputMode) error {
	switch mode {
	case OutputPlay:
		return p.Play(e)
	case OutputCopy:
		return p.clipboard.Copy(e.URL)
	default: // print
		fmt.Println(e.URL)
		return nil
	}
}
