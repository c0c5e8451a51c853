// Package tui renders a level to a colour terminal.
package tui

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"roguekernel/pkg/engine/terminal"
	"roguekernel/pkg/game/actors"
	"roguekernel/pkg/game/renderer"
)

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 7
	ViewportMinCols = 15
	ViewportMargin  = 2
	// Lines needed outside the viewport:
	// - Status line + blank (2)
	// - Room line + blank (2)
	// - Messages pane (header + 5 messages + footer = 7)
	ViewportTopMargin = 11
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorFloor      color.Style
	colorWall       color.Style
	colorRemembered color.Style
	colorPlayer     color.Style
	colorMonster    color.Style
	colorExit       color.Style
	colorSubtle     color.Style
	colorRoom       color.Style

	regexpStringFunctions *regexp.Regexp

	// size overrides the terminal size when non-zero.
	rows, cols int
}

// New creates a new TUI renderer writing to out (stdout when nil).
func New(out io.Writer) *TUIRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &TUIRenderer{out: out}
}

// WithViewport fixes the viewport size instead of following the terminal.
func (t *TUIRenderer) WithViewport(rows, cols int) *TUIRenderer {
	t.rows, t.cols = rows, cols
	return t
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorFloor = color.Style{color.FgYellow}
	t.colorWall = color.Style{color.FgWhite, color.OpBold}
	t.colorRemembered = color.Style{color.FgGray}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorMonster = color.Style{color.FgRed, color.OpBold}
	t.colorExit = color.Style{color.FgCyan, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	t.colorRoom = color.Style{color.FgBlue}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if t.out == os.Stdout && !terminal.IsInteractive() {
		return
	}
	fmt.Fprint(t.out, "\033[H\033[2J")
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleFloor:
		return t.colorFloor.Sprint(text)
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StyleRemembered:
		return t.colorRemembered.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleMonster:
		return t.colorMonster.Sprint(text)
	case renderer.StyleExit:
		return t.colorExit.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText expands GT{}, ROOM{} and MONSTER{} markup in a message.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ROOM":
			val = t.colorRoom.Sprint(dynamicGet(operand))
		case "MONSTER":
			val = t.colorMonster.Sprint(dynamicGet(operand))
		default:
			val = operand
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	if t.rows > 0 && t.cols > 0 {
		return t.rows, t.cols
	}

	width, height := terminal.GetSize()
	rows, cols = terminal.Fit(width, height, ViewportTopMargin, ViewportMargin*2, ViewportMinRows, ViewportMinCols)

	// Keep both odd so the player sits in the middle
	if rows%2 == 0 {
		rows--
	}
	if cols%2 == 0 {
		cols--
	}

	return rows, cols
}

// RenderFrame renders a complete frame
func (t *TUIRenderer) RenderFrame(w *actors.World) {
	t.printStatusBar(w)
	t.printMap(w)
	t.printMessagesPane(w)
}

func (t *TUIRenderer) printStatusBar(w *actors.World) {
	p := w.Player()
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("Turn %d, torch radius %d, %d monsters", w.Turn, w.TorchRadius(), len(w.Monsters()))))
	fmt.Fprintln(t.out)

	if room, ok := w.Level.RoomAt(p.Pos.X, p.Pos.Y); ok {
		fmt.Fprintln(t.out, t.FormatText("%s", gotext.Get("You are in the ROOM{%s}.", room.Name)))
	} else {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("You are in a corridor.")))
	}
	fmt.Fprintln(t.out)
}

func (t *TUIRenderer) printMap(w *actors.World) {
	rows, cols := t.GetViewportSize()
	m := w.Level.Map
	p := w.Player().Pos

	rows = min(rows, m.Height())
	cols = min(cols, m.Width())
	x0, y0 := terminal.Clamp(p.X, p.Y, rows, cols, m.Width(), m.Height())

	indent := strings.Repeat(" ", ViewportMargin)
	var sb strings.Builder
	for y := y0; y < y0+rows; y++ {
		sb.WriteString(indent)
		for x := x0; x < x0+cols; x++ {
			icon, style := renderer.CellGlyph(w, x, y)
			sb.WriteString(t.StyleText(icon, style))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(t.out, sb.String())
}

func (t *TUIRenderer) printMessagesPane(w *actors.World) {
	_, cols := t.GetViewportSize()
	width := cols + ViewportMargin*2

	label := " " + gotext.Get("Messages") + " "
	labelLen := len([]rune(label))
	sideLen := max(1, (width-labelLen)/2)

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", max(1, width-sideLen-labelLen))

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(leftDashes+label+rightDashes))

	if len(w.Messages) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  "+gotext.Get("(no messages)")))
	} else {
		for _, msg := range w.Messages {
			fmt.Fprintf(t.out, "  %s\n", t.FormatText("%s", msg))
		}
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
}
