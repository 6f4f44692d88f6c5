// Package console prints styled status output for the command-line tools.
//
// Messages use a small markup: NAME{operand} is replaced by the operand
// rendered in the style for NAME, e.g. "fetched TILE{2/image-0-1}".
package console

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"worldmap/pkg/engine/terminal"
)

var dynamicGet = gotext.Get

var markup = regexp.MustCompile(`([A-Z_]+){([^{}]*)}`)

// Console writes formatted messages to an output stream.
type Console struct {
	mu  sync.Mutex
	out io.Writer

	interactive bool
	width       int
	midLine     bool // a progress line is drawn without its newline

	colorTile    color.Style
	colorPath    color.Style
	colorCount   color.Style
	colorError   color.Style
	colorSubtle  color.Style
	colorSuccess color.Style
	colorBar     color.Style
}

// New returns a console on stdout, styled when stdout is a terminal.
func New() *Console {
	return NewWriter(os.Stdout, terminal.Interactive(), terminal.GetWidth())
}

// NewWriter returns a console writing to out. Progress lines are redrawn in
// place only when interactive is set.
func NewWriter(out io.Writer, interactive bool, width int) *Console {
	if width <= 0 {
		width = terminal.DefaultWidth
	}
	return &Console{
		out:          out,
		interactive:  interactive,
		width:        width,
		colorTile:    color.Style{color.FgCyan},
		colorPath:    color.Style{color.FgBlue},
		colorCount:   color.Style{color.FgYellow, color.OpBold},
		colorError:   color.Style{color.FgRed, color.OpBold},
		colorSubtle:  color.Style{color.FgGray},
		colorSuccess: color.Style{color.FgGreen},
		colorBar:     color.Style{color.FgMagenta},
	}
}

// FormatText applies fmt-style args to msg, then expands markup.
func (c *Console) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)
	return markup.ReplaceAllStringFunc(ret, func(m string) string {
		parts := markup.FindStringSubmatch(m)
		function, operand := parts[1], parts[2]
		switch function {
		case "GT":
			return dynamicGet(operand)
		case "TILE":
			return c.colorTile.Sprint(operand)
		case "PATH":
			return c.colorPath.Sprint(operand)
		case "COUNT":
			return c.colorCount.Sprint(operand)
		case "ERR":
			return c.colorError.Sprint(operand)
		case "OK":
			return c.colorSuccess.Sprint(operand)
		case "SUBTLE":
			return c.colorSubtle.Sprint(operand)
		default:
			return m
		}
	})
}

// Printf prints a formatted line. It is safe for concurrent use.
func (c *Console) Printf(msg string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endProgress()
	fmt.Fprintln(c.out, c.FormatText(msg, args...))
}

// Progress draws a progress bar for done of total. On a terminal the bar is
// redrawn in place; otherwise only every tenth and the final step is printed.
func (c *Console) Progress(done, total int, label string) {
	if total <= 0 {
		return
	}
	done = min(max(done, 0), total)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.interactive {
		if done == total || done%10 == 0 {
			fmt.Fprintf(c.out, "%d/%d %s\n", done, total, color.ClearCode(label))
		}
		return
	}

	counter := fmt.Sprintf(" %d/%d ", done, total)
	barWidth := c.width - len(counter) - 2 - 20
	if barWidth < 10 {
		barWidth = 10
	}
	filled := barWidth * done / total
	bar := c.colorBar.Sprint(strings.Repeat("#", filled)) + strings.Repeat(" ", barWidth-filled)

	// Truncate by runes so a multi-byte character is never split.
	plain := []rune(color.ClearCode(label))
	if room := c.width - barWidth - len(counter) - 3; len(plain) > room && room > 0 {
		label = string(plain[:room])
	}
	fmt.Fprintf(c.out, "\r[%s]%s%s\033[K", bar, c.colorCount.Sprint(counter), label)
	c.midLine = done < total
	if !c.midLine {
		fmt.Fprintln(c.out)
	}
}

// endProgress finishes a partially drawn progress line.
func (c *Console) endProgress() {
	if c.midLine {
		fmt.Fprintln(c.out)
		c.midLine = false
	}
}
