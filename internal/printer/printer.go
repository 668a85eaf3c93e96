// Package printer formats user-facing CLI output.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/phanxgames/moodboard"
)

func init() {
	// Users can disable colors with NO_COLOR.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Out and ErrOut receive regular and error output. Tests swap them.
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr

	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Success prints a message in green with a checkmark prefix.
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(Out, msg)
}

// Info prints a message in the default color.
func Info(format string, a ...any) {
	fmt.Fprintf(Out, format, a...)
}

// Warning prints a message in yellow with a warning prefix.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(ErrOut, msg)
}

// Step prints a step of a multi-step operation.
func Step(format string, a ...any) {
	cyan.Fprintf(Out, "→ %s", fmt.Sprintf(format, a...))
}

// Error prints a title, an explanation and suggestions to ErrOut and returns
// an error carrying only the title, for cobra to propagate.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(ErrOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(ErrOut, "%s\n", explanation)
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(ErrOut, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(ErrOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(ErrOut, "Either:\n")
			for i, s := range suggestions {
				fmt.Fprintf(ErrOut, "  %d. %s\n", i+1, s)
			}
		}
	}
	return fmt.Errorf("%s", title)
}

// Board prints a one-line-per-item summary of state in paint order, marking
// the selected item.
func Board(state *moodboard.BoardState) {
	b := state.Board
	cyan.Fprintf(Out, "%s  %gx%g  %d items\n", b.ID, b.Width, b.Height, len(b.Items))
	for _, it := range b.ItemsByZ() {
		base := it.Base()
		w, h := moodboard.ItemSize(it)
		marker := " "
		if base.ID == state.SelectedItemID {
			marker = "*"
		}
		fmt.Fprintf(Out, "%s %-6s %-12s ", marker, it.Kind(), base.ID)
		faint.Fprintf(Out, "at %g,%g  %gx%g  z%d", base.X, base.Y, w, h, base.ZIndex)
		if d := itemDetail(it); d != "" {
			fmt.Fprintf(Out, "  %s", d)
		}
		fmt.Fprintln(Out)
	}
}

func itemDetail(it moodboard.Item) string {
	switch v := it.(type) {
	case moodboard.ColorItem:
		return v.Hex
	case moodboard.TextItem:
		return fmt.Sprintf("%q", v.Text)
	case moodboard.ImageItem:
		return v.Src
	}
	return ""
}
