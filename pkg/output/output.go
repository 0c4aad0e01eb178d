package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwalton/go-supportscolor"
)

var (
	green = "\033[32m"
	red   = "\033[31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		DisableColor()
	}
}

// DisableColor turns off ANSI colors for all later output.
func DisableColor() {
	green, red, dim, reset = "", "", "", ""
}

// PrintStatus writes a colored status line followed by indented details.
func PrintStatus(w io.Writer, ok bool, name string, details ...string) {
	tag, color := "[OK]", green
	if !ok {
		tag, color = "[FAIL]", red
	}
	_, _ = fmt.Fprintf(w, "%s%s%s %s\n", color, tag, reset, name)

	indent := strings.Repeat(" ", len(tag)+1)
	for _, d := range details {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, formatLabel(d))
	}
}

// formatLabel dims the "label:" part of a "label: value" detail.
func formatLabel(s string) string {
	label, value, ok := strings.Cut(s, ": ")
	if !ok {
		return s
	}
	return dim + label + ":" + reset + " " + value
}
