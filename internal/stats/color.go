package stats

import (
	"io"
	"os"

	"golang.org/x/term"
)

const (
	colorReset   = "\x1b[0m"
	headingColor = "\x1b[1m"
	colorGreen   = "\x1b[32m"
	colorCyan    = "\x1b[36m"
	colorYellow  = "\x1b[33m"
	colorMuted   = "\x1b[90m"
)

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func ratingColor(wpm float64) string {
	switch {
	case wpm >= 70:
		return colorGreen
	case wpm >= 50:
		return colorCyan
	case wpm >= 30:
		return colorYellow
	default:
		return colorMuted
	}
}

func colorize(s, code string, useColor bool) string {
	if !useColor {
		return s
	}
	return code + s + colorReset
}
