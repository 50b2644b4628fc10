package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrongSpace marks a typed character where the target has a space.
const wrongSpace = '•'

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes styles every target rune against the typed input. A
// negative cursorIndex means no cursor and no current word.
func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	current, hasCurrent := wordAt(targetRunes, cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		switch {
		case i < len(inputRunes) && target == ' ' && inputRunes[i] != ' ':
			displayed = wrongSpace
			style = incorrectStyle
		case i < len(inputRunes) && inputRunes[i] == target:
			style = correctStyle
		case i < len(inputRunes):
			style = incorrectStyle
		case hasCurrent && target != ' ' && current.contains(i):
			style = currentWordStyle
		}
		if i == cursorIndex {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func (w wordRange) contains(i int) bool {
	return i >= w.start && i < w.end
}

// wordAt returns the word holding cursorIndex, or the next word when the
// cursor sits on a space.
func wordAt(targetRunes []rune, cursorIndex int) (wordRange, bool) {
	if cursorIndex < 0 || cursorIndex >= len(targetRunes) {
		return wordRange{}, false
	}
	start := cursorIndex
	for start < len(targetRunes) && targetRunes[start] == ' ' {
		start++
	}
	if start == len(targetRunes) {
		return wordRange{}, false
	}
	for start > 0 && targetRunes[start-1] != ' ' {
		start--
	}
	end := start
	for end < len(targetRunes) && targetRunes[end] != ' ' {
		end++
	}
	return wordRange{start: start, end: end}, true
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at the last space that fits within width,
// falling back to a hard break for words longer than a line.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpace := -1

	for _, item := range runes {
		for lineWidth+item.width > width && len(line) > 0 {
			if lastSpace < 0 {
				lines = append(lines, renderStyledRunes(line))
				line, lineWidth = line[:0], 0
				break
			}
			lines = append(lines, renderStyledRunes(line[:lastSpace]))
			line = append([]styledRune{}, line[lastSpace+1:]...)
			lineWidth, lastSpace = measure(line)
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpace = len(line) - 1
		}
	}
	lines = append(lines, renderStyledRunes(line))
	return strings.Join(lines, "\n")
}

func measure(line []styledRune) (width, lastSpace int) {
	lastSpace = -1
	for i, item := range line {
		width += item.width
		if item.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}
