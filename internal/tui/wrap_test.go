package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	target := []rune("ab")
	input := []rune("a")

	runes := buildStyledRunes(target, input, len(input))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != currentWordStyle.Underline(true).Render("b") {
		t.Fatalf("expected cursor on second rune")
	}
}

func TestBuildStyledRunesNoCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), []rune("a"), -1)
	if runes[1].s != pendingStyle.Render("b") {
		t.Fatalf("expected pending style without cursor")
	}
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	target := []rune("ab")
	input := []rune("ax")

	runes := buildStyledRunes(target, input, -1)
	if runes[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected target rune shown in incorrect style")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	target := []rune("one two")
	input := []rune("o")

	runes := buildStyledRunes(target, input, len(input))
	if runes[0].s != correctStyle.Render("o") {
		t.Fatalf("expected correct style for typed rune")
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for next word")
	}
}

func TestBuildStyledRunesCursorOnSpaceHighlightsNextWord(t *testing.T) {
	target := []rune("one two")
	input := []rune("one")

	runes := buildStyledRunes(target, input, len(input))
	if runes[4].s != currentWordStyle.Render("t") {
		t.Fatalf("expected next word highlighted when cursor is on a space")
	}
}

func TestBuildStyledRunesWrongSpaceDot(t *testing.T) {
	target := []rune("a b")
	input := []rune("ax")

	runes := buildStyledRunes(target, input, len(input))
	if runes[1].s != incorrectStyle.Render("•") {
		t.Fatalf("expected red dot for wrong space")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := plainRunes("alpha beta gamma")
	got := wrapStyledRunes(runes, 11)
	want := "alpha beta\ngamma"
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\nwant\n%q", got, want)
	}
}

func TestWrapStyledRunesHardBreak(t *testing.T) {
	runes := plainRunes("abcdefgh")
	got := wrapStyledRunes(runes, 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected hard wrap: %q", got)
	}
}

func TestWrapStyledRunesFits(t *testing.T) {
	runes := plainRunes("short line")
	if got := wrapStyledRunes(runes, 40); got != "short line" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if got := wrapStyledRunes(runes, 0); got != "short line" {
		t.Fatalf("expected no wrap for zero width: %q", got)
	}
}

func TestWrapStyledRunesWideRunes(t *testing.T) {
	runes := plainRunes("日本 語")
	got := wrapStyledRunes(runes, 4)
	if !strings.Contains(got, "\n") {
		t.Fatalf("expected wide runes to wrap: %q", got)
	}
}

func plainRunes(s string) []styledRune {
	out := make([]styledRune, 0, len(s))
	for _, r := range s {
		width := 1
		if r >= 0x1100 {
			width = 2
		}
		out = append(out, styledRune{s: string(r), width: width, isSpace: r == ' '})
	}
	return out
}
