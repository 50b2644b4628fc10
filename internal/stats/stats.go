// Package stats contains result calculations and the final summary.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"

	"github.com/verte-zerg/sprint/internal/engine"
	"github.com/verte-zerg/sprint/internal/model"
)

const (
	durationUnits = 2
	weakCharCount = 5
)

var ratings = []struct {
	minWPM  float64
	message string
}{
	{minWPM: 70, message: "Excellent typing speed!"},
	{minWPM: 50, message: "Great job! Keep practicing"},
	{minWPM: 30, message: "Good progress! Room to improve"},
}

const fallbackRating = "Keep practicing, you'll get there!"

// Rate returns the performance message for a final WPM.
func Rate(wpm float64) string {
	for _, r := range ratings {
		if wpm >= r.minWPM {
			return r.message
		}
	}
	return fallbackRating
}

// ResultFromSnapshot converts a session snapshot into a Result.
func ResultFromSnapshot(snap engine.Snapshot) model.Result {
	return model.Result{
		StartedAt:     snap.StartedAt,
		Target:        snap.Target,
		Typed:         snap.Typed,
		Finished:      snap.Finished(),
		TimeRemaining: snap.TimeRemaining,
		CorrectChars:  snap.CorrectChars,
		TypedChars:    snap.TypedChars,
		Elapsed:       time.Duration(snap.ElapsedSeconds) * time.Second,
		WPM:           snap.WPM,
		Accuracy:      snap.Accuracy,
	}
}

// Outcome describes how the session ended.
func Outcome(res model.Result) string {
	if res.Finished {
		return "finished"
	}
	return "time up"
}

// FormatDuration renders d in words, e.g. "23 seconds".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d).LimitFirstN(durationUnits).String()
}

// CharBreakdown counts hits and misses per expected non-space character
// over the typed prefix.
func CharBreakdown(target, typed string) []model.CharAggregate {
	targetRunes := []rune(target)
	counts := map[rune]*model.CharAggregate{}
	i := 0
	for _, r := range typed {
		if i >= len(targetRunes) {
			break
		}
		expected := targetRunes[i]
		i++
		if expected == ' ' {
			continue
		}
		agg, ok := counts[expected]
		if !ok {
			agg = &model.CharAggregate{Char: string(expected)}
			counts[expected] = agg
		}
		if r == expected {
			agg.Correct++
		} else {
			agg.Incorrect++
		}
	}
	out := make([]model.CharAggregate, 0, len(counts))
	for _, agg := range counts {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Char < out[j].Char
	})
	return out
}

// RenderSummary prints the final result followed by a per-character table.
func RenderSummary(w io.Writer, res model.Result, useColor bool) error {
	title := fmt.Sprintf("Results (%s)", Outcome(res))
	if _, err := fmt.Fprintln(w, colorize(title, headingColor, useColor)); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", fmt.Sprintf("%.0f", res.WPM)},
		{"Accuracy", fmt.Sprintf("%.0f%%", res.Accuracy)},
		{"Characters", fmt.Sprintf("%d", res.TypedChars)},
		{"Correct", fmt.Sprintf("%d", res.CorrectChars)},
		{"Time", FormatDuration(res.Elapsed)},
		{"Time left", fmt.Sprintf("%ds", res.TimeRemaining)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	rating := Rate(res.WPM)
	if _, err := fmt.Fprintln(w, colorize(rating, ratingColor(res.WPM), useColor)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	aggs := CharBreakdown(res.Target, res.Typed)
	if err := RenderCharTable(w, aggs); err != nil {
		return err
	}
	weak := WeakChars(aggs, weakCharCount)
	if len(weak) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Weak keys: %s\n", strings.Join(weak, " "))
	return err
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats.")
		return err
	}
	rows := make([]model.CharAggregate, len(aggs))
	copy(rows, aggs)
	// Sort by lowest accuracy.
	sort.Slice(rows, func(i, j int) bool {
		ai, aj := accuracy(rows[i]), accuracy(rows[j])
		if ai == aj {
			return rows[i].Char < rows[j].Char
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.Char,
			fmt.Sprintf("%.2f%%", accuracy(r)*100),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
