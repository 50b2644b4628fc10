package engine

import "unicode/utf8"

// SessionSeconds is the fixed time budget of every session.
const SessionSeconds = 60

const charsPerWord = 5.0

// Metrics are derived from session state and never stored.
type Metrics struct {
	CorrectChars   int
	TypedChars     int
	ElapsedSeconds int
	WPM            float64
	Accuracy       float64
}

// CountCorrect counts positions where typed matches target rune for rune.
func CountCorrect(target, typed string) int {
	t := []rune(target)
	correct := 0
	i := 0
	for _, r := range typed {
		if i >= len(t) {
			break
		}
		if r == t[i] {
			correct++
		}
		i++
	}
	return correct
}

// ComputeMetrics derives speed and accuracy. started reports whether the
// session ever left the idle phase.
func ComputeMetrics(target, typed string, timeRemaining int, started bool) Metrics {
	m := Metrics{
		CorrectChars: CountCorrect(target, typed),
		TypedChars:   utf8.RuneCountInString(typed),
	}
	if started {
		m.ElapsedSeconds = SessionSeconds - timeRemaining
	}
	m.WPM = WPM(m.CorrectChars, m.ElapsedSeconds)
	m.Accuracy = Accuracy(m.CorrectChars, m.TypedChars)
	return m
}

// WPM uses the five-characters-per-word convention.
func WPM(correctChars, elapsedSeconds int) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}
	minutes := float64(elapsedSeconds) / 60.0
	return (float64(correctChars) / charsPerWord) / minutes
}

// Accuracy returns a percentage in [0, 100]; empty input is 100.
func Accuracy(correctChars, typedChars int) float64 {
	if typedChars <= 0 {
		return 100
	}
	return float64(correctChars) / float64(typedChars) * 100
}
