// Package model defines shared data structures.
package model

import "time"

// Config defines challenge settings after flags and config file are merged.
type Config struct {
	SentencesPath string
	Seed          int64
	LogFile       string
	LogLevel      string
	Summary       bool
}

// Result captures a completed challenge for the final summary.
type Result struct {
	StartedAt     time.Time
	Target        string
	Typed         string
	Finished      bool
	TimeRemaining int
	CorrectChars  int
	TypedChars    int
	Elapsed       time.Duration
	WPM           float64
	Accuracy      float64
}

// CharAggregate counts hits and misses for one expected character.
type CharAggregate struct {
	Char      string
	Correct   int
	Incorrect int
}
