package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutLogoWidth is the minimum width to draw the full logo.
	LayoutLogoWidth = 72
)

// Log display limits.
const (
	// SplashLogLines is how many debug log lines the splash shows.
	SplashLogLines = 12
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)
