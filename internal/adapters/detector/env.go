// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how tables are rendered.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModePretty renders styled, aligned tables for a terminal.
	ModePretty
	// ModePlain renders unstyled tab-separated rows for pipes and CI.
	ModePlain
)

// DetectEnvironment returns the recommended output mode for f.
// It checks whether f is a terminal and whether CI environment variables are set.
func DetectEnvironment(f *os.File) OutputMode {
	isTTY := f != nil && term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
