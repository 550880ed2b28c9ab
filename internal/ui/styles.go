package ui

import (
	"fmt"

	"github.com/groblegark/gatewarden/internal/model"
)

// ANSI256 color codes.
const (
	colorPending   = 179 // amber
	colorAnswering = 74  // blue
	colorPass      = 114 // green
	colorRemove    = 167 // red
	colorMuted     = 245 // medium gray
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderPhase returns the phase name colored by lifecycle stage.
func RenderPhase(p model.Phase) string {
	switch p {
	case model.PhasePending:
		return render(colorPending, p.String())
	case model.PhaseAnswering:
		return render(colorAnswering, p.String())
	default:
		return render(colorMuted, p.String())
	}
}

// RenderPass returns s in the success (green) color.
func RenderPass(s string) string {
	return render(colorPass, s)
}

// RenderRemove returns s in the removal (red) color.
func RenderRemove(s string) string {
	return render(colorRemove, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
