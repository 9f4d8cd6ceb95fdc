package cli

import (
	"github.com/allyourbase/numcanon/internal/cli/ui"
)

// colorEnabled reports whether stderr should get ANSI color.
func colorEnabled() bool {
	return ui.ColorEnabled()
}

// The helpers below take the color decision as a parameter and use the forced
// renderer, so they emit escape codes whenever color is true.

func bold(text string, color bool) string {
	if !color {
		return text
	}
	return ui.ForcedRenderer().NewStyle().Inherit(ui.StyleBold).Render(text)
}

func dim(text string, color bool) string {
	if !color {
		return text
	}
	return ui.ForcedRenderer().NewStyle().Inherit(ui.StyleDim).Render(text)
}

func cyan(text string, color bool) string {
	if !color {
		return text
	}
	return ui.ForcedRenderer().NewStyle().Foreground(ui.ColorCyan).Render(text)
}

// green renders canonical numbers.
func green(text string, color bool) string {
	if !color {
		return text
	}
	return ui.ForcedRenderer().NewStyle().Inherit(ui.StyleNumber).Render(text)
}

func boldCyan(text string, color bool) string {
	if !color {
		return text
	}
	return ui.ForcedRenderer().NewStyle().Inherit(ui.StyleBoldCyan).Render(text)
}
