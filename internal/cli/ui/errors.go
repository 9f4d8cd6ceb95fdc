package ui

import (
	"fmt"
	"strings"
)

// FormatError returns a styled error message followed by optional hints.
func FormatError(msg string, hints ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleBoldRed.Render("Error:"), msg)
	if len(hints) == 0 {
		return b.String()
	}
	b.WriteString("\n" + StyleHint.Render("  Try:") + "\n")
	for _, h := range hints {
		fmt.Fprintf(&b, "    %s %s\n", StyleHint.Render(SymbolArrow), h)
	}
	return b.String()
}
