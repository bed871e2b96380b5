package outwriter

import (
	"os"

	"github.com/huangsam/workwell/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth returns how many runes a free-text column may use,
// based on the terminal width or the configured override.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	termWidth := cfg.Width

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // CI and pipes
		} else {
			termWidth = detectedWidth
		}
	}

	// Label column plus borders and padding
	available := termWidth - 30
	if available < 20 {
		return 20
	}
	if available > 100 {
		return 100
	}
	return available
}
