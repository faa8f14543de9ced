package tui

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Welcome banner content.
const (
	bannerTitle   = "Welcome to Create Filecoin App"
	bannerTagline = "Your access point to Filecoin development"
	bannerRule    = "━"

	// bannerWidth is the banner width on terminals wide enough to hold it.
	bannerWidth = 50
)

// Header renders the welcome banner shown in interactive mode.
type Header struct {
	width int
}

// NewHeader creates a Header for a terminal of the given width.
// Width of 0 or less uses the full banner width.
func NewHeader(width int) *Header {
	return &Header{width: width}
}

// Render returns the banner: a rule, the centered title and tagline, and a closing rule.
func (h *Header) Render() string {
	width := bannerWidth
	if h.width > 0 && h.width < width {
		width = h.width
	}

	styles := NewOutputStyles()
	rule := styles.Dim.Render(strings.Repeat(bannerRule, width))

	lines := []string{
		rule,
		centerText(styles.Banner.Render(bannerTitle), bannerTitle, width),
		centerText(styles.Info.Render(bannerTagline), bannerTagline, width),
		rule,
	}
	return strings.Join(lines, "\n")
}

// centerText centers styled text based on the display width of the unstyled original.
func centerText(styled, original string, totalWidth int) string {
	textWidth := runewidth.StringWidth(original)
	if totalWidth <= 0 || textWidth >= totalWidth {
		return styled
	}
	padding := (totalWidth - textWidth) / 2
	return strings.Repeat(" ", padding) + styled
}

// GetTerminalWidth returns the current terminal width, or 0 if it cannot be determined.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// RenderHeaderAuto renders the banner for the current terminal width.
func RenderHeaderAuto() string {
	CheckNoColor()
	return NewHeader(GetTerminalWidth()).Render()
}
