package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the banner art and tagline centred for the current
// terminal width. Replace banner.txt to change the art.
func RenderBanner(tagline string) string {
	art := strings.TrimRight(bannerRaw, "\n")
	if tagline != "" {
		art += "\n\n" + tagline
	}
	block := BannerStyle.Render(art)
	return lipgloss.PlaceHorizontal(termWidth(), lipgloss.Center, block)
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
