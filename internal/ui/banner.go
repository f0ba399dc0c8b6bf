package ui

import "github.com/charmbracelet/lipgloss"

var (
	bannerAccent = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#00AFFF"}
	bannerText   = lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#E0E0E0"}
)

// BannerStyle returns the lipgloss style for section banners. Without colors
// it keeps the border so banners still stand out.
func BannerStyle() lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Bold(true)
	if !ColorsEnabled() {
		return style
	}
	return style.
		BorderForeground(bannerAccent).
		Foreground(bannerText)
}

// Banner renders title in a bordered box.
func Banner(title string) string {
	return BannerStyle().Render(title)
}
