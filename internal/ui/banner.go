package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ███████╗██╗     ███████╗███████╗████████╗ ██████╗ ██████╗ ███████╗
 ██╔════╝██║     ██╔════╝██╔════╝╚══██╔══╝██╔═══██╗██╔══██╗██╔════╝
 █████╗  ██║     █████╗  █████╗     ██║   ██║   ██║██████╔╝███████╗
 ██╔══╝  ██║     ██╔══╝  ██╔══╝     ██║   ██║   ██║██╔═══╝ ╚════██║
 ██║     ███████╗███████╗███████╗   ██║   ╚██████╔╝██║     ███████║
 ╚═╝     ╚══════╝╚══════╝╚══════╝   ╚═╝    ╚═════╝ ╚═╝     ╚══════╝`

const bannerSubtitle = "Fleet Records for Transportation Offices • Terminal Interface"

// RenderBanner returns the styled ASCII banner.
func RenderBanner() string {
	lines := splitLines(bannerArt)
	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	maxWidth := 0
	var rendered strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
		rendered.WriteString(baseStyle.Render(line) + "\n")
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}

// RenderCompactBanner is the one-line header used on short terminals.
func RenderCompactBanner() string {
	return BannerStyle.Render("FLEETOPS") + " " + MutedStyle.Render(bannerSubtitle)
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
