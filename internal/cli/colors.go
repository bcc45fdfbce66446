package cli

import "github.com/charmbracelet/lipgloss"

// Cassette colour palette 📼
// Shared colours for consistent branding across CLI, prompt and progress UI
var (
	// Core tape colours (light to dark)
	TapeCream = lipgloss.Color("#F5E6C8") // Label card
	TapeAmber = lipgloss.Color("#F4A300") // VU needle
	TapeRust  = lipgloss.Color("#C0562F") // Oxide
	TapeBrown = lipgloss.Color("#6B3E26") // Shell

	// Accent colours
	DustGray = lipgloss.Color("#8A8578") // Subtle text
)
