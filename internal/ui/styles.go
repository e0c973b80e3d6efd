package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fbritoferreira/m3u8-parser/internal/config"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	// List view styles
	Name     lipgloss.Style
	Group    lipgloss.Style
	URL      lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style

	// Detail pane styles
	DetailName  lipgloss.Style
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style

	// Chrome styles
	Border  lipgloss.Style
	Divider lipgloss.Style

	// Colors for direct access
	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Name:        lipgloss.NewStyle().Bold(true),
		Group:       lipgloss.NewStyle(),
		URL:         lipgloss.NewStyle(),
		Cursor:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("236")),
		DetailName:  lipgloss.NewStyle().Bold(true),
		DetailLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		DetailValue: lipgloss.NewStyle(),
		Border:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		Divider:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg:  lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	nameColor := parseANSIColor(config.GetColorName())
	groupColor := parseANSIColor(config.GetColorGroup())
	urlColor := parseANSIColor(config.GetColorURL())
	borderColor := lipgloss.Color(config.GetColorBorder())
	cursorColor := lipgloss.Color(config.GetColorCursor())
	selectedBg := lipgloss.Color(config.GetColorSelected())
	dimColor := lipgloss.Color(config.GetColorDim())

	// List view styles
	s.Name = lipgloss.NewStyle().Foreground(nameColor)
	s.Group = lipgloss.NewStyle().Foreground(groupColor)
	s.URL = lipgloss.NewStyle().Foreground(urlColor)
	s.Cursor = lipgloss.NewStyle().Foreground(cursorColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Selected = lipgloss.NewStyle().Background(selectedBg)

	// Detail pane styles (same colors, name is bold)
	s.DetailName = lipgloss.NewStyle().Bold(true).Foreground(nameColor)
	s.DetailLabel = lipgloss.NewStyle().Foreground(dimColor)
	s.DetailValue = lipgloss.NewStyle().Foreground(urlColor)

	// Chrome styles
	s.Border = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
	s.SelectedBg = selectedBg
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
