package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorHeader   = lipgloss.Color("63")
	ColorLabel    = lipgloss.Color("245")
	ColorValue    = lipgloss.Color("255")
	ColorSelected = lipgloss.Color("57")
	ColorError    = lipgloss.Color("196")
	ColorOK       = lipgloss.Color("42")
	ColorSubtle   = lipgloss.Color("241")
)

// Layout constants.
const (
	defaultWidth  = 100
	defaultHeight = 24
	borderPadding = 2
	// chromeHeight is the number of lines around the table: title, address
	// bar, footer, status line and help.
	chromeHeight = 7
	minTableRows = 3
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorLabel)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorValue)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	OKStyle = lipgloss.NewStyle().
		Foreground(ColorOK)

	AddressStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorValue).
				Background(ColorSelected)
)
