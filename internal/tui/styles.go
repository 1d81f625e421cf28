package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorAccent  = lipgloss.Color("#A78BFA")
	colorSuccess = lipgloss.Color("#22C55E")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")
	colorWhite   = lipgloss.Color("#FFFFFF")
	colorRowBg   = lipgloss.Color("#1F2937")
)

// Shared styles for every view in the package.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(labelWidth)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	KeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(colorBorder).
			Strikethrough(true)

	CriticalStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	SelectedMarkStyle = lipgloss.NewStyle().
				Foreground(colorSuccess).
				Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	ToastStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(colorPrimary).
			Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWhite).
				Background(colorPrimary).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Background(colorRowBg).
				Foreground(colorWhite).
				Bold(true)
)

const (
	labelWidth    = 10
	borderPadding = 4
)
