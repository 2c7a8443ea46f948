package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Underline(true)
	subtitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	providerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	bookmarkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	linkStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("38")).Underline(true)

	accentColor        = lipgloss.Color("#0891b2")
	deepColor          = lipgloss.Color("#082f49")
	lightTextColor     = lipgloss.Color("#ecfeff")
	secondaryTextColor = lipgloss.Color("#67e8f9")

	heroBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Foreground(lightTextColor).Padding(1, 2)
	taglineStyle       = lipgloss.NewStyle().Foreground(secondaryTextColor).Italic(true)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	disabledKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e6a86")).Background(lipgloss.Color("#26233a")).Padding(0, 1)
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	confirmBoxStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(0, 2)
	bannerErrorStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("9")).Padding(0, 1)
	bannerWarnStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("214")).Padding(0, 1)
	currentLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	activeTabStyle     = lipgloss.NewStyle().Bold(true).Foreground(lightTextColor).Background(accentColor).Padding(0, 2)
	inactiveTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 2)
	focusedLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(secondaryTextColor)
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	chipStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#bde0fe")).Padding(0, 1)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(lightTextColor).Background(deepColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#021019"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"█▀▀ █▀▀ █ █ █▀█ █   █▀█ █▀█ █▀▀ █▀▀ █▀█ █ █ ▀█▀",
		"▀▀█ █   █▀█ █ █ █   █▀█ █▀▄ ▀▀█ █   █ █ █ █  █ ",
		"▀▀▀ ▀▀▀ ▀ ▀ ▀▀▀ ▀▀▀ ▀ ▀ ▀ ▀ ▀▀▀ ▀▀▀ ▀▀▀ ▀▀▀  ▀ ",
	}
)
