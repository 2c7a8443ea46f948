package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *model) View() string {
	if !m.config.Gate.Unlocked() {
		return m.viewGate()
	}
	var body string
	switch m.tab {
	case tabNews:
		body = m.viewNews()
	case tabAbout:
		body = joinNonEmpty([]string{sectionHeaderStyle.Render("About ScholarScout"), m.viewport.View()})
	default:
		body = m.viewFinder()
	}
	parts := []string{m.heroView(), m.tabBarView(), body, m.statusBarView()}
	if m.helpOpen {
		parts = append(parts, m.keyLegendView())
	} else {
		parts = append(parts, helperStyle.Render("F1/F2/F3 switch tabs • ? shortcuts • Ctrl+C quit"))
	}
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	return lipgloss.JoinVertical(lipgloss.Left, renderLogo(), taglineStyle.Render(heroTagline))
}

func (m *model) tabBarView() string {
	cells := make([]string, len(tabLabels))
	for i, label := range tabLabels {
		text := fmt.Sprintf("F%d %s", i+1, label)
		if tab(i) == m.tab {
			cells[i] = activeTabStyle.Render(text)
			continue
		}
		cells[i] = inactiveTabStyle.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}

func (m *model) statusBarView() string {
	stats := []string{m.config.Finder.Backend()}
	switch m.tab {
	case tabScholarships:
		stats = append(stats,
			fmt.Sprintf("Sort %s", m.list.Mode()),
			fmt.Sprintf("Page %d/%d", m.list.PageNumber(), m.list.PageCount()),
			fmt.Sprintf("Bookmarks %d", len(m.list.Bookmarks())))
	case tabNews:
		stats = append(stats, fmt.Sprintf("Articles %d/%d", m.reveal.Shown(), len(m.articles)))
	}
	if badges := m.jobStatusBadges(); len(badges) > 0 {
		stats = append(stats, badges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	if len(m.activeJobs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(m.activeJobs))
	for id := range m.activeJobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	badges := make([]string, 0, len(ids))
	for _, id := range ids {
		snapshot := m.activeJobs[id]
		badges = append(badges, fmt.Sprintf("%s %s", m.spinner.View(), snapshot.Kind))
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyHints() []keyHint {
	switch m.tab {
	case tabNews:
		return []keyHint{
			{"↑/↓", "Scroll"},
			{"g/G", "Top or bottom"},
			{"r", "Refresh news"},
			{"m", "Load more"},
			{"?", "Toggle shortcuts"},
			{"q", "Quit"},
		}
	case tabAbout:
		return []keyHint{
			{"↑/↓", "Scroll"},
			{"?", "Toggle shortcuts"},
			{"q", "Quit"},
		}
	}
	return []keyHint{
		{"Tab", "Next field"},
		{"Enter", "Search"},
		{"←/→", "Level or page"},
		{"Esc", "Go to results"},
		{"j/k", "Move cursor"},
		{"p/n", "Prev/next page"},
		{"s", "Cycle sort"},
		{"b", "Bookmark"},
		{"v", "Bookmarks view"},
		{"r", "Try again"},
		{"1-0", "Recent search"},
		{"q", "Quit"},
	}
}

func (m *model) keyLegendView() string {
	hints := m.keyHints()
	rows := []string{sectionHeaderStyle.Render("Keyboard Shortcuts")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := min(i+columns, len(hints))
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(fmt.Sprintf(" %-16s", hint.Description))
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) aboutContent() string {
	width := m.layout.contentWidth - 2
	paragraphs := []string{
		"ScholarScout finds scholarships and study-abroad news using a generative model with live web search.",
		"Describe what you are looking for in the Scholarship Finder. Add a major, an academic level, a location or a GPA to narrow the results. Each search asks the model for currently active listings and shows the pages it consulted as sources.",
		"Results can be sorted by relevance, by deadline (rolling deadlines last) or by name. Bookmark the ones you want to keep; bookmarks and your ten most recent searches are saved on this machine.",
		"Latest News collects recent articles about higher education, student visas and careers. It refreshes on a schedule while the app is open.",
		"Listings are generated from public web pages and can be out of date. Always confirm details on the provider's own site before applying.",
	}
	wrapped := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		wrapped[i] = wordwrap.String(p, width)
	}
	backend := helperStyle.Render("Search backend: " + m.config.Finder.Backend())
	return strings.Join(append(wrapped, backend), "\n\n")
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		width = max(width, len(runes))
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	// shadow first, offset one cell down and right, then the face on top
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r != ' ' {
				grid[y][x] = cell{r: r, style: logoFaceStyle}
			}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
