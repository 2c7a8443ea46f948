package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/scholarscout/internal/deadline"
	"github.com/csheth/scholarscout/internal/scholar"
	"github.com/csheth/scholarscout/internal/store"
)

var formLabels = map[focusField]string{
	focusTopic:    "Topic",
	focusMajor:    "Major",
	focusLevel:    "Level",
	focusLocation: "Location",
	focusGPA:      "GPA",
}

func newFormInputs() map[focusField]*textinput.Model {
	fields := []struct {
		field       focusField
		placeholder string
		limit       int
	}{
		{focusTopic, "e.g., STEM, Fulbright, women in engineering", 120},
		{focusMajor, "e.g., Computer Science (optional)", 80},
		{focusLocation, "e.g., Germany (optional)", 80},
		{focusGPA, "e.g., 3.7 (optional)", 8},
	}
	inputs := make(map[focusField]*textinput.Model, len(fields))
	for _, field := range fields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = field.limit
		input.Width = 48
		inputs[field.field] = &input
	}
	return inputs
}

func (m *model) focusFormField(field focusField) tea.Cmd {
	m.focus = focusField((int(field) + focusFieldCount) % focusFieldCount)
	var cmd tea.Cmd
	for f, input := range m.formInputs {
		if f == m.focus {
			cmd = input.Focus()
			continue
		}
		input.Blur()
	}
	return cmd
}

func (m *model) filters() scholar.Filters {
	return scholar.Filters{
		Major:    m.formInputs[focusMajor].Value(),
		Level:    m.level,
		Location: m.formInputs[focusLocation].Value(),
		GPA:      m.formInputs[focusGPA].Value(),
	}
}

func (m *model) updateFinder(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if m.pending != nil {
		switch key {
		case "y", "enter":
			m.applyBookmark(*m.pending)
			m.pending = nil
		case "n", "esc":
			m.pending = nil
			m.infoMessage = "Bookmark unchanged."
		}
		return nil
	}

	switch key {
	case "tab":
		return m.focusFormField(m.focus + 1)
	case "shift+tab":
		return m.focusFormField(m.focus - 1)
	}

	if m.focus == focusResults {
		return m.updateResults(msg)
	}

	switch key {
	case "enter":
		return m.startSearch(m.formInputs[focusTopic].Value(), true)
	case "esc":
		return m.focusFormField(focusResults)
	case "up":
		return m.focusFormField(m.focus - 1)
	case "down":
		return m.focusFormField(m.focus + 1)
	}
	if m.focus == focusLevel {
		switch key {
		case "left", "h":
			m.level = m.level.Prev()
		case "right", "l", " ":
			m.level = m.level.Next()
		}
		return nil
	}
	input := m.formInputs[m.focus]
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (m *model) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q":
		return m.quit()
	case "esc", "/", "i":
		return m.focusFormField(focusTopic)
	case "?":
		m.helpOpen = !m.helpOpen
	case "enter":
		return m.startSearch(m.formInputs[focusTopic].Value(), true)
	case "up", "k":
		m.list.MoveCursor(-1)
	case "down", "j":
		m.list.MoveCursor(1)
	case "left", "p":
		m.list.PrevPage()
	case "right", "n":
		m.list.NextPage()
	case "s":
		mode := m.list.CycleSort()
		m.infoMessage = "Sorted by " + strings.ToLower(mode.String()) + "."
	case "v":
		m.list.ShowBookmarks(!m.list.ShowingBookmarks())
	case "b":
		m.requestBookmark()
	case "r":
		return m.tryAgain()
	default:
		if idx, ok := historyIndex(key); ok && idx < len(m.history) {
			topic := m.history[idx]
			m.formInputs[focusTopic].SetValue(topic)
			return m.startSearch(topic, false)
		}
	}
	return nil
}

// historyIndex maps the digit keys 1-9 and 0 onto history slots 0-9.
func historyIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	if key[0] == '0' {
		return 9, true
	}
	return int(key[0] - '1'), true
}

func (m *model) startSearch(topic string, record bool) tea.Cmd {
	return m.runQuery(scholar.Query{Topic: topic, Filters: m.filters()}, record)
}

func (m *model) tryAgain() tea.Cmd {
	switch scholar.Classify(m.searchErr) {
	case scholar.KindTransport, scholar.KindMalformed:
		query := m.lastQuery
		query.Fresh = true
		return m.runQuery(query, false)
	}
	return nil
}

func (m *model) runQuery(query scholar.Query, record bool) tea.Cmd {
	if m.searching {
		return nil
	}
	m.pending = nil
	m.infoMessage = ""
	if _, err := scholar.BuildScholarshipPrompt(query.Topic, query.Filters, 0); err != nil {
		m.searchErr = err
		return m.focusFormField(focusTopic)
	}
	query.Topic = strings.TrimSpace(query.Topic)
	m.searchSeq++
	m.lastQuery = query
	m.searching = true
	m.searched = true
	m.searchErr = nil
	m.sources = nil
	m.dropped = 0
	m.list.SetRecords(nil)
	m.list.ShowBookmarks(false)
	if record && m.config.History != nil {
		history, err := m.config.History.Record(query.Topic)
		if err != nil {
			m.log.Warn().Err(err).Msg("failed to record search history")
		} else {
			m.history = history
		}
	}
	m.log.Info().Str("topic", query.Topic).Bool("fresh", query.Fresh).Int("seq", m.searchSeq).Msg("scholarship search started")
	return m.startJob(jobKindSearch, searchJob(m.config.Finder, m.searchSeq, query, m.config.SearchTimeout))
}

func (m *model) applySearchResult(msg searchResultMsg) {
	if msg.seq != m.searchSeq {
		m.log.Debug().Int("seq", msg.seq).Int("current", m.searchSeq).Msg("dropping stale search result")
		return
	}
	m.searching = false
	if msg.err != nil {
		m.searchErr = msg.err
		m.list.SetRecords(nil)
		m.sources = nil
		return
	}
	m.list.SetRecords(msg.result.Scholarships)
	m.sources = msg.result.Sources
	m.dropped = msg.result.Dropped
	if len(msg.result.Scholarships) > 0 {
		m.focusFormField(focusResults)
	}
}

func (m *model) requestBookmark() {
	if m.config.Bookmarks == nil {
		return
	}
	rec, ok := m.list.Selected()
	if !ok {
		return
	}
	confirmation := m.config.Bookmarks.Request(rec)
	m.pending = &confirmation
}

func (m *model) applyBookmark(c store.Confirmation) {
	saved, err := m.config.Bookmarks.Apply(c)
	if err != nil {
		m.log.Error().Err(err).Msg("bookmark update failed")
		m.infoMessage = "Could not update bookmarks: " + err.Error()
		return
	}
	m.list.SetBookmarks(saved)
	if c.Action == store.ActionRemove {
		m.infoMessage = "Removed " + c.Record.Name + " from bookmarks."
	} else {
		m.infoMessage = "Bookmarked " + c.Record.Name + "."
	}
}

func (m *model) isBookmarked(key scholar.Key) bool {
	for _, rec := range m.list.Bookmarks() {
		if rec.Key() == key {
			return true
		}
	}
	return false
}

func (m *model) viewFinder() string {
	parts := []string{m.formView()}
	if chips := m.historyView(); chips != "" {
		parts = append(parts, chips)
	}
	parts = append(parts, m.resultsView())
	if m.pending != nil {
		parts = append(parts, confirmBoxStyle.Render(m.pending.Prompt()+"\n"+
			lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("y"), keyDescStyle.Render(" Confirm   "), keyStyle.Render("n"), keyDescStyle.Render(" Cancel"))))
	}
	if m.infoMessage != "" {
		parts = append(parts, helperStyle.Render(m.infoMessage))
	}
	return joinNonEmpty(parts)
}

func (m *model) formView() string {
	rows := make([]string, 0, len(formLabels)+1)
	for field := focusTopic; field <= focusGPA; field++ {
		label := labelStyle.Render(fmt.Sprintf("%-9s", formLabels[field]))
		if field == m.focus {
			label = focusedLabelStyle.Render(fmt.Sprintf("%-9s", formLabels[field]))
		}
		var value string
		if field == focusLevel {
			value = fmt.Sprintf("‹ %s ›", m.level)
			if field != m.focus {
				value = helperStyle.Render(value)
			}
		} else {
			value = m.formInputs[field].View()
		}
		rows = append(rows, label+" "+value)
	}
	if m.searching {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("%s Searching…", m.spinner.View())))
	} else {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("Enter"), keyDescStyle.Render(" Find Scholarships")))
	}
	return strings.Join(rows, "\n")
}

func (m *model) historyView() string {
	if len(m.history) == 0 {
		return ""
	}
	chips := []string{helperStyle.Render("Recent:")}
	for i, topic := range m.history {
		slot := (i + 1) % 10
		chips = append(chips, chipStyle.Render(fmt.Sprintf("%d %s", slot, truncateLine(topic, 24))))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " "))
}

func (m *model) resultsView() string {
	if banner := m.searchBanner(); banner != "" {
		return banner
	}
	if m.searching {
		return helperStyle.Render("Finding current scholarships with a live web search. This can take a minute.")
	}
	showingBookmarks := m.list.ShowingBookmarks()
	if m.list.Total() == 0 {
		switch {
		case showingBookmarks:
			return helperStyle.Render("You have no bookmarked scholarships yet. Press b on a result to save it.")
		case m.searched:
			return joinNonEmpty([]string{
				sectionHeaderStyle.Render("No Scholarships Found"),
				helperStyle.Render("Try a broader topic or fewer filters."),
			})
		default:
			return helperStyle.Render("Enter a topic and press Enter to find scholarships.")
		}
	}

	heading := fmt.Sprintf("Results (%d)", m.list.Total())
	if showingBookmarks {
		heading = fmt.Sprintf("Bookmarks (%d)", m.list.Total())
	}
	header := sectionHeaderStyle.Render(heading) + helperStyle.Render(fmt.Sprintf("  Sort: %s  Page %d/%d", m.list.Mode(), m.list.PageNumber(), m.list.PageCount()))

	rows := []string{header}
	for idx, rec := range m.list.Page() {
		rows = append(rows, m.renderRecord(idx, rec))
	}
	rows = append(rows, m.pagerView())
	if m.dropped > 0 && !showingBookmarks {
		rows = append(rows, helperStyle.Render(fmt.Sprintf("%d incomplete records were skipped.", m.dropped)))
	}
	if line := sourcesLine(m.sources); line != "" && !showingBookmarks {
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m *model) searchBanner() string {
	if m.searchErr == nil {
		return ""
	}
	message := scholar.UserMessage(m.searchErr, "scholarships")
	switch scholar.Classify(m.searchErr) {
	case scholar.KindValidation:
		return errorStyle.Render(message)
	case scholar.KindMalformed:
		return bannerWarnStyle.Render(message + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("r"), keyDescStyle.Render(" Try Again")))
	default:
		return bannerErrorStyle.Render(message + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("r"), keyDescStyle.Render(" Try Again")))
	}
}

func (m *model) renderRecord(idx int, rec scholar.Scholarship) string {
	selected := m.focus == focusResults && idx == m.list.Cursor()
	marker := "  "
	if selected {
		marker = "▸ "
	}
	star := helperStyle.Render("☆")
	if m.isBookmarked(rec.Key()) {
		star = bookmarkStyle.Render("★")
	}
	name := rec.Name
	if name == "" {
		name = "Untitled scholarship"
	}
	title := subtitleStyle.Render(truncateLine(name, m.layout.descriptionCap-4))
	if selected {
		title = currentLineStyle.Render(truncateLine(name, m.layout.descriptionCap-4))
	}
	lines := []string{marker + star + " " + title}
	meta := "Deadline: " + deadline.Label(rec.Deadline)
	if rec.Provider != "" {
		meta = providerStyle.Render(rec.Provider) + helperStyle.Render("  ·  "+meta)
	} else {
		meta = helperStyle.Render(meta)
	}
	lines = append(lines, "    "+meta)
	if rec.Description != "" {
		lines = append(lines, "    "+truncateLine(rec.Description, m.layout.descriptionCap))
	}
	if rec.Link != "" {
		lines = append(lines, "    "+linkStyle.Render(truncateLine(rec.Link, m.layout.descriptionCap)))
	}
	return strings.Join(lines, "\n")
}

func (m *model) pagerView() string {
	prev := keyStyle.Render("‹ Prev")
	if !m.list.HasPrev() {
		prev = disabledKeyStyle.Render("‹ Prev")
	}
	next := keyStyle.Render("Next ›")
	if !m.list.HasNext() {
		next = disabledKeyStyle.Render("Next ›")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, " ", next)
}

func sourcesLine(sources []scholar.Source) string {
	if len(sources) == 0 {
		return ""
	}
	seen := map[string]bool{}
	hosts := make([]string, 0, len(sources))
	for _, source := range sources {
		host := source.Host()
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		hosts = append(hosts, host)
	}
	if len(hosts) == 0 {
		return ""
	}
	return helperStyle.Render("Sources: " + strings.Join(hosts, " · "))
}
