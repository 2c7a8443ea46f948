package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/scholarscout/internal/deadline"
	"github.com/csheth/scholarscout/internal/scholar"
)

func (m *model) updateNews(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.helpOpen = !m.helpOpen
		return nil
	case "r":
		if m.newsLoading {
			return nil
		}
		return m.startNews(true, true)
	case "m":
		if m.reveal.More() {
			m.refreshNewsContent()
		}
		return nil
	case "g":
		m.viewport.GotoTop()
		return nil
	case "G":
		m.viewport.GotoBottom()
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// startNews fetches the article list. A manual load clears what is on screen; a background
// refresh keeps the current articles until the new ones arrive.
func (m *model) startNews(fresh, manual bool) tea.Cmd {
	m.newsSeq++
	m.newsLoading = true
	if manual {
		m.newsErr = nil
		m.articles = nil
		m.newsSources = nil
		m.reveal.Reset(0)
	}
	m.refreshNewsContent()
	m.log.Info().Bool("fresh", fresh).Bool("manual", manual).Int("seq", m.newsSeq).Msg("news fetch started")
	return m.startJob(jobKindNews, newsJob(m.config.Finder, m.newsSeq, fresh, manual, m.config.SearchTimeout))
}

func (m *model) applyNewsResult(msg newsResultMsg) {
	if msg.seq != m.newsSeq {
		m.log.Debug().Int("seq", msg.seq).Int("current", m.newsSeq).Msg("dropping stale news result")
		return
	}
	m.newsLoading = false
	m.newsLoaded = true
	if msg.err != nil {
		if !msg.manual && len(m.articles) > 0 {
			m.log.Warn().Err(msg.err).Msg("background news refresh failed, keeping previous articles")
			return
		}
		m.newsErr = msg.err
		m.articles = nil
		m.newsSources = nil
		m.reveal.Reset(0)
		m.refreshNewsContent()
		return
	}
	m.newsErr = nil
	m.articles = msg.result.Articles
	m.newsSources = msg.result.Sources
	m.newsUpdated = time.Now()
	m.reveal.Reset(len(m.articles))
	m.refreshNewsContent()
}

func (m *model) refreshNewsContent() {
	if m.tab != tabNews {
		return
	}
	m.viewport.SetContent(m.newsContent())
}

func (m *model) newsContent() string {
	if len(m.articles) == 0 {
		return ""
	}
	width := m.layout.contentWidth - 2
	shown := m.articles[:m.reveal.Shown()]
	blocks := make([]string, 0, len(shown)+1)
	for _, article := range shown {
		blocks = append(blocks, renderArticle(article, width))
	}
	if m.reveal.HasMore() {
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top,
			keyStyle.Render("m"),
			keyDescStyle.Render(fmt.Sprintf(" Load More News (%d of %d)", len(shown), len(m.articles)))))
	}
	return strings.Join(blocks, "\n\n")
}

func renderArticle(article scholar.Article, width int) string {
	title := article.Title
	if title == "" {
		title = "Untitled article"
	}
	lines := []string{subtitleStyle.Render(wordwrap.String(title, width))}
	var meta []string
	if article.Source != "" {
		meta = append(meta, article.Source)
	}
	if article.PublishedDate != "" {
		meta = append(meta, publishedLabel(article.PublishedDate))
	}
	if len(meta) > 0 {
		lines = append(lines, providerStyle.Render(strings.Join(meta, "  ·  ")))
	}
	if article.Summary != "" {
		lines = append(lines, wordwrap.String(article.Summary, width))
	}
	if article.Link != "" {
		lines = append(lines, linkStyle.Render(truncateLine(article.Link, width)))
	}
	return strings.Join(lines, "\n")
}

func publishedLabel(raw string) string {
	if t, ok := deadline.Parse(raw); ok {
		return t.Format("Jan 2, 2006")
	}
	return raw
}

func (m *model) viewNews() string {
	header := sectionHeaderStyle.Render("Latest Education News")
	if !m.newsUpdated.IsZero() {
		header += helperStyle.Render("  updated " + m.newsUpdated.Format("15:04"))
	}
	parts := []string{header}
	switch {
	case m.newsLoading && len(m.articles) == 0:
		parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Gathering the latest news…", m.spinner.View())))
	case m.newsErr != nil:
		parts = append(parts, bannerErrorStyle.Render(scholar.UserMessage(m.newsErr, "news")+"\n"+
			lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render("r"), keyDescStyle.Render(" Try Again"))))
	case m.newsLoaded && len(m.articles) == 0:
		parts = append(parts, helperStyle.Render("No news articles right now. Press r to refresh."))
	default:
		if m.newsLoading {
			parts = append(parts, helperStyle.Render(fmt.Sprintf("%s Refreshing…", m.spinner.View())))
		}
		parts = append(parts, m.viewport.View())
		if line := sourcesLine(m.newsSources); line != "" {
			parts = append(parts, line)
		}
	}
	return joinNonEmpty(parts)
}
