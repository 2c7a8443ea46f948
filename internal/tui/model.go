package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/csheth/scholarscout/internal/leadgate"
	"github.com/csheth/scholarscout/internal/results"
	"github.com/csheth/scholarscout/internal/scholar"
	"github.com/csheth/scholarscout/internal/store"
)

// Finder is the search service behind both tabs.
type Finder interface {
	Scholarships(ctx context.Context, q scholar.Query) (scholar.ScholarshipResult, error)
	News(ctx context.Context, fresh bool) (scholar.NewsResult, error)
	Backend() string
}

// Config wires runtime dependencies into the TUI program.
type Config struct {
	Finder        Finder
	Gate          *leadgate.Gate
	History       *store.History
	Bookmarks     *store.Bookmarks
	PerPage       int
	DefaultSort   results.SortMode
	RevealStep    int
	SearchTimeout time.Duration
	Logger        zerolog.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.SearchTimeout <= 0 {
		config.SearchTimeout = defaultSearchTimeout
	}
	log := config.Logger.With().Str("component", "tui").Logger()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 16)
	vp.MouseWheelEnabled = true

	m := &model{
		config:     config,
		log:        log,
		jobs:       newJobBus(config.Logger),
		layout:     newPageLayout(),
		spinner:    spin,
		viewport:   vp,
		activeJobs: map[string]jobSnapshot{},
		level:      scholar.LevelAny,
		list:       results.NewList(config.PerPage, config.DefaultSort),
		reveal:     results.NewReveal(config.RevealStep),
		gateInputs: newGateInputs(),
		formInputs: newFormInputs(),
	}
	if config.History != nil {
		m.history = config.History.List()
	}
	if config.Bookmarks != nil {
		m.list.SetBookmarks(config.Bookmarks.List())
	}
	if lead := config.Gate.Lead(); lead.Email != "" {
		m.prefillGate(lead)
	}
	m.focusGateField(gateFieldName)
	m.focusFormField(focusTopic)
	return m
}

type model struct {
	config Config
	log    zerolog.Logger
	jobs   *jobBus
	layout pageLayout

	spinner    spinner.Model
	viewport   viewport.Model
	activeJobs map[string]jobSnapshot
	helpOpen   bool

	// lead gate
	gateInputs  []textinput.Model
	gateFocus   int
	gateErrors  leadgate.FieldErrors
	gateBusy    bool
	gateMessage string

	tab tab

	// scholarship finder
	formInputs  map[focusField]*textinput.Model
	level       scholar.Level
	focus       focusField
	list        *results.List
	history     []string
	sources     []scholar.Source
	dropped     int
	searching   bool
	searched    bool
	searchErr   error
	searchSeq   int
	lastQuery   scholar.Query
	pending     *store.Confirmation
	infoMessage string

	// news
	articles    []scholar.Article
	newsSources []scholar.Source
	newsErr     error
	newsLoading bool
	newsLoaded  bool
	newsSeq     int
	newsUpdated time.Time
	reveal      results.Reveal
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.contentWidth
		m.viewport.Height = m.layout.viewportHeight
		m.refreshNewsContent()
		if m.tab == tabAbout {
			m.viewport.SetContent(m.aboutContent())
		}
		return m, nil
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.activeJobs[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.activeJobs, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case gateSubmitMsg:
		return m, m.handleGateSubmit(msg)
	case gateActivateMsg:
		return m, m.handleGateActivate(msg)
	case searchResultMsg:
		m.applySearchResult(msg)
		return m, nil
	case newsResultMsg:
		m.applyNewsResult(msg)
		return m, nil
	case NewsRefreshMsg:
		if !m.config.Gate.Unlocked() || m.newsLoading || !m.newsLoaded {
			return m, nil
		}
		return m, m.startNews(true, false)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if !m.config.Gate.Unlocked() {
			return m, m.updateGate(msg)
		}
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if m.tab == tabNews || m.tab == tabAbout {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *model) quit() tea.Cmd {
	m.jobs.Close()
	return tea.Quit
}

func (m *model) busy() bool {
	return m.gateBusy || m.searching || m.newsLoading
}

func (m *model) startJob(kind jobKind, runner jobRunner) tea.Cmd {
	return tea.Batch(m.jobs.Start(kind, runner), m.spinner.Tick)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "f1":
		return m.switchTab(tabScholarships)
	case "f2":
		return m.switchTab(tabNews)
	case "f3":
		return m.switchTab(tabAbout)
	}
	switch m.tab {
	case tabNews:
		return m.updateNews(msg)
	case tabAbout:
		return m.updateAbout(msg)
	default:
		return m.updateFinder(msg)
	}
}

func (m *model) switchTab(next tab) tea.Cmd {
	m.tab = next
	m.pending = nil
	switch next {
	case tabNews:
		m.refreshNewsContent()
		m.viewport.GotoTop()
		if !m.newsLoaded && !m.newsLoading {
			return m.startNews(false, true)
		}
	case tabAbout:
		m.viewport.SetContent(m.aboutContent())
		m.viewport.GotoTop()
	case tabScholarships:
		if m.focus != focusResults {
			return m.focusFormField(m.focus)
		}
	}
	return nil
}

func (m *model) updateAbout(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.helpOpen = !m.helpOpen
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}
