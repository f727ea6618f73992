package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/bookrecs/internal/bookapi"
	"github.com/five82/bookrecs/internal/pages"
	"github.com/five82/bookrecs/internal/prefs"
	"github.com/five82/bookrecs/internal/state"
)

// Page identifies a screen.
type Page int

const (
	PageHome Page = iota
	PageSearch
	PageBook
	PageRecommend
	PageLogs
)

func (p Page) String() string {
	switch p {
	case PageSearch:
		return "Search"
	case PageBook:
		return "Book"
	case PageRecommend:
		return "Recommend"
	case PageLogs:
		return "Logs"
	default:
		return "Home"
	}
}

// route is one entry of the navigation history.
type route struct {
	page Page
	isbn string
}

// historyLimit bounds the back stack.
const historyLimit = 50

// Options configures the UI.
type Options struct {
	Context context.Context
	API     bookapi.Fetcher
	APIURL  string
	Store   *state.StatusStore
	// StatusPolling reports whether a poller feeds Store.
	StatusPolling bool
	LogPath       string
	Logger        zerolog.Logger
	ThemeName     string
	StartPage     string
	PrefsPath     string
	Tick          time.Duration
}

// inputFocus names the text input receiving keys, if any.
type inputFocus int

const (
	focusNone inputFocus = iota
	focusSearch
	focusUser
	focusGenre
)

// zone is the section of a page that receives navigation keys.
type zone int

const (
	zoneGrid zone = iota
	zoneSuggestions
	zoneGenres
)

// homeShelf selects the list shown on Home.
type homeShelf int

const (
	shelfTrending homeShelf = iota
	shelfPopular
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	log           zerolog.Logger
	store         *state.StatusStore
	statusPolling bool
	apiURL        string
	logPath       string
	prefsPath     string
	startPage     string
	tick          time.Duration
	keys          keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	current  route
	history  []route

	// Page controllers
	home      *pages.Home
	search    *pages.Search
	book      *pages.Book
	recommend *pages.Recommend

	// Data state
	snapshot state.StatusSnapshot
	spinner  spinner.Model

	// Grids
	shelf       homeShelf
	homeGrid    grid
	popularGrid grid
	searchGrid  grid
	similarGrid grid
	tabGrids    [3]grid
	genreGrid   grid

	// Inputs
	input       inputFocus
	searchInput textinput.Model
	userInput   textinput.Model
	genreInput  textinput.Model
	searchZone  zone
	suggestion  int
	recZone     zone
	genreCursor int

	// Logs page
	logs logState
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	deps := pages.Deps{API: opts.API, Log: opts.Logger, Context: ctx}
	theme := GetTheme(opts.ThemeName)

	m := Model{
		ctx:           ctx,
		log:           opts.Logger,
		store:         opts.Store,
		statusPolling: opts.StatusPolling,
		apiURL:        opts.APIURL,
		logPath:       opts.LogPath,
		prefsPath:     prefsPath,
		startPage:     opts.StartPage,
		tick:          tick,
		keys:          DefaultKeyMap(),
		theme:         theme,
		current:       route{page: startPage(opts.StartPage)},
		home:          pages.NewHome(deps),
		search:        pages.NewSearch(deps),
		book:          pages.NewBook(deps),
		recommend:     pages.NewRecommend(deps),
		logs:          newLogState(),
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.searchInput = newInput("Search for books, authors, genres, or ISBN...", 200)
	m.userInput = newInput("Enter User ID (e.g., 12345)", 20)
	m.genreInput = newInput("Or type a custom genre (e.g., 'Mystery', 'Romance', 'Sci-Fi')", 80)
	m.applyThemeToWidgets()

	if m.current.page == PageSearch {
		m.input = focusSearch
		m.searchInput.Focus()
	}
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	return ti
}

func startPage(name string) Page {
	switch name {
	case prefs.StartSearch:
		return PageSearch
	case prefs.StartRecommend:
		return PageRecommend
	default:
		return PageHome
	}
}

// applyThemeToWidgets restyles the bubbles components after a theme change.
func (m *Model) applyThemeToWidgets() {
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.spinner.Style = accent
	for _, ti := range []*textinput.Model{&m.searchInput, &m.userInput, &m.genreInput} {
		ti.PromptStyle = accent
		ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
		ti.Cursor.Style = accent
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(m.tick),
		m.enter(m.current),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.input != focusNone {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeWidgets()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.StatusSnapshot(msg)
		return m, nil

	case navigateMsg:
		return m, m.navigate(msg.to)

	case logsMsg:
		m.applyLogs(msg)
		return m, nil

	case pages.PopularMsg:
		m.home.ApplyPopular(msg)
		m.popularGrid.sync(m.home.Popular.Data())
		return m, nil

	case pages.SearchMsg:
		m.search.Apply(msg)
		m.searchGrid.reset()
		m.searchGrid.clamp(m.search.Results.Data())
		return m, nil

	case pages.BookMsg:
		m.book.Apply(msg)
		m.similarGrid.reset()
		m.similarGrid.clamp(m.book.Similar.Data())
		return m, nil

	case pages.RandomUserMsg:
		cmd := m.recommend.ApplyRandomUser(msg)
		if id := m.recommend.UserID(); id != "" && m.input != focusUser {
			m.userInput.SetValue(id)
		}
		return m, cmd

	case pages.UserDataMsg:
		m.recommend.ApplyUserData(msg)
		for _, t := range pages.Tabs {
			m.tabGrids[t].reset()
			m.tabGrids[t].clamp(m.recommend.TabBooks(t))
		}
		return m, nil

	case pages.SVDMsg:
		m.recommend.ApplySVD(msg)
		m.tabGrids[pages.TabSVD].sync(m.recommend.TabBooks(pages.TabSVD))
		return m, nil

	case pages.GenreMsg:
		m.recommend.ApplyGenre(msg)
		m.genreGrid.reset()
		m.genreGrid.clamp(m.recommend.GenreRecs.Data())
		return m, nil

	case pages.GenresMsg:
		m.recommend.ApplyGenres(msg)
		m.genreCursor = min(m.genreCursor, max(len(m.recommend.Genres.Data())-1, 0))
		return m, nil
	}

	// Cursor blink and other widget messages.
	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent(m.width, m.contentHeight()))
	return b.String()
}

// contentHeight is the space below the header and command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 1)
}

// renderContent renders the current page.
func (m Model) renderContent(width, height int) string {
	switch m.current.page {
	case PageSearch:
		return m.renderSearch(width, height)
	case PageBook:
		return m.renderBook(width, height)
	case PageRecommend:
		return m.renderRecommend(width, height)
	case PageLogs:
		return m.renderLogs(width, height)
	default:
		return m.renderHome(width, height)
	}
}

func (m *Model) resizeWidgets() {
	inputWidth := max(min(m.width-8, 80), 10)
	m.searchInput.Width = inputWidth
	m.userInput.Width = min(inputWidth, 30)
	m.genreInput.Width = inputWidth
	m.resizeLogViewport()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.input != focusNone {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.PageHome):
		return m, m.navigate(route{page: PageHome})
	case key.Matches(msg, m.keys.PageSearch):
		return m, m.navigate(route{page: PageSearch})
	case key.Matches(msg, m.keys.PageRecommend):
		return m, m.navigate(route{page: PageRecommend})
	case key.Matches(msg, m.keys.PageLogs):
		return m, m.navigate(route{page: PageLogs})
	case key.Matches(msg, m.keys.Back):
		return m, m.back()
	}

	switch m.current.page {
	case PageHome:
		return m.handleHomeKey(msg)
	case PageSearch:
		return m.handleSearchKey(msg)
	case PageBook:
		return m.handleBookKey(msg)
	case PageRecommend:
		return m.handleRecommendKey(msg)
	case PageLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// handleInputKey routes keys to the focused text input. Enter submits and
// esc leaves the input.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.blurInputs()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		focus := m.input
		m.blurInputs()
		switch focus {
		case focusSearch:
			m.searchZone = zoneGrid
			return m, m.search.Submit(m.searchInput.Value())
		case focusUser:
			return m, m.recommend.SubmitUser(m.userInput.Value())
		case focusGenre:
			m.recZone = zoneGrid
			return m, m.recommend.SubmitGenre(m.genreInput.Value())
		}
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.input {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case focusUser:
		m.userInput, cmd = m.userInput.Update(msg)
	case focusGenre:
		m.genreInput, cmd = m.genreInput.Update(msg)
	}
	return m, cmd
}

// focusInput gives f the keyboard.
func (m *Model) focusInput(f inputFocus) tea.Cmd {
	m.blurInputs()
	m.input = f
	switch f {
	case focusSearch:
		return m.searchInput.Focus()
	case focusUser:
		return m.userInput.Focus()
	case focusGenre:
		return m.genreInput.Focus()
	}
	return nil
}

func (m *Model) blurInputs() {
	m.input = focusNone
	m.searchInput.Blur()
	m.userInput.Blur()
	m.genreInput.Blur()
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyThemeToWidgets()
	m.refreshLogViewport()
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, StartPage: m.startPage}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save preferences failed")
	}
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.current.page == PageLogs && m.logs.follow {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.tick))
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.StatusSnapshot

// navigateMsg moves to another page. Grids emit it when a book is opened.
type navigateMsg struct {
	to route
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.StatusStore) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func openBookCmd(isbn string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: route{page: PageBook, isbn: isbn}}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.API == nil {
		return fmt.Errorf("ui requires an api client")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// Interrupted by signal; not an error for the caller.
		return nil
	}
	return err
}
