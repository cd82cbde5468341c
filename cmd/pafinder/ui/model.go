package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"pafinder/internal/config"
	"pafinder/internal/export"
	"pafinder/internal/logging"
	"pafinder/internal/program"
	"pafinder/internal/selection"
	"pafinder/internal/session"
)

// page is the view the browser is showing once programs are loaded.
type page int

const (
	pageList page = iota
	pageDetail
	pageCompare
)

// loadedMsg carries the outcome of a fetch back to the update loop.
type loadedMsg struct {
	records []program.Program
	err     error
}

// sheetChangedMsg reports that the watched sheet file was rewritten.
type sheetChangedMsg struct{}

// Model is the root bubbletea model of the program browser.
type Model struct {
	ctx        context.Context
	load       session.LoadFunc
	session    *session.Session
	exportPath string
	logger     *zap.Logger
	changes    <-chan struct{}

	page    page
	filters FilterBar
	list    ListPageModel
	detail  DetailPageModel
	compare ComparePageModel
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	styles Styles
	layout LayoutConfig

	// notice is a one-shot message cleared by the next key press
	notice      string
	noticeError bool
}

// New creates the browser. load is run once at start and again on retry.
// base is the root logger; the browser and its session log under their own
// categories.
func New(ctx context.Context, cfg *config.Config, load session.LoadFunc, base *zap.Logger) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	styles := NewStyles(DetectTheme(cfg.UI.DarkMode))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:        ctx,
		load:       load,
		session:    session.New(logging.For(base, logging.CategorySession)),
		exportPath: cfg.ExportPath(),
		logger:     logging.For(base, logging.CategoryUI),
		filters:    NewFilterBar(styles, cfg.UI.ShowFilters),
		list:       NewListPageModel(styles),
		detail:     NewDetailPageModel(styles, cfg.UI.GlamourStyle),
		compare:    NewComparePageModel(styles),
		spinner:    sp,
		help:       help.New(),
		keys:       defaultKeyMap(),
		styles:     styles,
	}
	m.resize(DefaultWidth, DefaultHeight)
	return m
}

// Session exposes the browsing state.
func (m Model) Session() *session.Session {
	return m.session
}

// WatchChanges makes the browser reload whenever ch delivers.
func (m *Model) WatchChanges(ch <-chan struct{}) {
	m.changes = ch
}

// Init starts the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(), m.waitForChange())
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return sheetChangedMsg{}
	}
}

func (m Model) fetch() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		records, err := load(ctx)
		return loadedMsg{records: records, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.session.Status() == session.StatusLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case loadedMsg:
		if err := m.session.FinishLoad(msg.records, msg.err); err != nil {
			m.logger.Warn("program load failed", zap.Error(err))
			return m, nil
		}
		m.filters.SetOptions(m.session.Options())
		m.filters.SetState(m.session.Filter())
		m.page = pageList
		m.refreshList()
		return m, nil

	case sheetChangedMsg:
		if m.session.Status() == session.StatusLoading {
			return m, m.waitForChange()
		}
		m.logger.Info("sheet file changed, reloading")
		m.setNotice("Program sheet changed, reloading.", false)
		m.session.BeginLoad()
		return m, tea.Batch(m.spinner.Tick, m.fetch(), m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	m.notice = ""
	m.noticeError = false

	switch m.session.Status() {
	case session.StatusLoading:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case session.StatusFailed:
		switch {
		case key.Matches(msg, m.keys.Retry):
			m.logger.Info("retrying program load")
			m.session.BeginLoad()
			return m, tea.Batch(m.spinner.Tick, m.fetch())
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.page {
	case pageDetail:
		return m.handleDetailKey(msg)
	case pageCompare:
		return m.handleCompareKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filters.Focused() {
		before := m.filters.State()
		var cmd tea.Cmd
		m.filters, cmd = m.filters.Update(msg)
		if after := m.filters.State(); after != before {
			m.session.SetFilter(after)
			m.refreshList()
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.list.Current(); ok {
			m.detail.SetProgram(p)
			m.page = pageDetail
		}

	case key.Matches(msg, m.keys.Toggle):
		p, ok := m.list.Current()
		if !ok {
			break
		}
		if err := m.session.Toggle(p.ID); err != nil {
			m.setNotice(err.Error(), errors.Is(err, selection.ErrCapacity))
			break
		}
		m.refreshList()

	case key.Matches(msg, m.keys.Compare):
		// inert below two selections
		if m.session.CanCompare() {
			if err := m.session.EnterComparison(); err == nil {
				m.compare.SetComparison(m.session.Comparison())
				m.page = pageCompare
			}
		}

	case key.Matches(msg, m.keys.Clear):
		m.session.ClearSelection()
		m.refreshList()

	case key.Matches(msg, m.keys.Export):
		m.export()

	case key.Matches(msg, m.keys.FocusFilter):
		m.filters.Focus()
		m.resize(m.layout.TerminalWidth, m.layout.TerminalHeight)

	case key.Matches(msg, m.keys.ShowFilters):
		m.filters.ToggleVisible()
		m.resize(m.layout.TerminalWidth, m.layout.TerminalHeight)

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.page = pageList
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.session.ExitComparison()
		m.page = pageList
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.session.ClearSelection()
		m.page = pageList
		m.refreshList()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.compare, cmd = m.compare.Update(msg)
	return m, cmd
}

// export writes the displayed set. Export is synchronous; the set is small.
func (m *Model) export() {
	path, err := m.session.Export(m.exportPath)
	switch {
	case errors.Is(err, export.ErrNoRecords):
		m.setNotice("Nothing to download: no programs match your filters.", true)
	case err != nil:
		m.logger.Error("export failed", zap.Error(err))
		m.setNotice(fmt.Sprintf("Download failed: %v", err), true)
	default:
		m.setNotice(fmt.Sprintf("Saved %d programs to %s", len(m.session.Displayed()), path), false)
	}
}

func (m *Model) setNotice(text string, isError bool) {
	m.notice = text
	m.noticeError = isError
}

func (m *Model) refreshList() {
	s := m.session
	m.list.UpdateContent(s.Displayed(), s.Total(), s.Filter().IsActive(), s.IsSelected, s.SelectedCount(), s.CanCompare())
}

func (m *Model) resize(w, h int) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	m.layout = NewLayoutConfig(w, h)
	m.help.Width = w
	m.list.SetSize(w, m.layout.TableHeight(m.filters.Visible()))
	m.detail.SetSize(w, m.layout.PageHeight())
	m.compare.SetSize(w, m.layout.PageHeight())
}

// View renders the browser.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("PA Program Finder"))
	sb.WriteString("\n\n")

	var keys helpKeys
	switch m.session.Status() {
	case session.StatusLoading:
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Loading programs..."))
		sb.WriteString("\n")
		keys = helpKeys{short: []key.Binding{m.keys.Quit}}

	case session.StatusFailed:
		sb.WriteString(m.renderFailure())
		keys = m.keys.failedHelp()

	default:
		switch m.page {
		case pageDetail:
			sb.WriteString(m.detail.View())
			keys = m.keys.detailHelp()
		case pageCompare:
			sb.WriteString(m.compare.View())
			keys = m.keys.compareHelp()
		default:
			sb.WriteString(m.filters.View(m.layout.ContentWidth()))
			sb.WriteString("\n")
			sb.WriteString(m.list.View())
			keys = m.keys.listHelp()
			if m.filters.Focused() {
				keys = m.keys.filterHelp()
			}
		}
	}
	sb.WriteString("\n")

	if m.notice != "" {
		style := m.styles.Info
		if m.noticeError {
			style = m.styles.Warning
		}
		sb.WriteString(style.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Footer.Render(m.help.View(keys)))
	return sb.String()
}

func (m Model) renderFailure() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Error.Render("Could not load programs"))
	sb.WriteString("\n\n")
	if err := m.session.Err(); err != nil {
		sb.WriteString(m.styles.Body.Render(err.Error()))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.styles.Muted.Render("Press r to retry or q to quit."))
	return m.styles.Panel.Render(sb.String())
}

// Run opens the browser on the terminal and blocks until the user quits.
// changes may be nil; otherwise each delivery reloads the program set.
func Run(ctx context.Context, cfg *config.Config, load session.LoadFunc, changes <-chan struct{}, base *zap.Logger) error {
	m := New(ctx, cfg, load, base)
	m.WatchChanges(changes)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
