package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/catalog/internal/catalog"
	"github.com/five82/catalog/internal/prefs"
	"github.com/five82/catalog/internal/render"
	"github.com/five82/catalog/internal/source"
	"github.com/five82/catalog/internal/state"
)

var errNoLoader = errors.New("no catalogue source configured")

// Options configures the UI.
type Options struct {
	Context    context.Context
	Loader     source.Loader
	Store      *state.Store
	Renderer   render.Renderer
	Logger     *zap.Logger
	Categories []string // selector options after "all"; empty means derive from the records
	ThemeName  string
	Layout     string // prefs.LayoutAuto, LayoutWide or LayoutCompact
	PrefsPath  string

	// Reloads delivers external reload requests, such as the file watcher's.
	Reloads <-chan struct{}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	loader    source.Loader
	store     *state.Store
	renderer  render.Renderer
	logger    *zap.Logger
	prefsPath string
	reloads   <-chan struct{}
	keys      keyMap

	// UI state
	theme    Theme
	layout   string
	width    int
	height   int
	ready    bool
	showHelp bool
	showLink bool

	// Filter inputs
	query      textinput.Model
	searching  bool
	configured []string
	category   string

	// Display state
	surface     render.Surface
	loading     bool
	loadSeq     int
	selectedRow int
	offset      int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	layout := opts.Layout
	if layout == "" {
		layout = prefs.LayoutAuto
	}

	query := textinput.New()
	query.Prompt = "/"
	query.Placeholder = "code, name or colour"
	query.CharLimit = 128

	return Model{
		ctx:        ctx,
		loader:     opts.Loader,
		store:      store,
		renderer:   opts.Renderer,
		logger:     logger,
		prefsPath:  prefsPath,
		reloads:    opts.Reloads,
		keys:       DefaultKeyMap(),
		theme:      GetTheme(themeName),
		layout:     layout,
		query:      query,
		configured: append([]string(nil), opts.Categories...),
		category:   catalog.CategoryAll,
		loading:    true,
		loadSeq:    1,
	}
}

// Init implements tea.Model. It starts the one startup load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.ctx, m.loader, m.loadSeq),
		waitForReload(m.reloads),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.query.Width = max(msg.Width-4, 10)
		m.ready = true
		m.ensureVisible()
		return m, nil

	case loadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.store.SetLoaded(msg.records)
		m.logger.Info("catalog loaded",
			zap.String("source", m.location()),
			zap.Int("records", len(msg.records)),
		)
		m.keepCategory()
		m.refresh()
		return m, nil

	case loadFailedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		m.store.SetFailed(msg.err)
		m.logLoadFailure(msg.err)
		m.surface = m.renderer.Failure()
		m.selectedRow = 0
		m.offset = 0
		return m, nil

	case reloadMsg:
		var cmd tea.Cmd
		m, cmd = m.startReload()
		return m, tea.Batch(cmd, waitForReload(m.reloads))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading catalog..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.showLink = false
		cmd := m.query.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
		return m, nil

	case key.Matches(msg, m.keys.ShowLink):
		m.showLink = !m.showLink
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m.startReload()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.CycleLayout):
		m.layout = nextLayout(m.layout)
		m.ensureVisible()
		m.savePrefs()
		return m, nil
	}

	return m.handleNavKey(msg)
}

// handleSearchKey routes keys to the query input. Every edit re-filters.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.query.Blur()
		return m, nil

	case key.Matches(msg, m.keys.ClearQuery):
		m.query.SetValue("")
		m.refilter()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// handleNavKey moves the selection through the visible rows.
func (m Model) handleNavKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.recordCount()
	if count == 0 {
		return m, nil
	}
	page := max(m.rowsPerPage(), 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectedRow++
	case key.Matches(msg, m.keys.Up):
		m.selectedRow--
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.selectedRow += page
	case key.Matches(msg, m.keys.PageUp):
		m.selectedRow -= page
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selectedRow += max(page/2, 1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selectedRow -= max(page/2, 1)
	default:
		return m, nil
	}
	m.selectedRow = clamp(m.selectedRow, 0, count-1)
	m.ensureVisible()
	return m, nil
}

// refresh recomputes the visible rows from the full master collection and
// replaces the surface. It runs on every change to the query or category.
func (m *Model) refresh() {
	visible := catalog.Filter(m.store.Records(), m.query.Value(), m.category)
	m.surface = m.renderer.Render(visible)
	m.selectedRow = clamp(m.selectedRow, 0, m.recordCount()-1)
	m.ensureVisible()
}

// refilter is refresh after a filter input changed; the selection restarts
// at the top of the new result.
func (m *Model) refilter() {
	m.selectedRow = 0
	m.offset = 0
	m.refresh()
}

// startReload issues a fresh load. Results of any load still in flight are
// discarded when they arrive.
func (m Model) startReload() (Model, tea.Cmd) {
	m.loadSeq++
	m.loading = true
	m.logger.Debug("catalog reload requested", zap.String("source", m.location()))
	return m, loadCmd(m.ctx, m.loader, m.loadSeq)
}

// categoryOptions lists the selector choices, "all" first.
func (m Model) categoryOptions() []string {
	options := []string{catalog.CategoryAll}
	if len(m.configured) > 0 {
		return append(options, m.configured...)
	}
	return append(options, catalog.Categories(m.store.Records())...)
}

func (m *Model) cycleCategory(step int) {
	options := m.categoryOptions()
	idx := indexFold(options, m.category)
	if idx < 0 {
		idx = 0
	}
	idx = (idx + step + len(options)) % len(options)
	m.category = options[idx]
	m.refilter()
}

// keepCategory falls back to "all" when a reload removed the active
// derived category.
func (m *Model) keepCategory() {
	if indexFold(m.categoryOptions(), m.category) < 0 {
		m.category = catalog.CategoryAll
	}
}

func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save preferences", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

func (m Model) logLoadFailure(err error) {
	op := "unknown"
	var loadErr *source.LoadError
	if errors.As(err, &loadErr) {
		op = loadErr.Op
	}
	m.logger.Error("catalog load failed",
		zap.String("source", m.location()),
		zap.String("op", op),
		zap.Error(err),
	)
}

func (m Model) location() string {
	if m.loader == nil {
		return ""
	}
	return m.loader.Location()
}

// recordCount is the number of record rows on the surface; notice rows
// are not selectable.
func (m Model) recordCount() int {
	if m.surface.Notice() {
		return 0
	}
	return len(m.surface.Rows)
}

func (m Model) selectedRecordRow() (render.Row, bool) {
	if m.recordCount() == 0 {
		return render.Row{}, false
	}
	return m.surface.Rows[clamp(m.selectedRow, 0, len(m.surface.Rows)-1)], true
}

// compact reports whether records render as cards.
func (m Model) compact() bool {
	switch m.layout {
	case prefs.LayoutCompact:
		return true
	case prefs.LayoutWide:
		return false
	default:
		return m.width < LayoutCompactWidth
	}
}

// rowsPerPage is how many records fit in the body at once.
func (m Model) rowsPerPage() int {
	body := m.height - chromeLines
	if m.compact() {
		return max(body/cardLines, 1)
	}
	return max(body-1, 1) // column headings
}

// ensureVisible scrolls so the selected row is on screen.
func (m *Model) ensureVisible() {
	page := m.rowsPerPage()
	if m.selectedRow < m.offset {
		m.offset = m.selectedRow
	}
	if m.selectedRow >= m.offset+page {
		m.offset = m.selectedRow - page + 1
	}
	m.offset = clamp(m.offset, 0, max(m.recordCount()-page, 0))
}

func nextLayout(current string) string {
	switch current {
	case prefs.LayoutAuto:
		return prefs.LayoutWide
	case prefs.LayoutWide:
		return prefs.LayoutCompact
	default:
		return prefs.LayoutAuto
	}
}

func indexFold(values []string, target string) int {
	target = strings.TrimSpace(target)
	for i, v := range values {
		if strings.EqualFold(v, target) {
			return i
		}
	}
	return -1
}

// Messages

type loadedMsg struct {
	seq     int
	records []catalog.Record
}

type loadFailedMsg struct {
	seq int
	err error
}

type reloadMsg struct{}

// Commands

func loadCmd(ctx context.Context, loader source.Loader, seq int) tea.Cmd {
	return func() tea.Msg {
		if loader == nil {
			return loadFailedMsg{seq: seq, err: errNoLoader}
		}
		records, err := loader.Load(ctx)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return loadedMsg{seq: seq, records: records}
	}
}

func waitForReload(reloads <-chan struct{}) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-reloads; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
