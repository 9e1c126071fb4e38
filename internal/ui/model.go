package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"

	"github.com/five82/logparse/internal/collection"
	"github.com/five82/logparse/internal/config"
	"github.com/five82/logparse/internal/prefs"
	"github.com/five82/logparse/internal/workspace"
)

// loadMoreEvery spaces out incremental deliveries while a key is held down.
const (
	loadMoreEvery = 150 * time.Millisecond
	loadMoreBurst = 2
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Workspace *workspace.Workspace
	Config    config.Config
	Logger    *log.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	// Files are opened, in order, when the program starts.
	Files []string
}

// promptKind identifies what the text input is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptOpen
)

// tabState is the per-log cursor and expansion state.
type tabState struct {
	cursor   int
	expanded map[int]bool
}

func newTabState() *tabState {
	return &tabState{expanded: make(map[int]bool)}
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ws        *workspace.Workspace
	cfg       config.Config
	logger    *log.Logger
	prefs     prefs.Prefs
	prefsPath string
	files     []string

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Log state
	active   int
	tabs     map[string]*tabState
	cache    *renderCache
	limiter  *rate.Limiter
	viewport viewport.Model

	// Prompt
	prompt promptKind
	input  textinput.Model

	// Status line
	notice  string
	lastErr error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.NewLogger()
	}

	ws := opts.Workspace
	if ws == nil {
		ws = workspace.New(nil, logger, workspace.Options{
			InitialBatch: opts.Config.InitialBatch,
			MaxLineBytes: opts.Config.MaxLineBytes,
		})
	}

	cfg := opts.Config
	if cfg.IncrementalBatch <= 0 {
		cfg.IncrementalBatch = config.Default().IncrementalBatch
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = config.Default().DefaultSort
	}

	themeName := opts.Prefs.Theme
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ti := textinput.New()
	ti.CharLimit = 512

	return Model{
		ctx:       ctx,
		ws:        ws,
		cfg:       cfg,
		logger:    logger,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		files:     opts.Files,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		tabs:      make(map[string]*tabState),
		cache:     newRenderCache(),
		limiter:   rate.NewLimiter(rate.Every(loadMoreEvery), loadMoreBurst),
		input:     ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if len(m.files) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.files))
	for _, path := range m.files {
		cmds = append(cmds, openCmd(m.ws, path))
	}
	return tea.Sequence(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), m.contentHeight())
		}
		m.ready = true
		m.refreshViewport()
		return m, nil

	case openedMsg:
		m.handleOpened(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Messages

type openedMsg struct {
	path string
	log  *collection.Collection
	err  error
}

// Commands

func openCmd(ws *workspace.Workspace, path string) tea.Cmd {
	return func() tea.Msg {
		c, err := ws.Open(path)
		return openedMsg{path: path, log: c, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
