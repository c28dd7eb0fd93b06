// Package ui implements the interactive watch dashboard and the styled
// diagnostic rendering shared with the plain CLI output.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// FileStatus is the compilation state of one watched template.
type FileStatus int

const (
	StatusPending FileStatus = iota
	StatusCompiling
	StatusOK
	StatusFailed
)

// FileChangedMsg reports that a template changed and recompilation started.
type FileChangedMsg struct {
	Path string
}

// FileCompiledMsg reports one finished compilation.
type FileCompiledMsg struct {
	Path     string
	Err      error
	Duration time.Duration
}

// ReloadMsg reports a live-reload broadcast to connected clients.
type ReloadMsg struct {
	Clients int
}

type fileState struct {
	status   FileStatus
	err      error
	duration time.Duration
}

type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the bubbletea model for the watch dashboard.
type Model struct {
	spinner  spinner.Model
	keys     keyMap
	files    map[string]*fileState
	order    []string
	reloads  int
	clients  int
	quitting bool
}

// New creates the dashboard model seeded with the initially discovered
// templates.
func New(paths []string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := Model{
		spinner: sp,
		keys:    defaultKeyMap(),
		files:   make(map[string]*fileState),
	}
	for _, p := range paths {
		m.track(p)
	}
	return m
}

func (m *Model) track(path string) *fileState {
	if st, ok := m.files[path]; ok {
		return st
	}
	st := &fileState{status: StatusPending}
	m.files[path] = st
	m.order = append(m.order, path)
	return st
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

	case FileChangedMsg:
		st := m.track(msg.Path)
		st.status = StatusCompiling
		return m, nil

	case FileCompiledMsg:
		st := m.track(msg.Path)
		st.duration = msg.Duration
		st.err = msg.Err
		if msg.Err != nil {
			st.status = StatusFailed
		} else {
			st.status = StatusOK
		}
		return m, nil

	case ReloadMsg:
		m.reloads++
		m.clients = msg.Clients
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}
