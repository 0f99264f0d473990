package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	ingestdto "dochub/internal/modules/ingest/dto"
	libdto "dochub/internal/modules/library/dto"
	"dochub/internal/ui/components"
	"dochub/internal/ui/theme"
	libraryview "dochub/internal/ui/views/library"
	uploadsview "dochub/internal/ui/views/uploads"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type libraryPort interface {
	ListFiles(ctx context.Context, input libdto.ListFilesInput) (libdto.ListFilesOutput, error)
	DeleteFile(ctx context.Context, id string) error
}

type ingestPort interface {
	Upload(ctx context.Context, paths []string, categoryID string, tags []string, observe func(ingestdto.ProgressUpdate)) (ingestdto.UploadOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLibrary tabID = iota
	tabUploads
	tabCount
)

var tabLabels = [tabCount]string{"Library", "Uploads"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Delete  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh listing")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete document")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Delete},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global
// help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	libView libraryview.Model
	upView  uploadsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	// pendingTags is set via the palette and applied to the next
	// upload:local command.
	pendingTags []string
	status      string
	width       int
	height      int
}

func NewModel(library libraryPort, ingest ingestPort) Model {
	return Model{
		libView:   libraryview.New(library),
		upView:    uploadsview.New(ingest),
		activeTab: tabLibrary,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.libView.Init(), m.upView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	// Upload progress arrives from the job goroutine and must reach the
	// uploads view even while another tab is active.
	case uploadsview.SnapshotMsg:
		var cmd tea.Cmd
		m.upView, cmd = m.upView.Update(msg)
		return m, cmd

	case uploadsview.DoneMsg:
		var cmd tea.Cmd
		m.upView, cmd = m.upView.Update(msg)
		cmds = append(cmds, cmd)
		if msg.Err != nil {
			m.status = "upload failed: " + msg.Err.Error()
		} else {
			m.status = "upload complete"
			cmds = append(cmds, m.libView.Reload())
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the library list when its search filter is active.
		if m.activeTab == tabLibrary && m.libView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.upView.Cancel()
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "r":
			if m.activeTab == tabLibrary {
				m.status = "refreshing…"
				cmds = append(cmds, m.libView.Refresh())
			}
		case "x":
			if m.activeTab == tabLibrary {
				if file, ok := m.libView.SelectedFile(); ok {
					m.status = "deleting " + file.Filename
					cmds = append(cmds, m.libView.DeleteSelected())
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLibrary:
		m.libView, tabCmd = m.libView.Update(msg)
	case tabUploads:
		m.upView, tabCmd = m.upView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabLibrary:
		return m.libView.View()
	case tabUploads:
		return m.upView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "dochub  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.upView.Running() {
		left = theme.Hot.Render("● uploading") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "files:refresh":
		m.activeTab = tabLibrary
		m.status = "refreshing…"
		return m, m.libView.Refresh()

	case "files:delete":
		m.activeTab = tabLibrary
		file, ok := m.libView.SelectedFile()
		if !ok {
			m.status = "no document selected"
			return m, nil
		}
		m.status = "deleting " + file.Filename
		return m, m.libView.DeleteSelected()

	case "upload:tags":
		if len(parts) < 2 {
			m.pendingTags = nil
			m.status = "tags cleared"
			return m, nil
		}
		m.pendingTags = strings.Split(parts[1], ",")
		m.status = "tags set: " + parts[1]
		return m, nil

	case "upload:local":
		if len(parts) < 3 {
			m.status = "usage: upload:local <category> <path>..."
			return m, nil
		}
		if m.upView.Running() {
			m.status = "an upload is already in progress"
			return m, nil
		}
		m.activeTab = tabUploads
		m.status = "uploading…"
		return m, m.upView.Start(parts[2:], parts[1], m.pendingTags)

	case "upload:cancel":
		if !m.upView.Running() {
			m.status = "no upload in progress"
			return m, nil
		}
		m.upView.Cancel()
		m.status = "cancelling…"
		return m, nil

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.libView, _ = m.libView.Update(sz)
	m.upView, _ = m.upView.Update(sz)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
