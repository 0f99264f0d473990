package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	libdto "dochub/internal/modules/library/dto"
	"dochub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type LibraryPort interface {
	ListFiles(ctx context.Context, input libdto.ListFilesInput) (libdto.ListFilesOutput, error)
	DeleteFile(ctx context.Context, id string) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type FilesLoadedMsg struct {
	Files []libdto.FileOutput
	Stale bool
	Err   error
}

type FileDeletedMsg struct {
	ID  string
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type fileItem struct {
	file libdto.FileOutput
}

func (i fileItem) Title() string { return i.file.Filename }
func (i fileItem) Description() string {
	return fmt.Sprintf("%s  %s", i.file.Stage, humanize.Bytes(uint64(i.file.SizeBytes)))
}
func (i fileItem) FilterValue() string { return i.file.Filename }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    LibraryPort
	list    list.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	stale   bool
	width   int
	height  int
}

func New(port LibraryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Documents"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadFilesCmd(false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case FilesLoadedMsg:
		m.loading = false
		m.stale = msg.Stale
		if msg.Err != nil {
			m.list.Title = "Documents — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Documents"
		if msg.Stale {
			m.list.Title = "Documents (offline, cached)"
		}
		items := make([]list.Item, len(msg.Files))
		for i, f := range msg.Files {
			items[i] = fileItem{file: f}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())

	case FileDeletedMsg:
		if msg.Err != nil {
			m.list.Title = "Documents — delete failed: " + msg.Err.Error()
			return m, nil
		}
		cmds = append(cmds, m.loadFilesCmd(false))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading documents…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Refresh forces a backend refetch, bypassing the cache.
func (m Model) Refresh() tea.Cmd {
	return m.loadFilesCmd(true)
}

// Reload refetches the listing honoring cache freshness. The app model
// triggers it when a document status event lands.
func (m Model) Reload() tea.Cmd {
	return m.loadFilesCmd(false)
}

// DeleteSelected removes the currently selected document on the
// backend, then reloads the listing.
func (m Model) DeleteSelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return nil
	}
	id := item.file.ID
	return func() tea.Msg {
		err := m.port.DeleteFile(context.Background(), id)
		return FileDeletedMsg{ID: id, Err: err}
	}
}

// SelectedFile returns the current selection, if any.
func (m Model) SelectedFile() (libdto.FileOutput, bool) {
	if item, ok := m.list.SelectedItem().(fileItem); ok {
		return item.file, true
	}
	return libdto.FileOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(fileItem)
	if !ok {
		return theme.Muted.Render("Select a document to see details")
	}
	f := item.file
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(f.Filename) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:       ") + f.ID + "\n")
	sb.WriteString(theme.Muted.Render("category: ") + f.CategoryID + "\n")
	sb.WriteString(theme.Muted.Render("size:     ") + humanize.Bytes(uint64(f.SizeBytes)) + "\n")
	sb.WriteString(theme.Muted.Render("stage:    ") + theme.Stage(f.Stage).Render(f.Stage) + "\n")
	if !f.CreatedAt.IsZero() {
		sb.WriteString(theme.Muted.Render("uploaded: ") + humanize.Time(f.CreatedAt) + "\n")
	}
	if m.stale {
		sb.WriteString("\n" + theme.StageFailed.Render("backend unreachable — showing cached listing"))
	}
	sb.WriteString("\n" + theme.Muted.Render("r: refresh  x: delete"))
	return sb.String()
}

func (m Model) loadFilesCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.ListFiles(context.Background(), libdto.ListFilesInput{ForceRefresh: force})
		return FilesLoadedMsg{Files: out.Files, Stale: out.Stale, Err: err}
	}
}
