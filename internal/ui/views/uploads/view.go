package uploads

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	ingestdto "dochub/internal/modules/ingest/dto"
	"dochub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type IngestPort interface {
	Upload(ctx context.Context, paths []string, categoryID string, tags []string, observe func(ingestdto.ProgressUpdate)) (ingestdto.UploadOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg carries one presenter update. It arrives either from the
// view's own upload goroutine or via program.Send when the upload is
// driven from outside the TUI loop.
type SnapshotMsg struct {
	Update ingestdto.ProgressUpdate
}

// DoneMsg is delivered once per job, after the terminal snapshot.
type DoneMsg struct {
	Output ingestdto.UploadOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port IngestPort

	msgs    chan tea.Msg
	cancel  context.CancelFunc
	running bool

	last    ingestdto.ProgressUpdate
	hasJob  bool
	output  ingestdto.UploadOutput
	err     error
	spinner spinner.Model
	width   int
	height  int
}

func New(port IngestPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Start launches an upload and returns the command that pumps its
// progress messages into the update loop. At most one job runs at a
// time; a second Start while running is ignored.
func (m *Model) Start(paths []string, categoryID string, tags []string) tea.Cmd {
	if m.running || m.port == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan tea.Msg, 16)
	m.msgs = msgs
	m.cancel = cancel
	m.running = true
	m.hasJob = true
	m.err = nil
	m.output = ingestdto.UploadOutput{}
	m.last = ingestdto.ProgressUpdate{Phase: "idle", Total: len(paths)}

	go func() {
		defer cancel()
		out, err := m.port.Upload(ctx, paths, categoryID, tags, func(u ingestdto.ProgressUpdate) {
			msgs <- SnapshotMsg{Update: u}
		})
		msgs <- DoneMsg{Output: out, Err: err}
		close(msgs)
	}()

	return listen(msgs)
}

// Cancel aborts the in-flight job, if any.
func (m *Model) Cancel() {
	if m.running && m.cancel != nil {
		m.cancel()
	}
}

// Running reports whether a job is in flight.
func (m Model) Running() bool { return m.running }

func listen(msgs <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-msgs
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case SnapshotMsg:
		m.hasJob = true
		m.last = msg.Update
		if m.msgs != nil {
			cmds = append(cmds, listen(m.msgs))
		}

	case DoneMsg:
		m.running = false
		m.msgs = nil
		m.cancel = nil
		m.output = msg.Output
		m.err = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Uploads") + "\n\n")

	if !m.hasJob {
		sb.WriteString(theme.Muted.Render("No upload in progress.") + "\n\n")
		sb.WriteString(theme.Muted.Render("Start one from the palette:") + "\n")
		sb.WriteString(theme.Muted.Render("  :upload:local <category> <path>...") + "\n")
		return m.frame(sb.String())
	}

	u := m.last
	sb.WriteString(theme.Muted.Render("file:  ") + u.Filename + "\n")
	if u.SizeBytes > 0 {
		sb.WriteString(theme.Muted.Render("size:  ") + humanize.Bytes(uint64(u.SizeBytes)) + "\n")
	}
	sb.WriteString(theme.Muted.Render("phase: ") + theme.Stage(u.Phase).Render(u.Phase))
	if m.running {
		sb.WriteString("  " + m.spinner.View())
	}
	sb.WriteString("\n\n")

	barW := m.width - 16
	if barW < 10 {
		barW = 10
	}
	sb.WriteString(renderBar(barW, u.ProgressPct))
	sb.WriteString(fmt.Sprintf("  %3.0f%%\n", u.ProgressPct))
	if u.Total > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d of %d files processed", u.Completed, u.Total)) + "\n")
	}

	if !m.running {
		sb.WriteString("\n")
		switch {
		case m.err != nil:
			sb.WriteString(theme.StageFailed.Render("upload failed: "+m.err.Error()) + "\n")
		default:
			sb.WriteString(theme.StageDone.Render(fmt.Sprintf("uploaded %d file(s)", m.output.Uploaded)) + "\n")
			for _, w := range m.output.Warnings {
				sb.WriteString(theme.StageWorking.Render("warning: "+w) + "\n")
			}
			for _, r := range m.output.Rejected {
				sb.WriteString(theme.Muted.Render("skipped: "+r) + "\n")
			}
		}
	} else {
		sb.WriteString("\n" + theme.Muted.Render(":upload:cancel to abort") + "\n")
	}

	return m.frame(sb.String())
}

func (m Model) frame(content string) string {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 2
	if h < 5 {
		h = 5
	}
	return lipgloss.NewStyle().Padding(1, 2).Width(w).Height(h).Render(content)
}

func renderBar(width int, pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(float64(width) * pct / 100)
	if filled > width {
		filled = width
	}
	return theme.BarFill.Render(strings.Repeat("█", filled)) +
		theme.BarEmpty.Render(strings.Repeat("░", width-filled))
}
