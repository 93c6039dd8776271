package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"rbfmt/internal/pipeline"
)

// maxListed bounds the changed/failed lists printed after the run.
const maxListed = 8

type fileState uint8

const (
	fileQueued fileState = iota
	fileActive
	fileUnchanged
	fileChanged
	fileFailed
)

type fileItem struct {
	path    string
	state   fileState
	stage   pipeline.Stage
	cached  bool
	elapsed time.Duration
}

func (it *fileItem) finished() bool { return it.state >= fileUnchanged }

// progressModel shows the files being worked on right now and a tally;
// the full file list would not fit a terminal on a real project.
type progressModel struct {
	title    string
	events   <-chan pipeline.Event
	spinner  spinner.Model
	bar      progress.Model
	items    []fileItem
	index    map[string]int
	phase    string
	width    int
	height   int
	done     bool
	finished int
}

type eventMsg pipeline.Event
type doneMsg struct{}

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	styleActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleChanged = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// NewProgressModel returns a Bubble Tea model following a formatting run.
// The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleActive

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	items := make([]fileItem, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items[i] = fileItem{path: file}
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   items,
		index:   index,
		width:   80,
		height:  24,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(pipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" && !m.done {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-16, 20)
	if m.done {
		m.writeList(&b, fileChanged, "changed", styleChanged, nameWidth)
		m.writeList(&b, fileFailed, "failed", styleFailed, nameWidth)
		if slow := m.slowest(); slow != nil && len(m.items) > 1 {
			fmt.Fprintf(&b, "  %s\n", styleDim.Render(fmt.Sprintf("slowest %s (%s)", truncate(slow.path, nameWidth), slow.elapsed.Round(time.Millisecond))))
		}
	} else {
		// header, blank, tally, bar and some slack
		room := max(m.height-6, 1)
		for i := range m.items {
			it := &m.items[i]
			if it.state != fileActive {
				continue
			}
			if room == 0 {
				break
			}
			room--
			fmt.Fprintf(&b, "  %s %s\n", styleActive.Render(fmt.Sprintf("%-11s", stageLabel(it.stage))), truncate(it.path, nameWidth))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(m.tally())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) writeList(b *strings.Builder, state fileState, label string, style lipgloss.Style, width int) {
	n := 0
	for i := range m.items {
		it := &m.items[i]
		if it.state != state {
			continue
		}
		n++
		if n > maxListed {
			continue
		}
		fmt.Fprintf(b, "  %s %s\n", style.Render(fmt.Sprintf("%-11s", label)), truncate(it.path, width))
	}
	if n > maxListed {
		fmt.Fprintf(b, "  %s\n", styleDim.Render(fmt.Sprintf("... and %d more %s", n-maxListed, label)))
	}
}

func (m *progressModel) slowest() *fileItem {
	var slow *fileItem
	for i := range m.items {
		it := &m.items[i]
		if it.finished() && (slow == nil || it.elapsed > slow.elapsed) {
			slow = it
		}
	}
	return slow
}

// tally renders "3/10 files, 1 changed, 2 cached, 1 failed".
func (m *progressModel) tally() string {
	var changed, cached, failed int
	for i := range m.items {
		switch m.items[i].state {
		case fileChanged:
			changed++
		case fileFailed:
			failed++
		}
		if m.items[i].cached {
			cached++
		}
	}
	parts := []string{fmt.Sprintf("%d/%d files", m.finished, len(m.items))}
	if changed > 0 {
		parts = append(parts, styleChanged.Render(fmt.Sprintf("%d changed", changed)))
	}
	if cached > 0 {
		parts = append(parts, styleDim.Render(fmt.Sprintf("%d cached", cached)))
	}
	if failed > 0 {
		parts = append(parts, styleFailed.Render(fmt.Sprintf("%d failed", failed)))
	} else if m.done {
		parts = append(parts, styleOK.Render("no errors"))
	}
	return strings.Join(parts, ", ")
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev pipeline.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == pipeline.StatusWorking {
			m.phase = stageLabel(ev.Stage)
		} else {
			m.phase = ""
		}
		return nil
	}
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	if it.finished() {
		return nil
	}
	switch ev.Status {
	case pipeline.StatusQueued:
		return nil
	case pipeline.StatusWorking:
		it.state = fileActive
		it.stage = ev.Stage
		return m.bar.SetPercent(m.percent())
	case pipeline.StatusError:
		it.state = fileFailed
	case pipeline.StatusDone:
		it.state = fileUnchanged
		if ev.Outcome == pipeline.OutcomeChanged {
			it.state = fileChanged
		}
		it.cached = ev.Cached
	default:
		return nil
	}
	it.elapsed = ev.Elapsed
	m.finished++
	return m.bar.SetPercent(m.percent())
}

// percent counts finished files fully and active ones by how far along
// their stage is.
func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := float64(m.finished)
	for i := range m.items {
		if m.items[i].state == fileActive {
			total += stageWeight(m.items[i].stage)
		}
	}
	return total / float64(len(m.items))
}

func stageWeight(stage pipeline.Stage) float64 {
	switch stage {
	case pipeline.StageRead:
		return 0.1
	case pipeline.StageFormat:
		return 0.4
	case pipeline.StageVerify:
		return 0.7
	case pipeline.StageWrite:
		return 0.9
	default:
		return 0
	}
}

func stageLabel(stage pipeline.Stage) string {
	switch stage {
	case pipeline.StageDiscover:
		return "scanning"
	case pipeline.StageRead:
		return "reading"
	case pipeline.StageFormat:
		return "formatting"
	case pipeline.StageVerify:
		return "verifying"
	case pipeline.StageWrite:
		return "writing"
	default:
		return ""
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// keep the tail: the base name is what identifies the file
	tail := value
	for runewidth.StringWidth(tail) > width-3 {
		_, size := utf8.DecodeRuneInString(tail)
		tail = tail[size:]
	}
	return "..." + tail
}
