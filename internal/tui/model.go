// Package tui is the interactive shortlist browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/totohpy/pa-ai-auditor/internal/domain"
	"github.com/totohpy/pa-ai-auditor/internal/findings"
	"github.com/totohpy/pa-ai-auditor/internal/shortlist"
	"github.com/totohpy/pa-ai-auditor/internal/summarizer"
)

// SessionPort is the TUI-facing subset of the planning session.
type SessionPort interface {
	Suggest(query string, topK int) ([]domain.RankedCandidate, error)
	AddIssue(cand *domain.RankedCandidate, ann shortlist.Annotations) (domain.AuditIssue, error)
	Reload() findings.Result
	Library() *domain.FindingsLibrary
	Issues() []domain.AuditIssue
}

// ReloadMsg asks the model to re-read the findings library, e.g. after the
// default dataset changed on disk.
type ReloadMsg struct{}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	session   SessionPort
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.RankedCandidate
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates the browser. query pre-fills the input, typically the query
// composed from the plan.
func New(session SessionPort, topK int, query string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the audit scope and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	ti.SetValue(strings.Join(strings.Fields(query), " "))
	vp := viewport.New(0, 0)
	return Model{
		session:  session,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   "Enter ranks, up/down browse, ctrl+s adds the issue, esc quits.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case ReloadMsg:
		res := m.session.Reload()
		m.status = fmt.Sprintf("Library reloaded: %d findings", res.Library.Len())
		if len(res.Warnings) > 0 {
			m.status += fmt.Sprintf(" (%d warnings: %v)", len(res.Warnings), res.Warnings[0])
		}
		if m.lastQuery != "" {
			m = m.rank(m.lastQuery)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if q := strings.TrimSpace(m.input.Value()); q != "" {
				return m.rank(q), nil
			}
		case tea.KeyDown:
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case tea.KeyUp:
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case tea.KeyCtrlS:
			return m.addCurrent(), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) rank(q string) Model {
	res, err := m.session.Suggest(q, m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
	} else {
		m.status = fmt.Sprintf("%d candidates for %q", len(res), truncate(q, 60))
		m.results = res
		m.cursor = 0
		m.lastQuery = q
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

func (m Model) addCurrent() Model {
	var cand *domain.RankedCandidate
	if len(m.results) > 0 {
		cand = &m.results[m.cursor]
	}
	issue, err := m.session.AddIssue(cand, shortlist.Annotations{})
	if err != nil {
		m.status = "Error: " + err.Error()
		return m
	}
	m.status = fmt.Sprintf("Added %s from %s", issue.IssueID, issue.SourceFindingID)
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Audit Findings Shortlist")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(
		fmt.Sprintf("%d findings in library, %d issues selected", m.session.Library().Len(), len(m.session.Issues())))
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	f := r.Finding
	title := fmt.Sprintf("Result %d/%d  score=%.3f  sim=%.3f  severity=%d  year=%d",
		m.cursor+1, len(m.results), r.Score, r.SimScore, f.Severity, f.Year)
	meta := labelStyle.Render(fmt.Sprintf("%s  %s  %s", orDash(f.FindingID), orDash(f.Unit), orDash(f.Program)))
	var b strings.Builder
	b.WriteString(title + "\n" + meta + "\n\n")
	b.WriteString(labelStyle.Render(orDash(f.IssueTitle)) + "\n")
	b.WriteString(highlightBestSentence(f.IssueDetail, m.lastQuery) + "\n")
	if f.CauseDetail != "" {
		b.WriteString("\nCause: " + f.CauseDetail + "\n")
	}
	if f.Recommendation != "" {
		b.WriteString("\nRecommendation: " + f.Recommendation + "\n")
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func highlightBestSentence(text, query string) string {
	sentences := summarizer.Sentences(text)
	if len(sentences) == 0 {
		return ""
	}
	best := summarizer.BestSentence(sentences, query)
	for i := range sentences {
		if i == best {
			sentences[i] = highlightStyle.Render(sentences[i])
		}
	}
	return strings.Join(sentences, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
