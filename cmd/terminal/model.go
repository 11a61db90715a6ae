package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/editor"
	"github.com/sevigo/revu/internal/render"
)

const (
	popupTitle = "Thank you for using RevU.ai"
	popupBody  = "Your approval has been recorded successfully."
	helpLine   = "ctrl+a approve • ctrl+r request changes • ctrl+s review • tab switch pane • ctrl+c quit"
)

type pane int

const (
	paneEditor pane = iota
	paneReview
)

type options struct {
	code         string
	fileName     string
	instructions []string
	timeout      time.Duration
}

type model struct {
	styles   styles
	state    *editor.State
	reviewer core.Reviewer
	logger   *slog.Logger
	opts     options
	language string

	editor  textarea.Model
	review  viewport.Model
	spinner spinner.Model
	focus   pane

	width  int
	height int
}

func initialModel(theme ThemeName, reviewer core.Reviewer, opts options, logger *slog.Logger) *model {
	styles := GetTheme(theme)

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetValue(opts.code)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.spinner

	return &model{
		styles:   styles,
		state:    editor.New(opts.code),
		reviewer: reviewer,
		logger:   logger,
		opts:     opts,
		language: languageFor(opts.fileName),
		editor:   ta,
		review:   viewport.New(0, 0),
		spinner:  sp,
	}
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case reviewCompleteMsg:
		m.state.CompleteReview(msg.content, msg.err)
		m.refreshReview()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var edCmd, vpCmd tea.Cmd
	m.editor, edCmd = m.editor.Update(msg)
	m.review, vpCmd = m.review.Update(msg)
	return m, tea.Batch(edCmd, vpCmd)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.PopupVisible {
		switch msg.String() {
		case "esc", "enter":
			m.state.DismissPopup()
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+a":
		m.state.Approve()
		return m, nil
	case "ctrl+r":
		if !m.state.RequestChanges() {
			return m, nil
		}
		return m, m.startReview()
	case "ctrl+s":
		if !m.state.ReviewCode() {
			return m, nil
		}
		return m, m.startReview()
	case "tab":
		return m, m.toggleFocus()
	}

	var cmd tea.Cmd
	if m.focus == paneReview {
		m.review, cmd = m.review.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	m.state.Edit(m.editor.Value())
	return m, cmd
}

func (m *model) startReview() tea.Cmd {
	m.logger.Info("requesting review", "verdict", m.state.Verdict.String(), "code_bytes", len(m.state.Code))
	return tea.Batch(
		m.spinner.Tick,
		reviewCmd(m.reviewer, m.opts.timeout, m.state.Code, m.opts.instructions, m.logger),
	)
}

func (m *model) toggleFocus() tea.Cmd {
	if m.focus == paneEditor {
		m.focus = paneReview
		m.editor.Blur()
		return nil
	}
	m.focus = paneEditor
	return m.editor.Focus()
}

func (m *model) paneWidths() (left, right int) {
	left = m.width/2 - 2
	right = m.width - left - 6
	return max(left, 20), max(right, 20)
}

func (m *model) layout() {
	left, right := m.paneWidths()
	m.editor.SetWidth(left - 2)
	m.editor.SetHeight(max(m.height-8, 3))
	m.review.Width = right - 2
	m.review.Height = max(m.height-14, 3)
	m.refreshReview()
}

func (m *model) refreshReview() {
	if !m.state.HasReview() {
		m.review.SetContent("")
		return
	}
	m.review.SetContent(render.Markdown(m.state.Review, m.review.Width))
	m.review.GotoTop()
}

func (m *model) View() string {
	if m.state.PopupVisible {
		return m.popupView()
	}

	left, right := m.paneWidths()

	editorPanel := m.styles.panel
	reviewPanel := m.styles.panel
	if m.focus == paneEditor {
		editorPanel = m.styles.activePanel
	} else {
		reviewPanel = m.styles.activePanel
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.fileName.Render(m.opts.fileName),
		"  ",
		m.styles.language.Render(m.language),
	)
	editorView := editorPanel.Width(left).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, m.editor.View()),
	)

	reviewView := reviewPanel.Width(right).Render(m.actionsView())

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, editorView, " ", reviewView),
			m.styles.help.Render(helpLine),
		),
	)
}

func (m *model) actionsView() string {
	reviewButton := m.styles.review
	rejectButton := m.styles.reject
	if m.state.Loading {
		reviewButton = m.styles.disabled
		rejectButton = m.styles.disabled
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.approve.Render("Approve"),
		rejectButton.Render("Request Changes"),
		reviewButton.Render(m.state.ReviewButtonLabel()),
	)

	parts := []string{m.styles.title.Render("Review Actions"), buttons}
	if m.state.Verdict != editor.VerdictNone {
		parts = append(parts, m.styles.verdict.Render(fmt.Sprintf("Status: %s", m.state.Verdict)))
	}

	switch {
	case m.state.Loading:
		parts = append(parts, "", m.spinner.View()+" "+m.styles.loading.Render("Waiting for the reviewer..."))
	case m.state.HasReview():
		parts = append(parts, "", m.styles.title.Render("AI Review"), m.review.View())
	}

	return strings.Join(parts, "\n")
}

func (m *model) popupView() string {
	box := m.styles.popup.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.popupTitle.Render(popupTitle),
		"",
		popupBody,
		"",
		m.styles.approve.Render("Close"),
		m.styles.help.Render("esc or enter"),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
