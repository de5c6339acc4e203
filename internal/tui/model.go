// Package tui is a terminal front end for one game session.
//
// The model forwards key presses to a session.Controller and re-renders
// from the views the controller publishes, so countdown ticks arrive as
// ordinary Bubble Tea messages.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/hiddenwords/internal/game"
	"github.com/robalobadob/hiddenwords/internal/session"
)

const defaultWidth = 60

// stateMsg carries a view published by the controller.
type stateMsg game.View

type keyMap struct {
	Submit  key.Binding
	NewGame key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		NewGame: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewGame, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model is the Bubble Tea model for a single game.
type Model struct {
	ctrl    *session.Controller
	updates chan game.View
	cancel  func()

	view  game.View
	input textinput.Model
	keys  keyMap
	help  help.Model
	width int
}

// New subscribes to ctrl. Call Close when the program exits.
func New(ctrl *session.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter word"
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()

	m := Model{
		ctrl:    ctrl,
		updates: make(chan game.View, 1),
		input:   ti,
		keys:    defaultKeys(),
		help:    help.New(),
		width:   defaultWidth,
	}
	updates := m.updates
	m.cancel = ctrl.Subscribe(func(v game.View) {
		// Keep only the newest view; the listener must never block.
		select {
		case updates <- v:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- v
		}
	})
	m.view = ctrl.View()
	return m
}

// Close stops receiving updates from the controller.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForState())
}

func (m Model) waitForState() tea.Cmd {
	ch := m.updates
	return func() tea.Msg { return stateMsg(<-ch) }
}

func (m Model) locked() bool {
	return m.view.TimeExpired || m.view.AllFound
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width-4, defaultWidth)
		m.help.Width = m.width
		return m, nil

	case stateMsg:
		m.apply(game.View(msg))
		return m, m.waitForState()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewGame):
			m.apply(m.ctrl.StartNewGame())
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			if m.locked() {
				return m, nil
			}
			m.apply(m.ctrl.SubmitGuess(m.input.Value()))
			return m, nil
		}
		if m.locked() {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			m.view = m.ctrl.UpdateInput(after)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply renders v and syncs the text box with the controller's input text.
func (m *Model) apply(v game.View) {
	m.view = v
	if m.input.Value() != v.InputText {
		m.input.SetValue(v.InputText)
		m.input.CursorEnd()
	}
	if m.locked() {
		m.input.Blur()
	} else if !m.input.Focused() {
		m.input.Focus()
	}
}

func (m Model) View() string {
	v := m.view
	inner := m.width - 6

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hidden Word Finder"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Find the hidden words in the random string of letters!"))
	b.WriteString("\n\n")

	found := badgeStyle.Render(fmt.Sprintf("Found: %d/%d", v.FoundCount, v.TotalWords))
	clock := badgeStyle.Render(fmt.Sprintf("Time: %ds", v.RemainingSeconds))
	gap := max(1, inner-lipgloss.Width(found)-lipgloss.Width(clock))
	b.WriteString(found + strings.Repeat(" ", gap) + clock)
	b.WriteString("\n\n")

	b.WriteString(puzzleStyle.Width(inner).Render(v.Puzzle))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if v.StatusMessage != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle(v).Render(v.StatusMessage))
		b.WriteString("\n")
	}
	if len(v.FoundWords) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Found: " + strings.Join(v.FoundWords, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return cardStyle.Width(m.width).Render(b.String())
}

func statusStyle(v game.View) lipgloss.Style {
	switch {
	case v.AllFound:
		return goodStyle
	case v.TimeExpired, v.StatusMessage == game.MsgNotInList:
		return badStyle
	case v.StatusMessage == game.MsgAlreadyFound:
		return mutedStyle
	default:
		return goodStyle
	}
}
