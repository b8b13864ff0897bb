// Package tui provides the terminal chat surface for the screening
// assistant. It follows the bubbletea Elm architecture: the model holds the
// session and rendered transcript, Update reacts to key and reply messages,
// View renders the viewport and input line.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/conversation"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type replyMsg struct {
	text string
}

// Chat is the bubbletea model for one screening conversation.
type Chat struct {
	machine *conversation.Machine
	session *candidate.Session

	viewport viewport.Model
	input    textinput.Model
	lines    []string
	waiting  bool
	ready    bool
}

// NewChat builds the chat model with a fresh session and the assistant's
// greeting already in the transcript.
func NewChat(machine *conversation.Machine) Chat {
	input := textinput.New()
	input.Placeholder = "Type your response here..."
	input.CharLimit = 500
	input.Focus()

	chat := Chat{
		machine: machine,
		session: candidate.NewSession(),
		input:   input,
	}
	chat.appendAssistant(machine.Greeting())
	return chat
}

func (c Chat) Init() tea.Cmd {
	return textinput.Blink
}

func (c Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 2
		footerHeight := 3
		if !c.ready {
			c.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			c.ready = true
		} else {
			c.viewport.Width = msg.Width
			c.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		c.input.Width = msg.Width - 4
		c.refresh()
		return c, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return c, tea.Quit
		case tea.KeyEnter:
			if c.waiting {
				return c, nil
			}
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return c, nil
			}
			c.input.Reset()
			c.appendUser(text)
			c.waiting = true
			return c, c.process(text)
		}

	case replyMsg:
		c.waiting = false
		c.appendAssistant(msg.text)
		return c, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	c.input, cmd = c.input.Update(msg)
	cmds = append(cmds, cmd)

	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

func (c Chat) View() string {
	if !c.ready {
		return "starting..."
	}

	help := helpStyle.Render("enter: send • esc: quit")
	return titleStyle.Render("TalentScout Hiring Assistant") + "\n" +
		c.viewport.View() + "\n" +
		c.input.View() + "\n" +
		help
}

// process runs one machine turn off the UI loop. The machine never returns
// an error: generation failures degrade to deterministic replies internally.
func (c Chat) process(text string) tea.Cmd {
	machine, session := c.machine, c.session
	return func() tea.Msg {
		reply := machine.Process(context.Background(), session, text)
		return replyMsg{text: reply}
	}
}

func (c *Chat) appendAssistant(text string) {
	c.lines = append(c.lines, assistantStyle.Render("Assistant: ")+text, "")
	c.refresh()
}

func (c *Chat) appendUser(text string) {
	c.lines = append(c.lines, userStyle.Render("You: ")+text, "")
	c.refresh()
}

func (c *Chat) refresh() {
	if !c.ready {
		return
	}
	c.viewport.SetContent(strings.Join(c.lines, "\n"))
	c.viewport.GotoBottom()
}

// Run starts the chat program and blocks until the user quits.
func Run(machine *conversation.Machine) error {
	program := tea.NewProgram(NewChat(machine), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
