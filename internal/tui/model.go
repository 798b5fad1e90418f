// Package tui is the terminal front end for a table session: a log pane,
// a seat sidebar, the coaching panel and an action prompt.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokersim/internal/table"
)

const maxLogLines = 500

type (
	eventMsg        table.Event
	eventsClosedMsg struct{}
	stateMsg        table.State
	resultMsg       struct{ err error }
)

// Model is the bubbletea model for one human seat
type Model struct {
	ctx     context.Context
	session *table.Session
	seat    int
	logger  *log.Logger

	events      <-chan table.Event
	unsubscribe func()

	logViewport viewport.Model
	actionInput textinput.Model
	focusedPane int // 0 = log, 1 = input

	state     table.State
	gameLog   []string
	notice    string
	noticeBad bool
	showHints bool
	quitting  bool

	width, height int
}

// New creates a model for seat. The session must already be started.
func New(ctx context.Context, session *table.Session, seat int, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "fold, check, call, raise 60, allin"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(focusedColor).Bold(true)

	events, unsubscribe := session.Subscribe(128)
	return &Model{
		ctx:         ctx,
		session:     session,
		seat:        seat,
		logger:      logger.WithPrefix("tui"),
		events:      events,
		unsubscribe: unsubscribe,
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
		showHints:   true,
	}
}

// Run shows the model until the user quits or ctx is cancelled
func Run(ctx context.Context, session *table.Session, seat int, logger *log.Logger) error {
	m := New(ctx, session, seat, logger)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent(), m.refresh())
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(e)
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := m.session.State(m.ctx, m.seat)
		if err != nil {
			return resultMsg{err: err}
		}
		return stateMsg(st)
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case eventMsg:
		m.addEvent(table.Event(msg))
		return m, tea.Batch(m.waitForEvent(), m.refresh())

	case eventsClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case stateMsg:
		m.state = table.State(msg)
		return m, nil

	case resultMsg:
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
		}
		return m, m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
			return m, nil
		case "enter":
			if m.focusedPane == 1 {
				input := m.actionInput.Value()
				m.actionInput.SetValue("")
				return m, m.submit(input)
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submit turns a line of input into a command against the session
func (m *Model) submit(input string) tea.Cmd {
	c, err := ParseCommand(input, m.state)
	if err != nil {
		m.setNotice(err.Error(), true)
		return nil
	}
	m.notice = ""

	switch c.Kind {
	case CommandQuit:
		m.quitting = true
		return tea.Quit
	case CommandHint:
		m.showHints = !m.showHints
		return nil
	case CommandHelp:
		m.setNotice(helpText, false)
		return nil
	case CommandNextHand:
		return func() tea.Msg {
			return resultMsg{err: m.session.NextHand(m.ctx)}
		}
	}

	m.logger.Debug("Submitting action", "action", c.Action, "amount", c.Amount)
	return func() tea.Msg {
		return resultMsg{err: m.session.Act(m.ctx, m.seat, c.Action, c.Amount)}
	}
}

func (m *Model) setNotice(s string, bad bool) {
	m.notice = s
	m.noticeBad = bad
}

func (m *Model) addEvent(e table.Event) {
	var line string
	switch e.Type {
	case table.EventHandStart:
		line = headerStyle.Render(fmt.Sprintf("Hand #%d", e.Hand))
	case table.EventStreetChange:
		line = warningStyle.Render(fmt.Sprintf("*** %s *** %s", e.Message, formatCards(e.Board)))
	case table.EventHandEnd:
		line = successStyle.Render(e.Message)
	case table.EventGameOver:
		line = errorStyle.Render(e.Message)
	case table.EventAwaiting:
		return
	default:
		line = e.Message
	}
	if line == "" {
		return
	}

	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
	m.logViewport.SetContent(joinLines(m.gameLog))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the event lines shown in the log pane
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// State returns the last table state the model rendered
func (m *Model) State() table.State {
	return m.state
}

// Close cancels the model's event subscription
func (m *Model) Close() {
	m.unsubscribe()
}
