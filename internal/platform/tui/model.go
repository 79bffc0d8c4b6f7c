package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blokus/internal/multiplayer"
)

// MatchFactory creates a fresh match. It is called on start and on every
// restart with a different seed.
type MatchFactory func(seed uint64) (*multiplayer.Match, error)

const (
	eventLogSize = 10
	minTick      = 10 * time.Millisecond
	maxTick      = 2 * time.Second
	sessionQueue = 256
)

// eventMsg carries a match event to the viewer that subscribed for it.
type eventMsg struct {
	session multiplayer.SessionID
	evt     multiplayer.SessionEvent
}

// ViewerModel is the Bubble Tea model that plays a match one move per tick.
type ViewerModel struct {
	factory  MatchFactory
	seed     uint64
	restarts int
	match    *multiplayer.Match
	session  *multiplayer.ChannelSession
	log      []string

	tick   time.Duration
	paused bool
	keys   ViewerKeyMap
	help   help.Model
	width  int
	height int

	err        error
	quitting   bool
	backToMenu bool
}

// NewViewerModel creates a viewer for matches made by factory. withBack
// enables leaving the viewer for a surrounding menu.
func NewViewerModel(factory MatchFactory, seed uint64, tick time.Duration, withBack bool) (ViewerModel, error) {
	m := ViewerModel{
		factory: factory,
		seed:    seed,
		tick:    clampTick(tick),
		keys:    DefaultViewerKeyMap(withBack),
		help:    help.New(),
	}
	if err := m.start(); err != nil {
		return m, err
	}
	return m, nil
}

func clampTick(d time.Duration) time.Duration {
	return min(max(d, minTick), maxTick)
}

// start creates a new match and subscribes a fresh session to it.
func (m *ViewerModel) start() error {
	match, err := m.factory(m.seed + uint64(m.restarts))
	if err != nil {
		return err
	}
	session := multiplayer.NewChannelSession(
		multiplayer.SessionID(fmt.Sprintf("viewer-%d", m.restarts)), sessionQueue)
	match.Subscribe(session)

	m.match = match
	m.session = session
	m.log = nil
	m.err = nil
	return nil
}

// Init starts listening for match events and the tick loop.
func (m ViewerModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.session), tickCmd(m.tick))
}

// waitForEvent returns a command that waits for the next match event.
func waitForEvent(s *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-s.Events():
			return eventMsg{session: s.ID(), evt: evt}
		case <-s.Done():
			return nil
		}
	}
}

// Update handles messages.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.tick)

	case eventMsg:
		// Events of a match replaced by a restart are dropped.
		if msg.session != m.session.ID() {
			return m, nil
		}
		m.record(describeEvent(msg.evt))
		return m, waitForEvent(m.session)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		m.session.Close()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		m.paused = true
		m.step()

	case key.Matches(msg, m.keys.Restart):
		m.match.Unsubscribe(m.session.ID())
		m.session.Close()
		m.restarts++
		if err := m.start(); err != nil {
			m.err = err
			return m, nil
		}
		return m, waitForEvent(m.session)

	case key.Matches(msg, m.keys.Faster):
		m.tick = clampTick(m.tick / 2)

	case key.Matches(msg, m.keys.Slower):
		m.tick = clampTick(m.tick * 2)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step advances the match by one move unless it has ended or failed.
func (m *ViewerModel) step() {
	if m.err != nil || m.match.Done() {
		return
	}
	if _, err := m.match.Step(context.Background()); err != nil {
		m.err = err
		m.paused = true
	}
}

func (m *ViewerModel) record(line string) {
	m.log = append(m.log, line)
	if len(m.log) > eventLogSize {
		m.log = m.log[len(m.log)-eventLogSize:]
	}
}

// describeEvent formats an event for the log pane.
func describeEvent(evt multiplayer.SessionEvent) string {
	switch e := evt.(type) {
	case multiplayer.MatchStartedEvent:
		return fmt.Sprintf("match %s started", shortID(string(e.MatchID)))
	case multiplayer.MoveEvent:
		line := fmt.Sprintf("#%d %s", e.Turn, e.Move)
		if e.Fallback {
			line += " (fallback)"
		}
		return line
	case multiplayer.MoveRejectedEvent:
		return fmt.Sprintf("%s rejected: %v", e.Color, e.Err)
	case multiplayer.ColorEliminatedEvent:
		return fmt.Sprintf("%s is out after turn %d", e.Color, e.Turn)
	case multiplayer.MatchEndedEvent:
		return "match over: " + describeResult(e.Result)
	default:
		return fmt.Sprintf("%T", evt)
	}
}

func describeResult(r multiplayer.MatchResult) string {
	names := make([]string, len(r.Winners))
	for i, c := range r.Winners {
		names[i] = c.String()
	}
	best := 0
	if len(r.Winners) > 0 {
		best, _ = r.ScoreOf(r.Winners[0])
	}
	if r.Draw {
		return fmt.Sprintf("draw between %s at %d pts (%s)", strings.Join(names, ", "), best, r.Reason)
	}
	return fmt.Sprintf("%s wins with %d pts (%s)", strings.Join(names, ", "), best, r.Reason)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// View renders the viewer.
func (m ViewerModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	s := m.match.State()

	var b strings.Builder

	header := fmt.Sprintf("B L O K U S   %s   turn %d  round %d  tick %s",
		m.match.Config().Variant, s.Turn, s.Round(), m.tick)
	if m.paused {
		header += "  [paused]"
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	board := panelStyle.Render(RenderBoard(s))
	side := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(RenderScores(s, m.match.PlayerName)),
		panelStyle.Render(m.renderLog()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, " ", side))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("error: " + m.err.Error()))
	case s.IsFinished():
		b.WriteString(titleStyle.Render(s.Condition.String()))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ViewerModel) renderLog() string {
	if len(m.log) == 0 {
		return dimStyle.Render("waiting for moves...")
	}
	return strings.Join(m.log, "\n")
}

// Match returns the match currently shown.
func (m ViewerModel) Match() *multiplayer.Match {
	return m.match
}

// Paused reports whether automatic stepping is suspended.
func (m ViewerModel) Paused() bool {
	return m.paused
}

// Log returns the recent event lines, oldest first.
func (m ViewerModel) Log() []string {
	return m.log
}

// IsQuitting returns true if user requested to quit entirely.
func (m ViewerModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m ViewerModel) BackToMenu() bool {
	return m.backToMenu
}

// RunViewer runs the viewer in the terminal until the user quits. It
// returns the result of the last match shown, if that match finished.
func RunViewer(factory MatchFactory, seed uint64, tick time.Duration) (multiplayer.MatchResult, bool, error) {
	model, err := NewViewerModel(factory, seed, tick, false)
	if err != nil {
		return multiplayer.MatchResult{}, false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return multiplayer.MatchResult{}, false, err
	}
	vm, ok := final.(ViewerModel)
	if !ok {
		return multiplayer.MatchResult{}, false, nil
	}
	res, done := vm.Match().Result()
	return res, done, vm.err
}
