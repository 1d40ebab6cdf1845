// Package tui is the interactive table behind the play command: a human
// takes one seat and a strategy plays the other.
package tui

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/CornellDataScience/PokerBot/internal/randutil"
	"github.com/CornellDataScience/PokerBot/internal/strategy"
	"github.com/CornellDataScience/PokerBot/sdk/games"
)

var (
	// ErrIllegalAction is reported when the typed action is not legal in the
	// current state.
	ErrIllegalAction = errors.New("illegal action")
	// ErrHandOver is reported when an action is typed after the hand ended.
	ErrHandOver = errors.New("hand is over: press enter for a new hand or q to quit")
)

// Options configures a table.
type Options[S comparable, A ~int] struct {
	Game  games.Game[S, A]
	Parse func(string) (A, error)
	// Policy plays the opponent's seat.
	Policy strategy.Policy[S, A]
	// NumHands is the number of private hands dealt from.
	NumHands int
	// Seat is the human's player id.
	Seat int
	// Seed deals the first hand; hand i uses Seed+i.
	Seed int64
	// Pot reports the relative pot of a state. Optional.
	Pot    func(S) float64
	Logger zerolog.Logger
}

// Model is the bubbletea model of one table.
type Model[S comparable, A ~int] struct {
	opts   Options[S, A]
	logger zerolog.Logger

	logViewport viewport.Model
	actionInput textinput.Model

	hand     int
	rng      *rand.Rand
	hands    []int
	state    S
	line     []A
	gameLog  []string
	err      error
	quitting bool

	width  int
	height int
}

// New deals the first hand and lets the opponent act until it is the human's
// turn.
func New[S comparable, A ~int](opts Options[S, A]) (*Model[S, A], error) {
	switch {
	case opts.Game == nil:
		return nil, errors.New("tui: game is required")
	case opts.Parse == nil:
		return nil, errors.New("tui: action parser is required")
	case opts.Policy == nil:
		return nil, errors.New("tui: opponent policy is required")
	case opts.Seat < 0 || opts.Seat >= games.Players:
		return nil, fmt.Errorf("tui: seat %d out of range [0, %d)", opts.Seat, games.Players)
	case opts.NumHands < games.Players:
		return nil, fmt.Errorf("tui: %d hands cannot be dealt to %d players", opts.NumHands, games.Players)
	}

	vp := viewport.New(40, 10)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "check, bet, raise, call or fold"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.Prompt = "> "

	m := &Model[S, A]{
		opts:        opts,
		logger:      opts.Logger.With().Str("component", "tui").Logger(),
		logViewport: vp,
		actionInput: ti,
	}
	m.deal()
	return m, nil
}

// State is the current public state.
func (m *Model[S, A]) State() S { return m.state }

// Line is the actions played so far this hand.
func (m *Model[S, A]) Line() []A { return slices.Clone(m.line) }

// Hand is the number of the current hand, starting at 1.
func (m *Model[S, A]) Hand() int { return m.hand }

// Hands is the private hand of each player in the current hand.
func (m *Model[S, A]) Hands() []int { return slices.Clone(m.hands) }

// Err is the error from the last submitted line, if any.
func (m *Model[S, A]) Err() error { return m.err }

// Log is the table log, oldest entry first.
func (m *Model[S, A]) Log() []string { return slices.Clone(m.gameLog) }

// Quitting reports whether the user asked to leave.
func (m *Model[S, A]) Quitting() bool { return m.quitting }

// HandOver reports whether the current hand has finished.
func (m *Model[S, A]) HandOver() bool { return m.opts.Game.IsTerminal(m.state) }

func (m *Model[S, A]) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model[S, A]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logViewport.Width = max(1, msg.Width-2)
		m.logViewport.Height = max(1, msg.Height-8)
		m.logViewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.actionInput.Value())
			m.actionInput.SetValue("")
			m.submit(text)
			if m.quitting {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.actionInput, cmd = m.actionInput.Update(msg)
	cmds = append(cmds, cmd)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model[S, A]) View() string {
	if m.quitting {
		return ""
	}
	g := m.opts.Game

	var b strings.Builder
	info := fmt.Sprintf("Hand %d  Seat %d  Card %d  %s", m.hand, m.opts.Seat, m.hands[m.opts.Seat], g.StateString(m.state))
	if m.opts.Pot != nil {
		info += fmt.Sprintf("  Pot x%.1f", m.opts.Pot(m.state))
	}
	b.WriteString(HandInfoStyle.Render(info))
	b.WriteString("\n")

	b.WriteString(PaneStyle.Render(m.logViewport.View()))
	b.WriteString("\n")

	if m.HandOver() {
		b.WriteString(HelpStyle.Render("Enter for a new hand • q to quit"))
	} else {
		names := make([]string, 0, len(g.LegalActions(m.state)))
		for _, a := range g.LegalActions(m.state) {
			names = append(names, g.ActionString(a))
		}
		b.WriteString(OpponentStyle.Render("Your move: " + strings.Join(names, " | ")))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.actionInput.View())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Enter to submit • Esc or Ctrl+C to quit"))
	return b.String()
}

// submit handles one entered line.
func (m *Model[S, A]) submit(text string) {
	m.err = nil
	g := m.opts.Game

	if g.IsTerminal(m.state) {
		switch strings.ToLower(text) {
		case "":
			m.deal()
		case "q", "quit":
			m.quitting = true
		default:
			m.err = ErrHandOver
		}
		return
	}

	if text == "" {
		return
	}
	a, err := m.opts.Parse(text)
	if err != nil {
		m.err = err
		return
	}
	if !slices.Contains(g.LegalActions(m.state), a) {
		m.err = fmt.Errorf("%s in %s: %w", g.ActionString(a), g.StateString(m.state), ErrIllegalAction)
		return
	}
	m.act("you", a)
	m.advance()
}

func (m *Model[S, A]) deal() {
	m.hand++
	seed := m.opts.Seed + int64(m.hand-1)
	m.rng = randutil.New(seed)
	m.hands = randutil.Deal(m.rng, m.opts.NumHands, games.Players)
	m.state = m.opts.Game.InitialState()
	m.line = nil

	m.logger.Debug().Int("hand", m.hand).Int64("seed", seed).Ints("hands", m.hands).Msg("dealt")
	m.appendLog(fmt.Sprintf("hand %d: you hold card %d", m.hand, m.hands[m.opts.Seat]))
	m.advance()
}

// advance plays the opponent's turns until the human acts or the hand ends.
func (m *Model[S, A]) advance() {
	g := m.opts.Game
	for !g.IsTerminal(m.state) && g.PlayerID(m.state) != m.opts.Seat {
		pid := g.PlayerID(m.state)
		a := m.opts.Policy.Choose(m.rng, m.state, m.hands[pid])
		m.act("opponent", a)
	}
	if g.IsTerminal(m.state) {
		result := fmt.Sprintf("hand over: opponent held card %d", m.hands[games.Other(m.opts.Seat)])
		if m.opts.Pot != nil {
			result += fmt.Sprintf(", pot x%.1f", m.opts.Pot(m.state))
		}
		m.appendLog(result)
		m.logger.Debug().Int("hand", m.hand).Int("actions", len(m.line)).Msg("hand finished")
	}
}

func (m *Model[S, A]) act(who string, a A) {
	g := m.opts.Game
	m.state = g.Act(m.state, a)
	m.line = append(m.line, a)
	m.appendLog(fmt.Sprintf("%s: %s", who, g.ActionString(a)))
}

func (m *Model[S, A]) appendLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}
