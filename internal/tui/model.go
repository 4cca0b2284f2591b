// internal/tui/model.go
//
// Bubble Tea front end for the console game.
//
// Screens:
//   - stats error: shown first when statistics could not be loaded
//     (1. Play / 3. Exit);
//   - welcome: press ENTER to continue;
//   - playing: alphabet, 6x5 board and the "Word:" prompt;
//   - round over: board, result, answer, statistics and the end menu
//     (1. Play Again / 2. Reset Stats when stats are enabled / 3. Exit).

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/session"
)

const (
	optionPlay       = "1"
	optionResetStats = "2"
	optionExit       = "3"

	msgInvalidWord   = "Please enter a valid five-letter word"
	msgInvalidOption = "Invalid option"
)

type screen int

const (
	screenStatsError screen = iota
	screenWelcome
	screenPlaying
	screenRoundOver
)

// Model is the tea.Model driving one terminal game.
type Model struct {
	ctx    context.Context
	sess   *session.Session
	input  textinput.Model
	screen screen
	notice string // one-line feedback under the prompt

	firstSecret string // answer for the first round ("" = random)
	quitting    bool
}

// Option customizes a Model.
type Option func(*Model)

// WithFirstSecret fixes the answer of the first round, as for the daily word.
func WithFirstSecret(secret string) Option {
	return func(m *Model) { m.firstSecret = secret }
}

// WithContext sets the context used for stats persistence.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New builds the model for sess. The first round starts after the welcome
// screen (and the stats error notice, if stats are disabled).
func New(sess *session.Session, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = game.Cols
	ti.Width = 10
	ti.Focus()

	m := Model{ctx: context.Background(), sess: sess, input: ti, screen: screenWelcome}
	for _, o := range opts {
		o(&m)
	}
	if !sess.StatsEnabled() {
		m.screen = screenStatsError
	}
	m.setPrompt()
	return m
}

// Run starts the program and blocks until the player exits.
func Run(ctx context.Context, sess *session.Session, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(sess, opts...), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.notice = ""
			return m.submit(value)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit handles ENTER on the current screen.
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenStatsError:
		switch value {
		case optionPlay:
			m.screen = screenWelcome
		case optionExit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.notice = msgInvalidOption
		}

	case screenWelcome:
		m.startRound()

	case screenPlaying:
		res, err := m.sess.Guess(m.ctx, value)
		switch {
		case errors.Is(err, game.ErrInvalidGuessLength),
			errors.Is(err, game.ErrInvalidGuessCharacters),
			errors.Is(err, game.ErrUnknownWord):
			m.notice = msgInvalidWord
		case err != nil:
			m.notice = err.Error()
		case res.Status.Terminal():
			m.screen = screenRoundOver
		}

	case screenRoundOver:
		switch {
		case value == optionPlay:
			m.startRound()
		case value == optionResetStats && m.sess.StatsEnabled():
			m.sess.ResetStats(m.ctx)
		case value == optionExit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.notice = msgInvalidOption
		}
	}
	m.setPrompt()
	return m, nil
}

// startRound begins the next round. A bad fixed answer is reported once and
// the following attempt falls back to a random word.
func (m *Model) startRound() {
	secret := m.firstSecret
	m.firstSecret = ""
	if _, err := m.sess.Start(secret); err != nil {
		m.notice = err.Error()
		return
	}
	m.screen = screenPlaying
}

func (m *Model) setPrompt() {
	if m.screen == screenPlaying {
		m.input.Prompt = "Word: "
		m.input.CharLimit = game.Cols
	} else {
		m.input.Prompt = "Option: "
		m.input.CharLimit = 1
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	switch m.screen {
	case screenStatsError:
		b.WriteString(styleError.Render("Stats are disabled for the session due to an error."))
		b.WriteString("\n\n")
		if err := m.sess.StatsErr(); err != nil {
			b.WriteString(styleError.Render(err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n" + optionPlay + ". Play\n" + optionExit + ". Exit\n\n")
		b.WriteString(m.input.View())

	case screenWelcome:
		b.WriteString(styleTitle.Render("Welcome to Wordle."))
		b.WriteString("\n\nPress ENTER to continue")

	case screenPlaying:
		b.WriteString(renderAlphabet(m.sess.Alphabet()))
		b.WriteString("\n\n")
		b.WriteString(renderBoard(m.sess.Round()))
		b.WriteString("\n")
		b.WriteString(m.input.View())

	case screenRoundOver:
		b.WriteString(renderBoard(m.sess.Round()))
		b.WriteString("\n")
		b.WriteString(m.renderEndScreen())
		b.WriteString("\n" + optionPlay + ". Play Again\n")
		if m.sess.StatsEnabled() {
			b.WriteString(optionResetStats + ". Reset Stats\n")
		}
		b.WriteString(optionExit + ". Exit\n\n")
		b.WriteString(m.input.View())
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styleNotice.Render(m.notice))
	}
	return b.String() + "\n"
}

func (m Model) renderEndScreen() string {
	var b strings.Builder
	if m.sess.StatsEnabled() {
		b.WriteString(styleTitle.Render("\t\tSTATISTICS"))
	} else {
		b.WriteString(styleTitle.Render("\t\tSTATISTICS ARE UNAVAILABLE"))
	}
	b.WriteString("\n")

	r := m.sess.Round()
	if r.Won() {
		b.WriteString(styleWon.Render("\t\tYOU WON"))
	} else {
		b.WriteString(styleLost.Render("\t\tYOU LOST"))
	}
	b.WriteString("\n")
	b.WriteString(styleAnswer.Render("\t\tANSWER: " + r.Secret()))
	b.WriteString("\n\n")

	if !m.sess.StatsEnabled() {
		return b.String()
	}
	l := m.sess.Stats()
	b.WriteString(styleStats.Render(fmt.Sprintf("%d\t%s\t%d\t%d\nPlayed\tWin %%\tCurrent\tMax\n\t\tStreak\tStreak",
		l.GamesPlayed, strconv.FormatFloat(l.WinPercentage(), 'f', -1, 64), l.CurrentStreak, l.MaxStreak)))
	b.WriteString("\n\n")

	var dist strings.Builder
	dist.WriteString("Guess Distribution")
	for i, n := range l.Distribution {
		fmt.Fprintf(&dist, "\n%d : %d", i+1, n)
	}
	b.WriteString(styleDist.Render(dist.String()))
	b.WriteString("\n")
	return b.String()
}

// renderAlphabet prints A..Z colored by what the player has learned.
func renderAlphabet(a *game.Alphabet) string {
	var b strings.Builder
	for c := 'A'; c <= 'Z'; c++ {
		b.WriteString(markStyle(a.StatusOf(c)).Render(string(c)))
	}
	return b.String()
}

const boardRule = "------------------------"

// renderBoard prints the 6x5 grid; rows without a guess stay blank.
func renderBoard(r *game.Round) string {
	var guesses []game.Guess
	if r != nil {
		guesses = r.Guesses()
	}
	var b strings.Builder
	for i := 0; i < game.Rows; i++ {
		b.WriteString(boardRule + "\n")
		for j := 0; j < game.Cols; j++ {
			cell := " "
			if i < len(guesses) {
				g := guesses[i]
				cell = markStyle(g.Marks[j]).Render(g.Word[j : j+1])
			}
			b.WriteString(" |" + cell + "| ")
		}
		b.WriteString("\n")
	}
	b.WriteString(boardRule + "\n")
	return b.String()
}
