// Package ui is the terminal client: a bubbletea program polling the session
// server and driving it with single-key commands.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/uno-online/internal/client"
	"github.com/palemoky/uno-online/internal/logger"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/sound"
)

// GameClient is the part of client.Client the UI drives.
type GameClient interface {
	Join(name string) error
	Refresh(name string) (*client.GameState, error)
	UseCard(name string, index int) error
	CycleColorUp(name string, index int) error
	CycleColorDown(name string, index int) error
	Draw(name string) error
	Close() error
}

// SoundPlayer plays a named cue.
type SoundPlayer interface {
	Play(name string)
}

type silent struct{}

func (silent) Play(string) {}

// Phase 游戏阶段
type Phase int

const (
	PhaseJoin Phase = iota
	PhasePlaying
	PhaseGameOver
)

// joinedMsg 加入成功
type joinedMsg struct{ name string }

// joinErrMsg 加入失败
type joinErrMsg struct{ err error }

// stateMsg 轮询结果
type stateMsg struct{ state *client.GameState }

// actionMsg 操作结果
type actionMsg struct {
	action string
	err    error
}

// connErrMsg 连接错误
type connErrMsg struct{ err error }

// tickMsg 轮询节拍
type tickMsg time.Time

// clearNoticeMsg 清除提示
type clearNoticeMsg struct{}

// Model is the bubbletea model of the client.
type Model struct {
	client GameClient
	sound  SoundPlayer
	ticks  time.Duration

	phase    Phase
	name     string
	state    *client.GameState
	selected int
	notice   string
	err      string

	input textinput.Model
	keys  keyMap
	help  help.Model
	width int
}

// Option configures a Model.
type Option func(*Model)

// WithName skips the join screen and joins as name on start.
func WithName(name string) Option {
	return func(m *Model) { m.name = strings.TrimSpace(name) }
}

// WithSound plays cues through p.
func WithSound(p SoundPlayer) Option {
	return func(m *Model) { m.sound = p }
}

// NewModel creates the model. ticks is the polling interval.
func NewModel(c GameClient, ticks time.Duration, opts ...Option) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入昵称..."
	ti.CharLimit = 20
	ti.Width = 24
	ti.Focus()

	if ticks <= 0 {
		ticks = 100 * time.Millisecond
	}
	m := &Model{
		client: c,
		sound:  silent{},
		ticks:  ticks,
		phase:  PhaseJoin,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if m.name != "" {
		return m.join(m.name)
	}
	return textinput.Blink
}

// --- commands ---

func (m *Model) join(name string) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Join(name); err != nil {
			return joinErrMsg{err: err}
		}
		return joinedMsg{name: name}
	}
}

func (m *Model) refresh() tea.Cmd {
	name := m.name
	return func() tea.Msg {
		st, err := m.client.Refresh(name)
		if err != nil {
			return connErrMsg{err: err}
		}
		return stateMsg{state: st}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.ticks, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) act(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{action: action, err: fn()}
	}
}

func clearNoticeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{} })
}

// --- update ---

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case joinedMsg:
		m.name = msg.name
		m.phase = PhasePlaying
		m.err = ""
		logger.LogInfo("joined as %s", msg.name)
		return m, tea.Batch(m.refresh(), m.tick())

	case joinErrMsg:
		m.name = ""
		m.err = joinErrorText(msg.err)
		return m, nil

	case tickMsg:
		if m.phase != PhasePlaying || m.err != "" {
			return m, nil
		}
		return m, tea.Batch(m.refresh(), m.tick())

	case stateMsg:
		m.applyState(msg.state)
		return m, nil

	case actionMsg:
		return m, m.handleAction(msg)

	case connErrMsg:
		m.err = fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", msg.err)
		logger.LogError("refresh failed: %v", msg.err)
		return m, nil

	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	if m.phase == PhaseJoin {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseJoin:
		if msg.Type == tea.KeyEnter {
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.err = "昵称不能为空"
				return m, nil
			}
			m.err = ""
			return m, m.join(name)
		}
		if msg.Type == tea.KeyTab {
			// 随机昵称
			m.input.SetValue(client.RandomNickname())
			m.input.CursorEnd()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case PhasePlaying:
		return m, m.handlePlayKey(msg)
	}
	return m, nil
}

func (m *Model) handlePlayKey(msg tea.KeyMsg) tea.Cmd {
	if m.state == nil || m.err != "" {
		return nil
	}
	name, idx := m.name, m.selected
	size := len(m.state.Hand)

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if size > 0 {
			m.selected = (m.selected - 1 + size) % size
		}
	case key.Matches(msg, m.keys.Right):
		if size > 0 {
			m.selected = (m.selected + 1) % size
		}
	case key.Matches(msg, m.keys.ColorUp):
		if size > 0 {
			return m.act("color", func() error { return m.client.CycleColorUp(name, idx) })
		}
	case key.Matches(msg, m.keys.ColorDown):
		if size > 0 {
			return m.act("color", func() error { return m.client.CycleColorDown(name, idx) })
		}
	case key.Matches(msg, m.keys.Play):
		if size > 0 {
			return m.act(sound.Play, func() error { return m.client.UseCard(name, idx) })
		}
	case key.Matches(msg, m.keys.Draw):
		return m.act(sound.Penalty, func() error { return m.client.Draw(name) })
	}
	return nil
}

func (m *Model) handleAction(msg actionMsg) tea.Cmd {
	if msg.err != nil {
		if errors.Is(msg.err, client.ErrConnection) {
			return func() tea.Msg { return connErrMsg{err: msg.err} }
		}
		m.notice = actionErrorText(msg.action, msg.err)
		return tea.Batch(m.refresh(), clearNoticeAfter(2*time.Second))
	}

	switch msg.action {
	case sound.Play:
		m.sound.Play(sound.Play)
	case sound.Penalty:
		if m.state != nil && m.state.Pending > 0 {
			m.sound.Play(sound.Penalty)
		}
	}
	return m.refresh()
}

// applyState installs a polled view and reacts to turn and winner changes.
func (m *Model) applyState(st *client.GameState) {
	wasMyTurn := m.state != nil && m.state.IsMyTurn()
	m.state = st

	if n := len(st.Hand); n == 0 {
		m.selected = 0
	} else if m.selected >= n {
		m.selected = n - 1
	}

	if _, ok := st.Winner(); ok {
		if m.phase != PhaseGameOver {
			m.sound.Play(sound.Win)
		}
		m.phase = PhaseGameOver
		return
	}
	if st.IsMyTurn() && !wasMyTurn {
		m.sound.Play(sound.Turn)
	}
}

func joinErrorText(err error) string {
	switch {
	case client.IsStatus(err, protocol.StatusNameTaken):
		return "⚠️ 昵称已被占用"
	case client.IsStatus(err, protocol.StatusGameFull):
		return "⚠️ 牌桌已满"
	case client.IsStatus(err, protocol.StatusMalformed):
		return "⚠️ 昵称无效"
	case errors.Is(err, client.ErrConnection):
		return fmt.Sprintf("无法连接到服务器: %v\n\n按 ESC 退出", err)
	}
	return fmt.Sprintf("⚠️ 加入失败: %v", err)
}

func actionErrorText(action string, err error) string {
	if client.IsStatus(err, protocol.StatusRejected) {
		switch action {
		case sound.Play:
			return "❌ 现在不能出这张牌"
		case "color":
			return "❌ 现在不能换色"
		default:
			return "❌ 还没轮到你"
		}
	}
	return fmt.Sprintf("⚠️ %v", err)
}

// Phase returns the current screen.
func (m *Model) Phase() Phase { return m.phase }

// Selected returns the selected hand index.
func (m *Model) Selected() int { return m.selected }
