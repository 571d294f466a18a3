package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
	"github.com/palemoky/uno-online/internal/ui/common"
)

// cardCellWidth is the rendered width of one card including its border.
const cardCellWidth = 8

func (m *Model) View() string {
	var body string
	switch m.phase {
	case PhaseJoin:
		body = m.joinView()
	case PhaseGameOver:
		body = m.gameOverView()
	default:
		body = m.gameView()
	}
	return common.DocStyle.Render(body)
}

func (m *Model) joinView() string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🃏 UNO Online"))
	sb.WriteString("\n\n")
	if m.name != "" && m.err == "" {
		sb.WriteString(fmt.Sprintf("正在以 %s 加入...", m.name))
	} else {
		sb.WriteString("输入昵称加入牌桌:\n")
		sb.WriteString(m.input.View())
	}
	if m.err != "" {
		sb.WriteString("\n\n" + common.ErrorStyle.Render(m.err))
	}
	sb.WriteString("\n\n" + common.DimStyle.Render("enter 加入 • tab 随机昵称 • esc 退出"))
	return sb.String()
}

func (m *Model) gameView() string {
	if m.err != "" {
		return common.ErrorStyle.Render(m.err)
	}
	if m.state == nil {
		return "加载中..."
	}
	st := m.state

	status := fmt.Sprintf("玩家: %s | 当前回合: %s", m.name, turnText(st.CurrentTurn, st.IsMyTurn()))
	if st.Pending > 0 {
		status += common.NoticeStyle.Render(fmt.Sprintf(" | 罚牌: +%d", st.Pending))
	}

	top := lipgloss.JoinVertical(lipgloss.Center, "牌顶", common.RenderCard(st.TopCard, false))
	table := common.BoxStyle.Render(renderPlayers(st.Players, st.CurrentTurn))
	counter := common.BoxStyle.Render(fmt.Sprintf("未见 +2/+4: %d\n未见 Wild: %d",
		st.CardCounter.Penalties(), st.CardCounter.Remaining(card.Wild)))
	header := lipgloss.JoinHorizontal(lipgloss.Top, top, "  ", table, "  ", counter)

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🃏 UNO Online"))
	sb.WriteString("\n" + status + "\n\n")
	sb.WriteString(header + "\n\n")
	sb.WriteString(fmt.Sprintf("你的手牌 (%d):\n", len(st.Hand)))
	sb.WriteString(renderHand(st.Hand, m.selected) + "\n")

	var playable []int
	if st.IsMyTurn() {
		playable = st.Playable()
	}
	sb.WriteString(common.HandMarkers(len(st.Hand), m.selected, playable, cardCellWidth) + "\n")

	if m.notice != "" {
		sb.WriteString(common.NoticeStyle.Render(m.notice) + "\n")
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

func (m *Model) gameOverView() string {
	winner := ""
	if m.state != nil {
		winner, _ = m.state.Winner()
	}

	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🃏 UNO Online"))
	sb.WriteString("\n\n")
	if winner == m.name {
		sb.WriteString(common.ActiveStyle.Render(common.WinnerIcon + " 你赢了!"))
	} else {
		sb.WriteString(common.ActiveStyle.Render(fmt.Sprintf("%s %s 获胜!", common.WinnerIcon, winner)))
	}
	if m.state != nil {
		sb.WriteString("\n\n" + common.BoxStyle.Render(renderPlayers(m.state.Players, "")))
	}
	sb.WriteString("\n\n" + common.DimStyle.Render("esc 退出"))
	return sb.String()
}

func turnText(name string, mine bool) string {
	if mine {
		return common.ActiveStyle.Render("你")
	}
	if name == "" {
		return "-"
	}
	return name
}

func renderPlayers(players []protocol.PlayerInfo, turn string) string {
	if len(players) == 0 {
		return "暂无玩家"
	}
	lines := make([]string, 0, len(players))
	for _, p := range players {
		icon := "  "
		switch {
		case p.Won:
			icon = common.WinnerIcon
		case p.Name == turn:
			icon = common.TurnIcon
		}
		lines = append(lines, fmt.Sprintf("%s %-12s %s %d", icon, common.TruncateName(p.Name, 12), common.CardIcon, p.HandSize))
	}
	return strings.Join(lines, "\n")
}

func renderHand(hand []card.Card, selected int) string {
	if len(hand) == 0 {
		return common.DimStyle.Render("(空)")
	}
	cells := make([]string, len(hand))
	for i, c := range hand {
		cells[i] = common.RenderCard(c, i == selected)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
