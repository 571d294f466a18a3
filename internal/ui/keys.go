package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	ColorUp   key.Binding
	ColorDown key.Binding
	Play      key.Binding
	Draw      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "上一张")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "下一张")),
		ColorUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "换色")),
		ColorDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "反向换色")),
		Play:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "出牌")),
		Draw:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "摸牌/接受罚牌")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "退出")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Play, k.Draw, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.ColorUp, k.ColorDown},
		{k.Play, k.Draw, k.Help, k.Quit},
	}
}
