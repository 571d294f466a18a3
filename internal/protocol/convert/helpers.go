package convert

import (
	"github.com/palemoky/uno-online/internal/game"
	"github.com/palemoky/uno-online/internal/protocol"
)

// PlayerToInfo exposes a player's name and hand size, never the hand itself.
func PlayerToInfo(seat int, p *game.Player) protocol.PlayerInfo {
	return protocol.PlayerInfo{
		Seat:     seat,
		Name:     p.Name,
		HandSize: p.HandSize(),
		Won:      p.HasWon(),
	}
}

// PlayersToInfos converts players in seat order.
func PlayersToInfos(players []*game.Player) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, len(players))
	for i, p := range players {
		infos[i] = PlayerToInfo(i, p)
	}
	return infos
}
