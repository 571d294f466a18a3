package convert

import (
	"fmt"

	"github.com/palemoky/uno-online/internal/game/card"
	"github.com/palemoky/uno-online/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Value: c.Value.String(),
		Color: c.Color.String(),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	v, err := card.ParseValue(info.Value)
	if err != nil {
		return card.Card{}, err
	}
	c, err := card.ParseColor(info.Color)
	if err != nil {
		return card.Card{}, err
	}
	return card.New(v, c), nil
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards[i] = c
	}
	return cards, nil
}
