package ws

import (
	"fmt"

	"example.com/truco_online/internal/game"
)

// CardDTO is a card on the wire. Cards the receiver may not see carry only
// Hidden.
type CardDTO struct {
	Rank   string `json:"rank,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

type PlayerDTO struct {
	Seat int       `json:"seat"`
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Team int       `json:"team"`
	Hand []CardDTO `json:"hand"`
}

type PlayDTO struct {
	Seat int     `json:"seat"`
	Card CardDTO `json:"card"`
}

type TrickDTO struct {
	Winner int       `json:"winner"` // -1 on a tie
	Plays  []PlayDTO `json:"plays"`
}

type StateDTO struct {
	MatchID     string          `json:"matchId"`
	You         int             `json:"you"`
	Phase       string          `json:"phase"`
	Players     []PlayerDTO     `json:"players"`
	Scores      [game.Teams]int `json:"scores"`
	TargetScore int             `json:"targetScore"`
	MatchWinner int             `json:"matchWinner"`

	Hand       int        `json:"hand"`
	Vira       *CardDTO   `json:"vira,omitempty"`
	Manilhas   []CardDTO  `json:"manilhas,omitempty"`
	Trick      int        `json:"trick"`
	HandValue  int        `json:"handValue"`
	Turn       int        `json:"turn"`
	Table      []PlayDTO  `json:"table"`
	Tricks     []TrickDTO `json:"tricks"`
	HandWinner int        `json:"handWinner"`
}

func newCardDTO(c game.Card) CardDTO {
	if c.Hidden() {
		return CardDTO{Hidden: true}
	}
	return CardDTO{Rank: c.Rank.String(), Suit: c.Suit.String()}
}

func newCardDTOs(cards []game.Card) []CardDTO {
	out := make([]CardDTO, len(cards))
	for i, c := range cards {
		out[i] = newCardDTO(c)
	}
	return out
}

func newPlayDTOs(plays []game.Play) []PlayDTO {
	out := make([]PlayDTO, len(plays))
	for i, p := range plays {
		out[i] = PlayDTO{Seat: p.Seat, Card: newCardDTO(p.Card)}
	}
	return out
}

func newStateDTO(v game.View) StateDTO {
	s := StateDTO{
		MatchID:     v.MatchID,
		You:         v.Viewer,
		Phase:       string(v.Phase),
		Players:     make([]PlayerDTO, 0, len(v.Players)),
		Scores:      v.Scores,
		TargetScore: v.TargetScore,
		MatchWinner: v.MatchWinner,
		Hand:        v.HandNumber,
		Manilhas:    newCardDTOs(v.Manilhas),
		Trick:       v.Trick,
		HandValue:   v.HandValue,
		Turn:        v.Turn,
		Table:       newPlayDTOs(v.Table),
		Tricks:      make([]TrickDTO, 0, len(v.Results)),
		HandWinner:  v.HandWinner,
	}
	if v.Vira != nil {
		vira := newCardDTO(*v.Vira)
		s.Vira = &vira
	}
	for _, p := range v.Players {
		s.Players = append(s.Players, PlayerDTO{Seat: p.Seat, ID: p.ID, Name: p.Name, Team: p.Team, Hand: newCardDTOs(p.Hand)})
	}
	for _, r := range v.Results {
		s.Tricks = append(s.Tricks, TrickDTO{Winner: r.Winner, Plays: newPlayDTOs(r.Plays)})
	}
	return s
}

// cardFromPayload reads {"card": {"rank": .., "suit": ..}}. Ranks may come
// as numbers.
func cardFromPayload(m map[string]interface{}) (game.Card, error) {
	raw, ok := m["card"].(map[string]interface{})
	if !ok {
		return game.Card{}, badRequest("card is required")
	}
	suit, _ := raw["suit"].(string)
	var rank string
	switch r := raw["rank"].(type) {
	case string:
		rank = r
	case float64:
		rank = fmt.Sprint(int(r))
	}
	c, err := game.ParseCard(rank, suit)
	if err != nil {
		return game.Card{}, badRequest(err.Error())
	}
	return c, nil
}
