package game

import (
	"fmt"
	"strings"
)

type Suit int

type Rank int

// Suits are declared in ascending manilha strength.
const (
	SuitOuros Suit = iota
	SuitEspadas
	SuitCopas
	SuitPaus
)

// Ranks are declared in ascending strength: 4 is the weakest, 3 the strongest.
const (
	Rank4 Rank = iota
	Rank5
	Rank6
	Rank7
	RankQ
	RankJ
	RankK
	RankA
	Rank2
	Rank3
)

const (
	numSuits = 4
	numRanks = 10
)

var (
	suitNames = [numSuits]string{"Ouros", "Espadas", "Copas", "Paus"}
	rankNames = [numRanks]string{"4", "5", "6", "7", "Q", "J", "K", "A", "2", "3"}
)

func (s Suit) String() string {
	if s < 0 || int(s) >= numSuits {
		return "?"
	}
	return suitNames[s]
}

func (r Rank) String() string {
	if r < 0 || int(r) >= numRanks {
		return "?"
	}
	return rankNames[r]
}

func (s Suit) valid() bool { return s >= 0 && int(s) < numSuits }
func (r Rank) valid() bool { return r >= 0 && int(r) < numRanks }

// Card is a value type; two cards are the same card iff rank and suit match.
type Card struct {
	Rank Rank
	Suit Suit
}

// HiddenCard is the placeholder a View puts in place of a card the viewer may not see.
var HiddenCard = Card{Rank: -1, Suit: -1}

func (c Card) String() string {
	if c.Hidden() {
		return "verso"
	}
	return fmt.Sprintf("%s-%s", c.Rank, c.Suit)
}

func (c Card) Hidden() bool { return c == HiddenCard }

func (c Card) Valid() bool { return c.Rank.valid() && c.Suit.valid() }

func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ouros", "o":
		return SuitOuros, nil
	case "espadas", "e":
		return SuitEspadas, nil
	case "copas", "c":
		return SuitCopas, nil
	case "paus", "p":
		return SuitPaus, nil
	default:
		return 0, fmt.Errorf("invalid suit %q", s)
	}
}

func ParseRank(s string) (Rank, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range rankNames {
		if name == v {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("invalid rank %q", s)
}

// ParseCard reads a rank and a suit in their text forms.
func ParseCard(rank, suit string) (Card, error) {
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: r, Suit: s}, nil
}
