package game

import (
	"fmt"
	"math/rand"
)

const DeckSize = numSuits * numRanks

// NewDeck returns the 40 cards in rank-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := Rank4; r <= Rank3; r++ {
		for s := SuitOuros; s <= SuitPaus; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle permutes deck in place. A seeded rng gives a reproducible order.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Cut lifts the top `at` cards and puts them under the rest.
func Cut(deck []Card, at int) []Card {
	if len(deck) == 0 {
		return deck
	}
	at %= len(deck)
	if at < 0 {
		at += len(deck)
	}
	out := make([]Card, 0, len(deck))
	out = append(out, deck[at:]...)
	return append(out, deck[:at]...)
}

// Deal hands out handSize cards per player from the top of the deck and turns
// the bottom card as the vira. The rest of the deck is not used.
func Deal(deck []Card, players, handSize int) ([][]Card, Card, error) {
	need := players*handSize + 1
	if len(deck) < need {
		return nil, Card{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCards, len(deck), need)
	}
	hands := make([][]Card, players)
	idx := 0
	for p := 0; p < players; p++ {
		hands[p] = append([]Card(nil), deck[idx:idx+handSize]...)
		idx += handSize
	}
	return hands, deck[len(deck)-1], nil
}
