package game

// Manilhas is the trump set of a hand: the four cards sharing Rank.
type Manilhas struct {
	Rank Rank
}

// ManilhasFor derives the trumps from the turned card: the rank after the
// vira's, wrapping from 3 back to 4.
func ManilhasFor(vira Card) Manilhas {
	return Manilhas{Rank: Rank((int(vira.Rank) + 1) % numRanks)}
}

// Cards lists the trumps from weakest (Ouros) to strongest (Paus, the zap).
func (m Manilhas) Cards() []Card {
	out := make([]Card, 0, numSuits)
	for s := SuitOuros; s <= SuitPaus; s++ {
		out = append(out, Card{Rank: m.Rank, Suit: s})
	}
	return out
}

func (m Manilhas) Contains(c Card) bool {
	return c.Valid() && c.Rank == m.Rank
}

// Strength orders cards for one hand. Plain cards score their rank index
// (0..9) regardless of suit; manilhas score above every plain card and are
// ordered by suit.
func Strength(c Card, m Manilhas) int {
	if m.Contains(c) {
		return numRanks + int(c.Suit)
	}
	return int(c.Rank)
}

// Compare reports >0 when a beats b, <0 when b beats a and 0 for a tie.
func Compare(a, b Card, m Manilhas) int {
	sa, sb := Strength(a, m), Strength(b, m)
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	default:
		return 0
	}
}
