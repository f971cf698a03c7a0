package game

import "testing"

func TestManilhasForEveryVira(t *testing.T) {
	for _, vira := range NewDeck() {
		m := ManilhasFor(vira)
		want := Rank((int(vira.Rank) + 1) % 10)
		cards := m.Cards()
		if len(cards) != 4 {
			t.Fatalf("vira %s: %d manilhas", vira, len(cards))
		}
		suits := map[Suit]bool{}
		for _, c := range cards {
			if c.Rank != want {
				t.Fatalf("vira %s: manilha %s, want rank %s", vira, c, want)
			}
			suits[c.Suit] = true
			if !m.Contains(c) {
				t.Fatalf("vira %s: Contains(%s) false", vira, c)
			}
		}
		if len(suits) != 4 {
			t.Fatalf("vira %s: manilhas not one per suit", vira)
		}
	}
}

func TestCompareIsAntisymmetric(t *testing.T) {
	deck := NewDeck()
	for _, vira := range deck {
		m := ManilhasFor(vira)
		for _, a := range deck {
			if Compare(a, a, m) != 0 {
				t.Fatalf("vira %s: %s does not tie itself", vira, a)
			}
			for _, b := range deck {
				if Compare(a, b, m) != -Compare(b, a, m) {
					t.Fatalf("vira %s: compare(%s,%s) not antisymmetric", vira, a, b)
				}
			}
		}
	}
}

func TestManilhaBeatsEveryPlainCard(t *testing.T) {
	deck := NewDeck()
	for _, vira := range deck {
		m := ManilhasFor(vira)
		for _, trump := range m.Cards() {
			for _, c := range deck {
				if m.Contains(c) {
					continue
				}
				if Compare(trump, c, m) <= 0 {
					t.Fatalf("vira %s: manilha %s did not beat %s", vira, trump, c)
				}
			}
		}
	}
}

func TestManilhaSuitOrder(t *testing.T) {
	m := ManilhasFor(card(RankK, SuitOuros)) // manilhas are aces
	order := []Suit{SuitOuros, SuitEspadas, SuitCopas, SuitPaus}
	for i := 1; i < len(order); i++ {
		lo, hi := card(RankA, order[i-1]), card(RankA, order[i])
		if Compare(hi, lo, m) <= 0 {
			t.Fatalf("%s should beat %s", hi, lo)
		}
	}
}

func TestPlainCardsTieAcrossSuits(t *testing.T) {
	m := ManilhasFor(card(RankK, SuitOuros))
	if got := Compare(card(Rank3, SuitOuros), card(Rank3, SuitPaus), m); got != 0 {
		t.Fatalf("3-Ouros vs 3-Paus: got %d, want tie", got)
	}
	if got := Compare(card(Rank3, SuitOuros), card(Rank2, SuitPaus), m); got <= 0 {
		t.Fatalf("3 should beat 2, got %d", got)
	}
	if got := Compare(card(Rank4, SuitPaus), card(Rank5, SuitOuros), m); got >= 0 {
		t.Fatalf("5 should beat 4, got %d", got)
	}
}

func TestManilhaBeatsThree(t *testing.T) {
	m := ManilhasFor(card(Rank6, SuitPaus))
	for _, c := range m.Cards() {
		if c.Rank != Rank7 {
			t.Fatalf("vira 6-Paus: manilha %s, want 7s", c)
		}
	}
	if got := Compare(card(Rank3, SuitOuros), card(Rank7, SuitEspadas), m); got >= 0 {
		t.Fatalf("7-Espadas should beat 3-Ouros, got %d", got)
	}
}

func TestManilhaWrapsAround(t *testing.T) {
	m := ManilhasFor(card(Rank3, SuitCopas))
	if m.Rank != Rank4 {
		t.Fatalf("vira 3: manilha rank %s, want 4", m.Rank)
	}
	if got := Compare(card(Rank4, SuitPaus), card(Rank4, SuitCopas), m); got <= 0 {
		t.Fatalf("4-Paus should beat 4-Copas, got %d", got)
	}
}
