package game

import "slices"

type PlayerView struct {
	Seat int
	ID   string
	Name string
	Team int
	Hand []Card // HiddenCard entries unless Seat is the viewer
}

// View is the state one seat is allowed to see.
type View struct {
	MatchID     string
	Viewer      int
	Phase       Phase
	Players     []PlayerView
	Scores      [Teams]int
	TargetScore int
	MatchWinner int

	HandNumber int
	Vira       *Card
	Manilhas   []Card
	Trick      int
	HandValue  int
	Leader     int
	Turn       int
	Table      []Play
	Results    []TrickResult
	HandWinner int
}

// View projects the match for viewer. Other players' cards are replaced by
// HiddenCard, keeping the count; NoSeat sees no hand at all.
func (m *Match) View(viewer int) View {
	v := View{
		MatchID:     m.id,
		Viewer:      viewer,
		Phase:       m.phase,
		Scores:      m.scores,
		TargetScore: m.rules.TargetScore,
		MatchWinner: m.winner,
		HandNumber:  m.hand.Number,
		Trick:       m.hand.Trick,
		HandValue:   m.hand.Value,
		Leader:      m.hand.Leader,
		Turn:        NoSeat,
		Table:       slices.Clone(m.hand.Table),
		HandWinner:  m.hand.Winner,
	}
	if m.phase.InTrick() {
		v.Turn = m.hand.Turn
	}
	if m.hand.Number > 0 {
		vira := m.hand.Vira
		v.Vira = &vira
		v.Manilhas = m.hand.Manilhas.Cards()
	}
	for _, r := range m.hand.Results {
		v.Results = append(v.Results, TrickResult{Winner: r.Winner, Plays: slices.Clone(r.Plays)})
	}

	for seat, p := range m.players {
		if p == nil {
			continue
		}
		pv := PlayerView{Seat: seat, ID: p.ID, Name: p.Name, Team: TeamOf(seat)}
		if seat == viewer {
			pv.Hand = slices.Clone(p.Hand)
		} else {
			pv.Hand = make([]Card, len(p.Hand))
			for i := range pv.Hand {
				pv.Hand[i] = HiddenCard
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
