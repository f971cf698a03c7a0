// Package table hosts one match and is its only writer: every intent is
// queued and applied in order on the table's own goroutine.
package table

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/truco_online/internal/game"
)

var ErrClosed = errors.New("table closed")

// StateListener receives one view per occupied seat after every change. It
// runs on the table goroutine and must not block.
type StateListener func(views []game.View)

// MatchOverListener is told which team reached the target score.
type MatchOverListener func(team int, scores [game.Teams]int)

type intent struct {
	apply func() error
	reply chan error
}

type Table struct {
	log    *zap.Logger
	engine game.Engine

	nextHandDelay time.Duration
	rematchDelay  time.Duration

	intents chan intent
	done    chan struct{}

	mu          sync.Mutex
	onState     []StateListener
	onMatchOver []MatchOverListener

	// owned by the Run goroutine
	pending *time.Timer
}

type Options struct {
	NextHandDelay time.Duration
	// RematchDelay starts a new match after one ends. Zero waits for
	// a seat to change instead.
	RematchDelay time.Duration
}

func New(engine game.Engine, log *zap.Logger, opts Options) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	return &Table{
		log:           log,
		engine:        engine,
		nextHandDelay: opts.NextHandDelay,
		rematchDelay:  opts.RematchDelay,
		intents:       make(chan intent),
		done:          make(chan struct{}),
	}
}

func (t *Table) OnStateChanged(fn StateListener) {
	t.mu.Lock()
	t.onState = append(t.onState, fn)
	t.mu.Unlock()
}

func (t *Table) OnMatchOver(fn MatchOverListener) {
	t.mu.Lock()
	t.onMatchOver = append(t.onMatchOver, fn)
	t.mu.Unlock()
}

// Run applies intents until ctx is done.
func (t *Table) Run(ctx context.Context) error {
	defer close(t.done)
	defer t.cancelPending()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-t.intents:
			in.reply <- in.apply()
		}
	}
}

// do queues fn for the table goroutine and waits for its result.
func (t *Table) do(ctx context.Context, fn func() error) error {
	in := intent{apply: fn, reply: make(chan error, 1)}
	select {
	case t.intents <- in:
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return ErrClosed
	}
	select {
	case err := <-in.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Join seats a player. Filling the second seat deals the first hand.
// seated, when not nil, runs on the table goroutine before the new state is
// published.
func (t *Table) Join(ctx context.Context, playerID, name string, seated func(seat int)) (int, error) {
	seat := game.NoSeat
	err := t.do(ctx, func() error {
		s, err := t.engine.Join(playerID, name)
		if err != nil {
			return err
		}
		seat = s
		if seated != nil {
			seated(s)
		}
		t.log.Info("player joined", zap.String("player", playerID), zap.Int("seat", s), zap.String("phase", string(t.engine.Phase())))
		t.publish()
		return nil
	})
	return seat, err
}

// Leave vacates a seat, ending the match and any pending deal.
func (t *Table) Leave(ctx context.Context, seat int) error {
	return t.do(ctx, func() error {
		if err := t.engine.Leave(seat); err != nil {
			return err
		}
		t.cancelPending()
		t.log.Info("player left, match terminated", zap.Int("seat", seat))
		t.publish()
		return nil
	})
}

func (t *Table) Rename(ctx context.Context, seat int, name string) error {
	return t.do(ctx, func() error {
		if err := t.engine.Rename(seat, name); err != nil {
			return err
		}
		t.publish()
		return nil
	})
}

// PlayCard applies one play intent. Validation errors leave the match
// untouched and are only returned to the caller.
func (t *Table) PlayCard(ctx context.Context, seat int, c game.Card) error {
	return t.do(ctx, func() error {
		err := t.engine.PlayCard(seat, c)
		switch {
		case errors.Is(err, game.ErrLogicInvariantViolation):
			t.log.Error("hand aborted", zap.Int("hand", t.engine.HandNumber()), zap.Error(err))
			t.publish()
			if derr := t.engine.StartNextHand(); derr != nil {
				t.log.Error("redeal after abort failed", zap.Error(derr))
			} else {
				t.publish()
			}
			return err
		case err != nil:
			t.log.Debug("play rejected", zap.Int("seat", seat), zap.Stringer("card", c), zap.Error(err))
			return err
		}
		t.log.Debug("card played", zap.Int("seat", seat), zap.Stringer("card", c))
		t.publish()
		t.afterPlay()
		return nil
	})
}

// View returns the projection for seat.
func (t *Table) View(ctx context.Context, seat int) (game.View, error) {
	var v game.View
	err := t.do(ctx, func() error {
		v = t.engine.View(seat)
		return nil
	})
	return v, err
}

func (t *Table) afterPlay() {
	switch t.engine.Phase() {
	case game.PhaseScoring:
		t.log.Info("hand complete", zap.Int("hand", t.engine.HandNumber()), zap.Ints("scores", scoreSlice(t.engine.Scores())))
		t.schedule(t.nextHandDelay, game.PhaseScoring, t.engine.StartNextHand)
	case game.PhaseMatchOver:
		team, scores := t.engine.Winner(), t.engine.Scores()
		t.log.Info("match over", zap.Int("team", team), zap.Ints("scores", scoreSlice(scores)))
		for _, fn := range t.matchOverListeners() {
			fn(team, scores)
		}
		if t.rematchDelay > 0 {
			t.schedule(t.rematchDelay, game.PhaseMatchOver, t.engine.Rematch)
		}
	}
}

// schedule runs next after delay unless the table moved on in the meantime.
func (t *Table) schedule(delay time.Duration, phase game.Phase, next func() error) {
	t.cancelPending()
	hand := t.engine.HandNumber()
	t.pending = time.AfterFunc(delay, func() {
		err := t.do(context.Background(), func() error {
			if t.engine.Phase() != phase || t.engine.HandNumber() != hand {
				return nil
			}
			t.pending = nil
			if err := next(); err != nil {
				return err
			}
			t.log.Info("hand dealt", zap.Int("hand", t.engine.HandNumber()))
			t.publish()
			return nil
		})
		if err != nil && !errors.Is(err, ErrClosed) {
			t.log.Error("next hand", zap.Error(err))
		}
	})
}

func (t *Table) cancelPending() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func (t *Table) publish() {
	seated := t.engine.Seated()
	views := make([]game.View, 0, len(seated))
	for _, seat := range seated {
		views = append(views, t.engine.View(seat))
	}
	t.mu.Lock()
	listeners := append([]StateListener(nil), t.onState...)
	t.mu.Unlock()
	for _, fn := range listeners {
		fn(views)
	}
}

func (t *Table) matchOverListeners() []MatchOverListener {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]MatchOverListener(nil), t.onMatchOver...)
}

func scoreSlice(s [game.Teams]int) []int { return s[:] }
