// Package match implements the per-seat play loop: sequencing one
// trump decision and up to 32 card plays per round, observing every
// action through each seat's Inference table before applying it, and
// looping rounds until a team reaches the configured match target.
package match

import (
	"github.com/bran/manille/internal/engine"
	"github.com/bran/manille/internal/players"
	"github.com/bran/manille/internal/rng"
)

// TrickResult records one completed trick for post-round display and
// debugging. engine.Round itself stays slice-free so it remains a
// cheaply copyable value: the searcher clones and discards many
// Rounds per simulation, and a growing history field would put an
// allocation on that path. The match controller accumulates history
// only for the one Round actually being played out loud.
type TrickResult struct {
	Plays  []engine.Play
	Winner uint8
	Score  int
}

// Match composes four seated strategies and loops rounds until a team
// reaches target match points.
type Match struct {
	seats  [4]players.Player
	dealer uint8
	target int
	src    *rng.Source

	scores       [2]int
	round        *engine.Round
	history      []TrickResult
	roundsPlayed int
}

// New creates a Match with the given seating (seats[i] decides for
// player i), starting dealer, and match-point target.
func New(seats [4]players.Player, dealer uint8, target int, src *rng.Source) *Match {
	return &Match{seats: seats, dealer: dealer, target: target, src: src}
}

// Scores returns the cumulative match points per team.
func (m *Match) Scores() [2]int { return m.scores }

// Winner reports the winning team once a team has reached target.
func (m *Match) Winner() (team int, done bool) {
	for t, s := range m.scores {
		if s >= m.target {
			return t, true
		}
	}
	return -1, false
}

// Round returns the round currently (or most recently) in progress.
func (m *Match) Round() *engine.Round { return m.round }

// History returns the completed tricks of the round in progress.
func (m *Match) History() []TrickResult { return m.history }

// RoundsPlayed returns how many rounds this match has completed.
func (m *Match) RoundsPlayed() int { return m.roundsPlayed }

// Run plays rounds until a team reaches target and returns the
// winning team (0 or 1).
func (m *Match) Run() int {
	for {
		m.PlayRound()
		if team, done := m.Winner(); done {
			return team
		}
	}
}

// PlayRound deals (or redeals) a round and plays it to completion: one
// trump decision from the dealer's seat, then card plays from
// whichever seat is on turn, each observed by every seat's Inference
// table before it is applied to the shared Round.
func (m *Match) PlayRound() {
	if m.round == nil {
		m.round = engine.NewRound(m.dealer, m.src)
	} else {
		m.round.SetupForNextRound(m.src)
	}
	m.history = m.history[:0]
	for _, seat := range m.seats {
		seat.StartRound(m.round)
	}

	for !m.round.IsTerminal() {
		mover := m.round.Turn()
		action := m.seats[mover].ChooseAction(m.round)

		m.recordTrickIfCompleting(mover, action)
		for _, seat := range m.seats {
			seat.Observe(m.round, mover, action)
		}
		m.round.ApplyAction(action)
	}

	m.awardRoundScore()
	m.roundsPlayed++
}

// recordTrickIfCompleting appends a TrickResult when action is the
// fourth card of the current trick. It replays the resulting trick on
// a copy rather than reading it back from the Round afterward, since
// ApplyAction immediately clears a completed trick to start the next
// one.
func (m *Match) recordTrickIfCompleting(mover uint8, action engine.Action) {
	if action.Kind != engine.KindPlayCard {
		return
	}
	trick := m.round.CurrentTrick()
	if trick.Size() != 3 {
		return
	}
	trick.Play(action.Card, mover)
	m.history = append(m.history, TrickResult{
		Plays:  trick.Plays(),
		Winner: trick.Winner().Player,
		Score:  trick.Score(),
	})
}

// awardRoundScore converts the round's 0..60 trick-point split into
// 0..30 match points for whichever team scored higher.
func (m *Match) awardRoundScore() {
	roundScores := m.round.Scores()
	winner := 0
	if roundScores[1] > roundScores[0] {
		winner = 1
	}
	if points := roundScores[winner] - 30; points > 0 {
		m.scores[winner] += points
	}
}
