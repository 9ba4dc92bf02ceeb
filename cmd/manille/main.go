package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/bran/manille/internal/config"
	"github.com/bran/manille/internal/match"
	"github.com/bran/manille/internal/obslog"
	"github.com/bran/manille/internal/players"
	"github.com/bran/manille/internal/replui"
	"github.com/bran/manille/internal/rng"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	obslog.Init()

	app := &cli.App{
		Name:    "manille",
		Usage:   "Play Manille, a four-player trick-taking card game",
		Version: "0.1.0",
		Action:  runREPL,
		Commands: []*cli.Command{
			{
				Name:   "bench",
				Usage:  "bench <matches> — measure self-play throughput (MCTS vs MCTS)",
				Action: runBench,
			},
			{
				Name:   "tournament",
				Usage:  "tournament <games> <threads> <think-ms> — MCTS vs Random head-to-head",
				Action: runTournament,
			},
			{
				Name:   "sprt",
				Usage:  "sprt <think-ms> — sequential test of MCTS's win rate vs random",
				Action: runSPRT,
			},
			{
				Name:   "d",
				Usage:  "play an interactive match with one human seat",
				Action: runREPL,
			},
			{
				Name:   "rules",
				Usage:  "print the Manille rules",
				Action: runRules,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "manille: %v\n", err)
		os.Exit(1)
	}
}

func seedFromConfig(cfg config.Config, offset int64) *rng.Source {
	if cfg.RNGSeed == 0 {
		return rng.FromTime()
	}
	return rng.New(cfg.RNGSeed + offset)
}

func mctsSeats(cfg config.Config, src *rng.Source) [4]players.Player {
	var seats [4]players.Player
	for i := range seats {
		seats[i] = players.NewMCTSPlayer(
			fmt.Sprintf("MCTS-%d", i),
			cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src,
		)
	}
	return seats
}

// runBench plays n self-play matches (every seat is an MCTS player
// with the same think-time) on a single goroutine, reporting raw
// throughput of the core independent of search quality.
func runBench(c *cli.Context) error {
	n, err := strconv.Atoi(c.Args().First())
	if err != nil || n <= 0 {
		return fmt.Errorf("bench: expected a positive match count, got %q: %w", c.Args().First(), err)
	}

	cfg := config.Load()
	src := seedFromConfig(cfg, 0)

	start := time.Now()
	totalRounds := 0
	for i := 0; i < n; i++ {
		m := match.New(mctsSeats(cfg, src), uint8(i%4), cfg.MatchTarget, src)
		m.Run()
		totalRounds += m.RoundsPlayed()
	}
	elapsed := time.Since(start)

	fmt.Printf("bench: %d matches in %s (%.2f matches/sec, %.1f rounds/match avg)\n",
		n, elapsed, float64(n)/elapsed.Seconds(), float64(totalRounds)/float64(n))
	return nil
}

// runTournament runs games matches of MCTSPlayer vs RandomPlayer split
// across threads goroutines (one match in flight per goroutine at a
// time; only a counter is shared, under a mutex), and reports the win
// rate with a Wilson confidence interval.
func runTournament(c *cli.Context) error {
	games, threads, thinkMS, err := parseTournamentArgs(c)
	if err != nil {
		return err
	}

	cfg := config.Load()
	cfg.MCTSThink = time.Duration(thinkMS) * time.Millisecond

	var mu sync.Mutex
	wins := 0
	played := 0
	nextMatchID := 0

	var wg sync.WaitGroup
	gamesPerThread := games / threads
	remainder := games % threads

	for t := 0; t < threads; t++ {
		count := gamesPerThread
		if t < remainder {
			count++
		}
		wg.Add(1)
		go func(workerID, count int) {
			defer wg.Done()
			src := seedFromConfig(cfg, int64(workerID)+1)
			for g := 0; g < count; g++ {
				mu.Lock()
				matchID := nextMatchID
				nextMatchID++
				mu.Unlock()
				matchLog := obslog.ForMatch(matchID)

				seats := [4]players.Player{
					players.NewMCTSPlayer("MCTS", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
					players.NewRandomPlayer("Random-1", src),
					players.NewMCTSPlayer("MCTS-partner", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
					players.NewRandomPlayer("Random-2", src),
				}
				m := match.New(seats, uint8(g%4), cfg.MatchTarget, src)
				winningTeam := m.Run()
				matchLog.Debug().
					Int("worker", workerID).
					Int("winning_team", winningTeam).
					Int("rounds", m.RoundsPlayed()).
					Msg("tournament match complete")

				mu.Lock()
				played++
				if winningTeam == 0 {
					wins++
				}
				mu.Unlock()
			}
		}(t, count)
	}
	wg.Wait()

	rate := float64(wins) / float64(played)
	lo, hi := wilsonInterval(wins, played, 1.96)
	fmt.Printf("tournament: MCTS won %d/%d (%.1f%%), 95%% CI [%.1f%%, %.1f%%]\n",
		wins, played, rate*100, lo*100, hi*100)
	return nil
}

func parseTournamentArgs(c *cli.Context) (games, threads, thinkMS int, err error) {
	args := c.Args()
	if args.Len() < 3 {
		return 0, 0, 0, fmt.Errorf("tournament: usage: tournament <games> <threads> <think-ms>")
	}
	games, err = strconv.Atoi(args.Get(0))
	if err != nil || games <= 0 {
		return 0, 0, 0, fmt.Errorf("tournament: invalid games %q", args.Get(0))
	}
	threads, err = strconv.Atoi(args.Get(1))
	if err != nil || threads <= 0 {
		return 0, 0, 0, fmt.Errorf("tournament: invalid threads %q", args.Get(1))
	}
	thinkMS, err = strconv.Atoi(args.Get(2))
	if err != nil || thinkMS <= 0 {
		return 0, 0, 0, fmt.Errorf("tournament: invalid think-ms %q", args.Get(2))
	}
	return games, threads, thinkMS, nil
}

// wilsonInterval returns the Wilson score interval for wins/n
// successes, at the given z-score (1.96 for a 95% interval).
func wilsonInterval(wins, n int, z float64) (lo, hi float64) {
	if n == 0 {
		return 0, 0
	}
	p := float64(wins) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := p + z*z/(2*nf)
	margin := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf))
	return (center - margin) / denom, (center + margin) / denom
}

// sprtHypothesisP0, sprtHypothesisP1 are Wald's SPRT null and
// alternative win-rate hypotheses; sprtAlpha/sprtBeta are the Type
// I/II error rates the accept/reject bounds are derived from.
const (
	sprtHypothesisP0 = 0.5
	sprtHypothesisP1 = 0.55
	sprtAlpha        = 0.05
	sprtBeta         = 0.05
	sprtMaxGames     = 100_000
)

// runSPRT runs a sequential probability ratio test: MCTS vs Random
// matches, one at a time, accumulating the log-likelihood ratio of
// H1 (win rate sprtHypothesisP1) over H0 (win rate sprtHypothesisP0)
// until it crosses an accept or reject bound.
func runSPRT(c *cli.Context) error {
	thinkMS, err := strconv.Atoi(c.Args().First())
	if err != nil || thinkMS <= 0 {
		return fmt.Errorf("sprt: expected a positive think-ms, got %q: %w", c.Args().First(), err)
	}

	cfg := config.Load()
	cfg.MCTSThink = time.Duration(thinkMS) * time.Millisecond
	src := seedFromConfig(cfg, 0)

	upper := math.Log((1 - sprtBeta) / sprtAlpha)
	lower := math.Log(sprtBeta / (1 - sprtAlpha))
	llrWin := math.Log(sprtHypothesisP1 / sprtHypothesisP0)
	llrLoss := math.Log((1 - sprtHypothesisP1) / (1 - sprtHypothesisP0))

	llr := 0.0
	games := 0
	for games < sprtMaxGames {
		seats := [4]players.Player{
			players.NewMCTSPlayer("MCTS", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
			players.NewRandomPlayer("Random-1", src),
			players.NewMCTSPlayer("MCTS-partner", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
			players.NewRandomPlayer("Random-2", src),
		}
		m := match.New(seats, uint8(games%4), cfg.MatchTarget, src)
		games++

		if m.Run() == 0 {
			llr += llrWin
		} else {
			llr += llrLoss
		}

		if llr >= upper {
			fmt.Printf("sprt: accept H1 (p=%.2f) after %d games, llr=%.3f\n", sprtHypothesisP1, games, llr)
			return nil
		}
		if llr <= lower {
			fmt.Printf("sprt: accept H0 (p=%.2f) after %d games, llr=%.3f\n", sprtHypothesisP0, games, llr)
			return nil
		}
	}
	fmt.Printf("sprt: inconclusive after %d games, llr=%.3f\n", games, llr)
	return nil
}

// runREPL plays one interactive match: seat 0 is human, the other
// three are MCTS.
func runREPL(c *cli.Context) error {
	if err := replui.ShowWelcome(); err != nil {
		log.Warn().Err(err).Msg("could not show splash screen, continuing without it")
	}

	cfg := config.Load()
	src := seedFromConfig(cfg, 0)

	seats := [4]players.Player{
		players.NewHumanPlayer("You", os.Stdin, os.Stdout),
		players.NewMCTSPlayer("West", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
		players.NewMCTSPlayer("North", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
		players.NewMCTSPlayer("East", cfg.MCTSThink, cfg.MCTSExploration, cfg.MCTSArenaCapacity, src),
	}

	m := match.New(seats, 0, cfg.MatchTarget, src)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for {
		round := m.Round()
		if round != nil {
			fmt.Fprintln(out, replui.Header(m.Scores(), round.Dealer(), round.Phase().String()))
		}
		m.PlayRound()
		round = m.Round()
		fmt.Fprintf(out, "Round over. Scores: Team A %d — Team B %d\n", m.Scores()[0], m.Scores()[1])
		out.Flush()

		if winner, done := m.Winner(); done {
			fmt.Fprintf(out, "\nMatch over! Team %s wins.\n", teamName(winner))
			return nil
		}
	}
}

func teamName(team int) string {
	if team == 0 {
		return "A (seats 0,2)"
	}
	return "B (seats 1,3)"
}

func runRules(c *cli.Context) error {
	fmt.Print(`
MANILLE RULES
=============

Manille is a trick-taking card game for four players in two
partnerships: seats 0 & 2 versus seats 1 & 3.

THE DECK
--------
32 cards: 7, 8, 9, J, Q, K, A, 10 of each of four suits, in that
strength order — note that 10 outranks Ace.

DEALING
-------
Each player receives 8 cards. The dealer picks trump (any suit they
hold at least one card of, or no-trump); the player left of the
dealer leads the first trick.

TRUMP AND TRICK-TAKING
-----------------------
A trump beats any card of another suit. Within a suit, higher
strength wins. The first card played sets the suit to follow.

You must follow the suit led if you can. If your team is not
currently winning the trick, you must overtake when possible: beat
the winning card with a higher card of the winning suit, or, when
you cannot follow suit and the winning card isn't a trump, play any
trump. When no overtaking play exists, any card that follows suit
(or any card at all, if you cannot follow) is legal.

SCORING
-------
Card points: 7/8/9 are worth 0, J=1, Q=2, K=3, A=4, 10=5. A full
32-card round totals 60 points split between the two teams by trick.

At the end of a round, the team with more trick points scores
(their points − 30) match points; the other team scores none.

MATCH
-----
Play continues, dealer rotating left each round, until a team's
cumulative match points reach the match target (default 61,
configurable via the MATCH_TARGET environment variable).
`)
	return nil
}
