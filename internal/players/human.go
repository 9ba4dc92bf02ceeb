package players

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bran/manille/internal/engine"
)

// HumanPlayer reads a chosen action index from a line-based input,
// for the CLI's interactive REPL. It is the only Player implementation
// that can fail mid-decision (bad input); rather than surfacing an
// error through the Player interface, it reprompts until it parses a
// valid in-range index, or takes the first legal action once input
// runs out. The engine panics on illegal actions, so bad
// input has to be resolved here, before ChooseAction returns.
type HumanPlayer struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

// NewHumanPlayer builds a HumanPlayer prompting on out and reading
// from in (typically os.Stdin / os.Stdout).
func NewHumanPlayer(name string, in io.Reader, out io.Writer) *HumanPlayer {
	return &HumanPlayer{name: name, in: bufio.NewScanner(in), out: out}
}

func (p *HumanPlayer) Name() string { return p.name }
func (p *HumanPlayer) Kind() Kind   { return KindHuman }

// StartRound is a no-op: the human tracks their own state.
func (p *HumanPlayer) StartRound(round *engine.Round) {}

func (p *HumanPlayer) ChooseAction(round *engine.Round) engine.Action {
	actions := round.PossibleActions().Actions()
	fmt.Fprintf(p.out, "\n%s, your hand: %s\n", p.name, handString(round.Hand(round.Turn())))
	fmt.Fprintln(p.out, "Choose an action:")
	for i, a := range actions {
		fmt.Fprintf(p.out, "  [%d] %s\n", i, a)
	}

	for {
		fmt.Fprint(p.out, "> ")
		if !p.in.Scan() {
			// Input exhausted (e.g. piped EOF in a scripted run): fall
			// back to the first legal action rather than hanging.
			return actions[0]
		}
		idx, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		if err != nil || idx < 0 || idx >= len(actions) {
			fmt.Fprintf(p.out, "enter a number between 0 and %d\n", len(actions)-1)
			continue
		}
		return actions[idx]
	}
}

func (p *HumanPlayer) Observe(round *engine.Round, actor uint8, action engine.Action) {}

func handString(hand engine.Stack) string {
	var b strings.Builder
	first := true
	for c := engine.Card(0); c < engine.NumCards; c++ {
		if !hand.Has(c) {
			continue
		}
		if !first {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
		first = false
	}
	return b.String()
}
