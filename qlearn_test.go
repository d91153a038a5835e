package qlearn_test

import (
	"math/rand"
	"testing"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/othello"
)

func newAgent(t *testing.T, params qlearn.Params) *qlearn.Agent {
	vs, err := qlearn.NewValueStore(qlearn.NewMemTable())
	if err != nil {
		t.Fatal(err)
	}

	return qlearn.NewAgent(othello.Rules{}, vs, params, rand.New(rand.NewSource(1)))
}

func TestAgent_Greedy(t *testing.T) {
	params := qlearn.DefaultParams()
	params.Epsilon = 0
	agent := newAgent(t, params)
	rules := othello.Rules{}
	b := rules.Initial()

	best := qlearn.Move{Row: 3, Col: 4}
	after, err := rules.Apply(b, best, qlearn.Black)
	if err != nil {
		t.Fatal(err)
	}

	if err := agent.Values().Set(qlearn.Encode(after), 1.0); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		d, err := agent.DecideMove(b, qlearn.Black)
		if err != nil {
			t.Fatal(err)
		}

		if m, ok := d.Move(); !ok || m != best {
			t.Errorf("expected %v, got %v", best, d)
		}
	}
}

func TestAgent_TiesAreRandom(t *testing.T) {
	params := qlearn.DefaultParams()
	params.Epsilon = 0
	agent := newAgent(t, params)
	b := othello.Rules{}.Initial()

	seen := make(map[qlearn.Move]bool)
	for i := 0; i < 200; i++ {
		d, err := agent.DecideMove(b, qlearn.Black)
		if err != nil {
			t.Fatal(err)
		}

		m, _ := d.Move()
		seen[m] = true
	}

	// All four opening moves have value 0.
	if len(seen) != 4 {
		t.Errorf("expected all 4 tied moves to be played, got %v", seen)
	}
}

func TestAgent_Explores(t *testing.T) {
	params := qlearn.DefaultParams()
	params.Epsilon = 1
	agent := newAgent(t, params)
	rules := othello.Rules{}
	b := rules.Initial()
	for i := 0; i < 50; i++ {
		d, err := agent.DecideMove(b, qlearn.White)
		if err != nil {
			t.Fatal(err)
		}

		m, ok := d.Move()
		if !ok {
			t.Fatal("agent passed with legal moves")
		}

		if _, err := rules.Apply(b, m, qlearn.White); err != nil {
			t.Errorf("exploring agent played illegal move: %v", err)
		}
	}
}

func TestAgent_Pass(t *testing.T) {
	var cells [othello.Size][othello.Size]int8
	cells[0][0] = 1
	agent := newAgent(t, qlearn.DefaultParams())
	d, err := agent.DecideMove(othello.FromCells(cells), qlearn.White)
	if err != nil {
		t.Fatal(err)
	}

	if !d.IsPass() {
		t.Errorf("expected pass, got %v", d)
	}
}

func TestRewardShaper_Terminal(t *testing.T) {
	rules := othello.Rules{}
	shaper := qlearn.NewRewardShaper(rules, qlearn.DefaultParams())

	var cells [othello.Size][othello.Size]int8
	cells[0][0] = 1
	cells[0][5] = 1
	cells[5][5] = -1
	won := othello.FromCells(cells)
	if r := shaper.Reward(won, qlearn.Black); r != 100 {
		t.Errorf("expected 100 for the winner, got %v", r)
	}

	if r := shaper.Reward(won, qlearn.White); r != -100 {
		t.Errorf("expected -100 for the loser, got %v", r)
	}

	cells[0][5] = 0
	drawn := othello.FromCells(cells)
	if r := shaper.Reward(drawn, qlearn.Black); r != 0 {
		t.Errorf("expected 0 for a draw, got %v", r)
	}
}

func TestRewardShaper_Intermediate(t *testing.T) {
	rules := othello.Rules{}
	params := qlearn.DefaultParams()
	params.IntermediateRewardScale = 0.5
	shaper := qlearn.NewRewardShaper(rules, params)

	b, err := rules.Apply(rules.Initial(), qlearn.Move{Row: 1, Col: 2}, qlearn.Black)
	if err != nil {
		t.Fatal(err)
	}

	black := shaper.Reward(b, qlearn.Black)
	white := shaper.Reward(b, qlearn.White)
	if black != -white {
		t.Errorf("intermediate rewards are not zero-sum: %v vs %v", black, white)
	}

	// No corners are held, so only mobility counts.
	own := len(rules.LegalMoves(b, qlearn.Black))
	opp := len(rules.LegalMoves(b, qlearn.White))
	expected := 2 * float64(own-opp) * params.LegalMoveWeight * params.IntermediateRewardScale
	if black != expected {
		t.Errorf("expected %v, got %v", expected, black)
	}
}

func TestEpisode(t *testing.T) {
	rules := othello.Rules{}
	b0 := rules.Initial()
	b1, _ := rules.Apply(b0, qlearn.Move{Row: 1, Col: 2}, qlearn.Black)
	b2, _ := rules.Apply(b1, qlearn.Move{Row: 1, Col: 1}, qlearn.White)
	b3, _ := rules.Apply(b2, qlearn.Move{Row: 2, Col: 1}, qlearn.Black)

	var ep qlearn.Episode
	ep.Record(b0, b1, 1, false)
	ep.Record(b2, b3, 2, false)
	ep.Finish(b3, 100)

	transitions := ep.Transitions()
	if ep.Len() != 3 {
		t.Fatalf("expected 3 transitions, got %v", transitions)
	}

	// Transitions chain the agent's successive positions.
	if transitions[0].State != qlearn.Encode(b0) || transitions[0].NextState != qlearn.Encode(b1) {
		t.Errorf("unexpected first transition: %+v", transitions[0])
	}

	if transitions[1].State != qlearn.Encode(b1) || transitions[1].NextState != qlearn.Encode(b3) {
		t.Errorf("unexpected second transition: %+v", transitions[1])
	}

	last := transitions[2]
	if !last.Terminal || last.Reward != 100 || last.State != qlearn.Encode(b3) {
		t.Errorf("unexpected final transition: %+v", last)
	}

	// Finish does nothing if the agent's last move ended the game.
	var done qlearn.Episode
	done.Record(b0, b1, 100, true)
	done.Finish(b1, 100)
	if done.Len() != 1 {
		t.Errorf("expected 1 transition, got %d", done.Len())
	}
}
