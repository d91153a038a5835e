package opponent

import (
	"math/rand"
	"testing"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/othello"
)

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{Random, Simple, SimpleVariant} {
		parsed, err := ParseKind(kind.String())
		if err != nil {
			t.Fatal(err)
		}

		if parsed != kind {
			t.Errorf("expected %v, got %v", kind, parsed)
		}

		p := New(kind, othello.Rules{}, rand.New(rand.NewSource(1)))
		if p.Name() != kind.String() {
			t.Errorf("expected policy name %q, got %q", kind.String(), p.Name())
		}
	}

	if _, err := ParseKind("HumanPlayer"); err == nil {
		t.Error("expected error for unknown opponent")
	}
}

func TestPolicies_PlayLegalMoves(t *testing.T) {
	rules := othello.Rules{}
	rng := rand.New(rand.NewSource(123))
	for _, kind := range []Kind{Random, Simple, SimpleVariant} {
		p := New(kind, rules, rng)
		b := rules.Initial()
		player := qlearn.Black
		for !rules.IsTerminal(b) {
			d, err := p.DecideMove(b, player)
			if err != nil {
				t.Fatal(err)
			}

			legal := rules.LegalMoves(b, player)
			if m, ok := d.Move(); ok {
				if b, err = rules.Apply(b, m, player); err != nil {
					t.Fatalf("%v played illegal move %v: %v", p.Name(), m, err)
				}
			} else if len(legal) > 0 {
				t.Fatalf("%v passed with legal moves %v", p.Name(), legal)
			}

			player = player.Opponent()
		}
	}
}

func TestSimplePolicy_TakesCorner(t *testing.T) {
	var cells [othello.Size][othello.Size]int8
	cells[1][1] = -1
	cells[1][3] = -1
	cells[2][2] = 1
	b := othello.FromCells(cells)

	p := NewSimplePolicy(othello.Rules{}, rand.New(rand.NewSource(1)))
	for i := 0; i < 10; i++ {
		d, err := p.DecideMove(b, qlearn.Black)
		if err != nil {
			t.Fatal(err)
		}

		if m, _ := d.Move(); m != (qlearn.Move{Row: 0, Col: 0}) {
			t.Errorf("expected corner (0, 0), got %v", d)
		}
	}
}

func TestSimplePolicy_PassesWithoutMoves(t *testing.T) {
	var cells [othello.Size][othello.Size]int8
	cells[0][0] = 1
	b := othello.FromCells(cells)

	p := NewSimplePolicy(othello.Rules{}, rand.New(rand.NewSource(1)))
	d, err := p.DecideMove(b, qlearn.White)
	if err != nil {
		t.Fatal(err)
	}

	if !d.IsPass() {
		t.Errorf("expected pass, got %v", d)
	}
}

func TestSimpleVariantPolicy_Perturbation(t *testing.T) {
	p := NewSimpleVariantPolicy(othello.Rules{}, rand.New(rand.NewSource(7)), DefaultRandomFactor)
	for i, row := range positionValues {
		for j, v := range row {
			if d := p.values[i][j] - v; d < -maxPerturbation || d > maxPerturbation {
				t.Errorf("cell (%d, %d) perturbed by %d", i, j, d)
			}
		}
	}

	// The shared table is left untouched.
	if positionValues[0][0] != 30 {
		t.Errorf("position values were modified: %v", positionValues[0])
	}
}
