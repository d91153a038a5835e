package opponent

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

// Kind selects one of the scripted opponents.
type Kind int

const (
	Random Kind = iota
	Simple
	SimpleVariant
)

var kindNames = [...]string{
	Random:        "RandomAI",
	Simple:        "SimpleAI",
	SimpleVariant: "SimpleAIVariant",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}

	return 0, errors.Errorf("unknown opponent: %q", name)
}

// New returns a new opponent of the given kind. Each call to New for
// SimpleVariant draws a fresh perturbation of the position values.
func New(kind Kind, rules qlearn.Rules, rng *rand.Rand) qlearn.Policy {
	switch kind {
	case Random:
		return NewRandomPolicy(rules, rng)
	case Simple:
		return NewSimplePolicy(rules, rng)
	case SimpleVariant:
		return NewSimpleVariantPolicy(rules, rng, DefaultRandomFactor)
	default:
		panic(fmt.Errorf("unknown opponent kind: %v", kind))
	}
}
