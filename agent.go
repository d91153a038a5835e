package qlearn

import (
	"math"
	"math/rand"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// AgentName is the Policy name of the learning Agent.
const AgentName = "QLearningAgent"

// tieTolerance is the absolute difference below which two state values
// are considered equal when choosing the best move.
const tieTolerance = 0.0001

// Agent is an epsilon-greedy Policy that learns state values by
// one-step temporal-difference updates over a ReplayBuffer.
//
// Agent is not safe for concurrent use; its ValueStore is.
type Agent struct {
	rules  Rules
	values *ValueStore
	params Params
	buffer *ReplayBuffer
	rng    *rand.Rand

	epsilon float64
}

// NewAgent returns a new Agent with epsilon initialized to params.Epsilon.
func NewAgent(rules Rules, values *ValueStore, params Params, rng *rand.Rand) *Agent {
	return &Agent{
		rules:   rules,
		values:  values,
		params:  params,
		buffer:  NewReplayBuffer(params.ReplayBufferSize),
		rng:     rng,
		epsilon: params.Epsilon,
	}
}

// Name implements Policy.
func (a *Agent) Name() string {
	return AgentName
}

// Values returns the ValueStore the agent learns into.
func (a *Agent) Values() *ValueStore {
	return a.values
}

// Buffer returns the agent's ReplayBuffer.
func (a *Agent) Buffer() *ReplayBuffer {
	return a.buffer
}

// LearningRate returns the configured base learning rate.
func (a *Agent) LearningRate() float64 {
	return a.params.LearningRate
}

// Epsilon returns the current exploration rate.
func (a *Agent) Epsilon() float64 {
	return a.epsilon
}

// SetEpsilon overwrites the current exploration rate.
func (a *Agent) SetEpsilon(epsilon float64) {
	a.epsilon = epsilon
}

// UpdateEpsilon multiplies epsilon by the given factor, never letting it
// fall below MinEpsilon.
func (a *Agent) UpdateEpsilon(factor float64) {
	a.epsilon = math.Max(a.epsilon*factor, MinEpsilon)
}

// DecideMove implements Policy.
//
// With probability epsilon a uniformly random legal move is played.
// Otherwise the move leading to the position of highest value is played,
// breaking ties uniformly at random.
func (a *Agent) DecideMove(b Board, p Player) (Decision, error) {
	moves := a.rules.LegalMoves(b, p)
	if len(moves) == 0 {
		return Pass(), nil
	}

	if a.rng.Float64() < a.epsilon {
		return Play(moves[a.rng.Intn(len(moves))]), nil
	}

	maxQ := math.Inf(-1)
	bestMoves := make([]Move, 0, len(moves))
	for _, m := range moves {
		next, err := a.rules.Apply(b, m, p)
		if err != nil {
			return Pass(), errors.Wrapf(err, "error simulating move %v", m)
		}

		q := a.values.Get(Encode(next))
		if q > maxQ {
			maxQ = q
			bestMoves = append(bestMoves[:0], m)
		} else if math.Abs(q-maxQ) < tieTolerance {
			bestMoves = append(bestMoves, m)
		}
	}

	return Play(bestMoves[a.rng.Intn(len(bestMoves))]), nil
}

// BatchUpdate adds the given transitions to the replay buffer and, once it
// holds at least BatchSize transitions, updates the values of a batch of
// transitions sampled uniformly with replacement.
//
// Having too few transitions to sample a batch is not an error.
func (a *Agent) BatchUpdate(transitions []Transition, learningRate float64) error {
	for _, t := range transitions {
		a.buffer.Add(t)
	}

	n := a.buffer.Len()
	if n < a.params.BatchSize {
		glog.V(1).Infof("Replay buffer has %d < %d transitions, skipping update", n, a.params.BatchSize)
		return nil
	}

	batch := make([]Transition, a.params.BatchSize)
	for i := range batch {
		batch[i] = a.buffer.Get(a.rng.Intn(n))
	}

	return a.update(batch, learningRate)
}

// update applies the TD update for every transition of the batch.
// Updates to the same state are averaged so that the result does not
// depend on the order of the batch.
func (a *Agent) update(batch []Transition, learningRate float64) error {
	samples := make(map[StateKey][]float64, len(batch))
	for _, t := range batch {
		q := a.values.Get(t.State)
		var nextQ float64
		if !t.Terminal {
			nextQ = a.values.Get(t.NextState)
		}

		newQ := q + learningRate*(t.Reward+a.params.DiscountFactor*nextQ-q)
		samples[t.State] = append(samples[t.State], newQ)
	}

	updates := make(map[StateKey]float64, len(samples))
	for key, values := range samples {
		updates[key] = stat.Mean(values, nil)
	}

	glog.V(1).Infof("Updating %d states from batch of %d transitions", len(updates), len(batch))
	return a.values.BatchSet(updates)
}
