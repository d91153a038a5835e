package qlearn

import (
	"fmt"
	"sync"
)

// Transition is one move experienced by the learning agent: the state it
// moved from, the state that resulted, and the reward it received.
type Transition struct {
	State     StateKey
	NextState StateKey
	Reward    float64
	Terminal  bool
}

// ReplayBuffer holds the most recent transitions, up to a fixed capacity.
// Once full, adding a transition evicts the oldest one.
type ReplayBuffer struct {
	mx          sync.Mutex
	maxSize     int
	transitions []Transition
	// Index of the oldest transition once the buffer has filled.
	start int
}

// NewReplayBuffer returns an empty ReplayBuffer holding at most maxSize transitions.
func NewReplayBuffer(maxSize int) *ReplayBuffer {
	if maxSize <= 0 {
		panic(fmt.Errorf("replay buffer size must be positive, got %d", maxSize))
	}

	return &ReplayBuffer{
		maxSize:     maxSize,
		transitions: make([]Transition, 0, maxSize),
	}
}

// Add appends a transition, evicting the oldest one if the buffer is full.
func (b *ReplayBuffer) Add(t Transition) {
	b.mx.Lock()
	defer b.mx.Unlock()

	if len(b.transitions) < b.maxSize {
		b.transitions = append(b.transitions, t)
	} else {
		b.transitions[b.start] = t
		b.start = (b.start + 1) % b.maxSize
	}
}

// Get returns the ith transition, in order of insertion (0 is the oldest).
func (b *ReplayBuffer) Get(i int) Transition {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.transitions[(b.start+i)%len(b.transitions)]
}

// Len returns the number of transitions in the buffer.
func (b *ReplayBuffer) Len() int {
	b.mx.Lock()
	defer b.mx.Unlock()
	return len(b.transitions)
}

// Cap returns the maximum number of transitions held by the buffer.
func (b *ReplayBuffer) Cap() int {
	return b.maxSize
}

// Transitions returns a copy of all transitions, oldest first.
func (b *ReplayBuffer) Transitions() []Transition {
	b.mx.Lock()
	defer b.mx.Unlock()
	result := make([]Transition, 0, len(b.transitions))
	result = append(result, b.transitions[b.start:]...)
	result = append(result, b.transitions[:b.start]...)
	return result
}
