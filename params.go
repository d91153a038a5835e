package qlearn

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// MinEpsilon is the floor below which UpdateEpsilon never decays epsilon.
const MinEpsilon = 0.01

// Params are the configuration options of the learning Agent.
// Params are loaded once at startup and are fixed for the duration of a run.
type Params struct {
	LearningRate     float64 `json:"learningRate"`
	DiscountFactor   float64 `json:"discountFactor"`   // γ, in [0, 1]
	Epsilon          float64 `json:"epsilon"`          // Initial exploration rate.
	EpsilonDecayRate float64 `json:"epsilonDecayRate"` // Multiplicative decay per win.

	// Reward shaping weights for non-terminal positions.
	IntermediateRewardScale float64 `json:"intermediateRewardScale"`
	CornerWeight            float64 `json:"cornerWeight"`
	LegalMoveWeight         float64 `json:"legalMoveWeight"`

	ReplayBufferSize int `json:"replayBufferSize"`
	BatchSize        int `json:"batchSize"`
}

// DefaultParams returns the Params used when no configuration overrides them.
func DefaultParams() Params {
	return Params{
		LearningRate:            0.1,
		DiscountFactor:          0.9,
		Epsilon:                 0.1,
		EpsilonDecayRate:        0.999,
		IntermediateRewardScale: 1.0,
		CornerWeight:            5.0,
		LegalMoveWeight:         1.0,
		ReplayBufferSize:        10000,
		BatchSize:               32,
	}
}

// Validate checks that all options are in range, returning an error
// wrapping ErrInvalidParams if not.
func (p Params) Validate() error {
	if p.LearningRate <= 0 || p.LearningRate > 1 {
		return errors.Wrapf(ErrInvalidParams, "learningRate must be in (0, 1], got %v", p.LearningRate)
	}

	if p.DiscountFactor < 0 || p.DiscountFactor > 1 {
		return errors.Wrapf(ErrInvalidParams, "discountFactor must be in [0, 1], got %v", p.DiscountFactor)
	}

	if p.Epsilon < 0 || p.Epsilon > 1 {
		return errors.Wrapf(ErrInvalidParams, "epsilon must be in [0, 1], got %v", p.Epsilon)
	}

	if p.EpsilonDecayRate <= 0 || p.EpsilonDecayRate > 1 {
		return errors.Wrapf(ErrInvalidParams, "epsilonDecayRate must be in (0, 1], got %v", p.EpsilonDecayRate)
	}

	if p.ReplayBufferSize <= 0 {
		return errors.Wrapf(ErrInvalidParams, "replayBufferSize must be positive, got %d", p.ReplayBufferSize)
	}

	if p.BatchSize <= 0 {
		return errors.Wrapf(ErrInvalidParams, "batchSize must be positive, got %d", p.BatchSize)
	}

	if p.BatchSize > p.ReplayBufferSize {
		glog.Warningf("batchSize (%d) exceeds replayBufferSize (%d): no batch update will ever run",
			p.BatchSize, p.ReplayBufferSize)
	}

	return nil
}
