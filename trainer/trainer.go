package trainer

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/internal/sampling"
	"github.com/timpalpant/go-qothello/opponent"
	"github.com/timpalpant/go-qothello/session"
)

// Opponents in the order in which OpponentRatios partitions [0, 1).
var opponentOrder = []opponent.Kind{opponent.Simple, opponent.SimpleVariant, opponent.Random}

// OpponentFactory creates the opponent for one game.
type OpponentFactory func(kind opponent.Kind) qlearn.Policy

// Trainer plays the agent against scripted opponents, updating its
// values after every game.
type Trainer struct {
	params   TrainingParams
	rules    qlearn.Rules
	agent    *qlearn.Agent
	shaper   qlearn.RewardShaper
	sessions *session.Store
	rng      *rand.Rand

	newOpponent    OpponentFactory
	gameLog        io.Writer
	initialEpsilon float64
	decayRate      float64
	results        []GameResult
}

// New returns a Trainer for the given agent.
func New(config Config, rules qlearn.Rules, agent *qlearn.Agent, sessions *session.Store, rng *rand.Rand) *Trainer {
	return &Trainer{
		params:   config.Training,
		rules:    rules,
		agent:    agent,
		shaper:   qlearn.NewRewardShaper(rules, config.Agent),
		sessions: sessions,
		rng:      rng,
		newOpponent: func(kind opponent.Kind) qlearn.Policy {
			return opponent.New(kind, rules, rng)
		},
		gameLog:        io.Discard,
		initialEpsilon: config.Agent.Epsilon,
		decayRate:      config.Agent.EpsilonDecayRate,
	}
}

// SetOpponentFactory replaces the function used to create opponents.
func (t *Trainer) SetOpponentFactory(f OpponentFactory) {
	t.newOpponent = f
}

// SetGameLog sets the writer to which one line is written per game.
func (t *Trainer) SetGameLog(w io.Writer) {
	t.gameLog = w
}

// Results returns the results of all games played by this Trainer.
func (t *Trainer) Results() []GameResult {
	return t.results
}

// Run trains the agent until the session is complete. If resume is true
// and a session was saved, training continues from it; otherwise a new
// session of NumGames games is started.
//
// When the session completes, the saved session is removed. If a game
// fails, or ctx is cancelled, the session is saved and an error is returned.
func (t *Trainer) Run(ctx context.Context, resume bool) (*session.TrainingSession, error) {
	s, err := t.start(resume)
	if err != nil {
		return nil, err
	}

	runStart := time.Now()
	played := 0
	for i := s.CompletedGames; i < s.TotalGames; i++ {
		if err := ctx.Err(); err != nil {
			return s, t.interrupt(s, err, false)
		}

		result, err := t.playOne(i)
		if err != nil {
			return s, t.interrupt(s, err, true)
		}

		s.CompletedGames = i + 1
		played++
		switch result.Winner {
		case result.AgentColor:
			s.Wins++
		case result.AgentColor.Opponent():
			s.OpponentWins++
		}

		t.results = append(t.results, result)
		t.logGame(s, result)
		t.updateEpsilon(result)

		if !t.params.Render && s.CompletedGames%t.params.SaveInterval == 0 {
			if err := t.sessions.Save(s); err != nil {
				return s, t.interrupt(s, err, false)
			}

			elapsed := time.Since(runStart)
			eta := time.Duration(float64(elapsed) / float64(played) * float64(s.Remaining()))
			glog.Infof("Progress: %d/%d games completed (win rate: %.1f%%, epsilon: %.4f, %d states, remaining: %v)",
				s.CompletedGames, s.TotalGames, winRate(s.Wins, s.CompletedGames),
				t.agent.Epsilon(), t.agent.Values().Count(), eta.Round(time.Second))
		}
	}

	if err := t.sessions.Clear(); err != nil {
		return s, err
	}

	glog.Infof("Training complete: %d games, %d wins (%.2f%%), %d opponent wins, total time %v",
		s.TotalGames, s.Wins, winRate(s.Wins, s.TotalGames), s.OpponentWins,
		time.Since(s.StartTime).Round(time.Second))
	return s, nil
}

func (t *Trainer) start(resume bool) (*session.TrainingSession, error) {
	if resume {
		s, err := t.sessions.Load()
		if err == nil {
			glog.Infof("Resuming training session: %d/%d games completed",
				s.CompletedGames, s.TotalGames)
			return s, nil
		} else if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}

		glog.Warningf("No saved training session found, starting a new one")
	} else if t.sessions.Exists() {
		glog.Warningf("Discarding saved training session at %v", t.sessions.Path())
		if err := t.sessions.Clear(); err != nil {
			return nil, err
		}
	}

	glog.Infof("Starting training session of %d games", t.params.NumGames)
	return session.New(t.params.NumGames, t.agent.Name(), "OpponentAI"), nil
}

// interrupt saves the session after a failure. If the failure happened
// during a game, that game is skipped when the session is resumed.
func (t *Trainer) interrupt(s *session.TrainingSession, cause error, skipGame bool) error {
	failedGame := s.CompletedGames + 1
	if skipGame && s.CompletedGames < s.TotalGames {
		s.CompletedGames++
	}

	if err := t.sessions.Save(s); err != nil {
		glog.Errorf("Unable to save training session: %v", err)
	} else {
		glog.Infof("Saved training session to %v, it can be resumed later", t.sessions.Path())
	}

	return errors.Wrapf(cause, "training interrupted at game %d/%d (%d games remaining)",
		failedGame, s.TotalGames, s.Remaining())
}

func (t *Trainer) selectOpponent(i int) opponent.Kind {
	if i < t.params.RandomOpponentGames {
		return opponent.Random
	}

	idx := sampling.SampleOne(t.params.OpponentRatios.asSlice(), t.rng.Float64())
	if idx >= len(opponentOrder) {
		return opponent.Random
	}

	return opponentOrder[idx]
}

// playOne plays and learns from the ith game of the session.
func (t *Trainer) playOne(i int) (result GameResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in game %d: %v", i+1, r)
		}
	}()

	kind := t.selectOpponent(i)
	opp := t.newOpponent(kind)
	learningRate := t.agent.LearningRate()
	if kind == opponent.Simple {
		learningRate *= t.params.LearningRateMultiplierForSimpleAI
	}

	agentColor := qlearn.Black
	black, white := qlearn.Policy(t.agent), opp
	if t.rng.Intn(2) == 1 {
		agentColor = qlearn.White
		black, white = opp, t.agent
	}

	var episode qlearn.Episode
	record := func(before, after qlearn.Board, mover qlearn.Player) {
		if mover != agentColor {
			return
		}

		reward := t.shaper.Reward(after, mover)
		episode.Record(before, after, reward, t.rules.IsTerminal(after))
	}

	var render io.Writer
	if t.params.Render {
		render = t.gameLog
	}

	epsilon := t.agent.Epsilon()
	final, numMoves, err := PlayGame(t.rules, black, white, record, render)
	if err != nil {
		return result, errors.Wrapf(err, "error playing game %d against %v", i+1, opp.Name())
	}

	episode.Finish(final, t.shaper.Reward(final, agentColor))
	if err := t.agent.BatchUpdate(episode.Transitions(), learningRate); err != nil {
		return result, errors.Wrapf(err, "error updating values after game %d", i+1)
	}

	return GameResult{
		ID:         uuid.New(),
		Index:      i,
		Time:       time.Now(),
		Black:      black.Name(),
		White:      white.Name(),
		AgentColor: agentColor,
		Winner:     qlearn.Winner(t.rules, final),
		Score:      t.rules.Score(final),
		NumMoves:   numMoves,
		Epsilon:    epsilon,
	}, nil
}

// updateEpsilon explores less after a win and more after a loss or draw,
// never exceeding the initial exploration rate.
func (t *Trainer) updateEpsilon(result GameResult) {
	if result.Winner == result.AgentColor {
		t.agent.UpdateEpsilon(t.decayRate)
		return
	}

	t.agent.UpdateEpsilon(1 / t.decayRate)
	if t.agent.Epsilon() > t.initialEpsilon {
		t.agent.SetEpsilon(t.initialEpsilon)
	}
}

func (t *Trainer) logGame(s *session.TrainingSession, r GameResult) {
	fmt.Fprintf(t.gameLog, "%s - Game %d/%d [%v]: Black(%s) vs White(%s), winner: %v(%s), agent wins: %d, opponent wins: %d\n",
		r.Time.Format("2006-01-02 15:04:05"), r.Index+1, s.TotalGames, r.ID,
		r.Black, r.White, r.Winner, r.WinnerName(), s.Wins, s.OpponentWins)
}

func winRate(wins, games int) float64 {
	if games == 0 {
		return 0
	}

	return 100 * float64(wins) / float64(games)
}
