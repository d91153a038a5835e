// Package session persists the progress of a training run so that an
// interrupted run can be resumed.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Load when no session has been saved.
var ErrNotFound = errors.New("no saved training session")

// TrainingSession is the checkpointed progress of a training run.
type TrainingSession struct {
	TotalGames     int        `json:"totalGames"`
	CompletedGames int        `json:"completedGames"`
	Wins           int        `json:"wins"`
	OpponentWins   int        `json:"opponentWins"`
	StartTime      time.Time  `json:"startTime"`
	LastSaveTime   *time.Time `json:"lastSaveTime"`
	AgentName      string     `json:"agentName"`
	OpponentName   string     `json:"opponentName"`
}

// New returns a fresh session of the given number of games, started now.
func New(totalGames int, agentName, opponentName string) *TrainingSession {
	return &TrainingSession{
		TotalGames:   totalGames,
		StartTime:    time.Now(),
		AgentName:    agentName,
		OpponentName: opponentName,
	}
}

// Remaining returns the number of games left to play.
func (s *TrainingSession) Remaining() int {
	if s.CompletedGames >= s.TotalGames {
		return 0
	}

	return s.TotalGames - s.CompletedGames
}

// Validate checks that the session counters are consistent.
func (s *TrainingSession) Validate() error {
	if s.TotalGames < 0 || s.CompletedGames < 0 || s.Wins < 0 || s.OpponentWins < 0 {
		return errors.Errorf("negative counter in session: %+v", *s)
	}

	if s.CompletedGames > s.TotalGames {
		return errors.Errorf("completed games (%d) exceeds total games (%d)",
			s.CompletedGames, s.TotalGames)
	}

	if s.Wins+s.OpponentWins > s.CompletedGames {
		return errors.Errorf("wins (%d + %d) exceed completed games (%d)",
			s.Wins, s.OpponentWins, s.CompletedGames)
	}

	return nil
}

// Store saves a TrainingSession as a JSON file at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for the session file at path. The file is not
// created until the first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the session file.
func (st *Store) Path() string {
	return st.path
}

// Save records the save time in s and atomically replaces the session file.
func (st *Store) Save(s *TrainingSession) error {
	now := time.Now()
	s.LastSaveTime = &now

	buf, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error encoding session")
	}

	dir := filepath.Dir(st.path)
	f, err := os.CreateTemp(dir, filepath.Base(st.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "error creating session file")
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if _, err := f.Write(buf); err != nil {
		f.Close()
		return errors.Wrap(err, "error writing session file")
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrap(err, "error syncing session file")
	}

	if err := f.Close(); err != nil {
		return errors.Wrap(err, "error closing session file")
	}

	return errors.Wrap(os.Rename(tmpName, st.path), "error replacing session file")
}

// Load reads the saved session, returning ErrNotFound if there is none.
func (st *Store) Load() (*TrainingSession, error) {
	buf, err := os.ReadFile(st.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "error reading session file")
	}

	var s TrainingSession
	if err := json.Unmarshal(buf, &s); err != nil {
		return nil, errors.Wrapf(err, "error decoding session file %v", st.path)
	}

	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid session file %v", st.path)
	}

	return &s, nil
}

// Exists reports whether a session has been saved.
func (st *Store) Exists() bool {
	_, err := os.Stat(st.path)
	return err == nil
}

// Clear removes the saved session, if any.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "error removing session file")
	}

	return nil
}
