package trainer

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
)

// Storage backends of the value table.
const (
	BackendLevelDB = "leveldb"
	BackendRocksDB = "rocksdb"
	BackendSQLite  = "sqlite"
	BackendMemory  = "memory"
)

// OpponentRatios are the probabilities with which each scripted opponent
// is chosen once the warm-up games against Random are over. Any
// remaining probability mass goes to Random.
type OpponentRatios struct {
	Simple        float64 `json:"SimpleAI"`
	SimpleVariant float64 `json:"SimpleAIVariant"`
	Random        float64 `json:"RandomAI"`
}

func (r OpponentRatios) asSlice() []float64 {
	return []float64{r.Simple, r.SimpleVariant, r.Random}
}

// TrainingParams configure a training run.
type TrainingParams struct {
	NumGames            int            `json:"numGames"`
	SaveInterval        int            `json:"saveInterval"`
	RandomOpponentGames int            `json:"randomOpponentGames"`
	OpponentRatios      OpponentRatios `json:"aiRatios"`
	// Applied to the learning rate of games played against SimpleAI.
	LearningRateMultiplierForSimpleAI float64 `json:"learningRateMultiplierForSimpleAI"`

	SessionFile string `json:"sessionFile"`
	LogPath     string `json:"logPath"`
	// Print every board as it is played. Checkpoints are disabled while rendering.
	Render bool `json:"render"`
}

// StorageParams select the durable table backing the value store.
type StorageParams struct {
	Backend string `json:"backend"`
	Path    string `json:"dbPath"`
}

// Config is the complete configuration of the qothello command.
type Config struct {
	Agent    qlearn.Params  `json:"agent"`
	Training TrainingParams `json:"training"`
	Storage  StorageParams  `json:"storage"`
}

// DefaultConfig returns the Config used for options missing from the config file.
func DefaultConfig() Config {
	return Config{
		Agent: qlearn.DefaultParams(),
		Training: TrainingParams{
			NumGames:            10000,
			SaveInterval:        100,
			RandomOpponentGames: 1000,
			OpponentRatios: OpponentRatios{
				Simple:        0.4,
				SimpleVariant: 0.4,
				Random:        0.2,
			},
			LearningRateMultiplierForSimpleAI: 1.0,
			SessionFile:                       "training_session.json",
			LogPath:                           "training_log.txt",
		},
		Storage: StorageParams{
			Backend: BackendLevelDB,
			Path:    "othello_qvalues.db",
		},
	}
}

// LoadConfig reads a JSON configuration file. Options missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return config, errors.Wrap(err, "error opening config")
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		return config, errors.Wrapf(err, "error decoding config %v", path)
	}

	return config, config.Validate()
}

// Validate checks every option, returning an error wrapping
// qlearn.ErrInvalidParams for the first one out of range.
func (c Config) Validate() error {
	if err := c.Agent.Validate(); err != nil {
		return err
	}

	t := c.Training
	if t.NumGames < 0 {
		return errors.Wrapf(qlearn.ErrInvalidParams, "numGames must not be negative, got %d", t.NumGames)
	}

	if t.SaveInterval <= 0 {
		return errors.Wrapf(qlearn.ErrInvalidParams, "saveInterval must be positive, got %d", t.SaveInterval)
	}

	if t.RandomOpponentGames < 0 {
		return errors.Wrapf(qlearn.ErrInvalidParams,
			"randomOpponentGames must not be negative, got %d", t.RandomOpponentGames)
	}

	var total float64
	for _, r := range t.OpponentRatios.asSlice() {
		if r < 0 {
			return errors.Wrapf(qlearn.ErrInvalidParams, "negative opponent ratio: %+v", t.OpponentRatios)
		}
		total += r
	}

	if total > 1+1e-9 {
		return errors.Wrapf(qlearn.ErrInvalidParams, "opponent ratios sum to %v > 1", total)
	}

	if t.LearningRateMultiplierForSimpleAI <= 0 {
		return errors.Wrapf(qlearn.ErrInvalidParams,
			"learningRateMultiplierForSimpleAI must be positive, got %v", t.LearningRateMultiplierForSimpleAI)
	}

	if t.SessionFile == "" {
		return errors.Wrap(qlearn.ErrInvalidParams, "sessionFile must be set")
	}

	switch c.Storage.Backend {
	case BackendLevelDB, BackendRocksDB, BackendSQLite:
		if c.Storage.Path == "" {
			return errors.Wrapf(qlearn.ErrInvalidParams, "dbPath must be set for %v storage", c.Storage.Backend)
		}
	case BackendMemory:
	default:
		return errors.Wrapf(qlearn.ErrInvalidParams, "unknown storage backend: %q", c.Storage.Backend)
	}

	return nil
}
