// Package export writes learned state values and game results to
// parquet files for offline analysis.
package export

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/trainer"
)

// ValueRow is the learned value of one state.
type ValueRow struct {
	State string  `parquet:"state"`
	Value float64 `parquet:"value"`
}

// GameRow is the result of one training game.
type GameRow struct {
	GameID     string  `parquet:"game_id"`
	Index      int32   `parquet:"index"`
	TimeMillis int64   `parquet:"time_ms"`
	Black      string  `parquet:"black,dict"`
	White      string  `parquet:"white,dict"`
	AgentColor int32   `parquet:"agent_color"`
	Winner     int32   `parquet:"winner"`
	Score      int32   `parquet:"score"`
	NumMoves   int32   `parquet:"num_moves"`
	Epsilon    float64 `parquet:"epsilon"`
}

// WriteValues writes every value of the store, ordered by state.
func WriteValues(outPath string, values *qlearn.ValueStore) (int, error) {
	snapshot := values.Snapshot()
	rows := make([]ValueRow, 0, len(snapshot))
	for key, value := range snapshot {
		rows = append(rows, ValueRow{State: string(key), Value: value})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].State < rows[j].State })
	return len(rows), writeFile(outPath, rows, "state_value_v1")
}

// WriteGames writes one row per game result.
func WriteGames(outPath string, results []trainer.GameResult) error {
	rows := make([]GameRow, len(results))
	for i, r := range results {
		rows[i] = GameRow{
			GameID:     r.ID.String(),
			Index:      int32(r.Index),
			TimeMillis: r.Time.UnixMilli(),
			Black:      r.Black,
			White:      r.White,
			AgentColor: int32(r.AgentColor),
			Winner:     int32(r.Winner),
			Score:      int32(r.Score),
			NumMoves:   int32(r.NumMoves),
			Epsilon:    r.Epsilon,
		}
	}

	return writeFile(outPath, rows, "game_result_v1")
}

func writeFile[T any](outPath string, rows []T, schema string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.Wrap(err, "error creating output dir")
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		return errors.Wrap(err, "error writing parquet")
	}

	return errors.Wrap(os.Rename(tmpPath, outPath), "error renaming parquet")
}
