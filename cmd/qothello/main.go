// Command qothello trains a tabular Q-learning agent to play 6x6 Othello
// against scripted opponents.
//
// Usage:
//
//	qothello [flags] train|resume|reset|export|stats
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"gonum.org/v1/gonum/stat"

	"github.com/timpalpant/go-qothello"
	"github.com/timpalpant/go-qothello/export"
	"github.com/timpalpant/go-qothello/ldbstore"
	"github.com/timpalpant/go-qothello/othello"
	"github.com/timpalpant/go-qothello/rdbstore"
	"github.com/timpalpant/go-qothello/session"
	"github.com/timpalpant/go-qothello/sqlstore"
	"github.com/timpalpant/go-qothello/trainer"
)

var (
	configPath = flag.String("config", "", "Path to JSON config file (defaults are used if empty)")
	render     = flag.Bool("render", false, "Print every board as it is played (disables checkpoints)")
	resetDB    = flag.Bool("reset", false, "Clear all learned values before training")
	seed       = flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	valuesOut  = flag.String("values_out", "qvalues.parquet", "Output path of the export command")
	gamesOut   = flag.String("games_out", "", "If set, write the results of trained games to this parquet file")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] train|resume|reset|export|stats\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Set("logtostderr", "true")
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	config := trainer.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = trainer.LoadConfig(*configPath); err != nil {
			glog.Fatal(err)
		}
	} else if err := config.Validate(); err != nil {
		glog.Fatal(err)
	}

	if *render {
		config.Training.Render = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "train":
		err = runTraining(ctx, config, false)
	case "resume":
		err = runTraining(ctx, config, true)
	case "reset":
		err = runReset(config)
	case "export":
		err = runExport(config)
	case "stats":
		err = runStats(config)
	default:
		usage()
		glog.Fatalf("Unknown command: %q", cmd)
	}

	if err != nil {
		glog.Flush()
		glog.Fatal(err)
	}
}

func openTable(storage trainer.StorageParams) (qlearn.Table, error) {
	glog.Infof("Opening %v value table at %v", storage.Backend, storage.Path)
	switch storage.Backend {
	case trainer.BackendLevelDB:
		return ldbstore.New(storage.Path, &opt.Options{})
	case trainer.BackendRocksDB:
		return rdbstore.New(rdbstore.DefaultParams(storage.Path))
	case trainer.BackendSQLite:
		return sqlstore.New(storage.Path)
	case trainer.BackendMemory:
		return qlearn.NewMemTable(), nil
	default:
		return nil, errors.Errorf("unknown storage backend: %q", storage.Backend)
	}
}

func openValues(config trainer.Config) (*qlearn.ValueStore, error) {
	table, err := openTable(config.Storage)
	if err != nil {
		return nil, err
	}

	values, err := qlearn.NewValueStore(table)
	if err != nil {
		table.Close()
		return nil, err
	}

	return values, nil
}

func newRand() *rand.Rand {
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(s))
}

func runTraining(ctx context.Context, config trainer.Config, resume bool) error {
	values, err := openValues(config)
	if err != nil {
		return err
	}
	defer values.Close()

	sessions := session.NewStore(config.Training.SessionFile)
	if *resetDB {
		glog.Infof("Clearing %d learned values", values.Count())
		if err := values.Clear(); err != nil {
			return err
		}
	}

	rules := othello.Rules{}
	rng := newRand()
	agent := qlearn.NewAgent(rules, values, config.Agent, rng)
	t := trainer.New(config, rules, agent, sessions, rng)

	var gameLog io.Writer = io.Discard
	if config.Training.LogPath != "" {
		f, err := os.OpenFile(config.Training.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return errors.Wrap(err, "error opening game log")
		}
		defer f.Close()
		gameLog = f
	}

	if config.Training.Render {
		gameLog = io.MultiWriter(gameLog, os.Stdout)
	}
	t.SetGameLog(gameLog)

	s, err := t.Run(ctx, resume)
	if *gamesOut != "" && len(t.Results()) > 0 {
		if werr := export.WriteGames(*gamesOut, t.Results()); werr != nil {
			glog.Errorf("Unable to export game results: %v", werr)
		} else {
			glog.Infof("Wrote %d game results to %v", len(t.Results()), *gamesOut)
		}
	}

	if err != nil {
		return err
	}

	glog.Infof("Session finished: %d/%d games, %d wins, %d opponent wins, %d states learned",
		s.CompletedGames, s.TotalGames, s.Wins, s.OpponentWins, values.Count())
	return nil
}

func runReset(config trainer.Config) error {
	values, err := openValues(config)
	if err != nil {
		return err
	}
	defer values.Close()

	glog.Infof("Clearing %d learned values", values.Count())
	if err := values.Clear(); err != nil {
		return err
	}

	return session.NewStore(config.Training.SessionFile).Clear()
}

func runExport(config trainer.Config) error {
	values, err := openValues(config)
	if err != nil {
		return err
	}
	defer values.Close()

	n, err := export.WriteValues(*valuesOut, values)
	if err != nil {
		return err
	}

	glog.Infof("Wrote %d state values to %v", n, *valuesOut)
	return nil
}

func runStats(config trainer.Config) error {
	values, err := openValues(config)
	if err != nil {
		return err
	}
	defer values.Close()

	snapshot := values.Snapshot()
	fmt.Printf("States: %d\n", len(snapshot))
	if len(snapshot) > 0 {
		x := make([]float64, 0, len(snapshot))
		for _, v := range snapshot {
			x = append(x, v)
		}

		mean, std := stat.MeanStdDev(x, nil)
		fmt.Printf("Value mean: %.4f, std: %.4f\n", mean, std)
	}

	s, err := session.NewStore(config.Training.SessionFile).Load()
	if errors.Is(err, session.ErrNotFound) {
		fmt.Println("No saved training session")
		return nil
	} else if err != nil {
		return err
	}

	fmt.Printf("Saved session: %d/%d games, %d wins, %d opponent wins, started %v\n",
		s.CompletedGames, s.TotalGames, s.Wins, s.OpponentWins, s.StartTime.Format(time.RFC3339))
	return nil
}
